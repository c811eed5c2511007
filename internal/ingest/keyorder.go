// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package ingest

import (
	"bytes"
	"encoding/json"
	"strings"
)

// extractKeyOrder parses raw JSON and records the key order of every
// "properties" object, keyed by its dotted path, e.g. "properties" or
// "properties.Address.items.properties".
func extractKeyOrder(raw []byte) map[string][]string {
	result := make(map[string][]string)

	var walk func(dec *json.Decoder, path string) bool
	walk = func(dec *json.Decoder, path string) bool {
		token, err := dec.Token()
		if err != nil {
			return false
		}
		delim, ok := token.(json.Delim)
		if !ok {
			return true
		}

		switch delim {
		case '{':
			var keys []string
			for dec.More() {
				keyToken, err := dec.Token()
				if err != nil {
					return false
				}
				key, _ := keyToken.(string)
				keys = append(keys, key)

				next := key
				if path != "" {
					next = path + "." + key
				}
				if !walk(dec, next) {
					return false
				}
			}
			if _, err := dec.Token(); err != nil {
				return false
			}
			if path == "properties" || strings.HasSuffix(path, ".properties") {
				result[path] = keys
			}
		case '[':
			for dec.More() {
				if !walk(dec, path) {
					return false
				}
			}
			if _, err := dec.Token(); err != nil {
				return false
			}
		}
		return true
	}

	walk(json.NewDecoder(bytes.NewReader(raw)), "")
	return result
}
