// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package casing turns free-form template labels into identifier-friendly words.
package casing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Option selects the case of the first character of a normalized label.
type Option int

const (
	// StartWithUppercase produces PascalCase, used for type names.
	StartWithUppercase Option = iota
	// StartWithLowercase produces camelCase, used for member names.
	StartWithLowercase
)

// Marker prefixes labels of imported or qualified artifacts.
const Marker = ">"

var constantSeparators = regexp.MustCompile(` +|-`)

// StripMarker removes one leading Marker from label.
func StripMarker(label string) string {
	return strings.TrimPrefix(label, Marker)
}

// Normalize converts label into a single PascalCase or camelCase word.
//
// A blank label is returned unchanged. A label that splits into a single word
// keeps that word verbatim apart from its first character; labels with several
// words are lowercased word by word and each word is capitalized.
func Normalize(label string, opt Option) string {
	if strings.TrimSpace(label) == "" {
		return label
	}
	joined := joinWords(splitWords(StripMarker(label)))
	if opt == StartWithLowercase {
		return lowerFirst(joined)
	}
	return joined
}

// ConstantSymbol converts label into the symbol used for its field-name
// constant: runs of spaces and hyphens become underscores.
func ConstantSymbol(label string) string {
	return constantSeparators.ReplaceAllString(strings.TrimSpace(StripMarker(label)), "_")
}

// splitWords segments s at case boundaries, runs of non-word characters and
// underscores. Empty segments between adjacent separators are kept so that
// the single-word rule only applies to labels without any separator; trailing
// empty segments are dropped.
func splitWords(s string) []string {
	runes := []rune(s)
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		words = append(words, string(cur))
		cur = cur[:0]
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '_':
			flush()
			continue
		case !isWordRune(r):
			for i+1 < len(runes) && !isWordRune(runes[i+1]) && runes[i+1] != '_' {
				i++
			}
			flush()
			continue
		case i > 0 && unicode.IsUpper(r):
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	for len(words) > 0 && words[len(words)-1] == "" {
		words = words[:len(words)-1]
	}
	return words
}

func joinWords(words []string) string {
	if len(words) == 1 {
		return upperFirst(words[0])
	}
	var sb strings.Builder
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		sb.WriteString(upperFirst(strings.ToLower(w)))
	}
	return sb.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
