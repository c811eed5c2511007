// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package tree

import (
	"fmt"
	"math"

	"github.com/dacolabs/cedargen/internal/errors"
)

// Unbounded is the maximum cardinality of a node without an upper bound.
const Unbounded = math.MaxInt

// ErrCardinalityRange indicates negative bounds or a minimum above the maximum.
var ErrCardinalityRange = errors.New("cardinality out of range")

// Cardinality holds the occurrence bounds of a node's value. The zero value is
// not meaningful; build one with NewCardinality or the helpers.
type Cardinality struct {
	min int
	max int
}

// NewCardinality validates and returns the bounds [min, max].
func NewCardinality(min, max int) (Cardinality, error) {
	if min < 0 {
		return Cardinality{}, errors.Wrapf(ErrCardinalityRange, "min < 0 (%d)", min)
	}
	if max < 0 {
		return Cardinality{}, errors.Wrapf(ErrCardinalityRange, "max < 0 (%d)", max)
	}
	if min > max {
		return Cardinality{}, errors.Wrapf(ErrCardinalityRange, "min (%d) > max (%d)", min, max)
	}
	return Cardinality{min: min, max: max}, nil
}

// ZeroOrOne is an optional single value.
func ZeroOrOne() Cardinality { return Cardinality{min: 0, max: 1} }

// ZeroOrMore is an optional, unbounded list of values.
func ZeroOrMore() Cardinality { return Cardinality{min: 0, max: Unbounded} }

// ExactlyOne is a single mandatory value.
func ExactlyOne() Cardinality { return Cardinality{min: 1, max: 1} }

// Min returns the lower bound.
func (c Cardinality) Min() int { return c.min }

// Max returns the upper bound, Unbounded when there is none.
func (c Cardinality) Max() int { return c.max }

// HasUpperBound reports whether the maximum is finite.
func (c Cardinality) HasUpperBound() bool { return c.max < Unbounded }

// IsMultiple reports whether more than one value is permitted.
func (c Cardinality) IsMultiple() bool { return c.max > 1 }

// IsSingle reports whether at most one value is permitted.
func (c Cardinality) IsSingle() bool { return c.max == 1 }

// SatisfiesMin reports whether count values meet the lower bound.
func (c Cardinality) SatisfiesMin(count int) bool { return count >= c.min }

// SatisfiesMax reports whether count values stay within the upper bound.
func (c Cardinality) SatisfiesMax(count int) bool { return count <= c.max }

// Satisfied reports whether count values are within both bounds.
func (c Cardinality) Satisfied(count int) bool {
	return c.SatisfiesMin(count) && c.SatisfiesMax(count)
}

func (c Cardinality) String() string {
	if !c.HasUpperBound() {
		return fmt.Sprintf("[%d..*]", c.min)
	}
	return fmt.Sprintf("[%d..%d]", c.min, c.max)
}

// Ptr returns a pointer to a copy of c, for NodeSpec literals.
func Ptr(c Cardinality) *Cardinality {
	return &c
}
