// Copyright 2024-2025 Kyanite Technologies Co., Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package constraint implements the per-column value restriction algebra the
// planner uses to describe what a scan provably enforces. A Domain is a
// closed variant (no values, all values, a range set) plus a null admission
// flag, so combinators stay total and the widening done for outer joins is a
// pure function.
package constraint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

type setKind int

const (
	noneSet setKind = iota
	allSet
	rangeSet
)

type bound struct {
	value     interface{}
	inclusive bool
	unbounded bool
}

// valueRange is a contiguous interval over one column's value space. A
// single value is a degenerate range with both bounds inclusive and equal.
type valueRange struct {
	low  bound
	high bound
}

func (r valueRange) isSingleValue() bool {
	return !r.low.unbounded && !r.high.unbounded &&
		r.low.inclusive && r.high.inclusive &&
		compareValues(r.low.value, r.high.value) == 0
}

// Domain is the set of admissible non-null values for one column plus
// whether null itself is admitted. The zero value is the none domain.
type Domain struct {
	kind        setKind
	ranges      []valueRange
	nullAllowed bool
}

// NoValues is the unsatisfiable domain: no value, not even null.
func NoValues() Domain {
	return Domain{kind: noneSet}
}

// AllValues admits every value including null.
func AllValues() Domain {
	return Domain{kind: allSet, nullAllowed: true}
}

// OnlyNull admits exactly the null value.
func OnlyNull() Domain {
	return Domain{kind: noneSet, nullAllowed: true}
}

// NotNull admits every value except null.
func NotNull() Domain {
	return Domain{kind: allSet}
}

// SingleValue admits exactly one non-null value.
func SingleValue(v interface{}) Domain {
	return MultipleValues(v)
}

// MultipleValues admits exactly the given non-null values.
func MultipleValues(vs ...interface{}) Domain {
	if len(vs) == 0 {
		return NoValues()
	}
	ranges := make([]valueRange, 0, len(vs))
	for _, v := range vs {
		n := normalizeValue(v)
		b := bound{value: n, inclusive: true}
		ranges = append(ranges, valueRange{low: b, high: b})
	}
	return Domain{kind: rangeSet, ranges: canonicalize(ranges)}
}

// ValueRange admits the interval between low and high. A nil bound value
// means unbounded on that end.
func ValueRange(low, high interface{}, lowInclusive, highInclusive bool) Domain {
	lo := bound{unbounded: true}
	if low != nil {
		lo = bound{value: normalizeValue(low), inclusive: lowInclusive}
	}
	hi := bound{unbounded: true}
	if high != nil {
		hi = bound{value: normalizeValue(high), inclusive: highInclusive}
	}
	if !lo.unbounded && !hi.unbounded {
		c := compareValues(lo.value, hi.value)
		if c > 0 || (c == 0 && !(lo.inclusive && hi.inclusive)) {
			return NoValues()
		}
	}
	if lo.unbounded && hi.unbounded {
		return NotNull()
	}
	return Domain{kind: rangeSet, ranges: []valueRange{{low: lo, high: hi}}}
}

// IsNone reports whether the domain admits no value at all, which makes any
// constraint containing it unsatisfiable.
func (d Domain) IsNone() bool {
	return d.kind == noneSet && !d.nullAllowed
}

func (d Domain) IsAll() bool {
	return d.kind == allSet && d.nullAllowed
}

func (d Domain) IsOnlyNull() bool {
	return d.kind == noneSet && d.nullAllowed
}

func (d Domain) IsNullAllowed() bool {
	return d.nullAllowed
}

// Values returns the admitted values when the domain is a finite set.
func (d Domain) Values() ([]interface{}, bool) {
	if d.kind != rangeSet {
		return nil, false
	}
	vs := make([]interface{}, 0, len(d.ranges))
	for _, r := range d.ranges {
		if !r.isSingleValue() {
			return nil, false
		}
		vs = append(vs, r.low.value)
	}
	return vs, true
}

// Union admits any value admitted by either domain.
func (d Domain) Union(other Domain) Domain {
	nullAllowed := d.nullAllowed || other.nullAllowed
	switch {
	case d.kind == allSet || other.kind == allSet:
		return Domain{kind: allSet, nullAllowed: nullAllowed}
	case d.kind == noneSet:
		return Domain{kind: other.kind, ranges: other.ranges, nullAllowed: nullAllowed}
	case other.kind == noneSet:
		return Domain{kind: d.kind, ranges: d.ranges, nullAllowed: nullAllowed}
	}
	merged := make([]valueRange, 0, len(d.ranges)+len(other.ranges))
	merged = append(merged, d.ranges...)
	merged = append(merged, other.ranges...)
	return Domain{kind: rangeSet, ranges: canonicalize(merged), nullAllowed: nullAllowed}
}

func (d Domain) String() string {
	switch d.kind {
	case allSet:
		if d.nullAllowed {
			return "ALL"
		}
		return "NOT NULL"
	case noneSet:
		if d.nullAllowed {
			return "NULL"
		}
		return "NONE"
	}
	parts := make([]string, 0, len(d.ranges))
	for _, r := range d.ranges {
		if r.isSingleValue() {
			parts = append(parts, fmt.Sprintf("%v", r.low.value))
			continue
		}
		lo, hi := "(-inf", "+inf)"
		if !r.low.unbounded {
			if r.low.inclusive {
				lo = fmt.Sprintf("[%v", r.low.value)
			} else {
				lo = fmt.Sprintf("(%v", r.low.value)
			}
		}
		if !r.high.unbounded {
			if r.high.inclusive {
				hi = fmt.Sprintf("%v]", r.high.value)
			} else {
				hi = fmt.Sprintf("%v)", r.high.value)
			}
		}
		parts = append(parts, lo+".."+hi)
	}
	s := "{" + strings.Join(parts, ", ") + "}"
	if d.nullAllowed {
		s += " OR NULL"
	}
	return s
}

// canonicalize sorts ranges by lower bound and merges every overlapping or
// touching pair so that equal domains always have equal representations.
func canonicalize(ranges []valueRange) []valueRange {
	if len(ranges) <= 1 {
		return ranges
	}
	sorted := make([]valueRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		return compareLowBounds(sorted[i].low, sorted[j].low) < 0
	})
	out := make([]valueRange, 0, len(sorted))
	out = append(out, sorted[0])
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if rangesConnect(*last, r) {
			if compareHighBounds(r.high, last.high) > 0 {
				last.high = r.high
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// rangesConnect reports whether b starts inside or immediately at the end of
// a, given that a's low bound sorts first.
func rangesConnect(a, b valueRange) bool {
	if a.high.unbounded || b.low.unbounded {
		return true
	}
	c := compareValues(b.low.value, a.high.value)
	if c < 0 {
		return true
	}
	if c == 0 {
		return b.low.inclusive || a.high.inclusive
	}
	return false
}

func compareLowBounds(a, b bound) int {
	switch {
	case a.unbounded && b.unbounded:
		return 0
	case a.unbounded:
		return -1
	case b.unbounded:
		return 1
	}
	if c := compareValues(a.value, b.value); c != 0 {
		return c
	}
	// inclusive low starts earlier
	switch {
	case a.inclusive == b.inclusive:
		return 0
	case a.inclusive:
		return -1
	}
	return 1
}

func compareHighBounds(a, b bound) int {
	switch {
	case a.unbounded && b.unbounded:
		return 0
	case a.unbounded:
		return 1
	case b.unbounded:
		return -1
	}
	if c := compareValues(a.value, b.value); c != 0 {
		return c
	}
	// inclusive high ends later
	switch {
	case a.inclusive == b.inclusive:
		return 0
	case a.inclusive:
		return 1
	}
	return -1
}

// normalizeValue collapses equivalent literal representations so that the
// same point produced by different frontends lands in one domain value.
func normalizeValue(v interface{}) interface{} {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToInt64(v)
	case float32, float64:
		return cast.ToFloat64(v)
	case string:
		return v
	case bool:
		return v
	}
	return v
}

func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return compareOrdered(av, bv)
		case float64:
			return compareOrdered(float64(av), bv)
		}
	case float64:
		switch bv := b.(type) {
		case int64:
			return compareOrdered(av, float64(bv))
		case float64:
			return compareOrdered(av, bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	}
	// mixed incomparable types keep a stable order by rendered form
	return strings.Compare(fmt.Sprintf("%T%v", a, a), fmt.Sprintf("%T%v", b, b))
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
