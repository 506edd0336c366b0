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

package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainUnion(t *testing.T) {
	tests := []struct {
		name string
		a    Domain
		b    Domain
		want Domain
	}{
		{
			name: "all swallows values",
			a:    AllValues(),
			b:    MultipleValues(1, 2),
			want: AllValues(),
		},
		{
			name: "none is identity",
			a:    NoValues(),
			b:    MultipleValues(5),
			want: MultipleValues(5),
		},
		{
			name: "values with only null keeps values and admits null",
			a:    MultipleValues(3),
			b:    OnlyNull(),
			want: Domain{kind: rangeSet, ranges: MultipleValues(3).ranges, nullAllowed: true},
		},
		{
			name: "value sets merge and dedupe",
			a:    MultipleValues(1, 3),
			b:    MultipleValues(3, 2),
			want: MultipleValues(1, 2, 3),
		},
		{
			name: "not null union only null is all",
			a:    NotNull(),
			b:    OnlyNull(),
			want: AllValues(),
		},
		{
			name: "overlapping ranges coalesce",
			a:    ValueRange(1, 5, true, true),
			b:    ValueRange(4, 9, true, true),
			want: ValueRange(1, 9, true, true),
		},
		{
			name: "touching ranges coalesce when one bound inclusive",
			a:    ValueRange(1, 5, true, false),
			b:    ValueRange(5, 9, true, true),
			want: ValueRange(1, 9, true, true),
		},
		{
			name: "disjoint ranges stay separate",
			a:    ValueRange(1, 2, true, true),
			b:    ValueRange(5, 6, true, true),
			want: Domain{kind: rangeSet, ranges: []valueRange{
				{low: bound{value: int64(1), inclusive: true}, high: bound{value: int64(2), inclusive: true}},
				{low: bound{value: int64(5), inclusive: true}, high: bound{value: int64(6), inclusive: true}},
			}},
		},
		{
			name: "value inside range is absorbed",
			a:    ValueRange(1, 10, true, true),
			b:    SingleValue(7),
			want: ValueRange(1, 10, true, true),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Union(tt.b))
			// union is commutative
			assert.Equal(t, tt.want, tt.b.Union(tt.a))
		})
	}
}

func TestDomainPredicates(t *testing.T) {
	assert.True(t, NoValues().IsNone())
	assert.False(t, OnlyNull().IsNone())
	assert.True(t, OnlyNull().IsOnlyNull())
	assert.True(t, AllValues().IsAll())
	assert.False(t, NotNull().IsAll())
	assert.True(t, AllValues().IsNullAllowed())
	assert.False(t, MultipleValues(1).IsNullAllowed())
}

func TestDomainValues(t *testing.T) {
	vs, ok := MultipleValues(2, 1, 1).Values()
	require.True(t, ok)
	assert.Equal(t, []interface{}{int64(1), int64(2)}, vs)

	_, ok = ValueRange(1, 2, true, true).Values()
	assert.False(t, ok)
	_, ok = AllValues().Values()
	assert.False(t, ok)
}

func TestDomainValueNormalization(t *testing.T) {
	// the same point written as different integer widths is one value
	assert.Equal(t, MultipleValues(int32(3)), MultipleValues(int64(3)))
	assert.Equal(t, MultipleValues(3), MultipleValues(3, int16(3)))
}

func TestEmptyRangeIsNone(t *testing.T) {
	assert.True(t, ValueRange(5, 1, true, true).IsNone())
	assert.True(t, ValueRange(5, 5, true, false).IsNone())
	assert.False(t, ValueRange(5, 5, true, true).IsNone())
}
