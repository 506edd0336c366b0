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
	"github.com/kyanitedb/kyanite/pkg/connector"
)

// Constraint maps column handles to the domain each column is provably
// restricted to. A constraint with any column mapped to NoValues admits no
// rows at all and is normalized to the none constraint on construction.
type Constraint struct {
	none    bool
	domains map[connector.ColumnHandle]Domain
}

// All places no restriction on any column.
func All() Constraint {
	return Constraint{}
}

// None admits no rows.
func None() Constraint {
	return Constraint{none: true}
}

// ForColumns builds a constraint from per-column domains. All-value domains
// carry no information and are dropped; a none domain collapses the whole
// constraint.
func ForColumns(domains map[connector.ColumnHandle]Domain) Constraint {
	kept := make(map[connector.ColumnHandle]Domain, len(domains))
	for col, d := range domains {
		if d.IsNone() {
			return None()
		}
		if d.IsAll() {
			continue
		}
		kept[col] = d
	}
	if len(kept) == 0 {
		return All()
	}
	return Constraint{domains: kept}
}

func (c Constraint) IsNone() bool {
	return c.none
}

func (c Constraint) IsAll() bool {
	return !c.none && len(c.domains) == 0
}

// Domains returns the per-column domains. The second return is false for the
// none constraint, which has no column-wise representation.
func (c Constraint) Domains() (map[connector.ColumnHandle]Domain, bool) {
	if c.none {
		return nil, false
	}
	out := make(map[connector.ColumnHandle]Domain, len(c.domains))
	for col, d := range c.domains {
		out[col] = d
	}
	return out, true
}

// DomainFor returns the restriction on one column, AllValues when the column
// is unrestricted.
func (c Constraint) DomainFor(col connector.ColumnHandle) Domain {
	if c.none {
		return NoValues()
	}
	if d, ok := c.domains[col]; ok {
		return d
	}
	return AllValues()
}

// TransformKeys rewrites the constraint onto new column handles. Columns
// absent from the mapping are dropped, which only ever widens the constraint.
func (c Constraint) TransformKeys(mapping map[connector.ColumnHandle]connector.ColumnHandle) Constraint {
	if c.none {
		return c
	}
	out := make(map[connector.ColumnHandle]Domain, len(c.domains))
	for col, d := range c.domains {
		if newCol, ok := mapping[col]; ok {
			out[newCol] = d
		}
	}
	return Constraint{domains: out}
}

// MergeForOuterJoin combines the enforced constraints of the two join inputs
// into the constraint of the connector-joined relation. Column handles are
// rewritten through the post-pushdown mappings. A side that is not preserved
// by the join kind gets null-padded rows, so each of its domains is widened
// with OnlyNull before combining; the widening keeps the merged constraint
// sound rather than merely convenient.
func MergeForOuterJoin(
	left, right Constraint,
	leftMapping, rightMapping map[connector.ColumnHandle]connector.ColumnHandle,
	leftPreserved, rightPreserved bool,
) Constraint {
	if left.IsNone() && leftPreserved {
		return None()
	}
	if right.IsNone() && rightPreserved {
		return None()
	}
	merged := make(map[connector.ColumnHandle]Domain)
	mergeSide(merged, left, leftMapping, leftPreserved)
	mergeSide(merged, right, rightMapping, rightPreserved)
	return ForColumns(merged)
}

func mergeSide(
	into map[connector.ColumnHandle]Domain,
	c Constraint,
	mapping map[connector.ColumnHandle]connector.ColumnHandle,
	preserved bool,
) {
	if c.IsNone() {
		// unpreserved empty side: every surviving row is a null pad
		for _, newCol := range mapping {
			into[newCol] = OnlyNull()
		}
		return
	}
	for col, d := range c.domains {
		newCol, ok := mapping[col]
		if !ok {
			continue
		}
		if !preserved {
			d = d.Union(OnlyNull())
		}
		into[newCol] = d
	}
}
