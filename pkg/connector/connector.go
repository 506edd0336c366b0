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

// Package connector defines the capability boundary between the engine's
// plan rewriter and a pluggable storage connector. The engine never looks
// inside a connector's table or column handles; it only carries them around
// and hands them back on the next negotiation.
package connector

import (
	"context"
)

// TableHandle is an opaque connector-defined table identifier. Handles are
// compared by value, so implementations must be comparable.
type TableHandle interface{}

// ColumnHandle is an opaque connector-defined column identifier within a
// table handle. Implementations must be comparable.
type ColumnHandle interface{}

type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
)

func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "INNER"
	case LeftJoin:
		return "LEFT"
	case RightJoin:
		return "RIGHT"
	case FullJoin:
		return "FULL"
	}
	return "UNKNOWN"
}

type JoinConditionOperator int

const (
	Equal JoinConditionOperator = iota
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	IsDistinctFrom
)

func (o JoinConditionOperator) String() string {
	switch o {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	case IsDistinctFrom:
		return "IS DISTINCT FROM"
	}
	return "UNKNOWN"
}

// JoinCondition is one conjunct of the join criteria in connector terms,
// decoupled from the engine's expression tree. Left always refers to a
// column of the left table handle and Right to one of the right.
type JoinCondition struct {
	Operator JoinConditionOperator
	Left     ColumnHandle
	Right    ColumnHandle
}

// JoinApplicationResult is a connector's acceptance of a join pushdown: a
// handle for the joined relation plus, per side, the mapping from the old
// column handles to their columns in the new relation. Each mapping must
// cover every visible output column of its side; a partial mapping is a
// contract breach, not a partial acceptance.
type JoinApplicationResult struct {
	Table              TableHandle
	LeftColumnMapping  map[ColumnHandle]ColumnHandle
	RightColumnMapping map[ColumnHandle]ColumnHandle
}

// Connector is the negotiation surface of one storage backend.
type Connector interface {
	// ApplyJoin asks the connector to take over a join between two of its
	// tables. Assignments map each referenced column handle to the output
	// symbol the engine knows it by. A nil result means the connector
	// declines and the plan is kept as-is. A non-nil error means the
	// negotiation itself failed (e.g. a metadata round-trip broke) and is
	// surfaced to the caller unchanged; the rewriter never retries.
	//
	// The call may block on remote I/O. Implementations should honor ctx
	// cancellation.
	ApplyJoin(
		ctx context.Context,
		session *Session,
		joinType JoinType,
		left TableHandle,
		right TableHandle,
		conditions []JoinCondition,
		leftAssignments map[ColumnHandle]string,
		rightAssignments map[ColumnHandle]string,
	) (*JoinApplicationResult, error)
}
