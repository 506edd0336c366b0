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

package planner

import (
	"github.com/kyanitedb/kyanite/pkg/ast"
	"github.com/kyanitedb/kyanite/pkg/connector"
)

// translatedJoin is the connector-facing form of a join's criteria: the
// conditions plus, per side, the assignments of the column handles the
// conditions reference.
type translatedJoin struct {
	conditions       []connector.JoinCondition
	leftAssignments  map[connector.ColumnHandle]string
	rightAssignments map[connector.ColumnHandle]string
}

// translateJoinConditions turns the join's equi clauses and residual filter
// into connector join conditions. Equi clauses always translate. A residual
// filter translates only when it is a single comparison between one bare
// column of each side; any other shape makes the whole join untranslatable
// and the second return is false.
func translateJoinConditions(j *JoinPlan, left, right *TableScanPlan) (*translatedJoin, bool) {
	t := &translatedJoin{
		leftAssignments:  make(map[connector.ColumnHandle]string),
		rightAssignments: make(map[connector.ColumnHandle]string),
	}
	for _, clause := range j.Clauses() {
		lcol, ok := left.columnFor(clause.Left)
		if !ok {
			return nil, false
		}
		rcol, ok := right.columnFor(clause.Right)
		if !ok {
			return nil, false
		}
		t.conditions = append(t.conditions, connector.JoinCondition{
			Operator: connector.Equal,
			Left:     lcol,
			Right:    rcol,
		})
		t.leftAssignments[lcol] = clause.Left
		t.rightAssignments[rcol] = clause.Right
	}
	if j.Filter() != nil {
		cond, lsym, rsym, ok := translateComparison(j.Filter(), left, right)
		if !ok {
			return nil, false
		}
		t.conditions = append(t.conditions, cond)
		t.leftAssignments[cond.Left] = lsym
		t.rightAssignments[cond.Right] = rsym
	}
	return t, true
}

// translateComparison accepts exactly one shape: a comparison between two
// bare column references, one per side, in either order.
func translateComparison(filter ast.Expr, left, right *TableScanPlan) (connector.JoinCondition, string, string, bool) {
	none := connector.JoinCondition{}
	be, ok := filter.(*ast.BinaryExpr)
	if !ok || !be.OP.IsComparison() {
		return none, "", "", false
	}
	op, ok := conditionOperator(be.OP)
	if !ok {
		return none, "", "", false
	}
	lref, ok := be.LHS.(*ast.FieldRef)
	if !ok {
		return none, "", "", false
	}
	rref, ok := be.RHS.(*ast.FieldRef)
	if !ok {
		return none, "", "", false
	}
	if lcol, ok := left.columnFor(lref.Name); ok {
		rcol, ok := right.columnFor(rref.Name)
		if !ok {
			return none, "", "", false
		}
		return connector.JoinCondition{Operator: op, Left: lcol, Right: rcol}, lref.Name, rref.Name, true
	}
	// reversed operand order: flip the operator so Left still refers to the
	// left table
	lcol, ok := left.columnFor(rref.Name)
	if !ok {
		return none, "", "", false
	}
	rcol, ok := right.columnFor(lref.Name)
	if !ok {
		return none, "", "", false
	}
	return connector.JoinCondition{Operator: flip(op), Left: lcol, Right: rcol}, rref.Name, lref.Name, true
}

func conditionOperator(tok ast.Token) (connector.JoinConditionOperator, bool) {
	switch tok {
	case ast.EQ:
		return connector.Equal, true
	case ast.NEQ:
		return connector.NotEqual, true
	case ast.LT:
		return connector.LessThan, true
	case ast.LTE:
		return connector.LessThanOrEqual, true
	case ast.GT:
		return connector.GreaterThan, true
	case ast.GTE:
		return connector.GreaterThanOrEqual, true
	case ast.DISTINCT:
		return connector.IsDistinctFrom, true
	}
	return 0, false
}

func flip(op connector.JoinConditionOperator) connector.JoinConditionOperator {
	switch op {
	case connector.LessThan:
		return connector.GreaterThan
	case connector.LessThanOrEqual:
		return connector.GreaterThanOrEqual
	case connector.GreaterThan:
		return connector.LessThan
	case connector.GreaterThanOrEqual:
		return connector.LessThanOrEqual
	}
	return op
}
