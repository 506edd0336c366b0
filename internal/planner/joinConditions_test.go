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
	"fmt"
	"reflect"
	"testing"

	"github.com/gdexlab/go-render/render"

	"github.com/kyanitedb/kyanite/pkg/ast"
	"github.com/kyanitedb/kyanite/pkg/connector"
	"github.com/kyanitedb/kyanite/pkg/constraint"
	"github.com/kyanitedb/kyanite/pkg/mock"
)

var (
	condTableA = mock.TableHandle{Schema: "test_schema", Name: "test_table_a"}
	condTableB = mock.TableHandle{Schema: "test_schema", Name: "test_table_b"}

	condColA1 = mock.ColumnHandle{Name: "a1"}
	condColA2 = mock.ColumnHandle{Name: "a2"}
	condColB1 = mock.ColumnHandle{Name: "b1"}
)

func condScans() (*TableScanPlan, *TableScanPlan) {
	left := NewTableScan("mock", condTableA, []OutputField{
		{Symbol: "a1", Column: condColA1},
		{Symbol: "a2", Column: condColA2},
	}, constraint.All())
	right := NewTableScan("mock", condTableB, []OutputField{
		{Symbol: "b1", Column: condColB1},
	}, constraint.All())
	return left, right
}

func fieldRef(stream, name string) *ast.FieldRef {
	return &ast.FieldRef{StreamName: ast.StreamName(stream), Name: name}
}

func TestTranslateJoinConditions(t *testing.T) {
	left, right := condScans()
	tests := []struct {
		clauses []EquiJoinClause
		filter  ast.Expr
		ok      bool
		res     *translatedJoin
	}{
		{ // 0 single equi clause
			clauses: []EquiJoinClause{{Left: "a1", Right: "b1"}},
			ok:      true,
			res: &translatedJoin{
				conditions: []connector.JoinCondition{
					{Operator: connector.Equal, Left: condColA1, Right: condColB1},
				},
				leftAssignments:  map[connector.ColumnHandle]string{condColA1: "a1"},
				rightAssignments: map[connector.ColumnHandle]string{condColB1: "b1"},
			},
		},
		{ // 1 equi clause plus comparison filter
			clauses: []EquiJoinClause{{Left: "a1", Right: "b1"}},
			filter: &ast.BinaryExpr{
				OP:  ast.GT,
				LHS: fieldRef("test_table_a", "a2"),
				RHS: fieldRef("test_table_b", "b1"),
			},
			ok: true,
			res: &translatedJoin{
				conditions: []connector.JoinCondition{
					{Operator: connector.Equal, Left: condColA1, Right: condColB1},
					{Operator: connector.GreaterThan, Left: condColA2, Right: condColB1},
				},
				leftAssignments:  map[connector.ColumnHandle]string{condColA1: "a1", condColA2: "a2"},
				rightAssignments: map[connector.ColumnHandle]string{condColB1: "b1"},
			},
		},
		{ // 2 reversed operands flip the operator
			filter: &ast.BinaryExpr{
				OP:  ast.LT,
				LHS: fieldRef("test_table_b", "b1"),
				RHS: fieldRef("test_table_a", "a1"),
			},
			ok: true,
			res: &translatedJoin{
				conditions: []connector.JoinCondition{
					{Operator: connector.GreaterThan, Left: condColA1, Right: condColB1},
				},
				leftAssignments:  map[connector.ColumnHandle]string{condColA1: "a1"},
				rightAssignments: map[connector.ColumnHandle]string{condColB1: "b1"},
			},
		},
		{ // 3 IS DISTINCT FROM keeps its operator in either order
			filter: &ast.BinaryExpr{
				OP:  ast.DISTINCT,
				LHS: fieldRef("test_table_b", "b1"),
				RHS: fieldRef("test_table_a", "a1"),
			},
			ok: true,
			res: &translatedJoin{
				conditions: []connector.JoinCondition{
					{Operator: connector.IsDistinctFrom, Left: condColA1, Right: condColB1},
				},
				leftAssignments:  map[connector.ColumnHandle]string{condColA1: "a1"},
				rightAssignments: map[connector.ColumnHandle]string{condColB1: "b1"},
			},
		},
		{ // 4 arithmetic on one operand is untranslatable
			filter: &ast.BinaryExpr{
				OP: ast.GT,
				LHS: &ast.BinaryExpr{
					OP:  ast.MUL,
					LHS: &ast.IntegerLiteral{Val: 44},
					RHS: fieldRef("test_table_a", "a1"),
				},
				RHS: fieldRef("test_table_b", "b1"),
			},
			ok: false,
		},
		{ // 5 comparison against a constant is untranslatable
			filter: &ast.BinaryExpr{
				OP:  ast.GT,
				LHS: fieldRef("test_table_a", "a1"),
				RHS: &ast.IntegerLiteral{Val: 44},
			},
			ok: false,
		},
		{ // 6 both columns on one side is untranslatable
			filter: &ast.BinaryExpr{
				OP:  ast.LT,
				LHS: fieldRef("test_table_a", "a1"),
				RHS: fieldRef("test_table_a", "a2"),
			},
			ok: false,
		},
		{ // 7 conjunction of comparisons is untranslatable
			filter: &ast.BinaryExpr{
				OP: ast.AND,
				LHS: &ast.BinaryExpr{
					OP:  ast.GT,
					LHS: fieldRef("test_table_a", "a1"),
					RHS: fieldRef("test_table_b", "b1"),
				},
				RHS: &ast.BinaryExpr{
					OP:  ast.LT,
					LHS: fieldRef("test_table_a", "a2"),
					RHS: fieldRef("test_table_b", "b1"),
				},
			},
			ok: false,
		},
		{ // 8 null-safe equality has no connector operator
			filter: &ast.BinaryExpr{
				OP:  ast.NULLSAFEEQ,
				LHS: fieldRef("test_table_a", "a1"),
				RHS: fieldRef("test_table_b", "b1"),
			},
			ok: false,
		},
		{ // 9 equi clause with unknown symbol is untranslatable
			clauses: []EquiJoinClause{{Left: "nope", Right: "b1"}},
			ok:      false,
		},
	}
	fmt.Printf("The test bucket size is %d.\n\n", len(tests))
	for i, tt := range tests {
		j := NewJoin(connector.InnerJoin, nil, nil, tt.clauses, tt.filter)
		res, ok := translateJoinConditions(j, left, right)
		if ok != tt.ok {
			t.Errorf("%d. translatable mismatch: exp=%v got=%v", i, tt.ok, ok)
			continue
		}
		if tt.ok && !reflect.DeepEqual(tt.res, res) {
			t.Errorf("%d. result mismatch:\n\nexp=%s\n\ngot=%s\n\n", i, render.AsCode(tt.res), render.AsCode(res))
		}
	}
}

func TestComparisonOperatorMapping(t *testing.T) {
	left, right := condScans()
	cases := map[ast.Token]connector.JoinConditionOperator{
		ast.EQ:       connector.Equal,
		ast.NEQ:      connector.NotEqual,
		ast.LT:       connector.LessThan,
		ast.LTE:      connector.LessThanOrEqual,
		ast.GT:       connector.GreaterThan,
		ast.GTE:      connector.GreaterThanOrEqual,
		ast.DISTINCT: connector.IsDistinctFrom,
	}
	for tok, want := range cases {
		filter := &ast.BinaryExpr{
			OP:  tok,
			LHS: fieldRef("test_table_a", "a1"),
			RHS: fieldRef("test_table_b", "b1"),
		}
		j := NewJoin(connector.InnerJoin, nil, nil, nil, filter)
		res, ok := translateJoinConditions(j, left, right)
		if !ok {
			t.Errorf("%s: expected translatable", tok)
			continue
		}
		if len(res.conditions) != 1 || res.conditions[0].Operator != want {
			t.Errorf("%s: exp operator %s got %+v", tok, want, res.conditions)
		}
	}
}
