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

// EquiJoinClause equates one output symbol of the left input with one of the
// right.
type EquiJoinClause struct {
	Left  string
	Right string
}

// JoinPlan joins its two children. A join with no equi clauses and no
// residual filter is a cross join.
type JoinPlan struct {
	baseLogicalPlan
	joinType connector.JoinType
	clauses  []EquiJoinClause
	// filter is the residual join condition that is not an equi clause, nil
	// when absent
	filter ast.Expr
}

func (p JoinPlan) Init() *JoinPlan {
	p.baseLogicalPlan.self = &p
	return &p
}

func NewJoin(joinType connector.JoinType, left, right LogicalPlan, clauses []EquiJoinClause, filter ast.Expr) *JoinPlan {
	p := JoinPlan{
		joinType: joinType,
		clauses:  clauses,
		filter:   filter,
	}.Init()
	p.SetChildren([]LogicalPlan{left, right})
	return p
}

func (p *JoinPlan) JoinType() connector.JoinType {
	return p.joinType
}

func (p *JoinPlan) Clauses() []EquiJoinClause {
	return p.clauses
}

func (p *JoinPlan) Filter() ast.Expr {
	return p.filter
}

func (p *JoinPlan) Left() LogicalPlan {
	return p.children[0]
}

func (p *JoinPlan) Right() LogicalPlan {
	return p.children[1]
}

func (p *JoinPlan) isCrossJoin() bool {
	return len(p.clauses) == 0 && p.filter == nil
}
