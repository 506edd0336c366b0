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

package ast

type Node interface {
	node()
}

type Expr interface {
	Node
	expr()
}

type Literal interface {
	Expr
	literal()
}

type BooleanLiteral struct {
	Val bool
}

type IntegerLiteral struct {
	Val int
}

type NumberLiteral struct {
	Val float64
}

type StringLiteral struct {
	Val string
}

func (bl *BooleanLiteral) expr()    {}
func (bl *BooleanLiteral) literal() {}
func (bl *BooleanLiteral) node()    {}

func (il *IntegerLiteral) expr()    {}
func (il *IntegerLiteral) literal() {}
func (il *IntegerLiteral) node()    {}

func (nl *NumberLiteral) expr()    {}
func (nl *NumberLiteral) literal() {}
func (nl *NumberLiteral) node()    {}

func (sl *StringLiteral) expr()    {}
func (sl *StringLiteral) literal() {}
func (sl *StringLiteral) node()    {}

type ParenExpr struct {
	Expr Expr
}

func (pe *ParenExpr) expr() {}
func (pe *ParenExpr) node() {}

type BinaryExpr struct {
	OP  Token
	LHS Expr
	RHS Expr
}

func (be *BinaryExpr) expr() {}
func (be *BinaryExpr) node() {}

// StreamName is the name of the relation a field reference is bound to.
type StreamName string

func (sn *StreamName) node() {}

// FieldRef is a column reference. The analyzer binds the stream name before
// planning, so planner code may assume it is set for SQL fields.
type FieldRef struct {
	StreamName StreamName
	Name       string
}

func (fr *FieldRef) expr() {}
func (fr *FieldRef) node() {}
