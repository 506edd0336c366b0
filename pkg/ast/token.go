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

type Token int

const (
	ILLEGAL Token = iota
	EOF

	operatorBeg
	AND // AND
	OR  // OR

	ADD // +
	SUB // -
	MUL // *
	DIV // /

	EQ         // =
	NEQ        // !=
	LT         // <
	LTE        // <=
	GT         // >
	GTE        // >=
	NULLSAFEEQ // IS NOT DISTINCT FROM
	DISTINCT   // IS DISTINCT FROM
	operatorEnd
)

var Tokens = []string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	AND: "AND",
	OR:  "OR",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	DIV: "/",

	EQ:         "=",
	NEQ:        "!=",
	LT:         "<",
	LTE:        "<=",
	GT:         ">",
	GTE:        ">=",
	NULLSAFEEQ: "IS NOT DISTINCT FROM",
	DISTINCT:   "IS DISTINCT FROM",
}

func (tok Token) String() string {
	if tok >= 0 && int(tok) < len(Tokens) {
		return Tokens[tok]
	}
	return "ILLEGAL"
}

func (tok Token) IsOperator() bool {
	return tok > operatorBeg && tok < operatorEnd
}

// IsComparison reports whether the token is a binary comparison between two
// values, the only operator class a connector join condition can carry.
func (tok Token) IsComparison() bool {
	switch tok {
	case EQ, NEQ, LT, LTE, GT, GTE, DISTINCT:
		return true
	}
	return false
}
