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
	"github.com/kyanitedb/kyanite/pkg/connector"
	"github.com/kyanitedb/kyanite/pkg/constraint"
)

// OutputField binds one output symbol of a scan to the connector column it
// reads.
type OutputField struct {
	Symbol string
	Column connector.ColumnHandle
}

// TableScanPlan reads one connector table. It is immutable once built;
// rewrites replace the node wholesale instead of mutating it.
type TableScanPlan struct {
	baseLogicalPlan
	connectorID string
	table       connector.TableHandle
	outputs     []OutputField
	enforced    constraint.Constraint
}

func (p TableScanPlan) Init() *TableScanPlan {
	p.baseLogicalPlan.self = &p
	return &p
}

func NewTableScan(connectorID string, table connector.TableHandle, outputs []OutputField, enforced constraint.Constraint) *TableScanPlan {
	return TableScanPlan{
		connectorID: connectorID,
		table:       table,
		outputs:     outputs,
		enforced:    enforced,
	}.Init()
}

func (p *TableScanPlan) ConnectorID() string {
	return p.connectorID
}

func (p *TableScanPlan) Table() connector.TableHandle {
	return p.table
}

func (p *TableScanPlan) Outputs() []OutputField {
	return p.outputs
}

func (p *TableScanPlan) EnforcedConstraint() constraint.Constraint {
	return p.enforced
}

// columnFor resolves an output symbol to its connector column handle.
func (p *TableScanPlan) columnFor(symbol string) (connector.ColumnHandle, bool) {
	for _, f := range p.outputs {
		if f.Symbol == symbol {
			return f.Column, true
		}
	}
	return nil, false
}
