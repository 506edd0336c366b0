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
	"context"
	"fmt"
	"math"

	"github.com/kyanitedb/kyanite/internal/conf"
	"github.com/kyanitedb/kyanite/pkg/connector"
	"github.com/kyanitedb/kyanite/pkg/constraint"
	"github.com/kyanitedb/kyanite/pkg/errorx"
)

// joinPushdown rewrites a join between two scans of the same connector into
// a single scan over a connector-synthesized relation, when the connector
// accepts the delegation. Everything short of a connector malfunction makes
// the rule silently not fire; the plan stays correct either way.
type joinPushdown struct {
	connectors *connector.Registry
	estimator  CardinalityEstimator
}

func newJoinPushdownRule(connectors *connector.Registry, estimator CardinalityEstimator) *joinPushdown {
	return &joinPushdown{
		connectors: connectors,
		estimator:  estimator,
	}
}

func (r *joinPushdown) name() string {
	return "joinIntoScan"
}

func (r *joinPushdown) optimize(ctx context.Context, p LogicalPlan, session *connector.Session, options *conf.Rewrite) (LogicalPlan, error) {
	children := p.Children()
	for i, child := range children {
		newChild, err := r.optimize(ctx, child, session, options)
		if err != nil {
			return nil, err
		}
		children[i] = newChild
	}
	p.SetChildren(children)
	j, ok := p.(*JoinPlan)
	if !ok {
		return p, nil
	}
	scan, err := r.apply(ctx, j, session, options)
	if err != nil {
		return nil, err
	}
	if scan == nil {
		return p, nil
	}
	return scan, nil
}

// apply runs the pushdown attempt for one join node. A nil, nil return means
// the rule does not fire and the join is kept.
func (r *joinPushdown) apply(ctx context.Context, j *JoinPlan, session *connector.Session, options *conf.Rewrite) (*TableScanPlan, error) {
	left, ok := j.Left().(*TableScanPlan)
	if !ok {
		return nil, nil
	}
	right, ok := j.Right().(*TableScanPlan)
	if !ok {
		return nil, nil
	}
	if left.connectorID != right.connectorID {
		return nil, nil
	}
	if !options.PushdownIntoConnectors {
		return nil, nil
	}
	policy := options.PolicyFor(left.connectorID)
	if policy == conf.JoinPushdownDisabled {
		return nil, nil
	}
	if j.isCrossJoin() {
		return nil, nil
	}
	translated, ok := translateJoinConditions(j, left, right)
	if !ok {
		return nil, nil
	}
	if policy == conf.JoinPushdownAutomatic && !r.cardinalityAllows(j, left, right, options.JoinPushdownAutomaticMaxRatio) {
		conf.Log.Debugf("skip join pushdown into %s: automatic policy denied by cardinality", left.connectorID)
		return nil, nil
	}
	conn, ok := r.connectors.Lookup(left.connectorID)
	if !ok {
		return nil, nil
	}
	result, err := conn.ApplyJoin(
		ctx,
		session,
		j.joinType,
		left.table,
		right.table,
		translated.conditions,
		translated.leftAssignments,
		translated.rightAssignments,
	)
	if err != nil {
		// negotiation failure is a connector malfunction, not a decline
		return nil, err
	}
	if result == nil {
		conf.Log.Debugf("connector %s declined join pushdown", left.connectorID)
		return nil, nil
	}
	if err := validateColumnMappings(left, right, result); err != nil {
		return nil, err
	}

	leftPreserved, rightPreserved := preservedSides(j.joinType)
	merged := constraint.MergeForOuterJoin(
		left.enforced,
		right.enforced,
		result.LeftColumnMapping,
		result.RightColumnMapping,
		leftPreserved,
		rightPreserved,
	)

	outputs := make([]OutputField, 0, len(left.outputs)+len(right.outputs))
	for _, f := range left.outputs {
		outputs = append(outputs, OutputField{Symbol: f.Symbol, Column: result.LeftColumnMapping[f.Column]})
	}
	for _, f := range right.outputs {
		outputs = append(outputs, OutputField{Symbol: f.Symbol, Column: result.RightColumnMapping[f.Column]})
	}
	conf.Log.Debugf("pushed %s join into connector %s", j.joinType, left.connectorID)
	return NewTableScan(left.connectorID, result.Table, outputs, merged), nil
}

// cardinalityAllows implements the automatic policy: all three estimates
// must be known and the join must not blow up beyond its smaller input times
// the configured ratio.
func (r *joinPushdown) cardinalityAllows(j *JoinPlan, left, right *TableScanPlan, maxRatio float64) bool {
	if r.estimator == nil {
		return false
	}
	leftRows, ok := r.estimator.EstimateRowCount(left)
	if !ok {
		return false
	}
	rightRows, ok := r.estimator.EstimateRowCount(right)
	if !ok {
		return false
	}
	joinRows, ok := r.estimator.EstimateRowCount(j)
	if !ok {
		return false
	}
	return joinRows <= math.Min(leftRows, rightRows)*maxRatio
}

// validateColumnMappings enforces the negotiation contract: each returned
// mapping must cover every visible output column of its side. A partial
// mapping is a connector bug and must never degrade into a partial pushdown.
func validateColumnMappings(left, right *TableScanPlan, result *connector.JoinApplicationResult) error {
	var missing []string
	for _, f := range left.outputs {
		if _, ok := result.LeftColumnMapping[f.Column]; !ok {
			missing = append(missing, fmt.Sprintf("left %s (%v)", f.Symbol, f.Column))
		}
	}
	for _, f := range right.outputs {
		if _, ok := result.RightColumnMapping[f.Column]; !ok {
			missing = append(missing, fmt.Sprintf("right %s (%v)", f.Symbol, f.Column))
		}
	}
	if len(missing) > 0 {
		return errorx.NewContractViolation(fmt.Sprintf(
			"connector %s: column handle mappings do not match old column handles, missing %v",
			left.connectorID, missing))
	}
	return nil
}

// preservedSides reports which join inputs never get null-padded rows.
func preservedSides(t connector.JoinType) (leftPreserved, rightPreserved bool) {
	switch t {
	case connector.InnerJoin:
		return true, true
	case connector.LeftJoin:
		return true, false
	case connector.RightJoin:
		return false, true
	case connector.FullJoin:
		return false, false
	}
	return false, false
}
