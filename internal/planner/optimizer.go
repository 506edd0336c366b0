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

	"github.com/kyanitedb/kyanite/internal/conf"
	"github.com/kyanitedb/kyanite/pkg/connector"
)

type logicalOptRule interface {
	name() string
	optimize(ctx context.Context, p LogicalPlan, session *connector.Session, options *conf.Rewrite) (LogicalPlan, error)
}

// Optimizer applies the connector rewrite rules. It holds only immutable
// wiring (the connector registry and the estimator), so one instance may
// optimize disjoint plan subtrees concurrently.
type Optimizer struct {
	rules []logicalOptRule
}

func NewOptimizer(connectors *connector.Registry, estimator CardinalityEstimator) *Optimizer {
	return &Optimizer{
		rules: []logicalOptRule{
			newJoinPushdownRule(connectors, estimator),
		},
	}
}

// Optimize runs each rule over the plan once. Session and options are
// read-only inputs; the plan subtree is the only thing rewritten.
func (o *Optimizer) Optimize(ctx context.Context, p LogicalPlan, session *connector.Session, options *conf.Rewrite) (LogicalPlan, error) {
	var err error
	for _, rule := range o.rules {
		p, err = rule.optimize(ctx, p, session, options)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}
