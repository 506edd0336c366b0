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

package conf

import (
	"fmt"
)

// JoinPushdownPolicy controls when a join over one connector's tables may be
// delegated to that connector.
type JoinPushdownPolicy string

const (
	// JoinPushdownDisabled never delegates.
	JoinPushdownDisabled JoinPushdownPolicy = "disabled"
	// JoinPushdownEager delegates whenever the connector accepts, ignoring
	// cardinality estimates.
	JoinPushdownEager JoinPushdownPolicy = "eager"
	// JoinPushdownAutomatic delegates only when row-count estimates show the
	// joined relation is not much larger than its smaller input.
	JoinPushdownAutomatic JoinPushdownPolicy = "automatic"
)

func (p JoinPushdownPolicy) Validate() error {
	switch p {
	case JoinPushdownDisabled, JoinPushdownEager, JoinPushdownAutomatic:
		return nil
	}
	return fmt.Errorf("invalid join pushdown policy %q", string(p))
}

// Rewrite is the immutable plan-rewrite configuration handed to optimizer
// rules. Rules read it, never write it, so one value can serve concurrent
// rewrite passes.
type Rewrite struct {
	// PushdownIntoConnectors gates pushdown into every connector regardless
	// of per-catalog policy.
	PushdownIntoConnectors bool `json:"pushdownIntoConnectors" yaml:"pushdownIntoConnectors"`
	// DefaultJoinPushdown applies to catalogs without an explicit policy.
	DefaultJoinPushdown JoinPushdownPolicy `json:"defaultJoinPushdown" yaml:"defaultJoinPushdown"`
	// JoinPushdown overrides the policy per catalog.
	JoinPushdown map[string]JoinPushdownPolicy `json:"joinPushdown" yaml:"joinPushdown"`
	// JoinPushdownAutomaticMaxRatio bounds the automatic policy: pushdown is
	// taken only when estimated join rows do not exceed the smaller input's
	// rows times this ratio.
	JoinPushdownAutomaticMaxRatio float64 `json:"joinPushdownAutomaticMaxRatio" yaml:"joinPushdownAutomaticMaxRatio"`
}

func DefaultRewrite() *Rewrite {
	return &Rewrite{
		PushdownIntoConnectors:        true,
		DefaultJoinPushdown:           JoinPushdownAutomatic,
		JoinPushdownAutomaticMaxRatio: 4.0 / 3.0,
	}
}

// PolicyFor resolves the effective join pushdown policy for one catalog.
func (r *Rewrite) PolicyFor(catalog string) JoinPushdownPolicy {
	if p, ok := r.JoinPushdown[catalog]; ok {
		return p
	}
	if r.DefaultJoinPushdown != "" {
		return r.DefaultJoinPushdown
	}
	return JoinPushdownAutomatic
}

func (r *Rewrite) Validate() error {
	if r.DefaultJoinPushdown != "" {
		if err := r.DefaultJoinPushdown.Validate(); err != nil {
			return err
		}
	}
	for catalog, p := range r.JoinPushdown {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("catalog %s: %v", catalog, err)
		}
	}
	if r.JoinPushdownAutomaticMaxRatio <= 0 {
		return fmt.Errorf("joinPushdownAutomaticMaxRatio must be positive, got %v", r.JoinPushdownAutomaticMaxRatio)
	}
	return nil
}
