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

// CardinalityEstimator guesses output row counts of plan nodes. An unknown
// estimate is reported through the second return, never as zero rows.
type CardinalityEstimator interface {
	EstimateRowCount(p LogicalPlan) (rows float64, known bool)
}

// StaticEstimator serves fixed per-node estimates. Nodes without an entry
// are unknown.
type StaticEstimator struct {
	rows map[LogicalPlan]float64
}

func NewStaticEstimator() *StaticEstimator {
	return &StaticEstimator{rows: make(map[LogicalPlan]float64)}
}

func (e *StaticEstimator) Set(p LogicalPlan, rows float64) *StaticEstimator {
	e.rows[p] = rows
	return e
}

func (e *StaticEstimator) EstimateRowCount(p LogicalPlan) (float64, bool) {
	rows, ok := e.rows[p]
	return rows, ok
}
