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

// Package mock provides scriptable doubles for the connector boundary, used
// by planner and engine tests.
package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/kyanitedb/kyanite/pkg/connector"
)

// TableHandle is a comparable stand-in for a connector table handle.
type TableHandle struct {
	Schema string
	Name   string
}

// ColumnHandle is a comparable stand-in for a connector column handle.
type ColumnHandle struct {
	Name string
}

// NewTableHandle returns a handle with a unique name, for tests that only
// need distinct identity.
func NewTableHandle(schema string) TableHandle {
	return TableHandle{Schema: schema, Name: uuid.NewString()}
}

// ApplyJoinFunc is the scripted negotiation behavior of a Connector.
type ApplyJoinFunc func(
	ctx context.Context,
	session *connector.Session,
	joinType connector.JoinType,
	left, right connector.TableHandle,
	conditions []connector.JoinCondition,
	leftAssignments, rightAssignments map[connector.ColumnHandle]string,
) (*connector.JoinApplicationResult, error)

// Connector is a connector whose negotiation behavior is supplied by the
// test. A nil ApplyJoin declines every request. Calls are counted so tests
// can assert the negotiation was, or was not, reached.
type Connector struct {
	ApplyJoin      ApplyJoinFunc
	ApplyJoinCalls int
}

var _ connector.Connector = (*declined)(nil)

type declined struct{}

func (*declined) ApplyJoin(
	_ context.Context,
	_ *connector.Session,
	_ connector.JoinType,
	_, _ connector.TableHandle,
	_ []connector.JoinCondition,
	_, _ map[connector.ColumnHandle]string,
) (*connector.JoinApplicationResult, error) {
	return nil, nil
}

// Declining returns a connector that declines every negotiation.
func Declining() connector.Connector {
	return &declined{}
}

type scripted struct {
	c *Connector
}

// AsConnector adapts the scripted mock to the connector interface.
func (c *Connector) AsConnector() connector.Connector {
	return &scripted{c: c}
}

func (s *scripted) ApplyJoin(
	ctx context.Context,
	session *connector.Session,
	joinType connector.JoinType,
	left, right connector.TableHandle,
	conditions []connector.JoinCondition,
	leftAssignments, rightAssignments map[connector.ColumnHandle]string,
) (*connector.JoinApplicationResult, error) {
	s.c.ApplyJoinCalls++
	if s.c.ApplyJoin == nil {
		return nil, nil
	}
	return s.c.ApplyJoin(ctx, session, joinType, left, right, conditions, leftAssignments, rightAssignments)
}
