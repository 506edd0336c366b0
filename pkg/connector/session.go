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

package connector

import (
	"github.com/google/uuid"
)

// Session is the immutable per-query view handed to connectors during
// negotiation. It carries identity only; rewrite policy travels separately so
// rules stay pure functions of their explicit inputs.
type Session struct {
	QueryID string
	Catalog string
}

func NewSession(catalog string) *Session {
	return &Session{
		QueryID: uuid.NewString(),
		Catalog: catalog,
	}
}
