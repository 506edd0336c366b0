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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyFor(t *testing.T) {
	r := &Rewrite{
		DefaultJoinPushdown: JoinPushdownEager,
		JoinPushdown: map[string]JoinPushdownPolicy{
			"kafka": JoinPushdownDisabled,
		},
	}
	assert.Equal(t, JoinPushdownDisabled, r.PolicyFor("kafka"))
	assert.Equal(t, JoinPushdownEager, r.PolicyFor("postgres"))

	r.DefaultJoinPushdown = ""
	assert.Equal(t, JoinPushdownAutomatic, r.PolicyFor("postgres"))
}

func TestRewriteValidate(t *testing.T) {
	r := DefaultRewrite()
	require.NoError(t, r.Validate())

	r.JoinPushdown = map[string]JoinPushdownPolicy{"kafka": "sometimes"}
	assert.Error(t, r.Validate())

	r = DefaultRewrite()
	r.JoinPushdownAutomaticMaxRatio = 0
	assert.Error(t, r.Validate())
}

func TestLoadRewrite(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "rewrite.yaml")
	contents := `
pushdownIntoConnectors: false
defaultJoinPushdown: eager
joinPushdown:
  kafka: disabled
joinPushdownAutomaticMaxRatio: 2.5
`
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o644))

	r, err := LoadRewrite(p)
	require.NoError(t, err)
	assert.False(t, r.PushdownIntoConnectors)
	assert.Equal(t, JoinPushdownEager, r.DefaultJoinPushdown)
	assert.Equal(t, JoinPushdownDisabled, r.PolicyFor("kafka"))
	assert.InDelta(t, 2.5, r.JoinPushdownAutomaticMaxRatio, 1e-9)
}

func TestLoadRewriteDefaults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "rewrite.yaml")
	require.NoError(t, os.WriteFile(p, []byte("defaultJoinPushdown: automatic\n"), 0o644))

	r, err := LoadRewrite(p)
	require.NoError(t, err)
	assert.True(t, r.PushdownIntoConnectors)
	assert.InDelta(t, 4.0/3.0, r.JoinPushdownAutomaticMaxRatio, 1e-9)
}

func TestLoadRewriteEnvOverride(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "rewrite.yaml")
	require.NoError(t, os.WriteFile(p, []byte("pushdownIntoConnectors: true\n"), 0o644))

	t.Setenv("KYANITE_REWRITE__PUSHDOWNINTOCONNECTORS", "false")
	r, err := LoadRewrite(p)
	require.NoError(t, err)
	assert.False(t, r.PushdownIntoConnectors)
}

func TestLoadRewriteInvalidPolicy(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "rewrite.yaml")
	require.NoError(t, os.WriteFile(p, []byte("defaultJoinPushdown: whenever\n"), 0o644))

	_, err := LoadRewrite(p)
	assert.Error(t, err)
}
