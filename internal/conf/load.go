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
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const envPrefix = "KYANITE_REWRITE"

// LoadRewrite reads the rewrite options from a yaml file, applies
// environment overrides of the form KYANITE_REWRITE__<FIELD>, and validates
// the result. Missing keys keep their defaults.
func LoadRewrite(path string) (*Rewrite, error) {
	r := DefaultRewrite()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	configMap := make(map[string]interface{})
	if err := yaml.Unmarshal(b, &configMap); err != nil {
		return nil, err
	}
	applyEnvOverrides(configMap, os.Environ())
	if err := mapstructure.WeakDecode(configMap, r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// applyEnvOverrides merges KYANITE_REWRITE__key=value pairs over the file
// contents. Keys are matched case-insensitively; WeakDecode handles the
// string-to-typed conversion.
func applyEnvOverrides(configMap map[string]interface{}, environ []string) {
	prefix := envPrefix + "__"
	for _, e := range environ {
		if !strings.HasPrefix(e, prefix) {
			continue
		}
		kv := strings.SplitN(strings.TrimPrefix(e, prefix), "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			continue
		}
		key := strings.ToLower(kv[0])
		for existing := range configMap {
			if strings.ToLower(existing) == key {
				key = existing
				break
			}
		}
		configMap[key] = kv[1]
	}
}
