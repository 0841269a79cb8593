// Copyright 2020-2021 Dolthub, Inc.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sopel39/predicatepushdown/sql"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	require := require.New(t)

	cfg, err := Load("")
	require.NoError(err)
	require.Equal(sql.DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "pushdown.toml")
	contents := "[session]\nenable_dynamic_filtering = true\npredicate_pushdown_use_table_properties = true\n"
	require.NoError(os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(err)
	require.True(cfg.EnableDynamicFiltering)
	require.True(cfg.PredicatePushdownUseTableProperties)
}

func TestLoadMissingFile(t *testing.T) {
	require := require.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(err)
}
