/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissingURL = errors.New("url is required")

type testEndpoint struct {
	URL      string `json:"url" toml:"url" yaml:"url"`
	Password string `json:"password" toml:"password" yaml:"password" sensitive:"true"`
}

type testConfig struct {
	Interval models.Duration `json:"interval" toml:"interval" yaml:"interval"`
	DryRun   bool            `json:"dry_run" toml:"dry_run" yaml:"dry_run"`
	Groups   []string        `json:"groups" toml:"groups" yaml:"groups"`
	Workers  int             `json:"workers" toml:"workers" yaml:"workers"`
	FNT      testEndpoint    `json:"fnt" toml:"fnt" yaml:"fnt"`
	Zabbix   *testEndpoint   `json:"zabbix" toml:"zabbix" yaml:"zabbix"`
}

func (c *testConfig) Validate() error {
	if c.FNT.URL == "" {
		return errMissingURL
	}

	if c.Workers == 0 {
		c.Workers = 1
	}

	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFileConfigLoaderFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    "vmsync.json",
			content: `{"interval":"15m","dry_run":true,"groups":["vms"],"fnt":{"url":"http://fnt"}}`,
		},
		{
			name: "toml",
			file: "vmsync.toml",
			content: `interval = "15m"
dry_run = true
groups = ["vms"]

[fnt]
url = "http://fnt"
`,
		},
		{
			name: "yaml",
			file: "vmsync.yaml",
			content: `interval: 15m
dry_run: true
groups: [vms]
fnt:
  url: http://fnt
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			var cfg testConfig
			require.NoError(t, NewFileConfigLoader(logger.NewTestLogger()).Load(context.Background(), path, &cfg))

			assert.Equal(t, 15*time.Minute, time.Duration(cfg.Interval))
			assert.True(t, cfg.DryRun)
			assert.Equal(t, []string{"vms"}, cfg.Groups)
			assert.Equal(t, "http://fnt", cfg.FNT.URL)
		})
	}
}

func TestFileConfigLoaderErrors(t *testing.T) {
	loader := NewFileConfigLoader(nil)

	var cfg testConfig

	err := loader.Load(context.Background(), writeFile(t, "vmsync.ini", "x=1"), &cfg)
	require.ErrorIs(t, err, errUnsupportedFormat)

	err = loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"), &cfg)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = loader.Load(context.Background(), writeFile(t, "bad.json", "{"), &cfg)
	require.Error(t, err)
}

func TestEnvConfigLoader(t *testing.T) {
	t.Setenv("TEST_INTERVAL", "5m")
	t.Setenv("TEST_DRY_RUN", "true")
	t.Setenv("TEST_GROUPS", "a, b")
	t.Setenv("TEST_WORKERS", "4")
	t.Setenv("TEST_FNT_URL", "http://fnt")
	t.Setenv("TEST_ZABBIX_URL", "http://zabbix")

	var cfg testConfig
	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), "TEST_").Load(context.Background(), "", &cfg))

	assert.Equal(t, 5*time.Minute, time.Duration(cfg.Interval))
	assert.True(t, cfg.DryRun)
	assert.Equal(t, []string{"a", "b"}, cfg.Groups)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "http://fnt", cfg.FNT.URL)
	require.NotNil(t, cfg.Zabbix)
	assert.Equal(t, "http://zabbix", cfg.Zabbix.URL)
}

func TestEnvConfigLoaderJSON(t *testing.T) {
	t.Setenv("TEST_CONFIG_JSON", `{"fnt":{"url":"http://json"},"interval":"1m"}`)

	var cfg testConfig
	require.NoError(t, NewEnvConfigLoader(nil, "TEST_").Load(context.Background(), "", &cfg))
	assert.Equal(t, "http://json", cfg.FNT.URL)
	assert.Equal(t, time.Minute, time.Duration(cfg.Interval))
}

func TestEnvConfigLoaderRejectsNonPointer(t *testing.T) {
	loader := NewEnvConfigLoader(nil, "TEST_")

	require.ErrorIs(t, loader.Load(context.Background(), "", testConfig{}), ErrDstMustBeNonNilPointer)

	s := "x"
	require.ErrorIs(t, loader.Load(context.Background(), "", &s), ErrDstMustBePointerToStruct)
}

func TestLoadAndValidate(t *testing.T) {
	t.Run("file source validates", func(t *testing.T) {
		t.Setenv("CONFIG_SOURCE", "")

		var cfg testConfig

		path := writeFile(t, "ok.json", `{"fnt":{"url":"http://fnt"}}`)
		require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg))
		assert.Equal(t, 1, cfg.Workers)

		path = writeFile(t, "bad.json", `{}`)
		require.ErrorIs(t, NewConfig(nil).LoadAndValidate(context.Background(), path, &testConfig{}), errMissingURL)
	})

	t.Run("env source", func(t *testing.T) {
		t.Setenv("CONFIG_SOURCE", "env")
		t.Setenv("CONFIG_ENV_PREFIX", "")
		t.Setenv("VMSYNC_FNT_URL", "http://env")

		var cfg testConfig
		require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg))
		assert.Equal(t, "http://env", cfg.FNT.URL)
	})

	t.Run("unknown source", func(t *testing.T) {
		t.Setenv("CONFIG_SOURCE", "kv")

		err := NewConfig(nil).LoadAndValidate(context.Background(), "", &testConfig{})
		require.ErrorIs(t, err, errInvalidConfigSource)
	})
}

func TestSanitizeForLog(t *testing.T) {
	out, err := SanitizeForLog(&testConfig{FNT: testEndpoint{URL: "http://fnt", Password: "secret"}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "http://fnt")
	assert.NotContains(t, string(out), "secret")
}
