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
package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	err := Init(&Config{Level: "warn", Output: "stderr"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, GetLogger().GetLevel())

	err = Init(&Config{Level: "info", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	require.Error(t, Init(&Config{Level: "loud"}))
}

func TestSetDebug(t *testing.T) {
	SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	SetDebug(false)
	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		want   zerolog.Level
	}{
		{name: "nil config", config: nil, want: zerolog.InfoLevel},
		{name: "empty", config: &Config{}, want: zerolog.InfoLevel},
		{name: "debug flag", config: &Config{Debug: true}, want: zerolog.DebugLevel},
		{name: "explicit", config: &Config{Level: "error"}, want: zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWriterLogger(t *testing.T) {
	var buf bytes.Buffer

	log := NewWriterLogger(&buf)
	log.Info().Str("visible_id", "vm01").Msg("created")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "vm01", line["visible_id"])
	assert.Equal(t, "created", line["message"])
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_OUTPUT", "")

	config := DefaultConfig()
	assert.Equal(t, "debug", config.Level)
	assert.Equal(t, "stdout", config.Output)
}
