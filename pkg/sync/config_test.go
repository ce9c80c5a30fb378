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

package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/vmsync/pkg/models"
	"github.com/carverauto/vmsync/pkg/sync/integrations/fnt"
	"github.com/carverauto/vmsync/pkg/sync/integrations/vpoller"
	"github.com/carverauto/vmsync/pkg/sync/integrations/zabbix"
)

func validConfig() *Config {
	return &Config{
		VPoller: vpoller.Config{Endpoint: "tcp://localhost:10123", VCHost: "vc01.example.com"},
		FNT:     fnt.Config{URL: "https://fnt.example.com/", Username: "sync", Password: "secret"},
		Zabbix:  zabbix.Config{URL: "https://zabbix.example.com", Username: "Admin", Password: "zabbix", Template: "Template SNMP VM"},
	}
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, models.Duration(defaultInterval), cfg.Interval)
	assert.Equal(t, models.Duration(defaultRunTimeout), cfg.RunTimeout)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, time.Local, cfg.Location())
	require.NotNil(t, cfg.Logging)
	require.NotNil(t, cfg.CircuitBreaker)
	assert.Equal(t, 5, cfg.CircuitBreaker.FailureThreshold)
	assert.Positive(t, cfg.CircuitBreaker.Timeout)
	assert.False(t, cfg.EventsEnabled())

	assert.Equal(t, "https://fnt.example.com", cfg.FNT.URL)
	assert.Equal(t, "https://zabbix.example.com/api_jsonrpc.php", cfg.Zabbix.URL)
	assert.Equal(t, "Virtual Servers", cfg.Zabbix.HostGroup)
	assert.Equal(t, 3, cfg.VPoller.Retries)
}

func TestConfigValidateRunTimeoutCappedByInterval(t *testing.T) {
	cfg := validConfig()
	cfg.Interval = models.Duration(time.Minute)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, models.Duration(time.Minute), cfg.RunTimeout)

	cfg = validConfig()
	cfg.Interval = models.Duration(time.Minute)
	cfg.RunTimeout = models.Duration(2 * time.Minute)

	require.ErrorIs(t, cfg.Validate(), errRunTimeout)
}

func TestConfigValidateTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "UTC"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "UTC", cfg.Location().String())

	cfg = validConfig()
	cfg.Timezone = "Nowhere/Special"

	require.ErrorIs(t, cfg.Validate(), errBadTimezone)
}

func TestConfigValidateMissingCollaborators(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		prefix string
	}{
		{"vpoller endpoint", func(c *Config) { c.VPoller.Endpoint = "" }, "vpoller"},
		{"vc host", func(c *Config) { c.VPoller.VCHost = "" }, "vpoller"},
		{"fnt url", func(c *Config) { c.FNT.URL = "" }, "fnt"},
		{"zabbix credentials", func(c *Config) { c.Zabbix.Username = "" }, "zabbix"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.prefix)
		})
	}
}

func TestConfigValidateEvents(t *testing.T) {
	cfg := validConfig()
	cfg.Events = &models.EventsConfig{Enabled: true}

	require.ErrorIs(t, cfg.Validate(), errMissingNATS)

	cfg = validConfig()
	cfg.Events = &models.EventsConfig{Enabled: true}
	cfg.NATS = &models.NATSConfig{URL: "nats://localhost:4222"}

	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.EventsEnabled())
	assert.Equal(t, "vmsync", cfg.Events.StreamName)
	assert.Equal(t, "vmsync.runs", cfg.Events.Subject)

	cfg = validConfig()
	cfg.NATS = &models.NATSConfig{}

	require.NoError(t, cfg.Validate(), "nats is ignored while events are disabled")
	assert.False(t, cfg.EventsEnabled())
}
