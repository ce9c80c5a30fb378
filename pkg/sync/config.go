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
	"errors"
	"fmt"
	"time"

	httpx "github.com/carverauto/vmsync/pkg/http"
	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/models"
	"github.com/carverauto/vmsync/pkg/sync/integrations/fnt"
	"github.com/carverauto/vmsync/pkg/sync/integrations/vpoller"
	"github.com/carverauto/vmsync/pkg/sync/integrations/zabbix"
)

const (
	defaultInterval   = 15 * time.Minute
	defaultRunTimeout = 10 * time.Minute
	defaultTimezone   = "Local"
)

var (
	errMissingNATS  = errors.New("nats is required when events are enabled")
	errRunTimeout   = errors.New("run_timeout must not exceed interval")
	errBadTimezone  = errors.New("invalid timezone")
	errNegativeTick = errors.New("interval must be positive")
)

// Config is the vmsync service configuration.
type Config struct {
	VPoller vpoller.Config `json:"vpoller" toml:"vpoller" yaml:"vpoller"`
	FNT     fnt.Config     `json:"fnt" toml:"fnt" yaml:"fnt"`
	Zabbix  zabbix.Config  `json:"zabbix" toml:"zabbix" yaml:"zabbix"`

	Interval   models.Duration `json:"interval" toml:"interval" yaml:"interval"`
	RunTimeout models.Duration `json:"run_timeout" toml:"run_timeout" yaml:"run_timeout"`
	DryRun     bool            `json:"dry_run" toml:"dry_run" yaml:"dry_run"`
	// Timezone renders the backup timestamps written to the CMDB. An IANA
	// name or "Local".
	Timezone string `json:"timezone" toml:"timezone" yaml:"timezone"`

	Logging        *logger.Config              `json:"logging" toml:"logging" yaml:"logging"`
	MetricsAddr    string                      `json:"metrics_addr" toml:"metrics_addr" yaml:"metrics_addr"`
	MetricsAPIKey  string                      `json:"metrics_api_key" toml:"metrics_api_key" yaml:"metrics_api_key" sensitive:"true"`
	CircuitBreaker *httpx.CircuitBreakerConfig `json:"circuit_breaker" toml:"circuit_breaker" yaml:"circuit_breaker"`

	NATS   *models.NATSConfig   `json:"nats" toml:"nats" yaml:"nats"`
	Events *models.EventsConfig `json:"events" toml:"events" yaml:"events"`

	location *time.Location
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	if err := c.VPoller.Validate(); err != nil {
		return fmt.Errorf("vpoller: %w", err)
	}

	if err := c.FNT.Validate(); err != nil {
		return fmt.Errorf("fnt: %w", err)
	}

	if err := c.Zabbix.Validate(); err != nil {
		return fmt.Errorf("zabbix: %w", err)
	}

	if c.Interval < 0 {
		return errNegativeTick
	}

	if c.Interval == 0 {
		c.Interval = models.Duration(defaultInterval)
	}

	if c.RunTimeout <= 0 {
		c.RunTimeout = models.Duration(min(defaultRunTimeout, time.Duration(c.Interval)))
	}

	if c.RunTimeout > c.Interval {
		return errRunTimeout
	}

	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("%w %q: %w", errBadTimezone, c.Timezone, err)
	}

	c.location = loc

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}

	if c.CircuitBreaker == nil {
		cb := httpx.DefaultCircuitBreakerConfig()
		c.CircuitBreaker = &cb
	}

	c.fillBreakerDefaults()

	return c.validateEvents()
}

func (c *Config) fillBreakerDefaults() {
	def := httpx.DefaultCircuitBreakerConfig()

	if c.CircuitBreaker.FailureThreshold <= 0 {
		c.CircuitBreaker.FailureThreshold = def.FailureThreshold
	}

	if c.CircuitBreaker.SuccessThreshold <= 0 {
		c.CircuitBreaker.SuccessThreshold = def.SuccessThreshold
	}

	if c.CircuitBreaker.Timeout <= 0 {
		c.CircuitBreaker.Timeout = def.Timeout
	}

	if c.CircuitBreaker.ResetTimeout <= 0 {
		c.CircuitBreaker.ResetTimeout = def.ResetTimeout
	}
}

func (c *Config) validateEvents() error {
	if c.Events == nil || !c.Events.Enabled {
		return nil
	}

	if c.NATS == nil {
		return errMissingNATS
	}

	if err := c.NATS.Validate(); err != nil {
		return fmt.Errorf("nats: %w", err)
	}

	return c.Events.Validate()
}

// EventsEnabled reports whether run summaries are published.
func (c *Config) EventsEnabled() bool {
	return c.Events != nil && c.Events.Enabled && c.NATS != nil
}

// Location returns the validated timezone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}

	return c.location
}
