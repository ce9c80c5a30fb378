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
package vpoller

import (
	"time"

	"github.com/carverauto/vmsync/pkg/models"
)

const (
	defaultTimeout = 3 * time.Second
	defaultRetries = 3
)

// Config configures the vPoller client.
type Config struct {
	// Endpoint is the vPoller proxy, e.g. tcp://localhost:10123.
	Endpoint string `json:"endpoint" toml:"endpoint" yaml:"endpoint"`
	// VCHost is the vCenter queried through vPoller. It doubles as the
	// datasource of every discovered record.
	VCHost  string          `json:"vc_host" toml:"vc_host" yaml:"vc_host"`
	Timeout models.Duration `json:"timeout" toml:"timeout" yaml:"timeout"`
	Retries int             `json:"retries" toml:"retries" yaml:"retries"`
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errMissingEndpoint
	}

	if c.VCHost == "" {
		return errMissingVCHost
	}

	if c.Timeout <= 0 {
		c.Timeout = models.Duration(defaultTimeout)
	}

	if c.Retries <= 0 {
		c.Retries = defaultRetries
	}

	return nil
}
