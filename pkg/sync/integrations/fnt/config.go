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
package fnt

import (
	"strings"
	"time"

	"github.com/carverauto/vmsync/pkg/models"
)

const (
	defaultMandant   = "001"
	defaultUserGroup = "Administrator"
	defaultTimeout   = 30 * time.Second
)

// Config configures the FNT Command client.
type Config struct {
	URL       string          `json:"url" toml:"url" yaml:"url"`
	Username  string          `json:"username" toml:"username" yaml:"username"`
	Password  string          `json:"password" toml:"password" yaml:"password" sensitive:"true"`
	Mandant   string          `json:"mandant" toml:"mandant" yaml:"mandant"`
	UserGroup string          `json:"user_group" toml:"user_group" yaml:"user_group"`
	Timeout   models.Duration `json:"timeout" toml:"timeout" yaml:"timeout"`
	// InsecureSkipVerify disables TLS verification for self-signed installs.
	InsecureSkipVerify bool `json:"insecure_skip_verify" toml:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errMissingURL
	}

	if c.Username == "" {
		return errMissingUsername
	}

	c.URL = strings.TrimRight(c.URL, "/")

	if c.Mandant == "" {
		c.Mandant = defaultMandant
	}

	if c.UserGroup == "" {
		c.UserGroup = defaultUserGroup
	}

	if c.Timeout <= 0 {
		c.Timeout = models.Duration(defaultTimeout)
	}

	return nil
}
