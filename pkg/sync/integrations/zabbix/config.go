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
package zabbix

import (
	"strings"
	"time"

	"github.com/carverauto/vmsync/pkg/models"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultHostGroup = "Virtual Servers"
	endpointPath     = "/api_jsonrpc.php"
)

// Config configures the Zabbix client and the host defaults of created hosts.
type Config struct {
	URL      string `json:"url" toml:"url" yaml:"url"`
	Username string `json:"username" toml:"username" yaml:"username"`
	Password string `json:"password" toml:"password" yaml:"password" sensitive:"true"`
	// APIToken replaces username/password login when set.
	APIToken  string          `json:"api_token" toml:"api_token" yaml:"api_token" sensitive:"true"`
	HostGroup string          `json:"hostgroup" toml:"hostgroup" yaml:"hostgroup"`
	Template  string          `json:"template" toml:"template" yaml:"template"`
	Proxy     string          `json:"proxy" toml:"proxy" yaml:"proxy"`
	Timeout   models.Duration `json:"timeout" toml:"timeout" yaml:"timeout"`

	InsecureSkipVerify bool `json:"insecure_skip_verify" toml:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errMissingURL
	}

	if c.Username == "" && c.APIToken == "" {
		return errMissingCredentials
	}

	c.URL = strings.TrimRight(c.URL, "/")
	if !strings.HasSuffix(c.URL, endpointPath) {
		c.URL += endpointPath
	}

	if c.HostGroup == "" {
		c.HostGroup = defaultHostGroup
	}

	if c.Timeout <= 0 {
		c.Timeout = models.Duration(defaultTimeout)
	}

	return nil
}
