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
package models

import (
	"errors"
	"time"
)

var errNATSURLRequired = errors.New("nats url is required")

// TLSConfig holds client certificate paths. Relative paths are resolved
// against CertDir.
type TLSConfig struct {
	CertDir    string `json:"cert_dir,omitempty" toml:"cert_dir" yaml:"cert_dir"`
	CAFile     string `json:"ca_file" toml:"ca_file" yaml:"ca_file"`
	CertFile   string `json:"cert_file,omitempty" toml:"cert_file" yaml:"cert_file"`
	KeyFile    string `json:"key_file,omitempty" toml:"key_file" yaml:"key_file"`
	ServerName string `json:"server_name,omitempty" toml:"server_name" yaml:"server_name"`
}

// NATSConfig configures NATS connectivity.
type NATSConfig struct {
	URL       string     `json:"url" toml:"url" yaml:"url"`
	Domain    string     `json:"domain,omitempty" toml:"domain" yaml:"domain"`
	CredsFile string     `json:"creds_file,omitempty" toml:"creds_file" yaml:"creds_file" sensitive:"true"`
	TLS       *TLSConfig `json:"tls,omitempty" toml:"tls" yaml:"tls"`
}

// Validate ensures the NATS configuration is valid.
func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return errNATSURLRequired
	}

	return nil
}

// EventsConfig configures run-summary event publishing.
type EventsConfig struct {
	Enabled    bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
	StreamName string `json:"stream_name" toml:"stream_name" yaml:"stream_name"`
	Subject    string `json:"subject" toml:"subject" yaml:"subject"`
}

// Validate fills defaults for enabled event publishing.
func (c *EventsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.StreamName == "" {
		c.StreamName = "vmsync"
	}

	if c.Subject == "" {
		c.Subject = "vmsync.runs"
	}

	return nil
}

// CloudEvent represents a CloudEvents v1.0 compliant event.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}
