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
package natsutil

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carverauto/vmsync/pkg/models"
)

var (
	// ErrCAFileRequired is returned when TLS is configured without a CA.
	ErrCAFileRequired = errors.New("tls ca_file is required")
	// ErrCAParsingFailed is returned when CA certificate cannot be parsed
	ErrCAParsingFailed = errors.New("failed to parse CA certificate")
)

func resolve(dir, path string) string {
	if path == "" || dir == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

// TLSConfig builds a tls.Config for connecting to NATS. The client
// certificate is optional.
func TLSConfig(sec *models.TLSConfig) (*tls.Config, error) {
	if sec == nil || sec.CAFile == "" {
		return nil, ErrCAFileRequired
	}

	caCert, err := os.ReadFile(resolve(sec.CertDir, sec.CAFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, ErrCAParsingFailed
	}

	conf := &tls.Config{
		RootCAs:    caPool,
		ServerName: sec.ServerName,
		MinVersion: tls.VersionTLS12,
	}

	if sec.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(resolve(sec.CertDir, sec.CertFile), resolve(sec.CertDir, sec.KeyFile))
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}

		conf.Certificates = []tls.Certificate{cert}
	}

	return conf, nil
}
