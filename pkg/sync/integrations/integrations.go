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

// Package integrations builds the collaborator clients used by the sync
// service.
package integrations

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpx "github.com/carverauto/vmsync/pkg/http"
	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/sync/integrations/fnt"
	"github.com/carverauto/vmsync/pkg/sync/integrations/vpoller"
	"github.com/carverauto/vmsync/pkg/sync/integrations/zabbix"
)

// Integration names used as metric and breaker labels.
const (
	NameVPoller = "vpoller"
	NameFNT     = "fnt"
	NameZabbix  = "zabbix"
)

// Options configures New.
type Options struct {
	VPoller        *vpoller.Config
	FNT            *fnt.Config
	Zabbix         *zabbix.Config
	CircuitBreaker httpx.CircuitBreakerConfig

	Metrics       httpx.APIMetrics
	OnStateChange httpx.StateObserver
	Logger        logger.Logger
}

// Clients holds the collaborator clients of one vCenter.
type Clients struct {
	Discovery  *vpoller.Client
	CMDB       *fnt.Client
	Monitoring *zabbix.Client
	Breakers   []*httpx.CircuitBreaker
}

type noopMetrics struct{}

func (noopMetrics) RecordAPICall(string, string, int, time.Duration, error) {}

// New builds the clients. No connection is made until first use.
func New(opts *Options) *Clients {
	log := opts.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	c := &Clients{}

	fntHTTP := c.wrap(NameFNT, NewHTTPClient(time.Duration(opts.FNT.Timeout), opts.FNT.InsecureSkipVerify), opts, metrics, log)
	zbxHTTP := c.wrap(NameZabbix, NewHTTPClient(time.Duration(opts.Zabbix.Timeout), opts.Zabbix.InsecureSkipVerify), opts, metrics, log)

	c.Discovery = vpoller.NewClient(vpoller.NewZMQTransport(opts.VPoller), opts.VPoller.VCHost, metrics, log)
	c.CMDB = fnt.NewClient(opts.FNT, fntHTTP, log)
	c.Monitoring = zabbix.NewClient(opts.Zabbix, zbxHTTP, log)

	return c
}

// wrap adds API metrics around a circuit breaker around client. Calls
// rejected by an open breaker are still counted.
func (c *Clients) wrap(name string, client httpx.HTTPClient, opts *Options, metrics httpx.APIMetrics, log logger.Logger) httpx.HTTPClient {
	breaker := httpx.NewCircuitBreakerHTTPClient(client, name, opts.CircuitBreaker, log)

	if opts.OnStateChange != nil {
		breaker.GetCircuitBreaker().OnStateChange(opts.OnStateChange)
	}

	c.Breakers = append(c.Breakers, breaker.GetCircuitBreaker())

	return httpx.NewMetricsHTTPClient(breaker, name, metrics)
}

// Connect checks vPoller and opens the CMDB and monitoring sessions.
func (c *Clients) Connect(ctx context.Context) error {
	if _, err := c.Discovery.About(ctx); err != nil {
		return fmt.Errorf("vpoller: %w", err)
	}

	if err := c.CMDB.Login(ctx); err != nil {
		return fmt.Errorf("fnt: %w", err)
	}

	if err := c.Monitoring.Login(ctx); err != nil {
		return fmt.Errorf("zabbix: %w", err)
	}

	return nil
}

// Close ends the CMDB and monitoring sessions.
func (c *Clients) Close(ctx context.Context) error {
	var errs []error

	if c.CMDB != nil {
		if err := c.CMDB.Logout(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Monitoring != nil {
		if err := c.Monitoring.Logout(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// NewHTTPClient returns an http.Client with the given timeout. Certificate
// verification can be disabled for self-signed installations.
func NewHTTPClient(timeout time.Duration, insecureSkipVerify bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // opt-in for self-signed CMDB and monitoring installs
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
