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
	"context"
	"fmt"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/natsutil"
	"github.com/carverauto/vmsync/pkg/reconcile"
	"github.com/carverauto/vmsync/pkg/sync/integrations"
)

// NewDefault wires the production collaborators for a validated config.
// vPoller, FNT Command and Zabbix must be reachable.
func NewDefault(ctx context.Context, cfg *Config, log logger.Logger) (*Service, error) {
	metrics := NewMetrics()

	clients := integrations.New(&integrations.Options{
		VPoller:        &cfg.VPoller,
		FNT:            &cfg.FNT,
		Zabbix:         &cfg.Zabbix,
		CircuitBreaker: *cfg.CircuitBreaker,
		Metrics:        metrics,
		OnStateChange:  metrics.RecordCircuitBreakerStateChange,
		Logger:         log,
	})

	if err := clients.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect collaborators: %w", err)
	}

	rec := reconcile.New(clients.Discovery, clients.CMDB, clients.Monitoring, &reconcile.Options{
		Datasource: cfg.VPoller.VCHost,
		HostGroup:  cfg.Zabbix.HostGroup,
		Template:   cfg.Zabbix.Template,
		Proxy:      cfg.Zabbix.Proxy,
		DryRun:     cfg.DryRun,
		Location:   cfg.Location(),
	}, log)

	opts := []Option{WithMetrics(metrics), WithCloser(clients.Close)}

	if cfg.EventsEnabled() {
		nc, err := natsutil.Connect(cfg.NATS, log)
		if err != nil {
			_ = clients.Close(ctx)

			return nil, err
		}

		pub, err := natsutil.CreateEventPublisher(ctx, nc, cfg.NATS.Domain, cfg.Events.StreamName, cfg.Events.Subject, log)
		if err != nil {
			nc.Close()
			_ = clients.Close(ctx)

			return nil, err
		}

		opts = append(opts,
			WithPublisher(pub),
			WithCloser(func(context.Context) error { return nc.Drain() }),
		)
	}

	return NewService(cfg, rec, log, opts...), nil
}
