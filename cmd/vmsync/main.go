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

// Command vmsync reconciles vCenter inventory into FNT Command and Zabbix.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/carverauto/vmsync/pkg/config"
	httpx "github.com/carverauto/vmsync/pkg/http"
	"github.com/carverauto/vmsync/pkg/lifecycle"
	"github.com/carverauto/vmsync/pkg/sync"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("vmsync failed: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/vmsync/vmsync.json", "Path to config file")
	once := flag.Bool("once", false, "Run a single reconciliation and exit")
	dryRun := flag.Bool("dry-run", false, "Log planned changes without applying them")
	flag.Parse()

	ctx := context.Background()

	var cfg sync.Config

	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return err
	}

	if *dryRun {
		cfg.DryRun = true
	}

	logger, err := lifecycle.NewLoggerImpl(cfg.Logging)
	if err != nil {
		return err
	}

	if sanitized, err := config.SanitizeForLog(cfg); err == nil {
		logger.Debug().RawJSON("config", sanitized).Msg("Loaded configuration")
	}

	svc, err := sync.NewDefault(ctx, &cfg, logger)
	if err != nil {
		return err
	}

	if *once {
		stats, runErr := svc.Sync(ctx)

		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := svc.Stop(stopCtx); err != nil {
			logger.Warn().Err(err).Msg("Error closing sessions")
		}

		if stats != nil {
			logger.Info().Interface("stats", stats).Msg("Run finished")
		}

		return runErr
	}

	var handler http.Handler

	if cfg.MetricsAddr != "" {
		handler = httpx.NewAdminRouter(httpx.AdminOptions{
			Gatherer: svc.Metrics().Gatherer(),
			Health:   svc.Health,
			APIKey:   cfg.MetricsAPIKey,
			Logger:   logger,
		})
	}

	return lifecycle.Run(ctx, &lifecycle.ServerOptions{
		ServiceName: "vmsync",
		Service:     svc,
		Logger:      logger,
		HTTPAddr:    cfg.MetricsAddr,
		Handler:     handler,
	})
}
