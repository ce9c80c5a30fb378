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
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/vmsync/pkg/logger"
)

const defaultShutdownTimeout = 10 * time.Second

var errServiceRequired = errors.New("service is required")

// Service is a long-running component driven by Run.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// ServerOptions configures Run.
type ServerOptions struct {
	ServiceName string
	Service     Service
	Logger      logger.Logger

	// HTTPAddr, when set, serves Handler (metrics and health) on that address.
	HTTPAddr string
	Handler  http.Handler

	ShutdownTimeout time.Duration

	// Signals defaults to SIGINT and SIGTERM.
	Signals []os.Signal
}

// Run starts the service and blocks until ctx is cancelled, a shutdown
// signal arrives, or the service or HTTP server fails. The service is
// always stopped before Run returns.
func Run(ctx context.Context, opts *ServerOptions) error {
	if opts == nil || opts.Service == nil {
		return errServiceRequired
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	signals := opts.Signals
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	ctx, stop := signal.NotifyContext(ctx, signals...)
	defer stop()

	errCh := make(chan error, 2)

	var srv *http.Server

	if opts.HTTPAddr != "" && opts.Handler != nil {
		srv = &http.Server{
			Addr:              opts.HTTPAddr,
			Handler:           opts.Handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			log.Info().Str("addr", opts.HTTPAddr).Msg("Serving metrics and health endpoints")

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	go func() {
		if err := opts.Service.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("%s: %w", opts.ServiceName, err)
		}
	}()

	log.Info().Str("service", opts.ServiceName).Msg("Service started")

	var runErr error

	select {
	case <-ctx.Done():
		log.Info().Str("service", opts.ServiceName).Msg("Shutdown requested")
	case runErr = <-errCh:
		log.Error().Err(runErr).Str("service", opts.ServiceName).Msg("Service failed")
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := opts.Service.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping service")
	}

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error stopping http server")
		}
	}

	log.Info().Str("service", opts.ServiceName).Msg("Service stopped")

	return runErr
}
