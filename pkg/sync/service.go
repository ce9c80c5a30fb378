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

// Package sync drives periodic reconciliation runs.
package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/models"
)

var (
	// ErrRunInProgress is returned by Sync while another run is active.
	ErrRunInProgress = errors.New("a run is already in progress")

	errLastRunFailed = errors.New("last run failed")
	errStale         = errors.New("no successful run within two intervals")
)

// Service runs the reconciler once at start and then on every tick.
type Service struct {
	config     *Config
	reconciler Reconciler
	publisher  RunPublisher
	metrics    *Metrics
	clock      Clock
	closers    []func(context.Context) error
	logger     logger.Logger

	runMu       sync.Mutex
	initialized bool

	stateMu     sync.RWMutex
	lastRun     *models.RunStats
	lastErr     error
	lastSuccess time.Time

	stopMu sync.Mutex
	cancel context.CancelFunc
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(s *Service) { s.clock = clock }
}

// WithPublisher publishes every run summary.
func WithPublisher(p RunPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics records run metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCloser registers a function called on Stop.
func WithCloser(fn func(context.Context) error) Option {
	return func(s *Service) { s.closers = append(s.closers, fn) }
}

// NewService creates a Service for a validated config.
func NewService(cfg *Config, reconciler Reconciler, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		config:     cfg,
		reconciler: reconciler,
		clock:      realClock{},
		logger:     log,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sync performs one reconciliation run. The reconciler is initialized on
// the first run and again after an initialization failure.
func (s *Service) Sync(ctx context.Context) (*models.RunStats, error) {
	if !s.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.runMu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(s.config.RunTimeout))
	defer cancel()

	stats, err := s.run(runCtx)

	s.record(stats, err)

	if s.metrics != nil {
		s.metrics.RecordRun(stats, err)
	}

	if s.publisher != nil {
		if pubErr := s.publisher.PublishRunSummary(ctx, s.config.VPoller.VCHost, stats, err); pubErr != nil {
			s.logger.Warn().Err(pubErr).Msg("Failed to publish run summary")
		}
	}

	return stats, err
}

func (s *Service) run(ctx context.Context) (*models.RunStats, error) {
	if !s.initialized {
		if err := s.reconciler.Init(ctx); err != nil {
			return nil, fmt.Errorf("initialization failed: %w", err)
		}

		s.initialized = true
	}

	return s.reconciler.Run(ctx)
}

func (s *Service) record(stats *models.RunStats, err error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.lastErr = err

	if stats != nil {
		s.lastRun = stats
	}

	if err == nil {
		s.lastSuccess = s.clock.Now()
	}
}

// Start runs immediately and then on every interval tick until ctx is
// cancelled or Stop is called. Runs never overlap; ticks that fire during
// a run are dropped.
func (s *Service) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	s.stopMu.Lock()
	s.cancel = cancel
	s.stopMu.Unlock()

	defer cancel()

	interval := time.Duration(s.config.Interval)

	s.logger.Info().
		Dur("interval", interval).
		Bool("dry_run", s.config.DryRun).
		Str("datasource", s.config.VPoller.VCHost).
		Msg("Starting sync service")

	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	s.runLogged(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			s.runLogged(ctx)
		}
	}
}

func (s *Service) runLogged(ctx context.Context) {
	if _, err := s.Sync(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Sync run failed")
	}
}

// Stop ends the run loop and closes the collaborator sessions.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping sync service")

	s.stopMu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.stopMu.Unlock()

	var errs []error

	for _, closer := range s.closers {
		if err := closer(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Health reports the outcome of the last run. It fails when the last run
// failed or when no run succeeded within two intervals after the first.
func (s *Service) Health() (map[string]interface{}, error) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	status := map[string]interface{}{
		"datasource": s.config.VPoller.VCHost,
		"dry_run":    s.config.DryRun,
	}

	if s.lastRun == nil && s.lastErr == nil {
		status["status"] = "starting"

		return status, nil
	}

	if s.lastRun != nil {
		status["last_run"] = s.lastRun
	}

	if !s.lastSuccess.IsZero() {
		status["last_success"] = s.lastSuccess.UTC().Format(time.RFC3339)
	}

	if s.lastErr != nil {
		status["status"] = "unhealthy"
		status["error"] = s.lastErr.Error()

		return status, errLastRunFailed
	}

	if s.clock.Now().Sub(s.lastSuccess) > 2*time.Duration(s.config.Interval) {
		status["status"] = "stale"

		return status, errStale
	}

	status["status"] = "healthy"

	return status, nil
}

// Metrics returns the service metrics, nil when none were configured.
func (s *Service) Metrics() *Metrics {
	return s.metrics
}
