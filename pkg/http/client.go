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
// Package http provides the HTTP plumbing shared by the collaborator
// clients and the admin endpoint.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/carverauto/vmsync/pkg/logger"
)

var (
	// ErrCircuitOpen is returned while a circuit breaker rejects requests.
	ErrCircuitOpen = errors.New("circuit breaker is open")
	errServerError = errors.New("server error")
)

//go:generate mockgen -destination=mock_client.go -package=http github.com/carverauto/vmsync/pkg/http HTTPClient,APIMetrics

// HTTPClient is the subset of *http.Client used by the API clients.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CircuitBreakerState represents the current state of the circuit breaker.
type CircuitBreakerState int

const (
	// StateClosed lets requests through.
	StateClosed CircuitBreakerState = iota
	// StateOpen rejects requests.
	StateOpen
	// StateHalfOpen lets requests through to probe for recovery.
	StateHalfOpen
)

// String returns a string representation of the circuit breaker state.
func (s CircuitBreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig holds configuration for the circuit breaker.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of failures before opening the circuit.
	FailureThreshold int `json:"failure_threshold" toml:"failure_threshold" yaml:"failure_threshold"`
	// SuccessThreshold is the number of successes needed to close the circuit from half-open.
	SuccessThreshold int `json:"success_threshold" toml:"success_threshold" yaml:"success_threshold"`
	// Timeout is how long to wait before transitioning from open to half-open.
	Timeout time.Duration `json:"-" toml:"-" yaml:"-"`
	// ResetTimeout is how long to wait before resetting failure counts in closed state.
	ResetTimeout time.Duration `json:"-" toml:"-" yaml:"-"`
}

// DefaultCircuitBreakerConfig returns the default configuration.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		ResetTimeout:     60 * time.Second,
	}
}

// StateObserver is notified whenever a circuit breaker changes state.
type StateObserver func(name string, from, to CircuitBreakerState)

// CircuitBreaker stops calling a collaborator after repeated failures.
type CircuitBreaker struct {
	config        CircuitBreakerConfig
	state         CircuitBreakerState
	failureCount  int
	successCount  int
	lastFailTime  time.Time
	lastResetTime time.Time
	mu            sync.RWMutex
	logger        logger.Logger
	name          string
	now           func() time.Time
	observer      StateObserver
}

// NewCircuitBreaker creates a new circuit breaker with the given configuration.
func NewCircuitBreaker(name string, config CircuitBreakerConfig, log logger.Logger) *CircuitBreaker {
	return &CircuitBreaker{
		config:        config,
		state:         StateClosed,
		lastResetTime: time.Now(),
		logger:        log,
		name:          name,
		now:           time.Now,
	}
}

// OnStateChange registers fn to be called on every state transition.
func (cb *CircuitBreaker) OnStateChange(fn StateObserver) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.observer = fn
}

// Execute runs fn unless the circuit is open.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allowRequest() {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, cb.name)
	}

	err := fn()
	cb.recordResult(err)

	return err
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()

	switch cb.state {
	case StateClosed:
		if now.Sub(cb.lastResetTime) >= cb.config.ResetTimeout {
			cb.failureCount = 0
			cb.lastResetTime = now
		}

		return true
	case StateOpen:
		if now.Sub(cb.lastFailTime) >= cb.config.Timeout {
			cb.transition(StateHalfOpen)
			cb.successCount = 0

			return true
		}

		return false
	case StateHalfOpen:
		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) recordResult(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure()
	} else {
		cb.onSuccess()
	}
}

func (cb *CircuitBreaker) onFailure() {
	cb.failureCount++
	cb.lastFailTime = cb.now()

	switch cb.state {
	case StateClosed:
		if cb.failureCount >= cb.config.FailureThreshold {
			cb.transition(StateOpen)
		}
	case StateHalfOpen:
		cb.transition(StateOpen)
	case StateOpen:
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateHalfOpen:
		cb.successCount++

		if cb.successCount >= cb.config.SuccessThreshold {
			cb.failureCount = 0
			cb.lastResetTime = cb.now()
			cb.transition(StateClosed)
		}
	case StateClosed:
		cb.failureCount = 0
		cb.lastResetTime = cb.now()
	case StateOpen:
	}
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(to CircuitBreakerState) {
	from := cb.state
	cb.state = to

	cb.logger.Info().
		Str("circuit_breaker", cb.name).
		Str("from", from.String()).
		Str("to", to.String()).
		Int("failure_count", cb.failureCount).
		Msg("Circuit breaker state changed")

	if cb.observer != nil {
		cb.observer(cb.name, from, to)
	}
}

// GetState returns the current state of the circuit breaker.
func (cb *CircuitBreaker) GetState() CircuitBreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.state
}

// Name returns the breaker's name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// CircuitBreakerHTTPClient wraps an HTTP client with circuit breaker functionality.
// Transport errors and 5xx responses count as failures.
type CircuitBreakerHTTPClient struct {
	client         HTTPClient
	circuitBreaker *CircuitBreaker
}

// NewCircuitBreakerHTTPClient creates a new HTTP client wrapper with circuit breaker.
func NewCircuitBreakerHTTPClient(client HTTPClient, name string, config CircuitBreakerConfig, log logger.Logger) *CircuitBreakerHTTPClient {
	return &CircuitBreakerHTTPClient{
		client:         client,
		circuitBreaker: NewCircuitBreaker(name, config, log),
	}
}

// Do executes an HTTP request through the circuit breaker.
func (c *CircuitBreakerHTTPClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response

	err := c.circuitBreaker.Execute(func() error {
		var err error

		resp, err = c.client.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}

		return nil
	})

	// 5xx responses are still returned so callers can read the error body.
	if resp != nil && resp.StatusCode >= http.StatusInternalServerError {
		return resp, nil
	}

	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetCircuitBreaker returns the underlying circuit breaker.
func (c *CircuitBreakerHTTPClient) GetCircuitBreaker() *CircuitBreaker {
	return c.circuitBreaker
}

// APIMetrics records collaborator API calls.
type APIMetrics interface {
	RecordAPICall(integration, endpoint string, statusCode int, duration time.Duration, err error)
}

type endpointKey struct{}

// WithEndpoint labels the requests built from ctx for API metrics.
func WithEndpoint(ctx context.Context, endpoint string) context.Context {
	return context.WithValue(ctx, endpointKey{}, endpoint)
}

// EndpointOf returns the metrics label of req: the WithEndpoint value, or
// the URL path.
func EndpointOf(req *http.Request) string {
	if endpoint, ok := req.Context().Value(endpointKey{}).(string); ok && endpoint != "" {
		return endpoint
	}

	return req.URL.Path
}

// MetricsHTTPClient wraps an HTTP client to collect API metrics.
type MetricsHTTPClient struct {
	client      HTTPClient
	metrics     APIMetrics
	integration string
}

// NewMetricsHTTPClient creates a new HTTP client wrapper that collects metrics.
func NewMetricsHTTPClient(client HTTPClient, integration string, metrics APIMetrics) *MetricsHTTPClient {
	return &MetricsHTTPClient{
		client:      client,
		metrics:     metrics,
		integration: integration,
	}
}

// Do executes an HTTP request and records metrics.
func (m *MetricsHTTPClient) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := m.client.Do(req)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	m.metrics.RecordAPICall(m.integration, EndpointOf(req), status, time.Since(start), err)

	return resp, err
}
