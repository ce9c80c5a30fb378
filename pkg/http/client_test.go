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
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errTestError = errors.New("test error")

type manualClock struct{ t time.Time }

func (c *manualClock) Now() time.Time { return c.t }

func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(clock *manualClock) *CircuitBreaker {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          100 * time.Millisecond,
		ResetTimeout:     time.Hour,
	}, logger.NewTestLogger())
	cb.now = clock.Now
	cb.lastResetTime = clock.Now()

	return cb
}

func TestCircuitBreaker_BasicFunctionality(t *testing.T) {
	clock := &manualClock{t: time.Unix(1700000000, 0)}
	cb := newTestBreaker(clock)

	var transitions []string

	cb.OnStateChange(func(name string, from, to CircuitBreakerState) {
		assert.Equal(t, "test", name)
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	assert.Equal(t, StateClosed, cb.GetState())
	require.NoError(t, cb.Execute(func() error { return nil }))

	require.ErrorIs(t, cb.Execute(func() error { return errTestError }), errTestError)
	assert.Equal(t, StateClosed, cb.GetState())

	require.ErrorIs(t, cb.Execute(func() error { return errTestError }), errTestError)
	assert.Equal(t, StateOpen, cb.GetState())

	called := false
	err := cb.Execute(func() error {
		called = true

		return nil
	})
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	clock.Advance(150 * time.Millisecond)

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.GetState())

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := &manualClock{t: time.Unix(1700000000, 0)}
	cb := newTestBreaker(clock)

	_ = cb.Execute(func() error { return errTestError })
	_ = cb.Execute(func() error { return errTestError })
	require.Equal(t, StateOpen, cb.GetState())

	clock.Advance(time.Second)

	require.Error(t, cb.Execute(func() error { return errTestError }))
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	clock := &manualClock{t: time.Unix(1700000000, 0)}
	cb := newTestBreaker(clock)

	_ = cb.Execute(func() error { return errTestError })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return errTestError })

	assert.Equal(t, StateClosed, cb.GetState())
}

func TestDefaultCircuitBreakerConfig(t *testing.T) {
	config := DefaultCircuitBreakerConfig()

	assert.Equal(t, 5, config.FailureThreshold)
	assert.Equal(t, 2, config.SuccessThreshold)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, 60*time.Second, config.ResetTimeout)
}

func TestCircuitBreakerState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", CircuitBreakerState(42).String())
}

func response(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader("{}"))}
}

func TestCircuitBreakerHTTPClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := NewMockHTTPClient(ctrl)
	client := NewCircuitBreakerHTTPClient(inner, "cmdb", CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		ResetTimeout:     time.Hour,
	}, logger.NewTestLogger())

	req, err := http.NewRequest(http.MethodGet, "http://cmdb.example.com/api", http.NoBody)
	require.NoError(t, err)

	inner.EXPECT().Do(req).Return(response(http.StatusOK), nil)

	resp, err := client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	inner.EXPECT().Do(req).Return(response(http.StatusBadGateway), nil)

	resp, err = client.Do(req)
	require.NoError(t, err, "5xx responses are handed to the caller")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	inner.EXPECT().Do(req).Return(nil, errTestError)

	_, err = client.Do(req)
	require.ErrorIs(t, err, errTestError)
	assert.Equal(t, StateOpen, client.GetCircuitBreaker().GetState())

	_, err = client.Do(req)
	require.ErrorIs(t, err, ErrCircuitOpen)
}

func TestMetricsHTTPClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := NewMockHTTPClient(ctrl)
	metrics := NewMockAPIMetrics(ctrl)
	client := NewMetricsHTTPClient(inner, "zabbix", metrics)

	t.Run("path label", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, "http://zabbix.example.com/api_jsonrpc.php", http.NoBody)
		require.NoError(t, err)

		inner.EXPECT().Do(req).Return(response(http.StatusOK), nil)
		metrics.EXPECT().RecordAPICall("zabbix", "/api_jsonrpc.php", http.StatusOK, gomock.Any(), nil)

		_, err = client.Do(req)
		require.NoError(t, err)
	})

	t.Run("context label and transport error", func(t *testing.T) {
		ctx := WithEndpoint(context.Background(), "host.get")

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://zabbix.example.com/api_jsonrpc.php", http.NoBody)
		require.NoError(t, err)

		inner.EXPECT().Do(req).Return(nil, errTestError)
		metrics.EXPECT().RecordAPICall("zabbix", "host.get", 0, gomock.Any(), errTestError)

		_, err = client.Do(req)
		require.ErrorIs(t, err, errTestError)
	})
}
