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
	"sync/atomic"
	"testing"
	"time"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	startErr error
	stopped  atomic.Bool
}

func (f *fakeService) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}

	<-ctx.Done()

	return ctx.Err()
}

func (f *fakeService) Stop(context.Context) error {
	f.stopped.Store(true)

	return nil
}

func TestRunStopsOnContextCancel(t *testing.T) {
	svc := &fakeService{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, &ServerOptions{ServiceName: "test", Service: svc, Logger: logger.NewTestLogger()})
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}

	assert.True(t, svc.stopped.Load())
}

func TestRunReturnsServiceError(t *testing.T) {
	errBoom := errors.New("boom")
	svc := &fakeService{startErr: errBoom}

	err := Run(context.Background(), &ServerOptions{ServiceName: "test", Service: svc})
	require.ErrorIs(t, err, errBoom)
	assert.True(t, svc.stopped.Load())
}

func TestRunRequiresService(t *testing.T) {
	require.ErrorIs(t, Run(context.Background(), &ServerOptions{}), errServiceRequired)
}

func TestNewLoggerImpl(t *testing.T) {
	l, err := NewLoggerImpl(&logger.Config{Level: "warn"})
	require.NoError(t, err)

	l.SetDebug(true)
	assert.NotNil(t, l.Debug())

	_, err = NewLoggerImpl(&logger.Config{Level: "bogus"})
	require.Error(t, err)

	_, err = CreateComponentLogger("inventory", &logger.Config{})
	require.NoError(t, err)
}
