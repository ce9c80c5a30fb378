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
package vpoller

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-zeromq/zmq4"
)

const (
	retryInitialInterval = 100 * time.Millisecond
	retryMaxInterval     = time.Second
)

//go:generate mockgen -destination=mock_vpoller.go -package=vpoller github.com/carverauto/vmsync/pkg/sync/integrations/vpoller Transport

// Transport sends one request frame and returns the reply frame.
type Transport interface {
	RoundTrip(ctx context.Context, payload []byte) ([]byte, error)
}

// ZMQTransport talks to the vPoller proxy over a ZeroMQ REQ socket. A
// fresh socket is used per attempt since a REQ socket that missed its
// reply cannot send again.
type ZMQTransport struct {
	Endpoint string
	Timeout  time.Duration
	Retries  int
}

// NewZMQTransport builds a transport from cfg. cfg must be validated.
func NewZMQTransport(cfg *Config) *ZMQTransport {
	return &ZMQTransport{
		Endpoint: cfg.Endpoint,
		Timeout:  time.Duration(cfg.Timeout),
		Retries:  cfg.Retries,
	}
}

// RoundTrip implements Transport. Failed attempts are retried with
// exponential backoff up to Retries attempts.
func (t *ZMQTransport) RoundTrip(ctx context.Context, payload []byte) ([]byte, error) {
	attempts := t.Retries
	if attempts < 1 {
		attempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.MaxInterval = retryMaxInterval

	reply, err := backoff.Retry(ctx, func() ([]byte, error) {
		reply, err := t.attempt(ctx, payload)
		if err != nil && ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}

		return reply, err
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(uint(attempts)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s after %d attempts: %w", ErrTransport, t.Endpoint, attempts, err)
	}

	return reply, nil
}

func (t *ZMQTransport) attempt(ctx context.Context, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	sock := zmq4.NewReq(ctx)
	defer func() { _ = sock.Close() }()

	if err := sock.Dial(t.Endpoint); err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	if err := sock.Send(zmq4.NewMsg(payload)); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}

	type result struct {
		msg zmq4.Msg
		err error
	}

	done := make(chan result, 1)

	go func() {
		msg, err := sock.Recv()
		done <- result{msg: msg, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("recv: %w", res.err)
		}

		return res.msg.Bytes(), nil
	}
}
