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
// Package natsutil publishes run summaries to NATS JetStream.
package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/models"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	eventSource   = "vmsync"
	eventTypeRun  = "com.carverauto.vmsync.run.completed"
	eventTypeFail = "com.carverauto.vmsync.run.failed"
)

// StreamPublisher is the JetStream publishing surface used here.
type StreamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// RunSummary is the data of a run event.
type RunSummary struct {
	*models.RunStats
	Datasource string `json:"datasource"`
	Error      string `json:"error,omitempty"`
}

// EventPublisher publishes CloudEvents to a JetStream subject.
type EventPublisher struct {
	js      StreamPublisher
	subject string
	logger  logger.Logger
}

// NewEventPublisher creates a publisher for subject.
func NewEventPublisher(js StreamPublisher, subject string, log logger.Logger) *EventPublisher {
	return &EventPublisher{js: js, subject: subject, logger: log}
}

// PublishRunSummary publishes the outcome of one run.
func (p *EventPublisher) PublishRunSummary(ctx context.Context, datasource string, stats *models.RunStats, runErr error) error {
	summary := RunSummary{RunStats: stats, Datasource: datasource}
	eventType := eventTypeRun

	if runErr != nil {
		summary.Error = runErr.Error()
		eventType = eventTypeFail
	}

	now := time.Now().UTC()

	event := models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource + "/" + datasource,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         p.subject,
		Time:            &now,
		Data:            summary,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal run event: %w", err)
	}

	ack, err := p.js.Publish(ctx, p.subject, payload)
	if err != nil {
		return fmt.Errorf("failed to publish run event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", p.subject).
		Uint64("seq", ack.Sequence).
		Msg("Published run event")

	return nil
}

// Connect opens a NATS connection for cfg with logging handlers.
func Connect(cfg *models.NATSConfig, log logger.Logger, extraOpts ...nats.Option) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("vmsync"),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	if cfg.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(cfg.CredsFile))
	}

	if cfg.TLS != nil {
		tlsConf, err := TLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to build NATS TLS config: %w", err)
		}

		opts = append(opts, nats.Secure(tlsConf))
	}

	opts = append(opts, extraOpts...)

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info().Str("url", nc.ConnectedUrl()).Msg("Connected to NATS")

	return nc, nil
}

// CreateEventPublisher ensures stream covers subject and returns a publisher for it.
func CreateEventPublisher(ctx context.Context, nc *nats.Conn, domain, stream, subject string, log logger.Logger) (*EventPublisher, error) {
	var (
		js  jetstream.JetStream
		err error
	)

	if domain != "" {
		js, err = jetstream.NewWithDomain(nc, domain)
	} else {
		js, err = jetstream.New(nc)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := ensureStream(ctx, js, stream, subject); err != nil {
		return nil, err
	}

	return NewEventPublisher(js, subject, log), nil
}

func ensureStream(ctx context.Context, js jetstream.JetStream, stream, subject string) error {
	s, err := js.Stream(ctx, stream)
	if err != nil {
		if !isStreamMissingErr(err) {
			return fmt.Errorf("failed to get stream %s: %w", stream, err)
		}

		_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{Name: stream, Subjects: []string{subject}})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", stream, err)
		}

		return nil
	}

	cfg := s.CachedInfo().Config

	subjects := ensureSubjectList(cfg.Subjects, subject)
	if len(subjects) == len(cfg.Subjects) {
		return nil
	}

	cfg.Subjects = subjects

	if _, err := js.UpdateStream(ctx, cfg); err != nil {
		return fmt.Errorf("failed to add subject %s to stream %s: %w", subject, stream, err)
	}

	return nil
}

func isStreamMissingErr(err error) bool {
	return errors.Is(err, jetstream.ErrStreamNotFound) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrStreamNotFound) ||
		errors.Is(err, nats.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrNoResponders)
}

// ensureSubjectList appends subject unless a pattern already covers it.
func ensureSubjectList(subjects []string, subject string) []string {
	for _, pattern := range subjects {
		if matchesSubject(pattern, subject) {
			return subjects
		}
	}

	return append(subjects, subject)
}

// matchesSubject reports whether subject matches a NATS pattern with * and > wildcards.
func matchesSubject(pattern, subject string) bool {
	pt := strings.Split(pattern, ".")
	st := strings.Split(subject, ".")

	for i, tok := range pt {
		if tok == ">" {
			return len(st) > i
		}

		if i >= len(st) {
			return false
		}

		if tok != "*" && tok != st[i] {
			return false
		}
	}

	return len(pt) == len(st)
}
