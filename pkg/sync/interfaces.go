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

//go:generate mockgen -destination=mock_sync.go -package=sync github.com/carverauto/vmsync/pkg/sync Reconciler,RunPublisher,Clock,Ticker

import (
	"context"
	"time"

	"github.com/carverauto/vmsync/pkg/models"
)

// Reconciler runs reconciliation passes.
type Reconciler interface {
	Init(ctx context.Context) error
	Run(ctx context.Context) (*models.RunStats, error)
}

// RunPublisher receives the summary of every run.
type RunPublisher interface {
	PublishRunSummary(ctx context.Context, datasource string, stats *models.RunStats, runErr error) error
}

// Clock defines an interface for time-related operations (to mock ticker).
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker defines an interface for the ticker used in the run loop.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}
