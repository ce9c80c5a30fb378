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
// Package reconcile propagates virtual machine state from discovery into the
// CMDB and from the CMDB into monitoring.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/models"
	"github.com/google/uuid"
)

// Options configures a Reconciler.
type Options struct {
	// Datasource is the vCenter host. It is mirrored onto virtual servers
	// and restricts which CMDB records this instance owns.
	Datasource string
	HostGroup  string
	Template   string
	Proxy      string
	DryRun     bool
	// Location renders backup timestamps. Nil means time.Local.
	Location *time.Location
}

// Reconciler runs the two reconciliation stages against its collaborators.
type Reconciler struct {
	discovery  Discovery
	cmdb       CMDB
	monitoring Monitoring
	opts       Options
	logger     logger.Logger
	now        func() time.Time
}

// New creates a Reconciler.
func New(discovery Discovery, cmdb CMDB, monitoring Monitoring, opts *Options, log logger.Logger) *Reconciler {
	r := &Reconciler{
		discovery:  discovery,
		cmdb:       cmdb,
		monitoring: monitoring,
		logger:     log,
		now:        time.Now,
	}

	if opts != nil {
		r.opts = *opts
	}

	return r
}

// Init prepares the monitoring side: the host group is created when missing.
func (r *Reconciler) Init(ctx context.Context) error {
	groupID, err := r.monitoring.GetHostGroupID(ctx, r.opts.HostGroup)
	if err != nil {
		return fmt.Errorf("%w: host group lookup: %w", ErrStageInit, err)
	}

	if groupID != "" {
		return nil
	}

	if r.opts.DryRun {
		r.logger.Info().Str("host_group", r.opts.HostGroup).Msg("Dry run: would create host group")

		return nil
	}

	if _, err := r.monitoring.CreateHostGroup(ctx, r.opts.HostGroup); err != nil {
		return fmt.Errorf("%w: create host group: %w", ErrStageInit, err)
	}

	r.logger.Info().Str("host_group", r.opts.HostGroup).Msg("Created host group")

	return nil
}

// Run executes Stage 1 and then Stage 2. Stage 2 re-reads the CMDB so it
// sees the changes Stage 1 made.
func (r *Reconciler) Run(ctx context.Context) (*models.RunStats, error) {
	stats := &models.RunStats{
		RunID:     uuid.New().String(),
		StartedAt: r.now(),
		DryRun:    r.opts.DryRun,
	}

	runLog := r.logger.With().Str("run_id", stats.RunID).Logger()
	runLog.Info().Bool("dry_run", r.opts.DryRun).Msg("Sync started")

	defer func() {
		stats.Duration = r.now().Sub(stats.StartedAt)
	}()

	if err := r.SyncInventory(ctx, stats); err != nil {
		return stats, err
	}

	if err := r.SyncMonitoring(ctx, stats); err != nil {
		return stats, err
	}

	runLog.Info().
		Int("vs_new", stats.VSNew).
		Int("vs_deleted", stats.VSDeleted).
		Interface("inventory", stats.Inventory).
		Interface("monitoring", stats.Monitoring).
		Msg("Sync completed")

	return stats, nil
}

// LoadAssets reads every virtual server of datasource with its linked
// entities. Any failure is a stage initialization failure.
func LoadAssets(ctx context.Context, cmdb CMDB, datasource string) ([]*models.AssetRecord, error) {
	query := &models.EntityQuery{Attributes: models.VirtualServerAttributes}
	if datasource != "" {
		query.Restrictions = map[string]models.Restriction{
			models.AttrDatasource: {Operator: models.OperatorEquals, Value: datasource},
		}
	}

	entities, err := cmdb.GetEntities(ctx, models.EntityVirtualServer, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list virtual servers: %w", ErrStageInit, err)
	}

	records := make([]*models.AssetRecord, 0, len(entities))

	for _, attrs := range entities {
		rec := &models.AssetRecord{Attrs: attrs, Linked: make(map[string]map[string]models.LinkedEntity)}

		for _, class := range LinkedClasses {
			linked, err := cmdb.GetRelatedEntities(ctx, models.EntityVirtualServer, rec.Elid(), class.RelationPlural)
			if err != nil {
				return nil, fmt.Errorf("%w: list %s of %s: %w", ErrStageInit, class.Name, rec.VisibleID(), err)
			}

			indexed := make(map[string]models.LinkedEntity, len(linked))
			for _, l := range linked {
				indexed[l.Entity.String(class.Index)] = l
			}

			rec.Linked[class.Name] = indexed
		}

		records = append(records, rec)
	}

	return records, nil
}

// indexAssets keys records by the given attribute, skipping empty keys.
func indexAssets(records []*models.AssetRecord, key string) map[string]*models.AssetRecord {
	out := make(map[string]*models.AssetRecord, len(records))

	for _, rec := range records {
		if k := rec.Attrs.String(key); k != "" {
			if _, dup := out[k]; !dup {
				out[k] = rec
			}
		}
	}

	return out
}

// CountStats computes the run summary counters from a CMDB snapshot.
func CountStats(records []*models.AssetRecord, stats *models.RunStats) {
	stats.VSNew, stats.VSDeleted = 0, 0

	for _, rec := range records {
		if rec.NewServer() {
			stats.VSNew++
		}

		if rec.Deleted() && !rec.Attrs.Flag(models.AttrDeleteConfirmed) {
			stats.VSDeleted++
		}
	}
}
