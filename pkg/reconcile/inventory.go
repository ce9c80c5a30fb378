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
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carverauto/vmsync/pkg/models"
	"github.com/rs/zerolog"
)

// Transition names the lifecycle change an AssetPlan carries.
type Transition string

const (
	TransitionNone     Transition = ""
	TransitionCreate   Transition = "create"
	TransitionUndelete Transition = "undelete"
	TransitionDelete   Transition = "delete"
)

// Source is one discovered VM flattened into source attributes.
type Source struct {
	Attrs  models.Attributes
	Linked map[string]map[string]models.Attributes
}

// SourceOf flattens rec. The datasource falls back to the configured one
// and the last backup is extracted from the annotation.
func SourceOf(rec *models.InventoryRecord, datasource string, loc *time.Location) Source {
	attrs := rec.Attributes()

	if attrs.String(models.InvDatasource) == "" {
		attrs[models.InvDatasource] = datasource
	}

	attrs[models.InvLastBackup] = nil
	if backup, ok := ExtractLastBackup(rec.Annotation, loc); ok {
		attrs[models.InvLastBackup] = backup
	}

	return Source{
		Attrs: attrs,
		Linked: map[string]map[string]models.Attributes{
			IPAddressClass.Name:  rec.IPAttributes(),
			FileSystemClass.Name: rec.MountAttributes(),
		},
	}
}

// AssetPlan is the planned change of one virtual server.
type AssetPlan struct {
	// Record is nil when the virtual server will be created.
	Record     *models.AssetRecord
	Update     UpdateSet
	Linked     []LinkedPlan
	Transition Transition
}

// Empty reports whether applying the plan sends no mutation.
func (p *AssetPlan) Empty() bool {
	if len(p.Update) > 0 {
		return false
	}

	for i := range p.Linked {
		if !p.Linked[i].Empty() {
			return false
		}
	}

	return true
}

// PlanAsset computes the changes that make target mirror src. target is nil
// for a VM seen for the first time.
func PlanAsset(src Source, target *models.AssetRecord, loc *time.Location) *AssetPlan {
	targetAttrs := models.Attributes{}
	if target != nil {
		targetAttrs = target.Attrs.Clone()
	}

	if src.Attrs.String(models.InvLastBackup) != "" {
		if stored := targetAttrs.String(models.AttrLastBackup); stored != "" {
			targetAttrs[models.AttrLastBackup] = NormalizeBackup(stored, loc)
		}
	}

	plan := &AssetPlan{Record: target, Update: Diff(src.Attrs, targetAttrs, VirtualServerTable)}
	parent := ParentStateOf(target, false)
	parent.Attrs = targetAttrs

	for _, class := range LinkedClasses {
		var existing map[string]models.LinkedEntity
		if target != nil {
			existing = target.LinkedOf(class.Name)
		}

		lp := PlanLinked(class, src.Linked[class.Name], existing, parent)
		merge(plan.Update, lp.Parent)
		plan.Linked = append(plan.Linked, lp)
	}

	switch {
	case target == nil:
		plan.Transition = TransitionCreate
		plan.Update[models.AttrNewServer] = models.FlagYes
	case StateOf(target) == StateDeleted:
		plan.Transition = TransitionUndelete
		Undelete(plan.Update)
	}

	return plan
}

// SyncInventory is Stage 1: discovery into the CMDB.
func (r *Reconciler) SyncInventory(ctx context.Context, stats *models.RunStats) error {
	log := r.logger.With().Str("run_id", stats.RunID).Str("stage", "inventory").Logger()

	records, err := r.discovery.ListInstances(ctx)

	partial := errors.Is(err, models.ErrPartialDiscovery)
	if err != nil && !partial {
		return fmt.Errorf("%w: discovery: %w", ErrStageInit, err)
	}

	if partial {
		log.Warn().Err(err).Int("records", len(records)).Msg("Discovery returned a partial result")
	}

	stats.Discovered = len(records)

	assets, err := LoadAssets(ctx, r.cmdb, r.opts.Datasource)
	if err != nil {
		return err
	}

	byUUID := indexAssets(assets, models.AttrUUID)
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if rec.UUID == "" {
			log.Warn().Str("name", rec.Name).Msg("Skipping VM without instance UUID")

			continue
		}

		if _, dup := seen[rec.UUID]; dup {
			log.Warn().Str("uuid", rec.UUID).Str("name", rec.Name).Msg("Skipping duplicate VM")

			continue
		}

		seen[rec.UUID] = struct{}{}

		plan := PlanAsset(SourceOf(rec, r.opts.Datasource, r.opts.Location), byUUID[rec.UUID], r.opts.Location)
		r.applyAsset(ctx, &log, plan, &stats.Inventory)
	}

	if len(records) == 0 || partial {
		log.Warn().
			Int("records", len(records)).
			Bool("partial", partial).
			Msg("Skipping deletion sweep for incomplete discovery")

		return nil
	}

	for _, asset := range assets {
		if !NeedsDeletion(asset, seen) {
			continue
		}

		r.applyAsset(ctx, &log, PlanDeletion(asset), &stats.Inventory)
	}

	return nil
}

func (r *Reconciler) applyAsset(ctx context.Context, log *zerolog.Logger, plan *AssetPlan, counts *models.StageStats) {
	if plan.Empty() {
		return
	}

	if plan.Record == nil {
		r.createAsset(ctx, log, plan, counts)

		return
	}

	entry := log.With().
		Str("visible_id", plan.Record.VisibleID()).
		Str("uuid", plan.Record.UUID()).
		Str("elid", plan.Record.Elid()).
		Logger()

	for i := range plan.Linked {
		r.applyLinked(ctx, &entry, plan.Record.Elid(), &plan.Linked[i], counts)
	}

	if len(plan.Update) == 0 {
		return
	}

	if r.opts.DryRun {
		entry.Info().Interface("update", plan.Update).Str("transition", string(plan.Transition)).
			Msg("Dry run: would update virtual server")

		counts.Updated++

		return
	}

	err := r.cmdb.UpdateEntity(ctx, models.EntityVirtualServer, false, plan.Record.Elid(), plan.Update)
	if err != nil {
		entry.Error().Err(err).Interface("update", plan.Update).Msg("Failed to update virtual server")

		counts.Failed++

		return
	}

	counts.Updated++

	entry.Info().Str("transition", string(plan.Transition)).Msg("Updated virtual server")
	entry.Debug().Interface("update", plan.Update).Msg("Virtual server attributes")
}

func (r *Reconciler) createAsset(ctx context.Context, log *zerolog.Logger, plan *AssetPlan, counts *models.StageStats) {
	entry := log.With().
		Str("visible_id", plan.Update.String(models.AttrVisibleID)).
		Str("uuid", plan.Update.String(models.AttrUUID)).
		Logger()

	elid := ""

	if r.opts.DryRun {
		entry.Info().Interface("attributes", plan.Update).Msg("Dry run: would create virtual server")
	} else {
		var err error

		elid, err = r.cmdb.CreateEntity(ctx, models.EntityVirtualServer, false, plan.Update)
		if err != nil {
			entry.Error().Err(err).Interface("attributes", plan.Update).Msg("Failed to create virtual server")

			counts.Failed++

			return
		}

		entry.Info().Str("elid", elid).Msg("Created virtual server")
	}

	counts.Created++

	for i := range plan.Linked {
		r.applyLinked(ctx, &entry, elid, &plan.Linked[i], counts)
	}
}

// applyLinked sends one class's sub-entity mutations. A failure is logged
// and the remaining siblings are still processed.
func (r *Reconciler) applyLinked(
	ctx context.Context, log *zerolog.Logger, parentElid string, plan *LinkedPlan, counts *models.StageStats) {
	class := plan.Class
	entry := log.With().Str("class", class.Name).Logger()

	if plan.Guarded && len(plan.Create) == 0 && len(plan.Update) == 0 {
		entry.Debug().Msg("No source entities, keeping existing ones")
	}

	for _, c := range plan.Create {
		if r.opts.DryRun {
			entry.Info().Str("key", c.Key).Msg("Dry run: would create linked entity")

			counts.Created++

			continue
		}

		elid, err := r.cmdb.CreateEntity(ctx, class.Name, class.Custom, c.Attrs)
		if err == nil {
			err = r.cmdb.CreateRelatedEntity(ctx, models.EntityVirtualServer, parentElid, class.Relation, elid)
		}

		if err != nil {
			entry.Error().Err(err).Str("key", c.Key).Interface("attributes", c.Attrs).Msg("Failed to create linked entity")

			counts.Failed++

			continue
		}

		counts.Created++

		entry.Info().Str("key", c.Key).Msg("Created linked entity")
	}

	for _, c := range plan.Update {
		if r.opts.DryRun {
			entry.Info().Str("key", c.Key).Interface("update", c.Attrs).Msg("Dry run: would update linked entity")

			counts.Updated++

			continue
		}

		if err := r.cmdb.UpdateEntity(ctx, class.Name, class.Custom, c.Elid, c.Attrs); err != nil {
			entry.Error().Err(err).Str("key", c.Key).Interface("update", c.Attrs).Msg("Failed to update linked entity")

			counts.Failed++

			continue
		}

		counts.Updated++

		entry.Info().Str("key", c.Key).Interface("update", c.Attrs).Msg("Updated linked entity")
	}

	for _, c := range plan.Delete {
		if r.opts.DryRun {
			entry.Info().Str("key", c.Key).Msg("Dry run: would delete linked entity")

			counts.Deleted++

			continue
		}

		if err := r.cmdb.DeleteEntity(ctx, class.Name, class.Custom, c.Elid); err != nil {
			entry.Error().Err(err).Str("key", c.Key).Msg("Failed to delete linked entity")

			counts.Failed++

			continue
		}

		counts.Deleted++

		entry.Info().Str("key", c.Key).Msg("Deleted linked entity")
	}
}
