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

	"github.com/carverauto/vmsync/pkg/models"
	"github.com/rs/zerolog"
)

// FlagTriggers are the virtual server flags mirrored onto monitoring
// triggers. Each trigger carries the flag name as its tag.
//
//nolint:gochecknoglobals // static data
var FlagTriggers = []string{
	models.AttrMonitoring,
	models.AttrMonitoringSNMP,
	models.AttrNoShutdown,
	models.AttrBackupNeeded,
}

// HostDefaults are the monitoring-side settings shared by every host.
type HostDefaults struct {
	GroupID     string
	TemplateID  string
	ProxyID     string
	VSphereHost string
}

// TriggerUpdate sets the status of one trigger.
type TriggerUpdate struct {
	TriggerID string
	Tag       string
	Status    int
}

// InterfaceUpdate moves a host interface to a new IP.
type InterfaceUpdate struct {
	InterfaceID string
	IP          string
}

// HostPlan is the planned change of one monitoring host.
type HostPlan struct {
	Create    *models.HostSpec
	Host      models.HostUpdate
	Interface *InterfaceUpdate
	Triggers  []TriggerUpdate
	// MissingTriggers lists flag tags without a trigger on the host.
	MissingTriggers []string
}

// Empty reports whether the plan mutates nothing.
func (p *HostPlan) Empty() bool {
	return p.Create == nil && p.Host.Empty() && p.Interface == nil && len(p.Triggers) == 0
}

// HostStatus derives the host status from the flags: a host is enabled iff
// at least one flag is set.
func HostStatus(attrs models.Attributes) string {
	for _, flag := range FlagTriggers {
		if attrs.Flag(flag) {
			return models.HostStatusEnabled
		}
	}

	return models.HostStatusDisabled
}

// TriggerStatus is the negation of the flag: a set flag enables its trigger.
func TriggerStatus(attrs models.Attributes, flag string) int {
	if attrs.Flag(flag) {
		return models.TriggerEnabled
	}

	return models.TriggerDisabled
}

func hostMacros(community, vsphereHost string) []models.Macro {
	return []models.Macro{
		{Name: models.MacroSNMPCommunity, Value: community},
		{Name: models.MacroVSphereHost, Value: vsphereHost},
	}
}

// PlanHost computes the changes that make host mirror asset. host is nil
// when no monitoring host exists for the asset yet.
func PlanHost(asset *models.AssetRecord, host *models.MonitoringHost, triggers []models.Trigger, defaults HostDefaults) *HostPlan {
	plan := &HostPlan{}

	if host == nil {
		if asset.ManagementInterface() == "" || asset.Deleted() {
			return plan
		}

		plan.Create = &models.HostSpec{
			Host:       asset.ID(),
			Name:       asset.VisibleID(),
			GroupID:    defaults.GroupID,
			TemplateID: defaults.TemplateID,
			ProxyID:    defaults.ProxyID,
			Status:     HostStatus(asset.Attrs),
			Interface: models.HostInterface{
				Type:  models.InterfaceTypeSNMP,
				Main:  1,
				UseIP: 1,
				IP:    asset.ManagementInterface(),
				Port:  models.SNMPPort,
			},
			Macros: hostMacros(asset.CommunityName(), defaults.VSphereHost),
		}

		return plan
	}

	plan.Host.HostID = host.ID

	if host.Name != asset.VisibleID() {
		plan.Host.Name = asset.VisibleID()
	}

	if ip := asset.ManagementInterface(); ip != "" {
		if iface := host.Interface(); iface != nil && iface.IP != ip {
			plan.Interface = &InterfaceUpdate{InterfaceID: iface.ID, IP: ip}
		}
	}

	if community := asset.CommunityName(); community != "" {
		if current, _ := host.Macro(models.MacroSNMPCommunity); current != community {
			plan.Host.Macros = hostMacros(community, defaults.VSphereHost)
		}
	}

	byTag := make(map[string]models.Trigger, len(triggers))
	for _, t := range triggers {
		byTag[t.Tag] = t
	}

	for _, flag := range FlagTriggers {
		trigger, ok := byTag[flag]
		if !ok {
			plan.MissingTriggers = append(plan.MissingTriggers, flag)

			continue
		}

		if status := TriggerStatus(asset.Attrs, flag); status != trigger.Status {
			plan.Triggers = append(plan.Triggers, TriggerUpdate{TriggerID: trigger.ID, Tag: flag, Status: status})
		}
	}

	if status := HostStatus(asset.Attrs); status != host.Status {
		plan.Host.Status = status
	}

	return plan
}

// PlanHostDeletions returns the hosts whose virtual server is gone or
// deleted. Nothing is deleted when the CMDB index is empty.
func PlanHostDeletions(hosts []*models.MonitoringHost, assetsByID map[string]*models.AssetRecord) []*models.MonitoringHost {
	if len(assetsByID) == 0 {
		return nil
	}

	var out []*models.MonitoringHost

	for _, h := range hosts {
		asset, ok := assetsByID[h.Host]
		if !ok || asset.Deleted() {
			out = append(out, h)
		}
	}

	return out
}

func (r *Reconciler) hostDefaults(ctx context.Context) (HostDefaults, error) {
	defaults := HostDefaults{VSphereHost: r.opts.Datasource}

	groupID, err := r.monitoring.GetHostGroupID(ctx, r.opts.HostGroup)
	if err != nil {
		return defaults, fmt.Errorf("%w: host group lookup: %w", ErrStageInit, err)
	}

	if groupID == "" {
		return defaults, fmt.Errorf("%w: %w: %s", ErrStageInit, errHostGroupMissing, r.opts.HostGroup)
	}

	defaults.GroupID = groupID

	if r.opts.Template != "" {
		if defaults.TemplateID, err = r.monitoring.GetTemplateID(ctx, r.opts.Template); err != nil {
			return defaults, fmt.Errorf("%w: template lookup: %w", ErrStageInit, err)
		}

		if defaults.TemplateID == "" {
			return defaults, fmt.Errorf("%w: %w: %s", ErrStageInit, errTemplateMissing, r.opts.Template)
		}
	}

	if r.opts.Proxy != "" {
		if defaults.ProxyID, err = r.monitoring.GetProxyID(ctx, r.opts.Proxy); err != nil {
			return defaults, fmt.Errorf("%w: proxy lookup: %w", ErrStageInit, err)
		}

		if defaults.ProxyID == "" {
			return defaults, fmt.Errorf("%w: %w: %s", ErrStageInit, errProxyMissing, r.opts.Proxy)
		}
	}

	return defaults, nil
}

// SyncMonitoring is Stage 2: the CMDB into monitoring.
func (r *Reconciler) SyncMonitoring(ctx context.Context, stats *models.RunStats) error {
	log := r.logger.With().Str("run_id", stats.RunID).Str("stage", "monitoring").Logger()

	assets, err := LoadAssets(ctx, r.cmdb, r.opts.Datasource)
	if err != nil {
		return err
	}

	CountStats(assets, stats)

	defaults, err := r.hostDefaults(ctx)
	if err != nil {
		if r.opts.DryRun && errors.Is(err, errHostGroupMissing) {
			log.Warn().Err(err).Msg("Dry run: host group missing, skipping monitoring stage")

			return nil
		}

		return err
	}

	hosts, err := r.monitoring.GetHosts(ctx, defaults.GroupID)
	if err != nil {
		return fmt.Errorf("%w: list hosts: %w", ErrStageInit, err)
	}

	hostsByKey := make(map[string]*models.MonitoringHost, len(hosts))
	for _, h := range hosts {
		hostsByKey[h.Host] = h
	}

	for _, asset := range assets {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if asset.ID() == "" {
			continue
		}

		r.syncHost(ctx, &log, asset, hostsByKey[asset.ID()], defaults, &stats.Monitoring)
	}

	for _, h := range PlanHostDeletions(hosts, indexAssets(assets, models.AttrID)) {
		entry := log.With().Str("host", h.Host).Str("host_id", h.ID).Logger()

		if r.opts.DryRun {
			entry.Info().Msg("Dry run: would delete host")

			stats.Monitoring.Deleted++

			continue
		}

		if err := r.monitoring.DeleteHost(ctx, h.ID); err != nil {
			entry.Error().Err(err).Msg("Failed to delete host")

			stats.Monitoring.Failed++

			continue
		}

		stats.Monitoring.Deleted++

		entry.Info().Msg("Deleted host")
	}

	return nil
}

func (r *Reconciler) syncHost(
	ctx context.Context,
	log *zerolog.Logger,
	asset *models.AssetRecord,
	host *models.MonitoringHost,
	defaults HostDefaults,
	counts *models.StageStats) {
	entry := log.With().Str("visible_id", asset.VisibleID()).Str("host", asset.ID()).Logger()

	var triggers []models.Trigger

	if host != nil {
		var err error

		triggers, err = r.monitoring.GetHostTriggers(ctx, host.ID)
		if err != nil {
			entry.Error().Err(err).Msg("Failed to read host triggers")

			counts.Failed++

			return
		}
	}

	plan := PlanHost(asset, host, triggers, defaults)

	for _, tag := range plan.MissingTriggers {
		entry.Warn().Str("tag", tag).Msg("Host has no trigger for flag")
	}

	if plan.Empty() {
		return
	}

	if plan.Create != nil {
		r.createHost(ctx, &entry, plan.Create, counts)

		return
	}

	r.updateHost(ctx, &entry, plan, counts)
}

func (r *Reconciler) createHost(ctx context.Context, log *zerolog.Logger, spec *models.HostSpec, counts *models.StageStats) {
	if r.opts.DryRun {
		log.Info().Str("ip", spec.Interface.IP).Msg("Dry run: would create host")

		counts.Created++

		return
	}

	hostID, err := r.monitoring.CreateHost(ctx, spec)
	if err != nil {
		log.Error().Err(err).Str("ip", spec.Interface.IP).Msg("Failed to create host")

		counts.Failed++

		return
	}

	counts.Created++

	log.Info().Str("host_id", hostID).Msg("Created host")
}

// updateHost applies trigger, interface and host changes independently.
func (r *Reconciler) updateHost(ctx context.Context, log *zerolog.Logger, plan *HostPlan, counts *models.StageStats) {
	for _, t := range plan.Triggers {
		if r.opts.DryRun {
			log.Info().Str("tag", t.Tag).Int("status", t.Status).Msg("Dry run: would update trigger")

			counts.Updated++

			continue
		}

		if err := r.monitoring.UpdateTrigger(ctx, t.TriggerID, t.Status); err != nil {
			log.Error().Err(err).Str("tag", t.Tag).Msg("Failed to update trigger")

			counts.Failed++

			continue
		}

		counts.Updated++

		log.Info().Str("tag", t.Tag).Int("status", t.Status).Msg("Updated trigger")
	}

	if iface := plan.Interface; iface != nil {
		r.updateInterface(ctx, log, iface, counts)
	}

	if plan.Host.Empty() {
		return
	}

	if r.opts.DryRun {
		log.Info().Str("name", plan.Host.Name).Str("status", plan.Host.Status).Msg("Dry run: would update host")

		counts.Updated++

		return
	}

	if err := r.monitoring.UpdateHost(ctx, &plan.Host); err != nil {
		log.Error().Err(err).Msg("Failed to update host")

		counts.Failed++

		return
	}

	counts.Updated++

	log.Info().Str("name", plan.Host.Name).Str("status", plan.Host.Status).Msg("Updated host")
}

func (r *Reconciler) updateInterface(ctx context.Context, log *zerolog.Logger, iface *InterfaceUpdate, counts *models.StageStats) {
	if r.opts.DryRun {
		log.Info().Str("ip", iface.IP).Msg("Dry run: would update host interface")

		counts.Updated++

		return
	}

	if err := r.monitoring.UpdateInterface(ctx, iface.InterfaceID, iface.IP); err != nil {
		log.Error().Err(err).Str("ip", iface.IP).Msg("Failed to update host interface")

		counts.Failed++

		return
	}

	counts.Updated++

	log.Info().Str("ip", iface.IP).Msg("Updated host interface")
}
