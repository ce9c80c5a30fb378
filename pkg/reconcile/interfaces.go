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
//go:generate mockgen -destination=mock_reconcile.go -package=reconcile github.com/carverauto/vmsync/pkg/reconcile Discovery,CMDB,Monitoring

package reconcile

import (
	"context"

	"github.com/carverauto/vmsync/pkg/models"
)

// Discovery lists the virtual machines currently known to the hypervisor.
// A partial result is returned together with an error wrapping
// models.ErrPartialDiscovery.
type Discovery interface {
	ListInstances(ctx context.Context) ([]*models.InventoryRecord, error)
}

// CMDB is the system of record for virtual servers and their linked entities.
type CMDB interface {
	GetEntities(ctx context.Context, entityType string, query *models.EntityQuery) ([]models.Attributes, error)
	GetRelatedEntities(ctx context.Context, entityType, elid, relationType string) ([]models.LinkedEntity, error)
	CreateEntity(ctx context.Context, entityType string, custom bool, attrs models.Attributes) (string, error)
	UpdateEntity(ctx context.Context, entityType string, custom bool, elid string, attrs models.Attributes) error
	DeleteEntity(ctx context.Context, entityType string, custom bool, elid string) error
	CreateRelatedEntity(ctx context.Context, entityType, elid, relationType, linkedElid string) error
}

// Monitoring manages hosts in the monitoring system. Lookups by name return
// an empty id when nothing matches.
type Monitoring interface {
	GetHostGroupID(ctx context.Context, name string) (string, error)
	CreateHostGroup(ctx context.Context, name string) (string, error)
	GetTemplateID(ctx context.Context, name string) (string, error)
	GetProxyID(ctx context.Context, name string) (string, error)
	GetHosts(ctx context.Context, groupID string) ([]*models.MonitoringHost, error)
	GetHostTriggers(ctx context.Context, hostID string) ([]models.Trigger, error)
	CreateHost(ctx context.Context, spec *models.HostSpec) (string, error)
	UpdateHost(ctx context.Context, update *models.HostUpdate) error
	UpdateInterface(ctx context.Context, interfaceID, ip string) error
	UpdateTrigger(ctx context.Context, triggerID string, status int) error
	DeleteHost(ctx context.Context, hostID string) error
}
