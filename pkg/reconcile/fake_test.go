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
	"sort"
	"sync"

	"github.com/carverauto/vmsync/pkg/models"
)

var errFake = errors.New("fake failure")

// fakeCMDB is an in-memory CMDB keeping entities by type and elid.
type fakeCMDB struct {
	mu        sync.Mutex
	nextID    int
	entities  map[string]map[string]models.Attributes
	relations map[string]map[string][]string // parent elid -> plural relation -> child elids
	mutations int
	failOn    map[string]bool // "create:fileSystem", "update:virtualServer", ...
}

func newFakeCMDB() *fakeCMDB {
	return &fakeCMDB{
		entities:  make(map[string]map[string]models.Attributes),
		relations: make(map[string]map[string][]string),
		failOn:    make(map[string]bool),
	}
}

func pluralOf(relation string) string {
	for _, c := range LinkedClasses {
		if c.Relation == relation {
			return c.RelationPlural
		}
	}

	return relation
}

func (f *fakeCMDB) seed(entityType string, attrs models.Attributes) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.store(entityType, attrs)
}

func (f *fakeCMDB) store(entityType string, attrs models.Attributes) string {
	f.nextID++
	elid := fmt.Sprintf("E%03d", f.nextID)

	stored := attrs.Clone()
	stored[models.AttrElid] = elid

	if entityType == models.EntityVirtualServer && stored.String(models.AttrID) == "" {
		stored[models.AttrID] = fmt.Sprintf("VS%03d", f.nextID)
	}

	if f.entities[entityType] == nil {
		f.entities[entityType] = make(map[string]models.Attributes)
	}

	f.entities[entityType][elid] = stored

	return elid
}

func (f *fakeCMDB) link(parentElid, relation, childElid string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.linkLocked(parentElid, relation, childElid)
}

func (f *fakeCMDB) linkLocked(parentElid, relation, childElid string) {
	if f.relations[parentElid] == nil {
		f.relations[parentElid] = make(map[string][]string)
	}

	plural := pluralOf(relation)
	f.relations[parentElid][plural] = append(f.relations[parentElid][plural], childElid)
}

func (f *fakeCMDB) get(entityType, elid string) models.Attributes {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.entities[entityType][elid]
}

func (f *fakeCMDB) all(entityType string) []models.Attributes {
	f.mu.Lock()
	defer f.mu.Unlock()

	elids := make([]string, 0, len(f.entities[entityType]))
	for elid := range f.entities[entityType] {
		elids = append(elids, elid)
	}

	sort.Strings(elids)

	out := make([]models.Attributes, 0, len(elids))
	for _, elid := range elids {
		out = append(out, f.entities[entityType][elid].Clone())
	}

	return out
}

func (f *fakeCMDB) GetEntities(_ context.Context, entityType string, query *models.EntityQuery) ([]models.Attributes, error) {
	if f.failOn["get:"+entityType] {
		return nil, errFake
	}

	var out []models.Attributes

	for _, attrs := range f.all(entityType) {
		match := true

		for field, r := range query.Restrictions {
			if attrs.String(field) != r.Value {
				match = false
			}
		}

		if match {
			out = append(out, attrs)
		}
	}

	return out, nil
}

func (f *fakeCMDB) GetRelatedEntities(_ context.Context, _, elid, relationType string) ([]models.LinkedEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.LinkedEntity

	for _, child := range f.relations[elid][relationType] {
		for _, byElid := range f.entities {
			if attrs, ok := byElid[child]; ok {
				out = append(out, models.LinkedEntity{Entity: attrs.Clone(), Relation: models.Attributes{}})
			}
		}
	}

	return out, nil
}

func (f *fakeCMDB) CreateEntity(_ context.Context, entityType string, _ bool, attrs models.Attributes) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOn["create:"+entityType] {
		return "", errFake
	}

	f.mutations++

	return f.store(entityType, attrs), nil
}

func (f *fakeCMDB) UpdateEntity(_ context.Context, entityType string, _ bool, elid string, attrs models.Attributes) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOn["update:"+entityType] {
		return errFake
	}

	stored, ok := f.entities[entityType][elid]
	if !ok {
		return errFake
	}

	f.mutations++

	for k, v := range attrs {
		stored[k] = v
	}

	return nil
}

func (f *fakeCMDB) DeleteEntity(_ context.Context, entityType string, _ bool, elid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOn["delete:"+entityType] {
		return errFake
	}

	if _, ok := f.entities[entityType][elid]; !ok {
		return errFake
	}

	f.mutations++

	delete(f.entities[entityType], elid)

	for _, rels := range f.relations {
		for plural, children := range rels {
			kept := children[:0]

			for _, c := range children {
				if c != elid {
					kept = append(kept, c)
				}
			}

			rels[plural] = kept
		}
	}

	return nil
}

func (f *fakeCMDB) CreateRelatedEntity(_ context.Context, _, elid, relationType, linkedElid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.mutations++
	f.linkLocked(elid, relationType, linkedElid)

	return nil
}

// fakeMonitoring is an in-memory monitoring system. Created hosts get one
// enabled trigger per flag, as the template would provide.
type fakeMonitoring struct {
	mu        sync.Mutex
	nextID    int
	groups    map[string]string
	hosts     map[string]*models.MonitoringHost
	triggers  map[string][]models.Trigger
	mutations int
	failOn    map[string]bool
}

func newFakeMonitoring() *fakeMonitoring {
	return &fakeMonitoring{
		groups:   make(map[string]string),
		hosts:    make(map[string]*models.MonitoringHost),
		triggers: make(map[string][]models.Trigger),
		failOn:   make(map[string]bool),
	}
}

func (f *fakeMonitoring) id() string {
	f.nextID++

	return fmt.Sprintf("%d", 10000+f.nextID)
}

func (f *fakeMonitoring) GetHostGroupID(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.groups[name], nil
}

func (f *fakeMonitoring) CreateHostGroup(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.groups[name] = f.id()

	return f.groups[name], nil
}

func (*fakeMonitoring) GetTemplateID(_ context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}

	return "T1", nil
}

func (*fakeMonitoring) GetProxyID(_ context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}

	return "P1", nil
}

func (f *fakeMonitoring) GetHosts(_ context.Context, _ string) ([]*models.MonitoringHost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, len(f.hosts))
	for id := range f.hosts {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	out := make([]*models.MonitoringHost, 0, len(ids))

	for _, id := range ids {
		h := *f.hosts[id]
		h.Interfaces = append([]models.HostInterface(nil), h.Interfaces...)
		h.Macros = append([]models.Macro(nil), h.Macros...)
		out = append(out, &h)
	}

	return out, nil
}

func (f *fakeMonitoring) GetHostTriggers(_ context.Context, hostID string) ([]models.Trigger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]models.Trigger(nil), f.triggers[hostID]...), nil
}

func (f *fakeMonitoring) CreateHost(_ context.Context, spec *models.HostSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOn["create"] {
		return "", errFake
	}

	f.mutations++

	id := f.id()
	iface := spec.Interface
	iface.ID = f.id()

	f.hosts[id] = &models.MonitoringHost{
		ID:         id,
		Host:       spec.Host,
		Name:       spec.Name,
		Status:     spec.Status,
		Interfaces: []models.HostInterface{iface},
		Macros:     append([]models.Macro(nil), spec.Macros...),
	}

	for _, tag := range FlagTriggers {
		f.triggers[id] = append(f.triggers[id], models.Trigger{ID: f.id(), Tag: tag, Status: models.TriggerEnabled})
	}

	return id, nil
}

func (f *fakeMonitoring) UpdateHost(_ context.Context, update *models.HostUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, ok := f.hosts[update.HostID]
	if !ok || f.failOn["update"] {
		return errFake
	}

	f.mutations++

	if update.Name != "" {
		h.Name = update.Name
	}

	if update.Status != "" {
		h.Status = update.Status
	}

	if len(update.Macros) > 0 {
		h.Macros = append([]models.Macro(nil), update.Macros...)
	}

	return nil
}

func (f *fakeMonitoring) UpdateInterface(_ context.Context, interfaceID, ip string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, h := range f.hosts {
		for i := range h.Interfaces {
			if h.Interfaces[i].ID == interfaceID {
				f.mutations++
				h.Interfaces[i].IP = ip

				return nil
			}
		}
	}

	return errFake
}

func (f *fakeMonitoring) UpdateTrigger(_ context.Context, triggerID string, status int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOn["trigger"] {
		return errFake
	}

	for _, ts := range f.triggers {
		for i := range ts {
			if ts[i].ID == triggerID {
				f.mutations++
				ts[i].Status = status

				return nil
			}
		}
	}

	return errFake
}

func (f *fakeMonitoring) DeleteHost(_ context.Context, hostID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.hosts[hostID]; !ok {
		return errFake
	}

	f.mutations++

	delete(f.hosts, hostID)
	delete(f.triggers, hostID)

	return nil
}

// fakeDiscovery returns a fixed inventory.
type fakeDiscovery struct {
	records []*models.InventoryRecord
	err     error
}

func (f *fakeDiscovery) ListInstances(context.Context) ([]*models.InventoryRecord, error) {
	return f.records, f.err
}
