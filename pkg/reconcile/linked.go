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
	"math"
	"sort"

	"github.com/carverauto/vmsync/pkg/models"
)

const bytesPerGiB = 1024 * 1024 * 1024

// LinkedClass describes a class of sub-entities attached to a virtual server.
type LinkedClass struct {
	// Name is the CMDB entity type.
	Name string
	// Index is the natural key attribute on the CMDB entity.
	Index string
	// Custom marks entity types living under the custom entity API.
	Custom bool
	// Relation links one entity to its parent; RelationPlural queries them.
	Relation       string
	RelationPlural string
	Table          TransformTable

	// Derive computes class-specific attributes before diffing.
	Derive func(models.Attributes) models.Attributes
	// Aggregate folds all derived source entities into parent attributes.
	Aggregate func(map[string]models.Attributes) models.Attributes
	// ManagementPointer is set when the parent's management interface
	// references entities of this class by natural key.
	ManagementPointer bool
}

//nolint:gochecknoglobals // linked class definitions are static data
var (
	IPAddressClass = &LinkedClass{
		Name:              models.EntityIPAddress,
		Index:             models.AttrIPAddress,
		Custom:            true,
		Relation:          models.RelationIPAddress,
		RelationPlural:    models.RelationIPAddresses,
		Table:             IPAddressTable,
		ManagementPointer: true,
	}

	FileSystemClass = &LinkedClass{
		Name:           models.EntityFileSystem,
		Index:          models.AttrMountpoint,
		Relation:       models.RelationFileSystem,
		RelationPlural: models.RelationFileSystems,
		Table:          FileSystemTable,
		Derive:         deriveFileSystem,
		Aggregate:      aggregateFileSystems,
	}

	// LinkedClasses lists every class reconciled under a virtual server.
	LinkedClasses = []*LinkedClass{IPAddressClass, FileSystemClass}
)

// GiBRound converts bytes to GiB rounded to three decimals.
func GiBRound(bytes int64) float64 {
	return math.Round(float64(bytes)/bytesPerGiB*1000) / 1000
}

func byteValue(attrs models.Attributes, key string) int64 {
	switch v := attrs[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func deriveFileSystem(source models.Attributes) models.Attributes {
	out := source.Clone()
	capacity := byteValue(source, models.InvCapacity)
	used := capacity - byteValue(source, models.InvFreeSpace)

	out[models.AttrCapacityGB] = GiBRound(capacity)
	out[models.AttrUsedGB] = GiBRound(used)

	return out
}

func aggregateFileSystems(derived map[string]models.Attributes) models.Attributes {
	var total, used int64

	for _, attrs := range derived {
		capacity := byteValue(attrs, models.InvCapacity)
		total += capacity
		used += capacity - byteValue(attrs, models.InvFreeSpace)
	}

	return models.Attributes{
		models.AttrHddTotal: GiBRound(total),
		models.AttrHddUsed:  GiBRound(used),
	}
}

// ParentState is the part of the parent record the linked reconciler reads.
type ParentState struct {
	Elid                string
	VisibleID           string
	ManagementInterface string
	Deleted             bool
	Attrs               models.Attributes
}

// ParentStateOf snapshots an existing record. deleted reports whether the
// record is being deleted in this pass.
func ParentStateOf(rec *models.AssetRecord, deleted bool) ParentState {
	if rec == nil {
		return ParentState{Deleted: deleted, Attrs: models.Attributes{}}
	}

	return ParentState{
		Elid:                rec.Elid(),
		VisibleID:           rec.VisibleID(),
		ManagementInterface: rec.ManagementInterface(),
		Deleted:             deleted,
		Attrs:               rec.Attrs,
	}
}

// LinkedChange is one planned sub-entity mutation.
type LinkedChange struct {
	Key   string
	Elid  string
	Attrs models.Attributes
}

// LinkedPlan is the outcome of reconciling one class under one parent.
type LinkedPlan struct {
	Class  *LinkedClass
	Create []LinkedChange
	Update []LinkedChange
	Delete []LinkedChange
	// Guarded is set when deletions were suppressed because the source
	// was empty for a parent that is not being deleted.
	Guarded bool
	// Parent holds attributes to fold into the parent's update set.
	Parent UpdateSet
}

// Empty reports whether the plan mutates nothing.
func (p *LinkedPlan) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Delete) == 0 && len(p.Parent) == 0
}

// PlanLinked matches source sub-entities to the parent's existing ones by
// natural key. It never mutates its inputs.
func PlanLinked(
	class *LinkedClass,
	source map[string]models.Attributes,
	target map[string]models.LinkedEntity,
	parent ParentState) LinkedPlan {
	plan := LinkedPlan{Class: class, Parent: UpdateSet{}}

	derived := make(map[string]models.Attributes, len(source))

	for key, attrs := range source {
		if class.Derive != nil {
			attrs = class.Derive(attrs)
		}

		derived[key] = attrs
	}

	for _, key := range sortedKeys(derived) {
		attrs := derived[key]

		existing, ok := target[key]
		if !ok {
			plan.Create = append(plan.Create, LinkedChange{Key: key, Attrs: class.Table.Apply(attrs)})

			continue
		}

		if update := Diff(attrs, existing.Entity, class.Table); len(update) > 0 {
			plan.Update = append(plan.Update, LinkedChange{Key: key, Elid: existing.Elid(), Attrs: update})
		}
	}

	plan.Guarded = len(source) == 0 && !parent.Deleted
	if plan.Guarded {
		return plan
	}

	for _, key := range sortedKeys(target) {
		if _, ok := derived[key]; ok {
			continue
		}

		plan.Delete = append(plan.Delete, LinkedChange{Key: key, Elid: target[key].Elid()})

		if class.ManagementPointer && key == parent.ManagementInterface {
			plan.Parent[models.AttrManagementInterface] = ""
			plan.Parent[models.AttrMonitoring] = models.FlagNo
			plan.Parent[models.AttrMonitoringSNMP] = models.FlagNo
		}
	}

	if class.Aggregate != nil {
		for k, v := range class.Aggregate(derived) {
			if !Equal(v, parent.Attrs[k]) {
				plan.Parent[k] = v
			}
		}
	}

	return plan
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
