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

import "github.com/carverauto/vmsync/pkg/models"

// State is the soft-delete state of a virtual server.
type State int

const (
	StateActive State = iota
	StateDeleted
)

func (s State) String() string {
	if s == StateDeleted {
		return "deleted"
	}

	return "active"
}

// StateOf reads the lifecycle state from the deleted flag.
func StateOf(rec *models.AssetRecord) State {
	if rec != nil && rec.Deleted() {
		return StateDeleted
	}

	return StateActive
}

// Undelete adds the Deleted to Active transition to update.
func Undelete(update UpdateSet) {
	update[models.AttrDeleted] = models.FlagNo
	update[models.AttrNewServer] = models.FlagYes
}

// deletionSet is the Active to Deleted transition.
func deletionSet() UpdateSet {
	return UpdateSet{
		models.AttrDeleted:        models.FlagYes,
		models.AttrMonitoring:     models.FlagNo,
		models.AttrMonitoringSNMP: models.FlagNo,
	}
}

// PlanDeletion flags rec deleted and removes all of its linked entities.
// The empty-source guard does not apply because the parent is being deleted.
func PlanDeletion(rec *models.AssetRecord) *AssetPlan {
	plan := &AssetPlan{Record: rec, Update: deletionSet(), Transition: TransitionDelete}
	parent := ParentStateOf(rec, true)

	for _, class := range LinkedClasses {
		lp := PlanLinked(class, nil, rec.LinkedOf(class.Name), parent)
		merge(plan.Update, lp.Parent)
		plan.Linked = append(plan.Linked, lp)
	}

	return plan
}

// NeedsDeletion reports whether rec must transition to Deleted given the
// set of correlation keys seen in discovery.
func NeedsDeletion(rec *models.AssetRecord, seen map[string]struct{}) bool {
	if StateOf(rec) == StateDeleted {
		return false
	}

	_, ok := seen[rec.UUID()]

	return !ok
}
