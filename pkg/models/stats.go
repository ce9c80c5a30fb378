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
package models

import "time"

// StageStats counts the mutations a stage sent, or planned in dry-run mode.
type StageStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// RunStats summarizes one reconciliation run.
type RunStats struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	DryRun     bool          `json:"dry_run,omitempty"`
	Discovered int           `json:"discovered"`
	VSNew      int           `json:"vs_new"`
	VSDeleted  int           `json:"vs_deleted"`
	Inventory  StageStats    `json:"inventory"`
	Monitoring StageStats    `json:"monitoring"`
}
