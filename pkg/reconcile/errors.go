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

import "errors"

var (
	// ErrStageInit marks failures that abort a whole stage: the snapshot
	// of a collaborator could not be read.
	ErrStageInit = errors.New("stage initialization failed")

	errHostGroupMissing = errors.New("monitoring host group not found")
	errTemplateMissing  = errors.New("monitoring template not found")
	errProxyMissing     = errors.New("monitoring proxy not found")
)
