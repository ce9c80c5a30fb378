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
	"regexp"
	"time"

	"github.com/araddon/dateparse"
)

const (
	annotationLayout = "02.01.2006 15:04:05"
	// BackupLayout is ISO 8601 with a numeric zone offset.
	BackupLayout = "2006-01-02T15:04:05-0700"
)

//nolint:gochecknoglobals // compiled once
var backupPattern = regexp.MustCompile(`Time: \[(\d\d\.\d\d\.\d\d\d\d .*?)\]`)

// ExtractLastBackup finds the "Time: [DD.MM.YYYY HH:MM:SS]" marker in a VM
// annotation and renders it in loc. A marker whose time does not parse is
// returned verbatim. ok is false when there is no marker.
func ExtractLastBackup(annotation string, loc *time.Location) (string, bool) {
	m := backupPattern.FindStringSubmatch(annotation)
	if m == nil {
		return "", false
	}

	t, err := time.ParseInLocation(annotationLayout, m[1], location(loc))
	if err != nil {
		return m[1], true
	}

	return t.Format(BackupLayout), true
}

// NormalizeBackup re-renders a stored backup timestamp in loc so that it
// compares equal to a freshly extracted one. Unparseable values are
// returned unchanged.
func NormalizeBackup(value string, loc *time.Location) string {
	if value == "" {
		return value
	}

	t, err := dateparse.ParseIn(value, location(loc))
	if err != nil {
		return value
	}

	return t.In(location(loc)).Format(BackupLayout)
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}

	return loc
}
