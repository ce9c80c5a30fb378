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

// UpdateSet holds the target attributes to write, keyed by target name.
type UpdateSet = models.Attributes

// Equal compares two attribute values after normalization: nil equals the
// empty string and numbers compare by canonical decimal form.
func Equal(a, b interface{}) bool {
	return models.CanonicalString(a) == models.CanonicalString(b)
}

// Diff returns the target fields whose value differs from the mapped source
// value. Values in the result are the raw source values.
func Diff(source, target models.Attributes, table TransformTable) UpdateSet {
	out := UpdateSet{}

	for _, m := range table {
		value := source[m.Source]
		if !Equal(value, target[m.Target]) {
			out[m.Target] = value
		}
	}

	return out
}

// merge copies src into dst, overwriting existing keys.
func merge(dst, src UpdateSet) {
	for k, v := range src {
		dst[k] = v
	}
}
