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

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// FlagYes and FlagNo are the CMDB encodings of a boolean attribute.
	FlagYes = "Y"
	FlagNo  = "N"
)

// Attributes is a flat attribute set as exchanged with the CMDB. Keys are
// attribute names, values are whatever the wire decoding produced (string,
// float64, int, bool or nil).
type Attributes map[string]interface{}

// Clone returns a shallow copy so callers can derive values without touching
// the snapshot they were handed.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}

	return out
}

// String returns the attribute rendered in its canonical string form.
func (a Attributes) String(key string) string {
	return CanonicalString(a[key])
}

// Flag reports whether the attribute holds a CMDB yes value.
func (a Attributes) Flag(key string) bool {
	return YesNo(a[key])
}

// YesNo interprets the CMDB boolean encodings. Unknown or empty values are false.
func YesNo(v interface{}) bool {
	switch value := v.(type) {
	case bool:
		return value
	case nil:
		return false
	default:
		switch strings.ToLower(strings.TrimSpace(CanonicalString(value))) {
		case "y", "yes", "true", "1":
			return true
		default:
			return false
		}
	}
}

// FlagValue encodes a boolean as a CMDB flag.
func FlagValue(b bool) string {
	if b {
		return FlagYes
	}

	return FlagNo
}

// CanonicalString renders a value so that representational differences
// (nil vs "", 4 vs 4.0) compare equal.
func CanonicalString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case *string:
		if value == nil {
			return ""
		}

		return *value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	case int:
		return strconv.Itoa(value)
	case int32:
		return strconv.FormatInt(int64(value), 10)
	case int64:
		return strconv.FormatInt(value, 10)
	case uint64:
		return strconv.FormatUint(value, 10)
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
