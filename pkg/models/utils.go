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
	"errors"
	"reflect"
	"strings"
)

var errNotStruct = errors.New("input must be a struct or pointer to struct")

// FilterSensitiveFields converts a config struct into a map, dropping every
// field tagged `sensitive:"true"`. Used to log configuration safely.
func FilterSensitiveFields(input interface{}) (map[string]interface{}, error) {
	if input == nil {
		return map[string]interface{}{}, nil
	}

	switch out := filterValue(reflect.ValueOf(input)).(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		if isStruct(reflect.ValueOf(input)) {
			return out, nil
		}
	}

	return nil, errNotStruct
}

func isStruct(rv reflect.Value) bool {
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return true
		}

		rv = rv.Elem()
	}

	return rv.Kind() == reflect.Struct
}

func filterValue(rv reflect.Value) interface{} {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return filterStruct(rv)
	case reflect.Slice, reflect.Array:
		items := make([]interface{}, rv.Len())
		for i := range items {
			items[i] = filterValue(rv.Index(i))
		}

		return items
	case reflect.Map:
		out := make(map[string]interface{}, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			if iter.Key().Kind() == reflect.String {
				out[iter.Key().String()] = filterValue(iter.Value())
			}
		}

		return out
	case reflect.Invalid:
		return nil
	default:
		return rv.Interface()
	}
}

func filterStruct(rv reflect.Value) map[string]interface{} {
	rt := rv.Type()
	out := make(map[string]interface{}, rt.NumField())

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() || field.Tag.Get("sensitive") == "true" {
			continue
		}

		name, opts, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}

		if strings.Contains(opts, "omitempty") && rv.Field(i).IsZero() {
			continue
		}

		if name == "" {
			name = field.Name
		}

		out[name] = filterValue(rv.Field(i))
	}

	return out
}
