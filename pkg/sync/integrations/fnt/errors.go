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
package fnt

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRequestFailed is the sentinel every *APIError matches.
	ErrRequestFailed = errors.New("fnt command request failed")
	// ErrNotAuthorized is matched by login failures and 401/403 replies.
	ErrNotAuthorized = errors.New("fnt command not authorized")

	errMissingURL      = errors.New("command url is required")
	errMissingUsername = errors.New("command username is required")
	errNoElid          = errors.New("create returned no elid")
)

// APIError is a failed FNT Command call.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fnt %s: status %d: %s", e.Operation, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("fnt %s: %s", e.Operation, e.Message)
}

// Is matches ErrRequestFailed, and ErrNotAuthorized for 401/403.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return true
	case ErrNotAuthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	default:
		return false
	}
}
