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
package zabbix

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed is the sentinel every *APIError matches.
	ErrRequestFailed = errors.New("zabbix request failed")
	// ErrNotAuthorized is matched by authentication failures.
	ErrNotAuthorized = errors.New("zabbix not authorized")

	errMissingURL         = errors.New("zabbix url is required")
	errMissingCredentials = errors.New("zabbix username or api_token is required")
	errNoID               = errors.New("no id returned")
)

// Zabbix error code for an invalid or expired session.
const codeNotAuthorized = -32602

// APIError is a JSON-RPC error or an HTTP failure of one call.
type APIError struct {
	Method     string
	Code       int
	StatusCode int
	Message    string
	Data       string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("zabbix %s: status %d: %s", e.Method, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("zabbix %s: %s %s", e.Method, e.Message, e.Data)
}

// Is matches ErrRequestFailed, and ErrNotAuthorized for login and session failures.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return true
	case ErrNotAuthorized:
		return e.Method == "user.login" || e.StatusCode == 401 || e.StatusCode == 403 ||
			(e.Code == codeNotAuthorized && isSessionMessage(e.Data))
	default:
		return false
	}
}
