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
package vpoller

import (
	"errors"
	"fmt"

	"github.com/carverauto/vmsync/pkg/models"
)

var (
	// ErrRequestFailed is the sentinel every *Error matches.
	ErrRequestFailed = errors.New("vpoller request failed")
	// ErrTransport covers socket and timeout failures.
	ErrTransport = errors.New("vpoller transport error")
	// ErrPartialDiscovery is returned, wrapped, when some VMs were skipped.
	ErrPartialDiscovery = models.ErrPartialDiscovery

	errEmptyResult     = errors.New("empty result")
	errMissingEndpoint = errors.New("vpoller endpoint is required")
	errMissingVCHost   = errors.New("vpoller vc_host is required")
)

// Error is a vPoller reply with a non-zero success code.
type Error struct {
	Method string
	Name   string
	Msg    string
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("vpoller %s %s: %s", e.Method, e.Name, e.Msg)
	}

	return fmt.Sprintf("vpoller %s: %s", e.Method, e.Msg)
}

// Is lets errors.Is match ErrRequestFailed.
func (*Error) Is(target error) bool {
	return target == ErrRequestFailed
}
