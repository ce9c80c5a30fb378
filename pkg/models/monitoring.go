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

// Macro names managed on every monitoring host.
const (
	MacroSNMPCommunity = "{$SNMP_COMMUNITY}"
	MacroVSphereHost   = "{$VSPHERE.HOST}"
)

// Host status values as the monitoring API reports them.
const (
	HostStatusEnabled  = "0"
	HostStatusDisabled = "1"
)

// Trigger status values.
const (
	TriggerEnabled  = 0
	TriggerDisabled = 1
)

// SNMP interface defaults for created hosts.
const (
	InterfaceTypeSNMP = 2
	SNMPPort          = "161"
	SNMPVersion2c     = 2
)

// HostInterface is the single SNMP interface attached to a monitoring host.
type HostInterface struct {
	ID        string `json:"interfaceid,omitempty"`
	IP        string `json:"ip"`
	Type      int    `json:"type,omitempty"`
	Main      int    `json:"main,omitempty"`
	UseIP     int    `json:"useip,omitempty"`
	DNS       string `json:"dns"`
	Port      string `json:"port,omitempty"`
	Community string `json:"-"`
}

// Macro is a user macro on a monitoring host.
type Macro struct {
	Name  string `json:"macro"`
	Value string `json:"value"`
}

// Trigger is a monitoring trigger identified by its tag.
type Trigger struct {
	ID     string `json:"triggerid"`
	Tag    string `json:"tag"`
	Status int    `json:"status"`
}

// MonitoringHost is a host in the monitoring system. Host equals the
// AssetRecord id it mirrors.
type MonitoringHost struct {
	ID         string          `json:"hostid,omitempty"`
	Host       string          `json:"host"`
	Name       string          `json:"name"`
	Status     string          `json:"status,omitempty"`
	Interfaces []HostInterface `json:"interfaces,omitempty"`
	Macros     []Macro         `json:"macros,omitempty"`
}

// Interface returns the first interface of the host, or nil.
func (h *MonitoringHost) Interface() *HostInterface {
	if len(h.Interfaces) == 0 {
		return nil
	}

	return &h.Interfaces[0]
}

// Macro returns the value of the named macro and whether it exists.
func (h *MonitoringHost) Macro(name string) (string, bool) {
	for _, m := range h.Macros {
		if m.Name == name {
			return m.Value, true
		}
	}

	return "", false
}

// HostSpec describes a host to create.
type HostSpec struct {
	Host       string
	Name       string
	GroupID    string
	TemplateID string
	ProxyID    string
	Status     string
	Interface  HostInterface
	Macros     []Macro
}

// HostUpdate carries the host-level changes of one pass. Empty fields are
// left untouched.
type HostUpdate struct {
	HostID string
	Name   string
	Status string
	Macros []Macro
}

// Empty reports whether the update changes nothing.
func (u *HostUpdate) Empty() bool {
	return u.Name == "" && u.Status == "" && len(u.Macros) == 0
}
