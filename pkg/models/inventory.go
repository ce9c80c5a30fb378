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

// Source attribute names of a discovered virtual machine. They follow the
// vSphere property paths vPoller reports.
const (
	InvUUID       = "config.instanceUuid"
	InvName       = "name"
	InvCPU        = "config.hardware.numCPU"
	InvMemoryMB   = "config.hardware.memoryMB"
	InvPowerState = "runtime.powerState"
	InvAnnotation = "config.annotation"
	InvLastBackup = "last_backup"
	InvDatasource = "vc_host"

	InvIPAddress = "ipAddress"
	InvDiskPath  = "diskPath"
	InvCapacity  = "capacity"
	InvFreeSpace = "freeSpace"
)

// FileSystemMount is a guest filesystem as reported by the hypervisor.
// Sizes are in bytes.
type FileSystemMount struct {
	Path      string `json:"diskPath"`
	Capacity  int64  `json:"capacity"`
	FreeSpace int64  `json:"freeSpace"`
}

// InventoryRecord is one virtual machine as seen by discovery. It is rebuilt
// on every run and never persisted.
type InventoryRecord struct {
	UUID        string                     `json:"uuid"`
	Name        string                     `json:"name"`
	NumCPU      int                        `json:"num_cpu"`
	MemoryMB    int                        `json:"memory_mb"`
	PowerState  string                     `json:"power_state"`
	Annotation  string                     `json:"annotation"`
	Datasource  string                     `json:"datasource"`
	IPAddresses []string                   `json:"ip_addresses"`
	Mounts      map[string]FileSystemMount `json:"mounts"`
}

// Attributes returns the top-level attributes keyed by source attribute name.
func (r *InventoryRecord) Attributes() Attributes {
	return Attributes{
		InvUUID:       r.UUID,
		InvName:       r.Name,
		InvCPU:        r.NumCPU,
		InvMemoryMB:   r.MemoryMB,
		InvPowerState: r.PowerState,
		InvAnnotation: r.Annotation,
		InvDatasource: r.Datasource,
	}
}

// IPAttributes returns the IP addresses keyed by address.
func (r *InventoryRecord) IPAttributes() map[string]Attributes {
	out := make(map[string]Attributes, len(r.IPAddresses))
	for _, ip := range r.IPAddresses {
		out[ip] = Attributes{InvIPAddress: ip}
	}

	return out
}

// MountAttributes returns the filesystem mounts keyed by mount path.
func (r *InventoryRecord) MountAttributes() map[string]Attributes {
	out := make(map[string]Attributes, len(r.Mounts))
	for path, m := range r.Mounts {
		out[path] = Attributes{
			InvDiskPath:  path,
			InvCapacity:  m.Capacity,
			InvFreeSpace: m.FreeSpace,
		}
	}

	return out
}
