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

// FieldMapping copies one source attribute onto one target attribute.
type FieldMapping struct {
	Source string
	Target string
}

// TransformTable is the ordered field mapping of one entity class.
type TransformTable []FieldMapping

// Apply returns the full mapped target attribute set of source.
func (t TransformTable) Apply(source models.Attributes) models.Attributes {
	out := make(models.Attributes, len(t))
	for _, m := range t {
		out[m.Target] = source[m.Source]
	}

	return out
}

// Targets lists the target attribute names in table order.
func (t TransformTable) Targets() []string {
	out := make([]string, len(t))
	for i, m := range t {
		out[i] = m.Target
	}

	return out
}

//nolint:gochecknoglobals // transform tables are static data
var (
	// VirtualServerTable maps discovered VM attributes onto a CMDB virtual server.
	VirtualServerTable = TransformTable{
		{Source: models.InvUUID, Target: models.AttrUUID},
		{Source: models.InvName, Target: models.AttrVisibleID},
		{Source: models.InvCPU, Target: models.AttrCPU},
		{Source: models.InvMemoryMB, Target: models.AttrRAM},
		{Source: models.InvPowerState, Target: models.AttrStatus},
		{Source: models.InvAnnotation, Target: models.AttrRemark},
		{Source: models.InvLastBackup, Target: models.AttrLastBackup},
		{Source: models.InvDatasource, Target: models.AttrDatasource},
	}

	// IPAddressTable maps a guest IP address onto a vmIpAddress entity.
	IPAddressTable = TransformTable{
		{Source: models.InvIPAddress, Target: models.AttrIPAddress},
	}

	// FileSystemTable maps a derived guest mount onto a fileSystem entity.
	FileSystemTable = TransformTable{
		{Source: models.InvDiskPath, Target: models.AttrMountpoint},
		{Source: models.AttrCapacityGB, Target: models.AttrCapacityGB},
		{Source: models.AttrUsedGB, Target: models.AttrUsedGB},
	}
)
