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

// CMDB entity and relation names.
const (
	EntityVirtualServer = "virtualServer"
	EntityIPAddress     = "vmIpAddress"
	EntityFileSystem    = "fileSystem"

	RelationIPAddress   = "CustomVmIpAddress"
	RelationIPAddresses = "CustomVmIpAddresses"
	RelationFileSystem  = "FileSystem"
	RelationFileSystems = "FileSystems"
)

// Attribute names of a CMDB virtual server.
const (
	AttrElid                = "elid"
	AttrID                  = "id"
	AttrVisibleID           = "visibleId"
	AttrUUID                = "cUuid"
	AttrCPU                 = "cCpu"
	AttrRAM                 = "cRam"
	AttrStatus              = "cSdiStatus"
	AttrRemark              = "remark"
	AttrLastBackup          = "cSdiLastBackup"
	AttrDatasource          = "datasource"
	AttrManagementInterface = "cManagementInterface"
	AttrCommunityName       = "cCommunityName"
	AttrNewServer           = "cSdiNewServer"
	AttrDeleted             = "cSdiDeleted"
	AttrDeleteConfirmed     = "cCSdiDelConfirmed"
	AttrMonitoring          = "cSdiMonitoring"
	AttrMonitoringSNMP      = "cSdiMonitoringSnmp"
	AttrNoShutdown          = "cSdiNoShutdown"
	AttrBackupNeeded        = "cSdiBackupNeeded"
	AttrHddTotal            = "cSdHddTotal"
	AttrHddUsed             = "cSdiHddUsed"

	AttrIPAddress  = "ipAddress"
	AttrMountpoint = "mountpoint"
	AttrCapacityGB = "capacityGb"
	AttrUsedGB     = "usedGb"
)

// VirtualServerAttributes lists the attributes requested for every virtual server.
//
//nolint:gochecknoglobals // attribute list sent with every CMDB query
var VirtualServerAttributes = []string{
	AttrID,
	AttrVisibleID,
	AttrElid,
	AttrCPU,
	AttrRAM,
	AttrManagementInterface,
	AttrCommunityName,
	AttrNewServer,
	AttrMonitoring,
	AttrDeleted,
	AttrDeleteConfirmed,
	AttrUUID,
	AttrStatus,
	AttrHddTotal,
	AttrHddUsed,
	AttrBackupNeeded,
	AttrLastBackup,
	AttrMonitoringSNMP,
	AttrNoShutdown,
	AttrRemark,
	AttrDatasource,
}

// LinkedEntity is a sub-entity attached to a virtual server together with
// the relation that links it.
type LinkedEntity struct {
	Entity   Attributes `json:"entity"`
	Relation Attributes `json:"relation"`
}

// Elid returns the sub-entity's internal identifier.
func (l LinkedEntity) Elid() string {
	return l.Entity.String(AttrElid)
}

// AssetRecord is a CMDB virtual server with its linked sub-entities keyed
// first by entity class, then by natural key.
type AssetRecord struct {
	Attrs  Attributes                         `json:"attributes"`
	Linked map[string]map[string]LinkedEntity `json:"linked,omitempty"`
}

func (a *AssetRecord) Elid() string                { return a.Attrs.String(AttrElid) }
func (a *AssetRecord) ID() string                  { return a.Attrs.String(AttrID) }
func (a *AssetRecord) VisibleID() string           { return a.Attrs.String(AttrVisibleID) }
func (a *AssetRecord) UUID() string                { return a.Attrs.String(AttrUUID) }
func (a *AssetRecord) Deleted() bool               { return a.Attrs.Flag(AttrDeleted) }
func (a *AssetRecord) NewServer() bool             { return a.Attrs.Flag(AttrNewServer) }
func (a *AssetRecord) ManagementInterface() string { return a.Attrs.String(AttrManagementInterface) }
func (a *AssetRecord) CommunityName() string       { return a.Attrs.String(AttrCommunityName) }

// LinkedOf returns the linked entities of one class, never nil.
func (a *AssetRecord) LinkedOf(class string) map[string]LinkedEntity {
	if a.Linked == nil || a.Linked[class] == nil {
		return map[string]LinkedEntity{}
	}

	return a.Linked[class]
}
