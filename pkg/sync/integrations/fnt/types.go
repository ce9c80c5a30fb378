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
	"encoding/json"

	"github.com/carverauto/vmsync/pkg/models"
)

type status struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// envelope wraps every Command REST reply.
type envelope struct {
	Status     status          `json:"status"`
	SessionID  string          `json:"sessionId,omitempty"`
	ReturnData json.RawMessage `json:"returnData,omitempty"`
}

type loginRequest struct {
	User          string `json:"user"`
	Password      string `json:"password"`
	ManID         string `json:"manId"`
	UserGroupName string `json:"userGroupName"`
}

type restriction struct {
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type queryRequest struct {
	Restrictions     map[string]restriction `json:"restrictions"`
	ReturnAttributes []string               `json:"returnAttributes"`
}

type relatedQueryRequest struct {
	EntityRestrictions       map[string]restriction `json:"entityRestrictions"`
	ReturnEntityAttributes   []string               `json:"returnEntityAttributes"`
	RelationRestrictions     map[string]restriction `json:"relationRestrictions"`
	ReturnRelationAttributes []string               `json:"returnRelationAttributes"`
}

type relatedEntity struct {
	Entity   models.Attributes `json:"entity"`
	Relation models.Attributes `json:"relation"`
}

type createResult struct {
	Elid string `json:"elid"`
}

type linkRequest struct {
	Create []linkTarget `json:"create"`
}

type linkTarget struct {
	LinkedElid string `json:"linkedElid"`
}
