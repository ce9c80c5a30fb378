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
	"encoding/json"
	"strings"
)

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      uint64      `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
	ID      uint64          `json:"id"`
}

// Zabbix returns numeric fields as strings.

type hostInterface struct {
	InterfaceID string `json:"interfaceid"`
	IP          string `json:"ip"`
	Type        string `json:"type"`
	Main        string `json:"main"`
}

type host struct {
	HostID     string          `json:"hostid"`
	Host       string          `json:"host"`
	Name       string          `json:"name"`
	Status     string          `json:"status"`
	Interfaces []hostInterface `json:"interfaces"`
	Macros     []struct {
		Macro string `json:"macro"`
		Value string `json:"value"`
	} `json:"macros"`
}

type trigger struct {
	TriggerID   string `json:"triggerid"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Tags        []struct {
		Tag   string `json:"tag"`
		Value string `json:"value"`
	} `json:"tags"`
}

type snmpDetails struct {
	Version   int    `json:"version"`
	Bulk      int    `json:"bulk"`
	Community string `json:"community"`
}

type createInterface struct {
	Type    int         `json:"type"`
	Main    int         `json:"main"`
	UseIP   int         `json:"useip"`
	IP      string      `json:"ip"`
	DNS     string      `json:"dns"`
	Port    string      `json:"port"`
	Details snmpDetails `json:"details"`
}

type idRef struct {
	GroupID    string `json:"groupid,omitempty"`
	TemplateID string `json:"templateid,omitempty"`
}

func isSessionMessage(data string) bool {
	data = strings.ToLower(data)

	return strings.Contains(data, "session terminated") || strings.Contains(data, "not authorized")
}
