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
// Package zabbix is a JSON-RPC client for the Zabbix API (6.4+).
package zabbix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	httpx "github.com/carverauto/vmsync/pkg/http"
	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/models"
)

const maxErrBody = 4096

// Client talks to one Zabbix server.
type Client struct {
	cfg    *Config
	http   httpx.HTTPClient
	logger logger.Logger
	nextID atomic.Uint64

	mu    sync.Mutex
	token string
}

// NewClient returns a client for cfg. cfg must be validated.
func NewClient(cfg *Config, client httpx.HTTPClient, log logger.Logger) *Client {
	c := &Client{cfg: cfg, http: client, logger: log}
	c.token = cfg.APIToken

	return c
}

// Login authenticates with username and password. It is a no-op with an API token.
func (c *Client) Login(ctx context.Context) error {
	if c.cfg.APIToken != "" {
		c.setToken(c.cfg.APIToken)

		return nil
	}

	params := map[string]string{"username": c.cfg.Username, "password": c.cfg.Password}

	var token string
	if err := c.rpc(ctx, "user.login", params, "", &token); err != nil {
		return err
	}

	c.setToken(token)

	c.logger.Info().Str("url", c.cfg.URL).Str("user", c.cfg.Username).Msg("Logged in to Zabbix")

	return nil
}

// Logout ends a password session.
func (c *Client) Logout(ctx context.Context) error {
	if c.cfg.APIToken != "" || c.currentToken() == "" {
		return nil
	}

	err := c.rpc(ctx, "user.logout", []string{}, c.currentToken(), nil)
	c.setToken("")

	return err
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.token
}

// call performs an authenticated request, logging in again once when the
// session is rejected.
func (c *Client) call(ctx context.Context, method string, params, out interface{}) error {
	if c.currentToken() == "" {
		if err := c.Login(ctx); err != nil {
			return err
		}
	}

	err := c.rpc(ctx, method, params, c.currentToken(), out)
	if errors.Is(err, ErrNotAuthorized) && c.cfg.APIToken == "" {
		c.logger.Warn().Str("method", method).Msg("Zabbix session rejected, logging in again")

		if err = c.Login(ctx); err != nil {
			return err
		}

		err = c.rpc(ctx, method, params, c.currentToken(), out)
	}

	return err
}

func (c *Client) rpc(ctx context.Context, method string, params interface{}, token string, out interface{}) error {
	payload, err := json.Marshal(&rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: c.nextID.Add(1)})
	if err != nil {
		return fmt.Errorf("encode %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(httpx.WithEndpoint(ctx, method), http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json-rpc")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("zabbix %s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))

		return &APIError{Method: method, StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return &APIError{Method: method, Message: "decode response: " + err.Error()}
	}

	if rpcResp.Error != nil {
		return &APIError{Method: method, Code: rpcResp.Error.Code, Message: rpcResp.Error.Message, Data: rpcResp.Error.Data}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return &APIError{Method: method, Message: "decode result: " + err.Error()}
	}

	return nil
}

func (c *Client) lookupID(ctx context.Context, method, idField, nameField, name string) (string, error) {
	params := map[string]interface{}{
		"output": []string{idField},
		"filter": map[string][]string{nameField: {name}},
	}

	var rows []map[string]string
	if err := c.call(ctx, method, params, &rows); err != nil {
		return "", err
	}

	if len(rows) == 0 {
		return "", nil
	}

	return rows[0][idField], nil
}

// GetHostGroupID returns the id of the named host group, or "" when missing.
func (c *Client) GetHostGroupID(ctx context.Context, name string) (string, error) {
	return c.lookupID(ctx, "hostgroup.get", "groupid", "name", name)
}

// CreateHostGroup creates a host group and returns its id.
func (c *Client) CreateHostGroup(ctx context.Context, name string) (string, error) {
	var res struct {
		GroupIDs []string `json:"groupids"`
	}

	if err := c.call(ctx, "hostgroup.create", map[string]string{"name": name}, &res); err != nil {
		return "", err
	}

	if len(res.GroupIDs) == 0 {
		return "", fmt.Errorf("hostgroup.create %s: %w", name, errNoID)
	}

	return res.GroupIDs[0], nil
}

// GetTemplateID returns the id of the template with technical name name.
func (c *Client) GetTemplateID(ctx context.Context, name string) (string, error) {
	return c.lookupID(ctx, "template.get", "templateid", "host", name)
}

// GetProxyID returns the id of the named proxy.
func (c *Client) GetProxyID(ctx context.Context, name string) (string, error) {
	return c.lookupID(ctx, "proxy.get", "proxyid", "host", name)
}

// GetHosts lists the hosts of a group with interfaces and macros.
func (c *Client) GetHosts(ctx context.Context, groupID string) ([]*models.MonitoringHost, error) {
	params := map[string]interface{}{
		"output":           []string{"hostid", "host", "name", "status"},
		"groupids":         []string{groupID},
		"selectInterfaces": []string{"interfaceid", "ip", "type", "main"},
		"selectMacros":     []string{"macro", "value"},
	}

	var hosts []host
	if err := c.call(ctx, "host.get", params, &hosts); err != nil {
		return nil, err
	}

	out := make([]*models.MonitoringHost, 0, len(hosts))

	for _, h := range hosts {
		mh := &models.MonitoringHost{ID: h.HostID, Host: h.Host, Name: h.Name, Status: h.Status}

		for _, i := range h.Interfaces {
			iface := models.HostInterface{ID: i.InterfaceID, IP: i.IP}
			iface.Type, _ = strconv.Atoi(i.Type)
			iface.Main, _ = strconv.Atoi(i.Main)

			// Main interface first so MonitoringHost.Interface picks it.
			if iface.Main == 1 {
				mh.Interfaces = append([]models.HostInterface{iface}, mh.Interfaces...)
			} else {
				mh.Interfaces = append(mh.Interfaces, iface)
			}
		}

		for _, m := range h.Macros {
			mh.Macros = append(mh.Macros, models.Macro{Name: m.Macro, Value: m.Value})
		}

		out = append(out, mh)
	}

	return out, nil
}

// GetHostTriggers returns one Trigger per tag of every trigger on the host.
func (c *Client) GetHostTriggers(ctx context.Context, hostID string) ([]models.Trigger, error) {
	params := map[string]interface{}{
		"output":     []string{"triggerid", "description", "status"},
		"hostids":    []string{hostID},
		"selectTags": "extend",
	}

	var triggers []trigger
	if err := c.call(ctx, "trigger.get", params, &triggers); err != nil {
		return nil, err
	}

	var out []models.Trigger

	for _, t := range triggers {
		status, err := strconv.Atoi(t.Status)
		if err != nil {
			return nil, &APIError{Method: "trigger.get", Message: "invalid status " + strconv.Quote(t.Status)}
		}

		for _, tag := range t.Tags {
			out = append(out, models.Trigger{ID: t.TriggerID, Tag: tag.Tag, Status: status})
		}
	}

	return out, nil
}

// CreateHost creates a host with one SNMPv2c interface and returns its id.
func (c *Client) CreateHost(ctx context.Context, spec *models.HostSpec) (string, error) {
	params := map[string]interface{}{
		"host":   spec.Host,
		"name":   spec.Name,
		"groups": []idRef{{GroupID: spec.GroupID}},
		"interfaces": []createInterface{{
			Type:  spec.Interface.Type,
			Main:  spec.Interface.Main,
			UseIP: spec.Interface.UseIP,
			IP:    spec.Interface.IP,
			DNS:   spec.Interface.DNS,
			Port:  spec.Interface.Port,
			Details: snmpDetails{
				Version:   models.SNMPVersion2c,
				Bulk:      1,
				Community: models.MacroSNMPCommunity,
			},
		}},
		"macros": spec.Macros,
	}

	if spec.TemplateID != "" {
		params["templates"] = []idRef{{TemplateID: spec.TemplateID}}
	}

	if spec.ProxyID != "" {
		params["proxy_hostid"] = spec.ProxyID
	}

	if spec.Status != "" {
		params["status"] = spec.Status
	}

	var res struct {
		HostIDs []string `json:"hostids"`
	}

	if err := c.call(ctx, "host.create", params, &res); err != nil {
		return "", err
	}

	if len(res.HostIDs) == 0 {
		return "", fmt.Errorf("host.create %s: %w", spec.Host, errNoID)
	}

	return res.HostIDs[0], nil
}

// UpdateHost applies the non-empty fields of update.
func (c *Client) UpdateHost(ctx context.Context, update *models.HostUpdate) error {
	params := map[string]interface{}{"hostid": update.HostID}

	if update.Name != "" {
		params["name"] = update.Name
	}

	if update.Status != "" {
		params["status"] = update.Status
	}

	if len(update.Macros) > 0 {
		params["macros"] = update.Macros
	}

	return c.call(ctx, "host.update", params, nil)
}

// UpdateInterface moves an interface to ip.
func (c *Client) UpdateInterface(ctx context.Context, interfaceID, ip string) error {
	return c.call(ctx, "hostinterface.update", map[string]string{"interfaceid": interfaceID, "ip": ip}, nil)
}

// UpdateTrigger sets the status of a trigger.
func (c *Client) UpdateTrigger(ctx context.Context, triggerID string, status int) error {
	return c.call(ctx, "trigger.update", map[string]string{"triggerid": triggerID, "status": strconv.Itoa(status)}, nil)
}

// DeleteHost deletes a host.
func (c *Client) DeleteHost(ctx context.Context, hostID string) error {
	return c.call(ctx, "host.delete", []string{hostID}, nil)
}
