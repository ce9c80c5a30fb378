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
// Package vpoller discovers virtual machines through a vPoller proxy.
package vpoller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/models"
)

const integrationName = "vpoller"

// Methods used by the client.
const (
	MethodAbout          = "about"
	MethodVMDiscover     = "vm.discover"
	MethodVMGet          = "vm.get"
	MethodVMNetGet       = "vm.guest.net.get"
	MethodVMDiskDiscover = "vm.disk.discover"
	MethodVMDiskGet      = "vm.disk.get"
)

//nolint:gochecknoglobals // property lists sent with every request
var (
	vmProperties = []string{
		models.InvUUID,
		models.InvName,
		models.InvCPU,
		models.InvMemoryMB,
		models.InvPowerState,
		models.InvAnnotation,
	}
	netProperties  = []string{models.InvIPAddress}
	diskProperties = []string{models.InvDiskPath, models.InvCapacity, models.InvFreeSpace}
)

// Request is one vPoller task.
type Request struct {
	Method     string   `json:"method"`
	Hostname   string   `json:"hostname"`
	Name       string   `json:"name,omitempty"`
	Key        string   `json:"key,omitempty"`
	Properties []string `json:"properties,omitempty"`
}

// Response is the vPoller reply envelope. Success is 0 on success.
type Response struct {
	Success int             `json:"success"`
	Msg     string          `json:"msg"`
	Result  json.RawMessage `json:"result"`
}

type vmInfo struct {
	Name       string `json:"name"`
	UUID       string `json:"config.instanceUuid"`
	NumCPU     int    `json:"config.hardware.numCPU"`
	MemoryMB   int    `json:"config.hardware.memoryMB"`
	PowerState string `json:"runtime.powerState"`
	Annotation string `json:"config.annotation"`
}

type guestNet struct {
	Name string `json:"name"`
	Net  []struct {
		IPAddress  []string `json:"ipAddress"`
		MacAddress string   `json:"macAddress"`
	} `json:"net"`
}

type diskDiscovery struct {
	Name string `json:"name"`
	Disk []struct {
		DiskPath string `json:"diskPath"`
	} `json:"disk"`
}

type diskInfo struct {
	Name string                 `json:"name"`
	Disk models.FileSystemMount `json:"disk"`
}

// CallRecorder receives one observation per vPoller request.
type CallRecorder interface {
	RecordAPICall(integration, endpoint string, statusCode int, duration time.Duration, err error)
}

// Client is a vPoller client bound to one vCenter.
type Client struct {
	transport Transport
	vcHost    string
	logger    logger.Logger
	metrics   CallRecorder
}

// NewClient returns a client sending requests through transport. metrics may be nil.
func NewClient(transport Transport, vcHost string, metrics CallRecorder, log logger.Logger) *Client {
	return &Client{transport: transport, vcHost: vcHost, logger: log, metrics: metrics}
}

// Run sends req and decodes the result into out.
func (c *Client) Run(ctx context.Context, req *Request, out interface{}) error {
	if req.Hostname == "" {
		req.Hostname = c.vcHost
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", req.Method, err)
	}

	start := time.Now()
	reply, err := c.transport.RoundTrip(ctx, payload)

	if c.metrics != nil {
		c.metrics.RecordAPICall(integrationName, req.Method, 0, time.Since(start), err)
	}

	if err != nil {
		return err
	}

	var resp Response
	if err := json.Unmarshal(reply, &resp); err != nil {
		return fmt.Errorf("%w: decode %s reply: %w", ErrTransport, req.Method, err)
	}

	if resp.Success != 0 {
		return &Error{Method: req.Method, Name: req.Name, Msg: resp.Msg}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Result, out); err != nil {
		return &Error{Method: req.Method, Name: req.Name, Msg: "unexpected result: " + err.Error()}
	}

	return nil
}

// About checks that vPoller can reach the vCenter.
func (c *Client) About(ctx context.Context) (map[string]interface{}, error) {
	var result []map[string]interface{}

	if err := c.Run(ctx, &Request{Method: MethodAbout}, &result); err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return map[string]interface{}{}, nil
	}

	return result[0], nil
}

// ListInstances discovers every VM with its IPv4 addresses and disks.
// VMs that fail are logged and skipped; the remaining records are
// returned with an error wrapping ErrPartialDiscovery.
func (c *Client) ListInstances(ctx context.Context) ([]*models.InventoryRecord, error) {
	var discovered []struct {
		Name string `json:"name"`
	}

	if err := c.Run(ctx, &Request{Method: MethodVMDiscover}, &discovered); err != nil {
		return nil, err
	}

	records := make([]*models.InventoryRecord, 0, len(discovered))

	var skipped []string

	for _, vm := range discovered {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		rec, err := c.getInstance(ctx, vm.Name)
		if err != nil {
			c.logger.Error().Err(err).Str("vm", vm.Name).Msg("Failed to get VM properties")

			skipped = append(skipped, vm.Name)

			continue
		}

		records = append(records, rec)
	}

	c.logger.Info().
		Int("discovered", len(discovered)).
		Int("skipped", len(skipped)).
		Str("vc_host", c.vcHost).
		Msg("vPoller discovery finished")

	if len(skipped) > 0 {
		return records, fmt.Errorf("%w: %d of %d VMs skipped: %s",
			ErrPartialDiscovery, len(skipped), len(discovered), strings.Join(skipped, ", "))
	}

	return records, nil
}

func (c *Client) getInstance(ctx context.Context, name string) (*models.InventoryRecord, error) {
	var vms []vmInfo

	if err := c.Run(ctx, &Request{Method: MethodVMGet, Name: name, Properties: vmProperties}, &vms); err != nil {
		return nil, err
	}

	if len(vms) == 0 {
		return nil, fmt.Errorf("%s %s: %w", MethodVMGet, name, errEmptyResult)
	}

	vm := vms[0]

	rec := &models.InventoryRecord{
		UUID:       vm.UUID,
		Name:       vm.Name,
		NumCPU:     vm.NumCPU,
		MemoryMB:   vm.MemoryMB,
		PowerState: vm.PowerState,
		Annotation: vm.Annotation,
		Datasource: c.vcHost,
	}

	if rec.Name == "" {
		rec.Name = name
	}

	var err error

	if rec.IPAddresses, err = c.getIPv4Addresses(ctx, name); err != nil {
		return nil, err
	}

	if rec.Mounts, err = c.getMounts(ctx, name); err != nil {
		return nil, err
	}

	return rec, nil
}

func (c *Client) getIPv4Addresses(ctx context.Context, name string) ([]string, error) {
	var nets []guestNet

	if err := c.Run(ctx, &Request{Method: MethodVMNetGet, Name: name, Properties: netProperties}, &nets); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var out []string

	for _, n := range nets {
		for _, nic := range n.Net {
			for _, ip := range nic.IPAddress {
				if !isIPv4(ip) {
					continue
				}

				if _, dup := seen[ip]; dup {
					continue
				}

				seen[ip] = struct{}{}
				out = append(out, ip)
			}
		}
	}

	return out, nil
}

func isIPv4(s string) bool {
	ip := net.ParseIP(s)

	return ip != nil && ip.To4() != nil && strings.Contains(s, ".")
}

func (c *Client) getMounts(ctx context.Context, name string) (map[string]models.FileSystemMount, error) {
	var discovery []diskDiscovery

	if err := c.Run(ctx, &Request{Method: MethodVMDiskDiscover, Name: name}, &discovery); err != nil {
		return nil, err
	}

	mounts := make(map[string]models.FileSystemMount)

	if len(discovery) == 0 {
		return mounts, nil
	}

	for _, d := range discovery[0].Disk {
		var disks []diskInfo

		req := &Request{Method: MethodVMDiskGet, Name: name, Key: d.DiskPath, Properties: diskProperties}
		if err := c.Run(ctx, req, &disks); err != nil {
			return nil, err
		}

		if len(disks) == 0 {
			return nil, fmt.Errorf("%s %s %s: %w", MethodVMDiskGet, name, d.DiskPath, errEmptyResult)
		}

		mount := disks[0].Disk
		if mount.Path == "" {
			mount.Path = d.DiskPath
		}

		mounts[d.DiskPath] = mount
	}

	return mounts, nil
}

// IsPartial reports whether err only signals skipped VMs.
func IsPartial(err error) bool {
	return errors.Is(err, ErrPartialDiscovery)
}
