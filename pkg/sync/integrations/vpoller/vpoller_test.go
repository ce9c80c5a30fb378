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
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/models"
	"github.com/go-zeromq/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testVCHost = "vc01.example.com"

var errBoom = errors.New("boom")

// fakeTransport answers requests from a table keyed by method, name and key.
type fakeTransport struct {
	t        *testing.T
	replies  map[string]interface{}
	failures map[string]string
	requests []Request
}

func newFakeTransport(t *testing.T) *fakeTransport {
	t.Helper()

	return &fakeTransport{t: t, replies: make(map[string]interface{}), failures: make(map[string]string)}
}

func replyKey(method, name, key string) string {
	return method + "|" + name + "|" + key
}

func (f *fakeTransport) RoundTrip(_ context.Context, payload []byte) ([]byte, error) {
	var req Request
	require.NoError(f.t, json.Unmarshal(payload, &req))

	f.requests = append(f.requests, req)
	k := replyKey(req.Method, req.Name, req.Key)

	if msg, ok := f.failures[k]; ok {
		return json.Marshal(map[string]interface{}{"success": 1, "msg": msg})
	}

	result, ok := f.replies[k]
	if !ok {
		return json.Marshal(map[string]interface{}{"success": 1, "msg": "unknown " + k})
	}

	return json.Marshal(map[string]interface{}{"success": 0, "msg": "ok", "result": result})
}

func (f *fakeTransport) addVM(name, uuid string, ips []string, disks map[string][2]int64) {
	f.replies[replyKey(MethodVMGet, name, "")] = []map[string]interface{}{{
		"name":                     name,
		"config.instanceUuid":      uuid,
		"config.hardware.numCPU":   4,
		"config.hardware.memoryMB": 8192,
		"runtime.powerState":       "poweredOn",
		"config.annotation":        "owner: ops",
	}}

	f.replies[replyKey(MethodVMNetGet, name, "")] = []map[string]interface{}{{
		"name": name,
		"net":  []map[string]interface{}{{"ipAddress": ips, "macAddress": "00:50:56:aa:bb:cc"}},
	}}

	paths := make([]map[string]string, 0, len(disks))

	for path, sizes := range disks {
		paths = append(paths, map[string]string{"diskPath": path})
		f.replies[replyKey(MethodVMDiskGet, name, path)] = []map[string]interface{}{{
			"name": name,
			"disk": map[string]interface{}{"diskPath": path, "capacity": sizes[0], "freeSpace": sizes[1]},
		}}
	}

	f.replies[replyKey(MethodVMDiskDiscover, name, "")] = []map[string]interface{}{{"name": name, "disk": paths}}
}

func (f *fakeTransport) setDiscover(names ...string) {
	vms := make([]map[string]string, 0, len(names))
	for _, n := range names {
		vms = append(vms, map[string]string{"name": n})
	}

	f.replies[replyKey(MethodVMDiscover, "", "")] = vms
}

func TestListInstances(t *testing.T) {
	tr := newFakeTransport(t)
	tr.setDiscover("vm01", "vm02")
	tr.addVM("vm01", "U1", []string{"10.0.0.1", "fe80::250:56ff:feaa:bbcc", "10.0.0.2", "10.0.0.1"},
		map[string][2]int64{"/": {1000, 400}, "/data": {2000, 1500}})
	tr.addVM("vm02", "U2", nil, nil)

	client := NewClient(tr, testVCHost, nil, logger.NewTestLogger())

	records, err := client.ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	vm := records[0]
	assert.Equal(t, "U1", vm.UUID)
	assert.Equal(t, "vm01", vm.Name)
	assert.Equal(t, 4, vm.NumCPU)
	assert.Equal(t, 8192, vm.MemoryMB)
	assert.Equal(t, "poweredOn", vm.PowerState)
	assert.Equal(t, "owner: ops", vm.Annotation)
	assert.Equal(t, testVCHost, vm.Datasource)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, vm.IPAddresses)
	assert.Equal(t, map[string]models.FileSystemMount{
		"/":     {Path: "/", Capacity: 1000, FreeSpace: 400},
		"/data": {Path: "/data", Capacity: 2000, FreeSpace: 1500},
	}, vm.Mounts)

	assert.Empty(t, records[1].IPAddresses)
	assert.Empty(t, records[1].Mounts)

	for _, req := range tr.requests {
		assert.Equal(t, testVCHost, req.Hostname)

		if req.Method == MethodVMGet {
			assert.Equal(t, []string{
				models.InvUUID,
				models.InvName,
				models.InvCPU,
				models.InvMemoryMB,
				models.InvPowerState,
				models.InvAnnotation,
			}, req.Properties)
		}
	}
}

func TestListInstancesReportedName(t *testing.T) {
	tr := newFakeTransport(t)
	tr.setDiscover("vm01")
	tr.addVM("vm01", "U1", nil, nil)
	tr.replies[replyKey(MethodVMGet, "vm01", "")].([]map[string]interface{})[0]["name"] = "vm01.corp"

	client := NewClient(tr, testVCHost, nil, logger.NewTestLogger())

	records, err := client.ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "vm01.corp", records[0].Name)
	assert.Equal(t, 4, records[0].NumCPU)
}

func TestListInstancesPartial(t *testing.T) {
	tr := newFakeTransport(t)
	tr.setDiscover("vm01", "vm02")
	tr.addVM("vm01", "U1", []string{"10.0.0.1"}, nil)
	tr.addVM("vm02", "U2", nil, nil)
	tr.failures[replyKey(MethodVMNetGet, "vm02", "")] = "VMware Tools not running"

	client := NewClient(tr, testVCHost, nil, logger.NewTestLogger())

	records, err := client.ListInstances(context.Background())
	require.ErrorIs(t, err, ErrPartialDiscovery)
	require.ErrorIs(t, err, models.ErrPartialDiscovery)
	assert.True(t, IsPartial(err))
	assert.Contains(t, err.Error(), "vm02")

	require.Len(t, records, 1)
	assert.Equal(t, "U1", records[0].UUID)
}

func TestListInstancesDiscoverFails(t *testing.T) {
	tr := newFakeTransport(t)
	tr.failures[replyKey(MethodVMDiscover, "", "")] = "Cannot connect to vCenter"

	client := NewClient(tr, testVCHost, nil, logger.NewTestLogger())

	_, err := client.ListInstances(context.Background())
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.False(t, IsPartial(err))

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, MethodVMDiscover, vErr.Method)
	assert.Equal(t, "Cannot connect to vCenter", vErr.Msg)
}

type callCounter struct {
	calls map[string]int
	errs  int
}

func (c *callCounter) RecordAPICall(integration, endpoint string, _ int, _ time.Duration, err error) {
	c.calls[integration+":"+endpoint]++

	if err != nil {
		c.errs++
	}
}

func TestAboutWithMockTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := NewMockTransport(ctrl)
	metrics := &callCounter{calls: make(map[string]int)}
	client := NewClient(tr, testVCHost, metrics, logger.NewTestLogger())

	tr.EXPECT().RoundTrip(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload []byte) ([]byte, error) {
			assert.JSONEq(t, `{"method":"about","hostname":"vc01.example.com"}`, string(payload))

			return []byte(`{"success":0,"msg":"ok","result":[{"version":"6.7.0","apiType":"VirtualCenter"}]}`), nil
		})

	about, err := client.About(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "VirtualCenter", about["apiType"])

	tr.EXPECT().RoundTrip(gomock.Any(), gomock.Any()).Return(nil, errBoom)

	_, err = client.About(context.Background())
	require.ErrorIs(t, err, errBoom)

	tr.EXPECT().RoundTrip(gomock.Any(), gomock.Any()).Return([]byte("not json"), nil)

	_, err = client.About(context.Background())
	require.ErrorIs(t, err, ErrTransport)

	assert.Equal(t, 3, metrics.calls["vpoller:about"])
	assert.Equal(t, 1, metrics.errs)
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	require.ErrorIs(t, cfg.Validate(), errMissingEndpoint)

	cfg.Endpoint = "tcp://localhost:10123"
	require.ErrorIs(t, cfg.Validate(), errMissingVCHost)

	cfg.VCHost = testVCHost
	require.NoError(t, cfg.Validate())
	assert.Equal(t, models.Duration(defaultTimeout), cfg.Timeout)
	assert.Equal(t, defaultRetries, cfg.Retries)
}

func freeEndpoint(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return "tcp://" + addr
}

func TestZMQTransportRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	endpoint := freeEndpoint(t)

	rep := zmq4.NewRep(ctx)
	defer func() { _ = rep.Close() }()

	require.NoError(t, rep.Listen(endpoint))

	go func() {
		msg, err := rep.Recv()
		if err != nil {
			return
		}

		var req Request
		if json.Unmarshal(msg.Bytes(), &req) != nil {
			return
		}

		_ = rep.Send(zmq4.NewMsgString(`{"success":0,"msg":"pong","result":[{"method":"` + req.Method + `"}]}`))
	}()

	tr := &ZMQTransport{Endpoint: endpoint, Timeout: 5 * time.Second, Retries: 1}
	client := NewClient(tr, testVCHost, nil, logger.NewTestLogger())

	about, err := client.About(ctx)
	require.NoError(t, err)
	assert.Equal(t, MethodAbout, about["method"])
}

func TestZMQTransportTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	endpoint := freeEndpoint(t)

	// A peer that never answers.
	rep := zmq4.NewRep(ctx)
	defer func() { _ = rep.Close() }()

	require.NoError(t, rep.Listen(endpoint))

	tr := &ZMQTransport{Endpoint: endpoint, Timeout: 200 * time.Millisecond, Retries: 2}

	_, err := tr.RoundTrip(ctx, []byte(`{"method":"about"}`))
	require.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "after 2 attempts")
}
