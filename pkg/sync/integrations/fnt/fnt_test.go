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
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Path    string
	Session string
	Body    map[string]interface{}
}

// commandServer fakes the Command REST endpoints used by the client.
type commandServer struct {
	mu       sync.Mutex
	logins   int
	session  string
	calls    []recordedCall
	handlers map[string]func(body map[string]interface{}) (int, interface{})
}

func newCommandServer(t *testing.T) (*commandServer, *Client) {
	t.Helper()

	s := &commandServer{handlers: make(map[string]func(map[string]interface{}) (int, interface{}))}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	cfg := &Config{URL: srv.URL + "/", Username: "sync", Password: "secret"}
	require.NoError(t, cfg.Validate())

	return s, NewClient(cfg, srv.Client(), logger.NewTestLogger())
}

func ok(data interface{}) map[string]interface{} {
	return map[string]interface{}{"status": map[string]interface{}{"success": true, "message": ""}, "returnData": data}
}

func (s *commandServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, _ := io.ReadAll(r.Body)

	var body map[string]interface{}
	_ = json.Unmarshal(raw, &body)

	path := strings.TrimPrefix(r.URL.Path, apiPath)
	session := r.URL.Query().Get("sessionId")
	s.calls = append(s.calls, recordedCall{Path: path, Session: session, Body: body})

	w.Header().Set("Content-Type", "application/json")

	if path == "businessGateway/login" {
		if body["password"] != "secret" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"status": map[string]interface{}{"success": false, "message": "Login failed"},
			})

			return
		}

		s.logins++
		s.session = "S" + string(rune('0'+s.logins))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": map[string]interface{}{"success": true}, "sessionId": s.session,
		})

		return
	}

	if session != s.session {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("session expired"))

		return
	}

	handler, found := s.handlers[path]
	if !found {
		w.WriteHeader(http.StatusNotFound)

		return
	}

	status, reply := handler(body)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reply)
}

func TestLoginAndQuery(t *testing.T) {
	s, client := newCommandServer(t)

	s.handlers["entity/virtualServer/query"] = func(body map[string]interface{}) (int, interface{}) {
		assert.Equal(t, map[string]interface{}{
			"datasource": map[string]interface{}{"operator": "=", "value": "vc01"},
		}, body["restrictions"])
		assert.Equal(t, []interface{}{"elid", "cUuid"}, body["returnAttributes"])

		return http.StatusOK, ok([]map[string]interface{}{
			{"elid": "E1", "cUuid": "U1", "cCpu": 4},
		})
	}

	entities, err := client.GetEntities(context.Background(), models.EntityVirtualServer, &models.EntityQuery{
		Restrictions: map[string]models.Restriction{"datasource": {Operator: models.OperatorEquals, Value: "vc01"}},
		Attributes:   []string{"elid", "cUuid"},
	})
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "E1", entities[0].String("elid"))
	assert.Equal(t, "4", entities[0].String("cCpu"))

	require.Len(t, s.calls, 2)
	assert.Equal(t, "businessGateway/login", s.calls[0].Path)
	assert.Equal(t, "sync", s.calls[0].Body["user"])
	assert.Equal(t, "001", s.calls[0].Body["manId"])
	assert.Equal(t, "Administrator", s.calls[0].Body["userGroupName"])
	assert.Equal(t, "S1", s.calls[1].Session)
}

func TestLoginRejected(t *testing.T) {
	s, client := newCommandServer(t)
	client.cfg.Password = "wrong"

	_, err := client.GetEntities(context.Background(), models.EntityVirtualServer, nil)
	require.ErrorIs(t, err, ErrRequestFailed)
	require.ErrorIs(t, err, ErrNotAuthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "login", apiErr.Operation)
	assert.Equal(t, "Login failed", apiErr.Message)
	assert.Len(t, s.calls, 1)
}

func TestSessionRenewal(t *testing.T) {
	s, client := newCommandServer(t)

	s.handlers["entity/custom/vmIpAddress/E7/update"] = func(body map[string]interface{}) (int, interface{}) {
		assert.Equal(t, "10.0.0.9", body["ipAddress"])

		return http.StatusOK, ok(nil)
	}

	require.NoError(t, client.Login(context.Background()))

	// The server forgets the session.
	s.mu.Lock()
	s.session = "expired"
	s.mu.Unlock()

	err := client.UpdateEntity(context.Background(), models.EntityIPAddress, true, "E7", models.Attributes{"ipAddress": "10.0.0.9"})
	require.NoError(t, err)
	assert.Equal(t, 2, s.logins)
}

func TestNotAuthorized(t *testing.T) {
	err := &APIError{Operation: "entity.query", StatusCode: http.StatusForbidden}
	require.ErrorIs(t, err, ErrNotAuthorized)
	require.ErrorIs(t, err, ErrRequestFailed)

	err = &APIError{Operation: "entity.query", StatusCode: http.StatusBadRequest}
	require.NotErrorIs(t, err, ErrNotAuthorized)
}

func TestRelatedEntities(t *testing.T) {
	s, client := newCommandServer(t)

	s.handlers["entity/virtualServer/E1/CustomVmIpAddresses"] = func(map[string]interface{}) (int, interface{}) {
		return http.StatusOK, ok([]map[string]interface{}{
			{"entity": map[string]interface{}{"elid": "E2", "ipAddress": "10.0.0.1"}, "relation": map[string]interface{}{"elid": "R1"}},
		})
	}

	linked, err := client.GetRelatedEntities(context.Background(), models.EntityVirtualServer, "E1", "CustomVmIpAddresses")
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "E2", linked[0].Elid())
	assert.Equal(t, "10.0.0.1", linked[0].Entity.String("ipAddress"))
	assert.Equal(t, "R1", linked[0].Relation.String("elid"))
}

func TestCreateLinkDelete(t *testing.T) {
	s, client := newCommandServer(t)
	ctx := context.Background()

	s.handlers["entity/custom/fileSystem/create"] = func(body map[string]interface{}) (int, interface{}) {
		assert.Equal(t, "/data", body["mountpoint"])

		return http.StatusOK, ok(map[string]interface{}{"elid": "E9"})
	}
	s.handlers["entity/virtualServer/E1/updateRelation/CustomFileSystem"] = func(body map[string]interface{}) (int, interface{}) {
		assert.Equal(t, []interface{}{map[string]interface{}{"linkedElid": "E9"}}, body["create"])

		return http.StatusOK, ok(nil)
	}
	s.handlers["entity/custom/fileSystem/E9/delete"] = func(map[string]interface{}) (int, interface{}) {
		return http.StatusOK, ok(nil)
	}
	s.handlers["entity/virtualServer/create"] = func(map[string]interface{}) (int, interface{}) {
		return http.StatusOK, map[string]interface{}{
			"status": map[string]interface{}{"success": false, "message": "Mandatory attribute missing"},
		}
	}

	elid, err := client.CreateEntity(ctx, models.EntityFileSystem, true, models.Attributes{"mountpoint": "/data"})
	require.NoError(t, err)
	assert.Equal(t, "E9", elid)

	require.NoError(t, client.CreateRelatedEntity(ctx, models.EntityVirtualServer, "E1", "CustomFileSystem", "E9"))
	require.NoError(t, client.DeleteEntity(ctx, models.EntityFileSystem, true, "E9"))

	_, err = client.CreateEntity(ctx, models.EntityVirtualServer, false, models.Attributes{})
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "Mandatory attribute missing")

	err = client.DeleteEntity(ctx, models.EntityFileSystem, true, "missing")
	require.ErrorIs(t, err, ErrRequestFailed)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestLogout(t *testing.T) {
	s, client := newCommandServer(t)
	ctx := context.Background()

	require.NoError(t, client.Logout(ctx), "no session is a no-op")

	s.handlers["businessGateway/logout"] = func(map[string]interface{}) (int, interface{}) {
		return http.StatusOK, ok(nil)
	}

	require.NoError(t, client.Login(ctx))
	require.NoError(t, client.Logout(ctx))
	assert.Empty(t, client.session())
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	require.ErrorIs(t, cfg.Validate(), errMissingURL)

	cfg.URL = "https://command.example.com/"
	require.ErrorIs(t, cfg.Validate(), errMissingUsername)

	cfg.Username = "sync"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://command.example.com", cfg.URL)
	assert.Equal(t, defaultMandant, cfg.Mandant)
	assert.Equal(t, defaultUserGroup, cfg.UserGroup)
	assert.Equal(t, models.Duration(defaultTimeout), cfg.Timeout)
}
