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
// Package fnt is a client for the FNT Command REST API.
package fnt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	httpx "github.com/carverauto/vmsync/pkg/http"
	"github.com/carverauto/vmsync/pkg/logger"
	"github.com/carverauto/vmsync/pkg/models"
)

const (
	apiPath    = "/axis/api/rest/"
	maxErrBody = 4096
)

// Client is a session-based FNT Command client. It logs in lazily and
// logs in again once when the session is rejected.
type Client struct {
	cfg    *Config
	http   httpx.HTTPClient
	logger logger.Logger

	mu        sync.Mutex
	sessionID string
}

// NewClient returns a client for cfg. cfg must be validated.
func NewClient(cfg *Config, client httpx.HTTPClient, log logger.Logger) *Client {
	return &Client{cfg: cfg, http: client, logger: log}
}

// Login opens a session.
func (c *Client) Login(ctx context.Context) error {
	req := &loginRequest{
		User:          c.cfg.Username,
		Password:      c.cfg.Password,
		ManID:         c.cfg.Mandant,
		UserGroupName: c.cfg.UserGroup,
	}

	env, err := c.post(ctx, "login", "businessGateway/login", "", req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 0 {
			apiErr.StatusCode = http.StatusUnauthorized
		}

		return err
	}

	if env.SessionID == "" {
		return &APIError{Operation: "login", StatusCode: http.StatusUnauthorized, Message: "no session id returned"}
	}

	c.mu.Lock()
	c.sessionID = env.SessionID
	c.mu.Unlock()

	c.logger.Info().Str("url", c.cfg.URL).Str("user", c.cfg.Username).Msg("Logged in to FNT Command")

	return nil
}

// Logout closes the session, if any.
func (c *Client) Logout(ctx context.Context) error {
	session := c.session()
	if session == "" {
		return nil
	}

	_, err := c.post(ctx, "logout", "businessGateway/logout", session, struct{}{})

	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()

	return err
}

func (c *Client) session() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sessionID
}

// call performs an authenticated request, renewing the session once.
func (c *Client) call(ctx context.Context, operation, path string, body, out interface{}) error {
	if c.session() == "" {
		if err := c.Login(ctx); err != nil {
			return err
		}
	}

	env, err := c.post(ctx, operation, path, c.session(), body)
	if errors.Is(err, ErrNotAuthorized) {
		c.logger.Warn().Str("operation", operation).Msg("FNT session rejected, logging in again")

		if err = c.Login(ctx); err != nil {
			return err
		}

		env, err = c.post(ctx, operation, path, c.session(), body)
	}

	if err != nil {
		return err
	}

	if out == nil || len(env.ReturnData) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.ReturnData, out); err != nil {
		return &APIError{Operation: operation, Message: "decode returnData: " + err.Error()}
	}

	return nil
}

func (c *Client) post(ctx context.Context, operation, path, session string, body interface{}) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", operation, err)
	}

	endpoint := c.cfg.URL + apiPath + path
	if session != "" {
		endpoint += "?sessionId=" + url.QueryEscape(session)
	}

	req, err := http.NewRequestWithContext(httpx.WithEndpoint(ctx, operation), http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fnt %s: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))

		return nil, &APIError{Operation: operation, StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{Operation: operation, StatusCode: resp.StatusCode, Message: "decode response: " + err.Error()}
	}

	if !env.Status.Success {
		return nil, &APIError{Operation: operation, Message: env.Status.Message}
	}

	return &env, nil
}

func entityPath(entityType string, custom bool) string {
	if custom {
		return "entity/custom/" + url.PathEscape(entityType)
	}

	return "entity/" + url.PathEscape(entityType)
}

func restrictions(query *models.EntityQuery) map[string]restriction {
	out := make(map[string]restriction)
	if query == nil {
		return out
	}

	for field, r := range query.Restrictions {
		out[field] = restriction{Operator: r.Operator, Value: r.Value}
	}

	return out
}

// GetEntities queries entities of entityType.
func (c *Client) GetEntities(ctx context.Context, entityType string, query *models.EntityQuery) ([]models.Attributes, error) {
	req := &queryRequest{Restrictions: restrictions(query), ReturnAttributes: []string{}}
	if query != nil && query.Attributes != nil {
		req.ReturnAttributes = query.Attributes
	}

	var out []models.Attributes
	if err := c.call(ctx, "entity.query", entityPath(entityType, false)+"/query", req, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// GetRelatedEntities returns the entities linked to elid through relationType.
func (c *Client) GetRelatedEntities(ctx context.Context, entityType, elid, relationType string) ([]models.LinkedEntity, error) {
	req := &relatedQueryRequest{
		EntityRestrictions:       map[string]restriction{},
		ReturnEntityAttributes:   []string{},
		RelationRestrictions:     map[string]restriction{},
		ReturnRelationAttributes: []string{},
	}

	path := fmt.Sprintf("%s/%s/%s", entityPath(entityType, false), url.PathEscape(elid), url.PathEscape(relationType))

	var related []relatedEntity
	if err := c.call(ctx, "entity.related", path, req, &related); err != nil {
		return nil, err
	}

	out := make([]models.LinkedEntity, 0, len(related))
	for _, r := range related {
		out = append(out, models.LinkedEntity{Entity: r.Entity, Relation: r.Relation})
	}

	return out, nil
}

// CreateEntity creates an entity and returns its elid.
func (c *Client) CreateEntity(ctx context.Context, entityType string, custom bool, attrs models.Attributes) (string, error) {
	var res createResult
	if err := c.call(ctx, "entity.create", entityPath(entityType, custom)+"/create", attrs, &res); err != nil {
		return "", err
	}

	if res.Elid == "" {
		return "", fmt.Errorf("%s: %w", entityType, errNoElid)
	}

	return res.Elid, nil
}

// UpdateEntity writes attrs onto the entity elid.
func (c *Client) UpdateEntity(ctx context.Context, entityType string, custom bool, elid string, attrs models.Attributes) error {
	path := fmt.Sprintf("%s/%s/update", entityPath(entityType, custom), url.PathEscape(elid))

	return c.call(ctx, "entity.update", path, attrs, nil)
}

// DeleteEntity removes the entity elid.
func (c *Client) DeleteEntity(ctx context.Context, entityType string, custom bool, elid string) error {
	path := fmt.Sprintf("%s/%s/delete", entityPath(entityType, custom), url.PathEscape(elid))

	return c.call(ctx, "entity.delete", path, struct{}{}, nil)
}

// CreateRelatedEntity links linkedElid to elid through relationType.
func (c *Client) CreateRelatedEntity(ctx context.Context, entityType, elid, relationType, linkedElid string) error {
	path := fmt.Sprintf("%s/%s/updateRelation/%s", entityPath(entityType, false), url.PathEscape(elid), url.PathEscape(relationType))
	req := &linkRequest{Create: []linkTarget{{LinkedElid: linkedElid}}}

	return c.call(ctx, "entity.link", path, req, nil)
}
