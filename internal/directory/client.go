// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/sec"
)

// Client is the HTTP implementation of [Directory] against the hosted
// directory service's admin REST API.
//
// # Authentication
//
// Requests authenticate with a static API key sent in the X-Api-Key
// header. Password verification additionally requires the key: without
// one the endpoint is unreachable and VerifyPassword fails closed.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// wireUser is the directory service's JSON representation of an account.
type wireUser struct {
	UID          string         `json:"uid"`
	Email        string         `json:"email"`
	DisplayName  string         `json:"displayName"`
	Disabled     bool           `json:"disabled"`
	CustomClaims map[string]any `json:"customClaims"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// wirePage is the directory service's JSON list envelope.
type wirePage struct {
	Users         []wireUser `json:"users"`
	NextPageToken string     `json:"nextPageToken"`
}

// NewClient creates a directory client. baseURL is the service root
// without a trailing slash; httpClient may be nil for a default with a
// 30 second timeout.
func NewClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "directory_client")),
	}
}

// do executes an authorized request against the directory API.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("directory: encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("directory: build request: %w", err)
	}

	request.Header.Set("X-Api-Key", c.apiKey)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, apperr.UpstreamUnavailable(err)
	}
	return response, nil
}

// decodeInto maps the response status to the package error contract and,
// on success, decodes the body into target (which may be nil).
func (c *Client) decodeInto(response *http.Response, target any) error {
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return apperr.NotFound("user")
	case response.StatusCode == http.StatusConflict:
		return apperr.AlreadyExists("An account with this email already exists")
	case response.StatusCode == http.StatusBadRequest:
		return c.decodeBadRequest(response)
	case response.StatusCode >= 500:
		body, _ := io.ReadAll(response.Body)
		return apperr.UpstreamUnavailable(fmt.Errorf("directory: status %d: %s", response.StatusCode, string(body)))
	case response.StatusCode < 200 || response.StatusCode >= 300:
		body, _ := io.ReadAll(response.Body)
		return apperr.Internal(fmt.Errorf("directory: unexpected status %d: %s", response.StatusCode, string(body)))
	}

	if target != nil {
		if err := json.NewDecoder(response.Body).Decode(target); err != nil {
			return apperr.Internal(fmt.Errorf("directory: decode response: %w", err))
		}
	}
	return nil
}

// decodeBadRequest distinguishes weak-password rejections from generic
// validation failures using the provider's error code field.
func (c *Client) decodeBadRequest(response *http.Response) error {
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	body, _ := io.ReadAll(response.Body)
	if err := json.Unmarshal(body, &payload); err == nil && strings.Contains(payload.Code, "WEAK_PASSWORD") {
		return apperr.WeakPassword()
	}
	return apperr.ValidationError(fmt.Sprintf("Directory rejected the request: %s", string(body)))
}

// toUser converts a wire account to the application model.
func (w wireUser) toUser() *User {
	return &User{
		UID:         w.UID,
		Email:       sec.NormalizeEmail(w.Email),
		DisplayName: w.DisplayName,
		Disabled:    w.Disabled,
		Claims:      decodeClaims(w.CustomClaims),
		CreatedAt:   w.CreatedAt,
	}
}

// GetUserByEmail looks up an account by email (case-insensitive).
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	path := "/users/by-email/" + url.PathEscape(sec.NormalizeEmail(email))
	response, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var wire wireUser
	if err := c.decodeInto(response, &wire); err != nil {
		return nil, err
	}
	return wire.toUser(), nil
}

// GetUser looks up an account by UID.
func (c *Client) GetUser(ctx context.Context, uid string) (*User, error) {
	response, err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(uid), nil)
	if err != nil {
		return nil, err
	}

	var wire wireUser
	if err := c.decodeInto(response, &wire); err != nil {
		return nil, err
	}
	return wire.toUser(), nil
}

// CreateUser provisions a new account.
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	payload := map[string]any{
		"email":       sec.NormalizeEmail(input.Email),
		"password":    input.Password,
		"displayName": input.DisplayName,
		"disabled":    input.Disabled,
	}

	response, err := c.do(ctx, http.MethodPost, "/users", payload)
	if err != nil {
		return nil, err
	}

	var wire wireUser
	if err := c.decodeInto(response, &wire); err != nil {
		return nil, err
	}
	return wire.toUser(), nil
}

// UpdateUser applies the non-nil fields of input to the account.
func (c *Client) UpdateUser(ctx context.Context, uid string, input UpdateUserInput) (*User, error) {
	payload := map[string]any{}
	if input.Email != nil {
		payload["email"] = sec.NormalizeEmail(*input.Email)
	}
	if input.Password != nil {
		payload["password"] = *input.Password
	}
	if input.DisplayName != nil {
		payload["displayName"] = *input.DisplayName
	}
	if input.Disabled != nil {
		payload["disabled"] = *input.Disabled
	}

	response, err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(uid), payload)
	if err != nil {
		return nil, err
	}

	var wire wireUser
	if err := c.decodeInto(response, &wire); err != nil {
		return nil, err
	}
	return wire.toUser(), nil
}

// DeleteUser removes the account permanently.
func (c *Client) DeleteUser(ctx context.Context, uid string) error {
	response, err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(uid), nil)
	if err != nil {
		return err
	}
	return c.decodeInto(response, nil)
}

// SetClaims replaces the account's custom claims.
func (c *Client) SetClaims(ctx context.Context, uid string, claims Claims) error {
	payload := map[string]any{"customClaims": claims.encode()}

	response, err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(uid)+"/claims", payload)
	if err != nil {
		return err
	}
	return c.decodeInto(response, nil)
}

// ListUsers returns one page of accounts.
func (c *Client) ListUsers(ctx context.Context, pageSize int, pageToken string) (*Page, error) {
	path := fmt.Sprintf("/users?pageSize=%d", pageSize)
	if pageToken != "" {
		path += "&pageToken=" + url.QueryEscape(pageToken)
	}

	response, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var wire wirePage
	if err := c.decodeInto(response, &wire); err != nil {
		return nil, err
	}

	page := &Page{NextPageToken: wire.NextPageToken}
	for _, w := range wire.Users {
		page.Users = append(page.Users, *w.toUser())
	}
	return page, nil
}

// VerifyPassword checks a plaintext password against the account's stored
// credential.
//
// # Fail Closed
//
// Verification lives behind the API key. Without a key the check cannot
// run, and the method returns UPSTREAM_UNAVAILABLE instead of guessing —
// a login must never succeed on an unverified password.
func (c *Client) VerifyPassword(ctx context.Context, email, password string) (*User, error) {
	if c.apiKey == "" {
		return nil, apperr.UpstreamUnavailable(fmt.Errorf("directory: password verification requires an API key"))
	}

	payload := map[string]any{
		"email":    sec.NormalizeEmail(email),
		"password": password,
	}

	response, err := c.do(ctx, http.MethodPost, "/users/verify-password", payload)
	if err != nil {
		return nil, err
	}

	if response.StatusCode == http.StatusUnauthorized {
		response.Body.Close()
		return nil, apperr.InvalidCredentials()
	}

	var wire wireUser
	if err := c.decodeInto(response, &wire); err != nil {
		return nil, err
	}
	return wire.toUser(), nil
}
