// Package api is the HTTP/JSON client for the MyDuka backend. Every
// collaborator the client consumes (identity, auth, notifications) lives
// behind this package; callers depend on narrow interfaces over it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/Patrickson2/MY-DUKA-SYSTEM/internal/platform/errors"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/platform/timeouts"
)

// GenericErrorMessage is the fixed message used whenever the server's error
// detail is absent or not a plain string.
const GenericErrorMessage = "Request failed."

const maxErrorBody = 64 << 10

// TokenSource supplies the current access token, or empty when signed out.
type TokenSource func() string

// Client calls the MyDuka backend over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	tracer     trace.Tracer
}

// New creates a backend client. httpClient may be nil to use the default
// client; token may be nil for an unauthenticated client.
func New(baseURL string, httpClient *http.Client, token TokenSource) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.APIRequest}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		token:      token,
		tracer:     otel.Tracer("github.com/Patrickson2/MY-DUKA-SYSTEM/internal/api"),
	}
}

// Login exchanges credentials for tokens and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, payload, &resp); err != nil {
		return TokenResponse{}, err
	}
	return resp, nil
}

// RegisterAdminInvite completes an admin account from an invite token and
// returns a fresh session, like login does.
func (c *Client) RegisterAdminInvite(ctx context.Context, reg AdminInviteRegistration) (TokenResponse, error) {
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/admin-invite/register", nil, reg, &resp); err != nil {
		return TokenResponse{}, err
	}
	return resp, nil
}

// Me validates the current token against the identity endpoint and returns
// the fresh profile.
func (c *Client) Me(ctx context.Context) (Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Logout revokes the refresh token on the server.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	payload := map[string]string{"refresh_token": refreshToken}
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, payload, nil)
}

// UnreadCount returns the number of unread notifications for the current user.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications/unread-count", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}

// ListNotifications returns the most recent notifications, newest first,
// bounded by limit.
func (c *Client) ListNotifications(ctx context.Context, limit int) ([]Notification, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var notifications []Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications/", query, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead marks a single notification as read.
func (c *Client) MarkRead(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/notifications/%d/read", id), nil, nil, nil)
}

// MarkAllRead marks every notification for the current user as read.
func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/api/notifications/read-all", nil, nil, nil)
}

// do performs one JSON exchange. No retries, no backoff, no refresh-on-401:
// a failed call maps to exactly one domain error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, span := c.tracer.Start(ctx, method+" "+path)
	defer span.End()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeNetworkTransient, GenericErrorMessage, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNetworkTransient, GenericErrorMessage, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, "transport failure")
		span.RecordError(err)
		return apperrors.Wrap(apperrors.CodeNetworkTransient, GenericErrorMessage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		decoded := decodeError(resp)
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		span.RecordError(decoded)
		return decoded
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			span.RecordError(err)
			return apperrors.Wrap(apperrors.CodeNetworkTransient, GenericErrorMessage, err)
		}
	}
	return nil
}

// decodeError reduces a non-2xx response to a domain error. The server sends
// errors as {"detail": ...}; only a plain string detail is surfaced verbatim,
// anything else reduces to the fixed generic message.
func decodeError(resp *http.Response) error {
	message := GenericErrorMessage
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var payload struct {
			Detail json.RawMessage `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil && len(payload.Detail) > 0 {
			var detail string
			if json.Unmarshal(payload.Detail, &detail) == nil {
				message = detail
			}
		}
	}

	code := apperrors.CodeNetworkTransient
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		code = apperrors.CodeAuthExpired
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		code = apperrors.CodeValidationRejected
	}
	return apperrors.New(code, message)
}
