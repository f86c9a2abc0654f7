// internal/adapters/httpclient/requester.go
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Messages carried by RequestError for failures that have no upstream detail
const (
	MsgSendFailed   = "Error when sending a request to another microservices"
	MsgReadResponse = "error reading the response"
)

// DefaultTimeout bounds every request sent by a Requester
const DefaultTimeout = 30 * time.Second

// RequestError is a failed call to another service. Status is the HTTP
// status the caller should answer with.
type RequestError struct {
	Status int
	Detail string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Detail)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Requester calls the versioned REST routes of another microservice:
// /v{version}/{router}/ and /v{version}/{router}/{id}/.
type Requester struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a Requester
type Option func(*Requester)

// WithHTTPClient replaces the pooled default client
func WithHTTPClient(c *http.Client) Option {
	return func(r *Requester) { r.client = c }
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(r *Requester) { r.client.Timeout = d }
}

// NewRequester creates a requester for the service at baseURL
func NewRequester(baseURL string, logger *slog.Logger, opts ...Option) *Requester {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxConnsPerHost = 100
	transport.MaxIdleConns = 20
	transport.MaxIdleConnsPerHost = 20

	r := &Requester{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout, Transport: transport},
		logger:  logger.With(slog.String("client", "http")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetAll lists the resources of router. query is appended as is.
func (r *Requester) GetAll(ctx context.Context, router string, version int, query string, dest any) error {
	url := r.route(version, router)
	if query != "" {
		url += "?" + strings.TrimPrefix(query, "?")
	}
	return r.do(ctx, http.MethodGet, url, nil, dest)
}

// GetByID reads one resource of router
func (r *Requester) GetByID(ctx context.Context, router string, version int, id int64, dest any) error {
	return r.do(ctx, http.MethodGet, r.route(version, router, fmt.Sprint(id)), nil, dest)
}

// PatchByID sends a partial update. path, when set, addresses a sub
// resource: /v{version}/{router}/{id}/{path}/.
func (r *Requester) PatchByID(ctx context.Context, router string, version int, id int64, path string, body, dest any) error {
	parts := []string{fmt.Sprint(id)}
	if path = strings.Trim(path, "/"); path != "" {
		parts = append(parts, path)
	}
	return r.do(ctx, http.MethodPatch, r.route(version, router, parts...), body, dest)
}

// DeleteByID removes one resource of router
func (r *Requester) DeleteByID(ctx context.Context, router string, version int, id int64) error {
	return r.do(ctx, http.MethodDelete, r.route(version, router, fmt.Sprint(id)), nil, nil)
}

// Post sends body to an absolute route of the service, e.g. "/v1/auth/endpoint_access/".
// Extra headers are set on the request.
func (r *Requester) Post(ctx context.Context, route string, body, dest any, headers http.Header) error {
	return r.doWithHeaders(ctx, http.MethodPost, r.baseURL+route, body, dest, headers)
}

func (r *Requester) route(version int, router string, parts ...string) string {
	segments := append([]string{fmt.Sprintf("v%d", version), strings.Trim(router, "/")}, parts...)
	return r.baseURL + "/" + strings.Join(segments, "/") + "/"
}

func (r *Requester) do(ctx context.Context, method, url string, body, dest any) error {
	return r.doWithHeaders(ctx, method, url, body, dest, nil)
}

func (r *Requester) doWithHeaders(ctx context.Context, method, url string, body, dest any, headers http.Header) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.WarnContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("url", url),
			slog.String("error", err.Error()))
		return &RequestError{Status: http.StatusInternalServerError, Detail: MsgSendFailed, Err: err}
	}
	defer resp.Body.Close()

	r.logger.DebugContext(ctx, "request completed",
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}
	if resp.StatusCode == http.StatusNoContent || dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &RequestError{Status: http.StatusBadRequest, Detail: MsgReadResponse, Err: err}
	}
	return nil
}

func statusError(resp *http.Response) error {
	detail := http.StatusText(resp.StatusCode)
	if resp.StatusCode < http.StatusInternalServerError {
		var payload struct {
			Detail json.RawMessage `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && len(payload.Detail) > 0 {
			detail = rawDetail(payload.Detail)
		}
	}
	return &RequestError{Status: resp.StatusCode, Detail: detail}
}

// rawDetail unquotes string details and keeps structured ones as JSON
func rawDetail(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// IsRequestError extracts a *RequestError from err
func IsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
