// internal/adapters/authclient/client.go
package authclient

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ammerola/warehouse-ms/internal/adapters/httpclient"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
)

// EndpointAccessRoute is the auth service route that authorises one call
const EndpointAccessRoute = "/v1/auth/endpoint_access/"

// MsgUnreachable is returned when the auth service cannot be reached
const MsgUnreachable = "Connection error: auth-ms is unreachable"

// Client asks the auth service whether a bearer token may call an endpoint
type Client struct {
	requester *httpclient.Requester
	logger    *slog.Logger
}

// Statically assert that *Client implements the AccessChecker interface.
var _ ports.AccessChecker = (*Client)(nil)

// New creates a client for the auth service at domain
func New(domain string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		requester: httpclient.NewRequester(domain, logger, httpclient.WithTimeout(timeout)),
		logger:    logger.With(slog.String("client", "auth")),
	}
}

// CheckEndpointAccess relays req to the auth service and returns the
// employee it resolved the token to. Failures are *httpclient.RequestError
// carrying the status to answer with.
func (c *Client) CheckEndpointAccess(ctx context.Context, token string, req ports.AccessRequest) (json.RawMessage, error) {
	headers := http.Header{}
	headers.Set("Authorization", token)

	var employee json.RawMessage
	err := c.requester.Post(ctx, EndpointAccessRoute, req, &employee, headers)
	if err == nil {
		return employee, nil
	}

	if re, ok := httpclient.IsRequestError(err); ok && re.Detail == httpclient.MsgSendFailed {
		c.logger.ErrorContext(ctx, "auth service unreachable", slog.String("error", err.Error()))
		return nil, &httpclient.RequestError{Status: http.StatusInternalServerError, Detail: MsgUnreachable, Err: re.Err}
	}
	return nil, err
}
