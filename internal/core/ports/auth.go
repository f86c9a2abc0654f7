// internal/core/ports/auth.go
package ports

import (
	"context"
	"encoding/json"
)

// AccessRequest asks the auth service whether a bearer token may call an
// endpoint.
type AccessRequest struct {
	EndpointMethod string            `json:"endpoint_method"`
	EndpointRoute  string            `json:"endpoint_route"`
	PathParams     map[string]string `json:"path_params,omitempty"`
}

// AccessChecker verifies endpoint access against the auth service. On
// success it returns the employee payload of the token owner.
type AccessChecker interface {
	CheckEndpointAccess(ctx context.Context, token string, req AccessRequest) (json.RawMessage, error)
}
