// internal/handlers/middleware/auth.go
package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ammerola/warehouse-ms/internal/adapters/httpclient"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
	"github.com/ammerola/warehouse-ms/internal/pkg/logger"
)

// Auth failure details
const (
	MsgInvalidCredentials = "Invalid authentication credentials"
	MsgBearerRequired     = "Bearer token must be provided"
)

type contextKey string

const employeeKey contextKey = "employee"

// EmployeeFromContext returns the employee payload stored by BearerAuth
func EmployeeFromContext(ctx context.Context) (json.RawMessage, bool) {
	employee, ok := ctx.Value(employeeKey).(json.RawMessage)
	return employee, ok
}

// BasicAuth requires HTTP basic credentials matching user and password.
// A password starting with "$2" is treated as a bcrypt hash.
func BasicAuth(user, password string) func(http.Handler) http.Handler {
	hashed := strings.HasPrefix(password, "$2")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUser, gotPassword, ok := r.BasicAuth()
			if !ok || !checkCredentials(user, password, hashed, gotUser, gotPassword) {
				w.Header().Set("WWW-Authenticate", `Basic realm="warehouse"`)
				writeError(w, http.StatusUnauthorized, MsgInvalidCredentials)
				return
			}

			ctx := context.WithValue(r.Context(), logger.ContextKeyUserID, gotUser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func checkCredentials(user, password string, hashed bool, gotUser, gotPassword string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(gotUser), []byte(user)) == 1

	var passwordOK bool
	if hashed {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(password), []byte(gotPassword)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(gotPassword), []byte(password)) == 1
	}
	return userOK && passwordOK
}

var patternParam = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)(\.\.\.)?\}`)

// BearerAuth asks the auth service whether the bearer token may call the
// matched route. rootPath is stripped from the route sent for checking.
// Must wrap handlers registered on an http.ServeMux so r.Pattern is set.
func BearerAuth(checker ports.AccessChecker, rootPath string, l *slog.Logger) func(http.Handler) http.Handler {
	l = l.With(slog.String("middleware", "bearer_auth"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, MsgBearerRequired)
				return
			}

			req := accessRequest(r, rootPath)
			employee, err := checker.CheckEndpointAccess(ctx, token, req)
			if err != nil {
				if reqErr, ok := httpclient.IsRequestError(err); ok {
					l.WarnContext(ctx, "endpoint access denied",
						slog.String("route", req.EndpointRoute),
						slog.Int("status", reqErr.Status))
					writeError(w, reqErr.Status, reqErr.Detail)
					return
				}
				l.ErrorContext(ctx, "endpoint access check failed", slog.String("error", err.Error()))
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx = context.WithValue(ctx, employeeKey, employee)
			if sub := tokenSubject(token); sub != "" {
				ctx = context.WithValue(ctx, logger.ContextKeyUserID, sub)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// accessRequest describes the matched route the way auth-ms registers
// endpoints: the pattern path without the method, the root path or the
// {$} anchor, plus the path values.
func accessRequest(r *http.Request, rootPath string) ports.AccessRequest {
	route := r.Pattern
	if i := strings.IndexByte(route, ' '); i >= 0 {
		route = route[i+1:]
	}
	if route == "" {
		route = r.URL.Path
	}
	route = strings.TrimSuffix(route, "{$}")
	if rootPath != "" && rootPath != "/" {
		route = strings.TrimPrefix(route, strings.TrimRight(rootPath, "/"))
	}

	var params map[string]string
	for _, m := range patternParam.FindAllStringSubmatch(route, -1) {
		if params == nil {
			params = make(map[string]string)
		}
		params[m[1]] = r.PathValue(m[1])
	}

	return ports.AccessRequest{
		EndpointMethod: r.Method,
		EndpointRoute:  route,
		PathParams:     params,
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
