// internal/handlers/middleware/auth_test.go
package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/ammerola/warehouse-ms/internal/adapters/httpclient"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
	"github.com/ammerola/warehouse-ms/internal/handlers/middleware"
	"github.com/ammerola/warehouse-ms/internal/pkg/logger"
	"github.com/ammerola/warehouse-ms/test/helpers"
	"github.com/ammerola/warehouse-ms/test/mocks"
)

func TestBasicAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name           string
		password       string
		setAuth        func(*http.Request)
		expectedStatus int
	}{
		{
			name:           "plain_password",
			password:       "s3cret",
			setAuth:        func(r *http.Request) { r.SetBasicAuth("warehouse", "s3cret") },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bcrypt_password",
			password:       string(hash),
			setAuth:        func(r *http.Request) { r.SetBasicAuth("warehouse", "s3cret") },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong_password",
			password:       string(hash),
			setAuth:        func(r *http.Request) { r.SetBasicAuth("warehouse", "guess") },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong_user",
			password:       "s3cret",
			setAuth:        func(r *http.Request) { r.SetBasicAuth("admin", "s3cret") },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no_credentials",
			password:       "s3cret",
			setAuth:        func(*http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "warehouse", r.Context().Value(logger.ContextKeyUserID))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/warehouse/", nil)
			tt.setAuth(req)
			w := httptest.NewRecorder()

			middleware.BasicAuth("warehouse", tt.password)(handler).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
			}
		})
	}
}

func signedToken(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func bearerMux(checker ports.AccessChecker, rootPath string, handler http.HandlerFunc) *http.ServeMux {
	wrap := middleware.BearerAuth(checker, rootPath, helpers.TestLogger())
	mux := http.NewServeMux()
	mux.Handle("GET /api/v1/supplier/{id}/{$}", wrap(handler))
	mux.Handle("GET /api/v1/supplier/{$}", wrap(handler))
	return mux
}

func TestBearerAuth(t *testing.T) {
	token := signedToken(t, "42")

	t.Run("granted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		checker := mocks.NewMockAccessChecker(ctrl)
		checker.EXPECT().
			CheckEndpointAccess(gomock.Any(), token, ports.AccessRequest{
				EndpointMethod: http.MethodGet,
				EndpointRoute:  "/v1/supplier/{id}/",
				PathParams:     map[string]string{"id": "7"},
			}).
			Return(json.RawMessage(`{"id":42,"name":"Ivan"}`), nil)

		mux := bearerMux(checker, "/api", func(w http.ResponseWriter, r *http.Request) {
			employee, ok := middleware.EmployeeFromContext(r.Context())
			assert.True(t, ok)
			assert.JSONEq(t, `{"id":42,"name":"Ivan"}`, string(employee))
			assert.Equal(t, "42", r.Context().Value(logger.ContextKeyUserID))
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/supplier/7/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("collection_route_has_no_params", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		checker := mocks.NewMockAccessChecker(ctrl)
		checker.EXPECT().
			CheckEndpointAccess(gomock.Any(), token, ports.AccessRequest{
				EndpointMethod: http.MethodGet,
				EndpointRoute:  "/v1/supplier/",
			}).
			Return(json.RawMessage(`{}`), nil)

		mux := bearerMux(checker, "/api", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/supplier/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	tests := []struct {
		name           string
		authorization  string
		checkErr       error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing_token",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  middleware.MsgBearerRequired,
		},
		{
			name:           "basic_scheme_is_not_a_token",
			authorization:  "Basic d2FyZWhvdXNlOng=",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  middleware.MsgBearerRequired,
		},
		{
			name:           "denied_status_is_relayed",
			authorization:  "Bearer " + token,
			checkErr:       &httpclient.RequestError{Status: http.StatusForbidden, Detail: "Access denied"},
			expectedStatus: http.StatusForbidden,
			expectedError:  "Access denied",
		},
		{
			name:           "unexpected_error",
			authorization:  "Bearer " + token,
			checkErr:       errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checker := mocks.NewMockAccessChecker(ctrl)
			if tt.checkErr != nil {
				checker.EXPECT().CheckEndpointAccess(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.checkErr)
			}

			mux := bearerMux(checker, "/api", func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/supplier/7/", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body["error"])
		})
	}
}
