package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaceTNT/office-map/internal/auth"
)

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, auth.RoleUser.CanRead())
	assert.False(t, auth.RoleUser.CanWrite())
	assert.True(t, auth.RoleAdmin.CanRead())
	assert.True(t, auth.RoleAdmin.CanWrite())

	unknown := auth.Role("SUPERVISOR")
	assert.False(t, unknown.Valid())
	assert.False(t, unknown.CanRead())
	assert.False(t, unknown.CanWrite())
}

func TestMintVerifyRoundTrip(t *testing.T) {
	v := auth.NewVerifier("test-secret", false)

	token, err := v.Mint("user-1", "jo@x.com", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	identity, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.Id)
	assert.Equal(t, "jo@x.com", identity.Email)
	assert.Equal(t, auth.RoleAdmin, identity.Role)
}

func TestVerifyRejections(t *testing.T) {
	v := auth.NewVerifier("test-secret", false)

	t.Run("garbage_token", func(t *testing.T) {
		_, err := v.Verify("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other := auth.NewVerifier("other-secret", false)
		token, err := other.Mint("user-1", "jo@x.com", auth.RoleUser, time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired_token", func(t *testing.T) {
		token, err := v.Mint("user-1", "jo@x.com", auth.RoleUser, -time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.Error(t, err)
	})

	t.Run("unknown_role", func(t *testing.T) {
		token, err := v.Mint("user-1", "jo@x.com", auth.Role("SUPERVISOR"), time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.Error(t, err)
	})
}

func testRouter(v *auth.Verifier) chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(v.Authenticate)
		r.Get("/read", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.With(auth.RequireAdmin).Post("/write", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func TestMiddlewareMatrix(t *testing.T) {
	v := auth.NewVerifier("test-secret", false)

	userToken, err := v.Mint("user-1", "user@x.com", auth.RoleUser, time.Hour)
	require.NoError(t, err)
	adminToken, err := v.Mint("admin-1", "admin@x.com", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		wantCode int
	}{
		{name: "read_without_token", method: "GET", path: "/read", token: "", wantCode: http.StatusUnauthorized},
		{name: "read_with_user_token", method: "GET", path: "/read", token: userToken, wantCode: http.StatusOK},
		{name: "read_with_bad_token", method: "GET", path: "/read", token: "garbage", wantCode: http.StatusUnauthorized},
		{name: "write_with_user_token", method: "POST", path: "/write", token: userToken, wantCode: http.StatusForbidden},
		{name: "write_with_admin_token", method: "POST", path: "/write", token: adminToken, wantCode: http.StatusOK},
		{name: "write_without_token", method: "POST", path: "/write", token: "", wantCode: http.StatusUnauthorized},
	}

	router := testRouter(v)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestDisabledBypass(t *testing.T) {
	v := auth.NewVerifier("", true)
	router := testRouter(v)

	// no credential at all, both tiers pass with the synthetic admin
	req := httptest.NewRequest("POST", "/write", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
