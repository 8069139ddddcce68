// Package auth implements the two-tier access policy: every API read
// requires a verified identity, every write requires the admin role.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed set of caller roles carried in bearer tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// CanRead reports whether the role may perform read operations.
func (r Role) CanRead() bool {
	return r.Valid()
}

// CanWrite reports whether the role may perform mutations.
func (r Role) CanWrite() bool {
	return r == RoleAdmin
}

// Identity is the verified caller attached to the request context.
type Identity struct {
	Id    string
	Email string
	Role  Role
}

// Claims is the JWT payload used by this service.
type Claims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates bearer tokens with a shared HMAC secret. When
// disabled (local development toggle) every request is treated as an
// admin identity.
type Verifier struct {
	secret   []byte
	disabled bool
}

func NewVerifier(secret string, disabled bool) *Verifier {
	return &Verifier{
		secret:   []byte(secret),
		disabled: disabled,
	}
}

// Disabled reports whether the development bypass is active.
func (v *Verifier) Disabled() bool {
	return v.disabled
}

// Verify parses and validates a compact JWT and returns the caller identity.
func (v *Verifier) Verify(tokenStr string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}

	return &Identity{
		Id:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

// Mint signs a token for the given identity, valid for ttl. Used by the
// token utility and by tests.
func (v *Verifier) Mint(subject, email string, role Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

type ctxKey int

const identityKey ctxKey = 0

// IdentityFrom returns the verified identity attached by Authenticate.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// devIdentity is injected when the verifier is disabled.
var devIdentity = &Identity{
	Id:    "dev-user-id",
	Email: "dev@example.com",
	Role:  RoleAdmin,
}

// Authenticate requires a valid bearer credential and attaches the caller
// identity to the request context.
func (v *Verifier) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v.disabled {
			ctx := context.WithValue(r.Context(), identityKey, devIdentity)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "no token provided")
			return
		}

		identity, err := v.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates mutations behind the admin capability. Must be
// mounted after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		if !identity.Role.CanWrite() {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	fmt.Fprintf(w, "{\"error\":%q}", msg)
}
