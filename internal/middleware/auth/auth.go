package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"storeapi/internal/repo"
	"storeapi/internal/tokens"
	"storeapi/internal/transport"
)

// Context keys populated for downstream handlers.
const (
	UserIDKey = "user_id"
	JTIKey    = "jti"
)

type Middleware struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func New(r *repo.GormRepo, jwtSecret []byte) *Middleware {
	return &Middleware{Repo: r, JWTSecret: jwtSecret}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c echo.Context) (string, bool) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return h[len(prefix):], true
}

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAccess(next, false)
}

// RequireFresh additionally rejects access tokens obtained through a refresh
// exchange. Mutating store/product operations go through here.
func (m *Middleware) RequireFresh(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAccess(next, true)
}

func (m *Middleware) requireAccess(next echo.HandlerFunc, fresh bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := BearerToken(c)
		if !ok {
			return unauthorized(c, "authorization_required", "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return unauthorized(c, "token_expired", "the token has expired")
			}
			return unauthorized(c, "token_invalid", "invalid token")
		}

		revoked, err := m.Repo.TokenRevoked(c.Request().Context(), claims.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{
				Error:   "storage_error",
				Message: "could not check token revocation",
			})
		}
		if revoked {
			return unauthorized(c, "token_revoked", "the token has been revoked")
		}

		if fresh && !claims.Fresh {
			return unauthorized(c, "fresh_token_required", "a fresh token is required")
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(JTIKey, claims.ID)
		return next(c)
	}
}

func unauthorized(c echo.Context, code, msg string) error {
	return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: code, Message: msg})
}
