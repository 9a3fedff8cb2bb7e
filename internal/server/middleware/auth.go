package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/trannm-ct/channel-chat/internal/identity"
	"github.com/trannm-ct/channel-chat/internal/models"
)

// IdentityClaims are the claims the external identity provider puts in its
// bearer tokens.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// Identity parses an optional bearer token and injects the signed-in user
// into the request context. Requests without a token continue anonymously;
// a present but invalid token is rejected.
func Identity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			claims := &IdentityClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ident := models.Identity{
				Email:    claims.Email,
				Verified: claims.EmailVerified,
			}
			if ident.Email == "" {
				ident.Email = claims.Subject
			}

			ctx := identity.Inject(c.Request().Context(), ident)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("user", token)
			return next(c)
		}
	}
}
