package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Session validates the session token and injects the actor's identity into
// the request context. The token is read from the session cookie or, for
// API clients, a bearer Authorization header.
//
// A missing or invalid token yields 403: the API treats "no session" as an
// authorization failure, reserving 401 for bad credentials at login.
func Session(jwtSecret, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				if cookie, err := c.Cookie(cookieName); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				return echo.NewHTTPError(http.StatusForbidden, "Authentication credentials were not provided.")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid session.")
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid session.")
			}

			c.Set("user_id", sub)
			c.Set("email", claims["email"])

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
