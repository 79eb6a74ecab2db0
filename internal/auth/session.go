package auth

import (
	"net/http"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// Identity is the verified session identity threaded through request handlers.
type Identity struct {
	UserID uint
	Email  string
	Name   string
}

// SetSessionCookie attaches the signed token as an HTTP-only cookie.
func SetSessionCookie(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(SessionTokenExpiry),
		HttpOnly: true,
		Secure:   secure,
	})
}

// ClearSessionCookie expires the session cookie. Logout is purely client
// side; the token itself stays valid until natural expiry.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
	})
}

// CurrentUser extracts the identity stored by the echo-jwt middleware.
// The second return is false when no verified session is on the context.
func CurrentUser(c echo.Context) (Identity, bool) {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return Identity{}, false
	}
	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return Identity{}, false
	}

	id, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{}, false
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return Identity{UserID: uint(id), Email: email, Name: name}, true
}

// sessionFromCookie verifies the session cookie, failing closed to nil.
func sessionFromCookie(c echo.Context, jwtService *JWTService) *Claims {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := jwtService.Verify(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// RequireSessionPage redirects anonymous visitors of protected pages to the
// login page.
func RequireSessionPage(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessionFromCookie(c, jwtService) == nil {
				return c.Redirect(http.StatusFound, "/auth/login")
			}
			return next(c)
		}
	}
}

// RedirectAuthenticated sends already signed-in visitors of auth pages to
// the dashboard.
func RedirectAuthenticated(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessionFromCookie(c, jwtService) != nil {
				return c.Redirect(http.StatusFound, "/dashboard")
			}
			return next(c)
		}
	}
}
