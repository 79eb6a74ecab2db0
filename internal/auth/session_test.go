package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newPageServer(t *testing.T, jwtService *JWTService) *echo.Echo {
	t.Helper()
	e := echo.New()

	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }

	dashboard := e.Group("/dashboard", RequireSessionPage(jwtService))
	dashboard.GET("", ok)
	admin := e.Group("/admin", RequireSessionPage(jwtService))
	admin.GET("", ok)

	authPages := e.Group("/auth", RedirectAuthenticated(jwtService))
	authPages.GET("/login", ok)

	return e
}

func TestPageGuards(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	e := newPageServer(t, jwtService)

	validToken, err := jwtService.Generate(7, "test@example.com", "Test User")
	assert.NoError(t, err)

	tests := []struct {
		name         string
		path         string
		cookie       string
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "anonymous dashboard redirects to login",
			path:         "/dashboard",
			wantStatus:   http.StatusFound,
			wantLocation: "/auth/login",
		},
		{
			name:         "anonymous admin redirects to login",
			path:         "/admin",
			wantStatus:   http.StatusFound,
			wantLocation: "/auth/login",
		},
		{
			name:       "authenticated dashboard passes",
			path:       "/dashboard",
			cookie:     validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:         "authenticated login page redirects to dashboard",
			path:         "/auth/login",
			cookie:       validToken,
			wantStatus:   http.StatusFound,
			wantLocation: "/dashboard",
		},
		{
			name:       "anonymous login page passes",
			path:       "/auth/login",
			wantStatus: http.StatusOK,
		},
		{
			name:         "tampered cookie treated as anonymous",
			path:         "/dashboard",
			cookie:       validToken[:len(validToken)-2] + "xx",
			wantStatus:   http.StatusFound,
			wantLocation: "/auth/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func TestSessionCookieLifecycle(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	SetSessionCookie(c, "token-value", false)
	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, "token-value", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)
	assert.Equal(t, "/", cookies[0].Path)

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	ClearSessionCookie(c, true)
	cookies = rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Secure)
	assert.Negative(t, cookies[0].MaxAge)
}
