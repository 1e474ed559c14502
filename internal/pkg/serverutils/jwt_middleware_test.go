package serverutils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret, userId, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newGuardedApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/protected")
	protected.Use(JwtMiddleware)
	protected.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})
	protected.Get("/admin", RequireRoles("admin"), func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	return app
}

func TestJwtMiddlewareRejectsMissingToken(t *testing.T) {
	app := newGuardedApp()

	req := httptest.NewRequest(http.MethodGet, "/protected/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewareRejectsBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	req := httptest.NewRequest(http.MethodGet, "/protected/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "wrong-secret", "u1", "viewer"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewarePassesClaimsToHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	req := httptest.NewRequest(http.MethodGet, "/protected/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", "user-123", "viewer"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "user-123", string(body))
}

func TestRequireRoles(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	req := httptest.NewRequest(http.MethodGet, "/protected/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", "user-123", "viewer"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/protected/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", "user-123", "admin"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
