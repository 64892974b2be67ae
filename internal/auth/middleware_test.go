package auth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dblab/twitterclone/pkg/util/errorutil"
)

func newGuardedApp(t *testing.T, codec *TokenCodec) *fiber.App {
	t.Helper()
	resolver := NewRequestIdentityResolver(NewCredentialAuthenticator(codec, nil), "", nil, nil)
	identity := NewIdentityMiddleware(resolver, func() time.Time { return testNow })

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var domainErr *apperrors.DomainError
			if errors.As(err, &domainErr) {
				return c.Status(domainErr.HTTPStatus).SendString(domainErr.Code)
			}
			return c.Status(http.StatusInternalServerError).SendString(err.Error())
		},
	})
	app.Use(identity.Handle)

	app.Get("/public", func(c *fiber.Ctx) error {
		if p, ok := PrincipalFromContext(c); ok {
			return c.SendString("hello " + p.Identifier)
		}
		return c.SendString("hello anonymous")
	})
	app.Get("/me", RequireAuthenticated(), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.Identifier)
	})
	app.Get("/admin", RequireRole(RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(AuthorizationHeader, DefaultBearerPrefix+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestIdentityMiddleware(t *testing.T) {
	codec := newTestCodec(t)
	app := newGuardedApp(t, codec)

	userToken, _, err := codec.Issue("u1", []string{"USER"}, testNow)
	require.NoError(t, err)
	adminToken, _, err := codec.Issue("root", []string{"ADMIN"}, testNow)
	require.NoError(t, err)

	t.Run("public route stays reachable with a bad token", func(t *testing.T) {
		status, body := doRequest(t, app, "/public", "garbage")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "hello anonymous", body)
	})

	t.Run("public route sees the principal", func(t *testing.T) {
		status, body := doRequest(t, app, "/public", userToken)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "hello u1", body)
	})

	t.Run("protected route without token", func(t *testing.T) {
		status, body := doRequest(t, app, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "UNAUTHORIZED", body)
	})

	t.Run("protected route with token", func(t *testing.T) {
		status, body := doRequest(t, app, "/me", userToken)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "u1", body)
	})

	t.Run("role guard forbids plain users", func(t *testing.T) {
		status, body := doRequest(t, app, "/admin", userToken)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "FORBIDDEN", body)
	})

	t.Run("role guard admits admins", func(t *testing.T) {
		status, _ := doRequest(t, app, "/admin", adminToken)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("role guard rejects anonymous with 401", func(t *testing.T) {
		status, _ := doRequest(t, app, "/admin", "")
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
