package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(Config{ApiKey: "secret", SkipPrefixes: []string{"/swagger"}})

	tests := []struct {
		name    string
		path    string
		headers map[string]string
		want    int
	}{
		{"missing key", "/accounts", nil, fiber.StatusUnauthorized},
		{"wrong key", "/accounts", map[string]string{HeaderName: "nope"}, fiber.StatusUnauthorized},
		{"header key", "/accounts", map[string]string{HeaderName: "secret"}, fiber.StatusOK},
		{"bearer key", "/accounts", map[string]string{"Authorization": "Bearer secret"}, fiber.StatusOK},
		{"skipped prefix", "/swagger/index.html", nil, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := newApp(Config{})
	resp, err := app.Test(httptest.NewRequest("GET", "/accounts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
