package accounts_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"budget-core/core/numfmt"
	"budget-core/feature/accounts"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	svc, _, _ := newService(t, numfmt.SpaceComma)
	app := fiber.New()
	feature := accounts.NewFeature(svc)
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandler_CreateListGet(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest("POST", "/accounts", strings.NewReader(`{"name":"Checking","balance":"1 234,50"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created accounts.AccountView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, int64(123450), created.Balance)
	assert.Equal(t, "1\u00a0234,50", created.BalanceFormatted)

	resp, err = app.Test(httptest.NewRequest("GET", "/accounts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []accounts.AccountView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/accounts/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHandler_Errors(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown account", "GET", "/accounts/missing", "", fiber.StatusNotFound},
		{"bad balance", "POST", "/accounts", `{"name":"X","balance":"twelve"}`, fiber.StatusBadRequest},
		{"missing name", "POST", "/accounts", `{"balance":"1"}`, fiber.StatusBadRequest},
		{"bad json", "POST", "/accounts", `{`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
