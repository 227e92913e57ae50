package budget

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc, _ := newTestService(t, setupDB(t))
	feature := NewFeature(svc)
	require.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandler_ContextAndSummary(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/budget/rollover", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var v ContextValue
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.Equal(t, "2024-03", v.CurrentMonth)
	assert.Len(t, v.CategoryGroups, 2)

	resp, err = app.Test(httptest.NewRequest("POST", "/budget/rollover/summary", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.True(t, v.SummaryCollapsed)
}

func TestHandler_ActionAndMonth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/budget/report/actions",
		strings.NewReader(`{"month":"2024-04","action":"budget-amount","category":"rent","amount":"750"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/budget/report/2024-04", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var mb MonthBudget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mb))
	assert.Equal(t, int64(75000), mb.Amounts["rent"])
	assert.Equal(t, "750.00", mb.Formatted["rent"])
}

func TestHandler_Errors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown type", "GET", "/budget/envelope", "", fiber.StatusBadRequest},
		{"bad month", "GET", "/budget/report/soon", "", fiber.StatusBadRequest},
		{"bad json", "POST", "/budget/report/actions", `{`, fiber.StatusBadRequest},
		{"unknown action", "POST", "/budget/report/actions", `{"month":"2024-04","action":"nope"}`, fiber.StatusBadRequest},
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
