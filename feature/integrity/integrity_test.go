package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"budget-core/core/database"
	"budget-core/core/storage/mocks"
	"budget-core/feature/transactions"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, withDB bool) (*fiber.App, *mocks.Client) {
	t.Helper()
	client := new(mocks.Client)

	feature := NewFeature(client, "budget", zap.NewNop(), nil, nil)
	if withDB {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		models := []database.Model{transactions.Transaction{}}
		require.NoError(t, database.Migrate(db, models...))
		feature = NewFeature(client, "budget", zap.NewNop(), db, models)
	}
	require.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, client
}

func emptyListing(client *mocks.Client) {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	client.On("ListObjects", mock.Anything, "budget", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))
}

func TestHandleStructureCheck(t *testing.T) {
	app, client := setupTestApp(t, false)
	client.On("BucketExists", mock.Anything, "budget").Return(true, nil)
	emptyListing(client)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "checked", body["status"])
	assert.Equal(t, []any{"imports", "reports"}, body["missing"])

	client.On("PutObject", mock.Anything, "budget", mock.Anything, mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	resp, err = app.Test(httptest.NewRequest("GET", "/integrity/structure?fix=true", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "fixed", body["status"])
	client.AssertNumberOfCalls(t, "PutObject", 2)
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _ := setupTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["matched"])
}

func TestHandleSchemaCheck_NoDatabase(t *testing.T) {
	app, _ := setupTestApp(t, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, client := setupTestApp(t, true)
	client.On("BucketExists", mock.Anything, "budget").Return(false, assert.AnError)
	emptyListing(client)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error", body["structure"]["status"])
	assert.Equal(t, []any{}, body["imports"]["pending"])
	assert.Equal(t, true, body["schema"]["matched"])
}

func TestFeature_Disabled(t *testing.T) {
	assert.False(t, NewFeature(nil, "budget", nil, nil, nil).IsEnabled())
}
