package preferences_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"budget-core/core/database"
	"budget-core/core/numfmt"
	"budget-core/feature/preferences"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*preferences.Service, *numfmt.Formatter, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, preferences.Preference{}))

	f := numfmt.NewFormatter(numfmt.DefaultConfig())
	return preferences.NewService(db, f, zap.NewNop()), f, db
}

func TestService_Load(t *testing.T) {
	svc, f, db := setup(t)
	ctx := context.Background()

	t.Run("nothing stored keeps defaults", func(t *testing.T) {
		require.NoError(t, svc.Load(ctx))
		assert.Equal(t, numfmt.CommaDot, f.NumberFormat().Value)
	})

	t.Run("stored values win", func(t *testing.T) {
		require.NoError(t, db.Create(&[]preferences.Preference{
			{ID: preferences.KeyNumberFormat, Value: "dot-comma"},
			{ID: preferences.KeyHideFraction, Value: "true"},
		}).Error)

		require.NoError(t, svc.Load(ctx))
		assert.Equal(t, numfmt.DotComma, f.NumberFormat().Value)
		assert.True(t, f.NumberFormat().HideFraction)
	})

	t.Run("invalid stored format is ignored", func(t *testing.T) {
		require.NoError(t, db.Save(&preferences.Preference{ID: preferences.KeyNumberFormat, Value: "roman"}).Error)

		require.NoError(t, svc.Load(ctx))
		assert.Equal(t, numfmt.DotComma, f.NumberFormat().Value)
	})
}

func TestService_Set(t *testing.T) {
	svc, f, db := setup(t)
	ctx := context.Background()

	resp, err := svc.Set(ctx, preferences.NumberFormatRequest{Format: "space-dot"})
	require.NoError(t, err)
	assert.Equal(t, numfmt.SpaceDot, resp.Format)
	assert.False(t, resp.HideFraction)
	assert.Len(t, resp.Options, len(numfmt.Formats))

	hide := true
	_, err = svc.Set(ctx, preferences.NumberFormatRequest{Format: "comma-dot-in", HideFraction: &hide})
	require.NoError(t, err)

	text, err := f.IntegerToCurrency(1234567800)
	require.NoError(t, err)
	assert.Equal(t, "1,23,45,678", text)

	var stored preferences.Preference
	require.NoError(t, db.First(&stored, "id = ?", preferences.KeyNumberFormat).Error)
	assert.Equal(t, "comma-dot-in", stored.Value)

	_, err = svc.Set(ctx, preferences.NumberFormatRequest{Format: "roman"})
	assert.ErrorIs(t, err, preferences.ErrUnknownFormat)
	assert.Equal(t, numfmt.CommaDotIn, f.NumberFormat().Value)
}

func TestService_SetDatabaseFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `preferences`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	f := numfmt.NewFormatter(numfmt.DefaultConfig())
	svc := preferences.NewService(db, f, zap.NewNop())

	_, err = svc.Set(context.Background(), preferences.NumberFormatRequest{Format: "dot-comma"})
	assert.ErrorContains(t, err, "failed to save preferences")
	assert.Equal(t, numfmt.CommaDot, f.NumberFormat().Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler(t *testing.T) {
	svc, _, _ := setup(t)
	app := fiber.New()
	require.NoError(t, preferences.NewFeature(svc).Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/preferences/number-format", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got preferences.NumberFormatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, numfmt.CommaDot, got.Format)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"format":"dot-comma"}`, fiber.StatusOK},
		{"unknown", `{"format":"roman"}`, fiber.StatusBadRequest},
		{"malformed", `{"format":`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/preferences/number-format", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
