package cmd

import (
	"context"
	"fmt"

	"budget-core/core/database"
	"budget-core/core/storage"
	"budget-core/feature/accounts"
	"budget-core/feature/budget"
	"budget-core/feature/preferences"
	"budget-core/feature/transactions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// models lists every table owned by the service.
var models = []database.Model{
	accounts.Account{},
	preferences.Preference{},
	budget.CategoryGroup{},
	budget.Category{},
	budget.BudgetAmount{},
	transactions.Transaction{},
}

// openDatabase connects, migrates and reports columns that are still missing.
func openDatabase(cfg database.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, models...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	issues, err := database.CheckSchema(db, models...)
	if err != nil {
		return nil, fmt.Errorf("failed to check schema: %w", err)
	}
	for _, issue := range issues {
		l.Warn("Schema drift detected", zap.String("issue", issue.String()))
	}
	return db, nil
}

// openStorage creates the object store client and makes sure the bucket exists.
func openStorage(ctx context.Context, cfg storage.Config) (storage.Client, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return nil, err
	}
	return client, nil
}
