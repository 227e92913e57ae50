package integrity

import (
	"context"
	"errors"

	"budget-core/core/database"
	"budget-core/core/storage"
	"budget-core/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNoStorage  = errors.New("storage is not configured")
	ErrNoDatabase = errors.New("database is not configured")
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	models []database.Model
}

// NewService creates a new integrity service. client and db may each be nil;
// checks that need them then fail with ErrNoStorage or ErrNoDatabase.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, models []database.Model) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		models: models,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrNoStorage
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckImports lists import files and the ones never applied.
func (s *Service) CheckImports(ctx context.Context) (*checks.ImportsReport, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return checks.CheckImports(ctx, s.client, s.bucket)
}

// CheckSchema compares the database with the service's models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckSchema(s.db, s.models...)
}
