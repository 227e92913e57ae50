package preferences

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"budget-core/core/numfmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownFormat is returned for format ids outside numfmt.Formats.
var ErrUnknownFormat = errors.New("unknown number format")

// Service persists the number format preference and keeps the formatter in sync.
type Service struct {
	db        *gorm.DB
	formatter *numfmt.Formatter
	logger    *zap.Logger
}

// NewService creates a new preferences service.
func NewService(db *gorm.DB, formatter *numfmt.Formatter, logger *zap.Logger) *Service {
	return &Service{db: db, formatter: formatter, logger: logger}
}

// Load applies persisted preferences over the formatter's current config.
// Missing keys keep their configured value; an invalid stored format is
// logged and ignored.
func (s *Service) Load(ctx context.Context) error {
	var prefs []Preference
	err := s.db.WithContext(ctx).
		Where("id IN ?", []string{KeyNumberFormat, KeyHideFraction}).
		Find(&prefs).Error
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	cfg := s.formatter.NumberFormat().Config()
	for _, p := range prefs {
		switch p.ID {
		case KeyNumberFormat:
			if !numfmt.Format(p.Value).IsValid() {
				s.logger.Warn("Ignoring stored number format", zap.String("value", p.Value))
				continue
			}
			cfg.Format = p.Value
		case KeyHideFraction:
			cfg.HideFraction, _ = strconv.ParseBool(p.Value)
		}
	}

	s.formatter.SetNumberFormat(cfg)
	s.logger.Info("Number format loaded",
		zap.String("format", cfg.Format),
		zap.Bool("hide_fraction", cfg.HideFraction))
	return nil
}

// Get returns the active number format and the selectable options.
func (s *Service) Get() NumberFormatResponse {
	nf := s.formatter.NumberFormat()
	return NumberFormatResponse{
		Format:       nf.Value,
		HideFraction: nf.HideFraction,
		Options:      numfmt.Formats,
	}
}

// Set validates, persists and activates a number format.
func (s *Service) Set(ctx context.Context, req NumberFormatRequest) (NumberFormatResponse, error) {
	if !numfmt.Format(req.Format).IsValid() {
		return NumberFormatResponse{}, fmt.Errorf("%w: %q", ErrUnknownFormat, req.Format)
	}

	cfg := numfmt.Config{
		Format:       req.Format,
		HideFraction: s.formatter.NumberFormat().HideFraction,
	}
	if req.HideFraction != nil {
		cfg.HideFraction = *req.HideFraction
	}

	prefs := []Preference{
		{ID: KeyNumberFormat, Value: cfg.Format},
		{ID: KeyHideFraction, Value: strconv.FormatBool(cfg.HideFraction)},
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&prefs).Error
	if err != nil {
		return NumberFormatResponse{}, fmt.Errorf("failed to save preferences: %w", err)
	}

	s.formatter.SetNumberFormat(cfg)
	return s.Get(), nil
}
