package budget

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"budget-core/core/diff"
	"budget-core/core/events"
	"budget-core/core/livequery"
	"budget-core/core/months"
	"budget-core/core/nested"
	"budget-core/core/numfmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const amountsTable = "budget_amounts"

var (
	ErrUnknownContext  = errors.New("unknown budget context")
	ErrUnknownAction   = errors.New("unknown budget action")
	ErrMissingCategory = errors.New("budget action requires a category")
	ErrUnknownCategory = errors.New("unknown category")
)

// ParseContextType validates a budget type coming from a URL or flag.
func ParseContextType(s string) (ContextType, error) {
	switch ContextType(s) {
	case TypeReport, TypeRollover:
		return ContextType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownContext, s)
	}
}

// Service owns budget contexts and budgeted amounts.
type Service struct {
	db        *gorm.DB
	formatter *numfmt.Formatter
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time

	groups     *livequery.LiveQuery
	categories *livequery.LiveQuery

	mu        sync.Mutex
	collapsed map[ContextType]bool
	sheet     nested.Node[int64]
}

// NewService creates the budget service and registers its category queries.
func NewService(db *gorm.DB, formatter *numfmt.Formatter, registry *livequery.Registry, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	groups := livequery.New("category_groups", livequery.TableQuery(db, "category_groups", "sort_order, name"), logger)
	categories := livequery.New("categories", livequery.TableQuery(db, "categories", "sort_order, name"), logger)
	registry.Register(groups, "category_groups")
	registry.Register(categories, "categories")

	return &Service{
		db:         db,
		formatter:  formatter,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
		groups:     groups,
		categories: categories,
		collapsed:  make(map[ContextType]bool),
	}
}

// Context returns the context value for a budget type.
func (s *Service) Context(ctx context.Context, typ string) (ContextValue, error) {
	t, err := ParseContextType(typ)
	if err != nil {
		return ContextValue{}, err
	}

	s.mu.Lock()
	collapsed := s.collapsed[t]
	s.mu.Unlock()

	value := ContextValue{
		Type:             t,
		CurrentMonth:     months.CurrentMonth(s.now()),
		SummaryCollapsed: collapsed,
	}
	if t == TypeRollover {
		groups, err := s.CategoryGroups(ctx)
		if err != nil {
			return ContextValue{}, err
		}
		value.CategoryGroups = groups
	}
	return value, nil
}

// ToggleSummary flips the collapsed flag of a budget type.
func (s *Service) ToggleSummary(ctx context.Context, typ string) (ContextValue, error) {
	t, err := ParseContextType(typ)
	if err != nil {
		return ContextValue{}, err
	}
	s.mu.Lock()
	s.collapsed[t] = !s.collapsed[t]
	s.mu.Unlock()
	return s.Context(ctx, typ)
}

// CategoryGroups returns the groups with their categories, in sort order.
func (s *Service) CategoryGroups(ctx context.Context) ([]CategoryGroup, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if err := ensureLoaded(ctx, s.groups); err != nil {
		return nil, err
	}

	byGroup := diff.GroupBy(cats, func(c Category) string { return c.GroupID }, nil)

	data := s.groups.Data()
	out := make([]CategoryGroup, 0, len(data))
	for _, rec := range data {
		var g CategoryGroup
		if err := diff.DecodeRecord(rec, &g); err != nil {
			return nil, err
		}
		g.Categories = byGroup[g.ID]
		out = append(out, g)
	}
	return out, nil
}

// Categories returns every category in sort order.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	if err := ensureLoaded(ctx, s.categories); err != nil {
		return nil, err
	}
	data := s.categories.Data()
	out := make([]Category, 0, len(data))
	for _, rec := range data {
		var c Category
		if err := diff.DecodeRecord(rec, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Month returns the budgeted amounts of month for every category.
func (s *Service) Month(ctx context.Context, typ, month string) (*MonthBudget, error) {
	t, err := ParseContextType(typ)
	if err != nil {
		return nil, err
	}
	if _, err := months.Parse(month); err != nil {
		return nil, err
	}
	cats, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	amounts, err := s.monthAmounts(ctx, t, month)
	if err != nil {
		return nil, err
	}

	mb := &MonthBudget{
		Type:      t,
		Month:     month,
		Amounts:   make(map[string]int64, len(cats)),
		Formatted: make(map[string]string, len(cats)),
	}
	for _, c := range cats {
		v := amounts[c.ID]
		text, err := s.formatter.IntegerToCurrency(v)
		if err != nil {
			return nil, err
		}
		mb.Amounts[c.ID] = v
		mb.Formatted[c.ID] = text
		mb.Total += v
	}
	mb.TotalFormatted, err = s.formatter.IntegerToCurrency(mb.Total)
	if err != nil {
		return nil, err
	}
	return mb, nil
}

// Apply runs a budget action on a month and returns the month afterwards.
func (s *Service) Apply(ctx context.Context, typ string, req ActionRequest) (*MonthBudget, error) {
	t, err := ParseContextType(typ)
	if err != nil {
		return nil, err
	}
	if _, err := months.Parse(req.Month); err != nil {
		return nil, err
	}

	cats, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		known[c.ID] = struct{}{}
	}

	single := func() error {
		if req.Category == "" {
			return ErrMissingCategory
		}
		if _, ok := known[req.Category]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, req.Category)
		}
		return nil
	}

	updates := make(map[string]int64)
	switch req.Action {
	case ActionBudgetAmount:
		if err := single(); err != nil {
			return nil, err
		}
		amount, ok := s.formatter.CurrencyToInteger(req.Amount)
		if !ok {
			amount = 0
		}
		updates[req.Category] = amount

	case ActionSetSingleZero:
		if err := single(); err != nil {
			return nil, err
		}
		updates[req.Category] = 0

	case ActionCopySingleLast:
		if err := single(); err != nil {
			return nil, err
		}
		prev, err := s.previousAmounts(ctx, t, req.Month)
		if err != nil {
			return nil, err
		}
		updates[req.Category] = prev[req.Category]

	case ActionSetZero:
		for id := range known {
			updates[id] = 0
		}

	case ActionCopyLast:
		prev, err := s.previousAmounts(ctx, t, req.Month)
		if err != nil {
			return nil, err
		}
		for id := range known {
			updates[id] = prev[id]
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}

	if err := s.write(ctx, t, req.Month, updates); err != nil {
		return nil, err
	}

	s.logger.Info("Budget action applied",
		zap.String("type", string(t)),
		zap.String("month", req.Month),
		zap.String("action", req.Action),
		zap.Int("categories", len(updates)))

	return s.Month(ctx, typ, req.Month)
}

func (s *Service) previousAmounts(ctx context.Context, t ContextType, month string) (map[string]int64, error) {
	prev, err := months.PrevMonth(month)
	if err != nil {
		return nil, err
	}
	return s.monthAmounts(ctx, t, prev)
}

// monthAmounts returns the stored amounts of a month, loading the month into
// the sheet cache on first use.
func (s *Service) monthAmounts(ctx context.Context, t ContextType, month string) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := []string{string(t), month}
	if s.sheet.Get(path) == nil {
		var rows []BudgetAmount
		err := s.db.WithContext(ctx).
			Where("type = ? AND month = ?", string(t), month).
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load budget for %s: %w", month, err)
		}
		// An empty month still gets a branch so it is not reloaded.
		if err := s.sheet.Branch(path); err != nil {
			return nil, err
		}
		for _, r := range rows {
			if err := s.sheet.SetIn([]string{string(t), month, r.CategoryID}, r.Amount); err != nil {
				return nil, err
			}
		}
	}

	out := make(map[string]int64)
	for _, cat := range s.sheet.Keys(path) {
		if v, ok := s.sheet.GetIn([]string{string(t), month, cat}); ok {
			out[cat] = v
		}
	}
	return out, nil
}

// write upserts amounts in one transaction, updates the cache and publishes
// the resulting change set.
func (s *Service) write(ctx context.Context, t ContextType, month string, updates map[string]int64) error {
	before, err := s.monthAmounts(ctx, t, month)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(updates))
	for id := range updates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]BudgetAmount, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, BudgetAmount{
			ID:         amountID(t, month, id),
			Type:       string(t),
			Month:      month,
			CategoryID: id,
			Amount:     updates[id],
		})
	}
	if len(rows) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save budget for %s: %w", month, err)
	}

	s.mu.Lock()
	for _, r := range rows {
		if err := s.sheet.SetIn([]string{string(t), month, r.CategoryID}, r.Amount); err != nil {
			// The month is reloaded from the database on the next read.
			s.sheet.Delete([]string{string(t), month})
			s.logger.Warn("Dropped cached budget month", zap.String("month", month), zap.Error(err))
			break
		}
	}
	s.mu.Unlock()

	cs := diff.DiffItems(amountRecords(t, month, before), amountRecords(t, month, mergeAmounts(before, updates)))
	if err := s.publisher.PublishChanges(ctx, amountsTable, cs); err != nil {
		s.logger.Warn("Failed to publish budget changes", zap.Error(err))
	}
	return nil
}

func mergeAmounts(base, updates map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(base)+len(updates))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range updates {
		out[k] = v
	}
	return out
}

func amountRecords(t ContextType, month string, amounts map[string]int64) []diff.Record {
	ids := make([]string, 0, len(amounts))
	for id := range amounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]diff.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, diff.Record{
			diff.FieldID:  amountID(t, month, id),
			"category_id": id,
			"amount":      amounts[id],
		})
	}
	return out
}

func ensureLoaded(ctx context.Context, q *livequery.LiveQuery) error {
	if q.Loaded() {
		return nil
	}
	_, err := q.Refresh(ctx)
	return err
}
