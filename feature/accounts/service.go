package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"budget-core/core/diff"
	"budget-core/core/events"
	"budget-core/core/livequery"
	"budget-core/core/numfmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const table = "accounts"

var (
	ErrNotFound       = errors.New("account not found")
	ErrInvalidName    = errors.New("account name is required")
	ErrInvalidBalance = errors.New("invalid balance")
)

// outboxSize bounds the change sets waiting to be published.
const outboxSize = 64

// Service handles account operations over a live query of the accounts table.
type Service struct {
	db        *gorm.DB
	formatter *numfmt.Formatter
	registry  *livequery.Registry
	query     *livequery.LiveQuery
	logger    *zap.Logger

	mu     sync.Mutex
	closed bool
	outbox chan diff.ChangeSet
	done   chan struct{}
}

// NewService creates the account service and registers its live query.
// Every change set of the query is forwarded to publisher from a background
// goroutine, in order. Call Close to flush it.
func NewService(db *gorm.DB, formatter *numfmt.Formatter, registry *livequery.Registry, publisher events.Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	q := livequery.New(table, livequery.TableQuery(db, table, "sort_order, name"), logger)
	registry.Register(q, table)

	s := &Service{
		db:        db,
		formatter: formatter,
		registry:  registry,
		query:     q,
		logger:    logger,
	}
	if publisher != nil {
		s.outbox = make(chan diff.ChangeSet, outboxSize)
		s.done = make(chan struct{})
		go s.publish(publisher)
		q.Subscribe(s.enqueue)
	}
	return s
}

func (s *Service) enqueue(cs diff.ChangeSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.outbox <- cs:
	default:
		s.logger.Warn("Dropping account changes, publisher is behind", zap.Int("changes", cs.Len()))
	}
}

func (s *Service) publish(publisher events.Publisher) {
	defer close(s.done)
	for cs := range s.outbox {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := publisher.PublishChanges(ctx, table, cs); err != nil {
			s.logger.Warn("Failed to publish account changes", zap.Error(err))
		}
		cancel()
	}
}

// Close stops forwarding change sets once the queued ones are published.
func (s *Service) Close() {
	if s.outbox == nil {
		return
	}
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.outbox)
	}
	s.mu.Unlock()
	<-s.done
}

// Query exposes the underlying live query.
func (s *Service) Query() *livequery.LiveQuery {
	return s.query
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.query.Loaded() {
		return nil
	}
	_, err := s.query.Refresh(ctx)
	return err
}

// List returns every account in sort order.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	data := s.query.Data()
	out := make([]Account, 0, len(data))
	for _, rec := range data {
		var a Account
		if err := diff.DecodeRecord(rec, &a); err != nil {
			return nil, fmt.Errorf("failed to decode account %s: %w", rec.GetID(), err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Get returns one account from the cached snapshot.
func (s *Service) Get(ctx context.Context, id string) (*Account, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	rec, ok := s.query.ByID()[id]
	if !ok {
		return nil, ErrNotFound
	}
	var a Account
	if err := diff.DecodeRecord(rec, &a); err != nil {
		return nil, fmt.Errorf("failed to decode account %s: %w", id, err)
	}
	return &a, nil
}

// Create inserts an account. balanceText is parsed in the current number
// format; an empty balance means zero.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	var balance int64
	if strings.TrimSpace(req.Balance) != "" {
		v, ok := s.formatter.CurrencyToInteger(req.Balance)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBalance, req.Balance)
		}
		balance = v
	}

	var maxSort int64
	if err := s.db.WithContext(ctx).Model(&Account{}).Select("COALESCE(MAX(sort_order), 0)").Scan(&maxSort).Error; err != nil {
		return nil, fmt.Errorf("failed to read sort order: %w", err)
	}

	a := &Account{
		ID:        uuid.NewString(),
		Name:      name,
		Offbudget: req.Offbudget,
		SortOrder: maxSort + 1,
		Balance:   balance,
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := s.registry.Notify(ctx, table); err != nil {
		s.logger.Warn("Failed to refresh accounts", zap.Error(err))
	}
	return a, nil
}

// View renders an account's balance with the current number format.
func (s *Service) View(a Account) (AccountView, error) {
	text, err := s.formatter.IntegerToCurrency(a.Balance)
	if err != nil {
		return AccountView{}, err
	}
	return AccountView{Account: a, BalanceFormatted: text}, nil
}
