package transactions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"budget-core/core/diff"
	"budget-core/core/events"
	"budget-core/core/livequery"
	"budget-core/core/numfmt"
	"budget-core/core/reconcile"
	"budget-core/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const table = "transactions"

var (
	ErrMissingAccount = errors.New("account is required")
	ErrMissingObject  = errors.New("object is required")
	ErrObjectNotFound = errors.New("import file not found")
)

// Service imports transaction files and serves transactions per account.
type Service struct {
	db        *gorm.DB
	store     storage.Client
	bucket    string
	formatter *numfmt.Formatter
	registry  *livequery.Registry
	publisher events.Publisher
	logger    *zap.Logger

	mu      sync.Mutex
	queries map[string]*livequery.LiveQuery
}

// NewService creates the transaction service. store may be nil, in which
// case imports are unavailable.
func NewService(db *gorm.DB, store storage.Client, bucket string, formatter *numfmt.Formatter, registry *livequery.Registry, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:        db,
		store:     store,
		bucket:    bucket,
		formatter: formatter,
		registry:  registry,
		publisher: publisher,
		logger:    logger,
		queries:   make(map[string]*livequery.LiveQuery),
	}
}

// query returns the live query of an account, creating and registering it
// on first use.
func (s *Service) query(account string) *livequery.LiveQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q, ok := s.queries[account]; ok {
		return q
	}
	byAccount := func(db *gorm.DB) *gorm.DB {
		return db.Where("account_id = ?", account)
	}
	q := livequery.New(table+":"+account, livequery.TableQuery(s.db, table, "date, id", byAccount), s.logger)
	s.registry.Register(q, table)
	s.queries[account] = q
	return q
}

// List returns the transactions of account ordered by date.
func (s *Service) List(ctx context.Context, account string) ([]Transaction, error) {
	if account == "" {
		return nil, ErrMissingAccount
	}
	q := s.query(account)
	if !q.Loaded() {
		if _, err := q.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	data := q.Data()
	out := make([]Transaction, 0, len(data))
	for _, rec := range data {
		var t Transaction
		if err := diff.DecodeRecord(rec, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// View renders the amount of t in the active number format.
func (s *Service) View(t Transaction) (TransactionView, error) {
	text, err := s.formatter.IntegerToCurrency(t.Amount)
	if err != nil {
		return TransactionView{}, err
	}
	return TransactionView{Transaction: t, AmountFormatted: text}, nil
}

// Plan reads the import file and diffs it against the account's stored
// transactions. Nothing is written.
func (s *Service) Plan(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if req.Account == "" {
		return nil, ErrMissingAccount
	}
	if req.Object == "" {
		return nil, ErrMissingObject
	}
	if s.store == nil {
		return nil, errors.New("storage is not configured")
	}

	data, err := storage.ReadObject(ctx, s.store, s.bucket, req.Object)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, req.Object)
		}
		return nil, err
	}

	rows, skipped, err := ParseCSV(req.Account, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", req.Object, err)
	}
	incoming, err := diff.ToRecords(rows)
	if err != nil {
		return nil, err
	}

	q := s.query(req.Account)
	if _, err := q.Refresh(ctx); err != nil {
		return nil, err
	}

	cs := diff.DiffItems(q.Data(), incoming)
	if skipped == nil {
		skipped = []RowError{}
	}
	return &ImportResult{
		Account: req.Account,
		Object:  req.Object,
		Rows:    len(rows),
		Errors:  skipped,
		Plan:    reconcile.BuildPlan(cs, req.Options()),
	}, nil
}

// Apply plans an import and, when confirmed and not a dry run, applies it in
// one database transaction. Applied imports refresh live queries, publish
// the change set and upload a JSON report next to the file.
func (s *Service) Apply(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	res, err := s.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	opts := req.Options()
	if !opts.Confirmed || opts.DryRun {
		return res, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := reconcile.ApplyPlan(ctx, &txMutator{tx: tx, account: req.Account}, res.Plan, opts)
		res.Executed = n
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", req.Object, err)
	}
	res.Applied = true

	s.logger.Info("Transactions imported",
		zap.String("account", req.Account),
		zap.String("object", req.Object),
		zap.Int("executed", res.Executed),
		zap.Int("skipped_rows", len(res.Errors)))

	if err := s.registry.Notify(ctx, table); err != nil {
		s.logger.Warn("Failed to refresh transactions", zap.Error(err))
	}
	if err := s.publisher.PublishChanges(ctx, table, res.Plan.Changes()); err != nil {
		s.logger.Warn("Failed to publish transaction changes", zap.Error(err))
	}

	key := ReportKey(req.Object)
	report := struct {
		*ImportResult
		AppliedAt time.Time `json:"applied_at"`
	}{res, time.Now().UTC()}
	if err := storage.PutJSON(ctx, s.store, s.bucket, key, report); err != nil {
		s.logger.Warn("Failed to upload import report", zap.String("key", key), zap.Error(err))
	} else {
		res.Report = key
	}
	return res, nil
}

// ReportKey returns the object name of the report written for an import file.
func ReportKey(object string) string {
	return path.Join("reports", strings.TrimPrefix(object, "/")+".json")
}
