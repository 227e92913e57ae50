package livequery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Registry routes table change notifications to dependent live queries.
type Registry struct {
	mu      sync.RWMutex
	byTable map[string][]*LiveQuery
	log     *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		byTable: make(map[string][]*LiveQuery),
		log:     log,
	}
}

// Register records that q reads from tables.
func (r *Registry) Register(q *LiveQuery, tables ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, table := range tables {
		r.byTable[table] = append(r.byTable[table], q)
	}
}

// Notify refreshes every query that depends on any of tables. A query
// registered on several of them is refreshed once.
func (r *Registry) Notify(ctx context.Context, tables ...string) error {
	r.mu.RLock()
	seen := make(map[*LiveQuery]struct{})
	var queries []*LiveQuery
	for _, table := range tables {
		for _, q := range r.byTable[table] {
			if _, ok := seen[q]; ok {
				continue
			}
			seen[q] = struct{}{}
			queries = append(queries, q)
		}
	}
	r.mu.RUnlock()

	var errs []error
	for _, q := range queries {
		if _, err := q.Refresh(ctx); err != nil {
			errs = append(errs, fmt.Errorf("refresh %s: %w", q.Name(), err))
		}
	}

	r.log.Debug("Tables changed",
		zap.Strings("tables", tables),
		zap.Int("queries", len(queries)))

	return errors.Join(errs...)
}
