package livequery

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"budget-core/core/diff"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QueryFunc loads the full result set of a live query.
type QueryFunc func(ctx context.Context) ([]diff.Record, error)

// Listener receives the change set produced by a refresh.
type Listener func(cs diff.ChangeSet)

// LiveQuery holds the latest snapshot of a query.
type LiveQuery struct {
	name  string
	query QueryFunc
	log   *zap.Logger

	mu        sync.RWMutex
	data      []diff.Record
	loaded    bool
	listeners map[int]Listener
	nextID    int

	sf singleflight.Group
}

// New creates a live query. Nothing is loaded until the first Refresh.
func New(name string, query QueryFunc, log *zap.Logger) *LiveQuery {
	if log == nil {
		log = zap.NewNop()
	}
	return &LiveQuery{
		name:      name,
		query:     query,
		log:       log.With(zap.String("query", name)),
		listeners: make(map[int]Listener),
	}
}

// Name returns the query name used in logs and metrics.
func (q *LiveQuery) Name() string {
	return q.name
}

// Refresh re-runs the query and folds the difference into the snapshot.
// Subscribers are notified only when something changed.
func (q *LiveQuery) Refresh(ctx context.Context) (diff.ChangeSet, error) {
	result, err, _ := q.sf.Do(q.name, func() (interface{}, error) {
		refreshTotal.WithLabelValues(q.name).Inc()

		items, err := q.query(ctx)
		if err != nil {
			refreshErrors.WithLabelValues(q.name).Inc()
			return nil, err
		}

		q.mu.Lock()
		cs := diff.DiffItems(q.data, items)
		q.data = inResultOrder(diff.ApplyChanges(cs, q.data), items)
		q.loaded = true
		listeners := make([]Listener, 0, len(q.listeners))
		for _, fn := range q.listeners {
			listeners = append(listeners, fn)
		}
		q.mu.Unlock()

		observeChanges(q.name, len(cs.Added), len(cs.Updated), len(cs.Deleted))

		if !cs.IsEmpty() {
			q.log.Debug("Live query changed",
				zap.Int("added", len(cs.Added)),
				zap.Int("updated", len(cs.Updated)),
				zap.Int("deleted", len(cs.Deleted)))
			for _, fn := range listeners {
				fn(cs)
			}
		}
		return cs, nil
	})
	if err != nil {
		q.log.Warn("Live query refresh failed", zap.Error(err))
		return diff.ChangeSet{}, err
	}
	return result.(diff.ChangeSet), nil
}

// inResultOrder sorts data the way the query returned items.
func inResultOrder(data, items []diff.Record) []diff.Record {
	pos := make(map[string]int, len(items))
	for i, r := range items {
		pos[r.GetID()] = i
	}
	slices.SortStableFunc(data, func(a, b diff.Record) int {
		return cmp.Compare(pos[a.GetID()], pos[b.GetID()])
	})
	return data
}

// Data returns a copy of the current snapshot.
func (q *LiveQuery) Data() []diff.Record {
	q.mu.RLock()
	defer q.mu.RUnlock()

	out := make([]diff.Record, len(q.data))
	for i, r := range q.data {
		out[i] = r.Clone()
	}
	return out
}

// Loaded reports whether at least one refresh has succeeded.
func (q *LiveQuery) Loaded() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.loaded
}

// ByID indexes the current snapshot by record id.
func (q *LiveQuery) ByID() map[string]diff.Record {
	return diff.GroupByID(q.Data())
}

// Subscribe registers fn for future change sets. The returned function
// removes the subscription.
func (q *LiveQuery) Subscribe(fn Listener) (unsubscribe func()) {
	q.mu.Lock()
	id := q.nextID
	q.nextID++
	q.listeners[id] = fn
	q.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			q.mu.Lock()
			delete(q.listeners, id)
			q.mu.Unlock()
		})
	}
}
