package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"budget-core/core/diff"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var actionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "budget_core_reconcile_actions_applied_total",
	Help: "Number of reconcile actions executed, by type",
}, []string{"type"})

// BuildPlan converts a change set into a list of actions.
// It does NOT execute actions; use ApplyPlan for that.
func BuildPlan(cs diff.ChangeSet, opts Options) *Plan {
	plan := &Plan{
		Actions: make([]Action, 0, cs.Len()),
		Summary: Summary{
			Added:   len(cs.Added),
			Updated: len(cs.Updated),
			Deleted: len(cs.Deleted),
		},
	}

	for _, rec := range cs.Added {
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionCreate,
			Key:    rec.GetID(),
			Reason: "missing in store",
			Record: rec,
		})
		plan.Summary.CreateActions++
	}

	for _, rec := range cs.Updated {
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionUpdate,
			Key:    rec.GetID(),
			Reason: changedReason(rec),
			Record: rec,
		})
		plan.Summary.UpdateActions++
	}

	for _, rec := range cs.Deleted {
		if !opts.DoPurge {
			plan.Summary.SkippedDeletes++
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionDelete,
			Key:    rec.GetID(),
			Reason: "missing in source",
		})
		plan.Summary.PurgeActions++
	}

	return plan
}

// Changes returns the change set the plan would produce when applied.
// Skipped deletions are not part of it.
func (p *Plan) Changes() diff.ChangeSet {
	cs := diff.ChangeSet{
		Added:   []diff.Record{},
		Updated: []diff.Record{},
		Deleted: []diff.Record{},
	}
	for _, a := range p.Actions {
		switch a.Type {
		case ActionCreate:
			cs.Added = append(cs.Added, a.Record)
		case ActionUpdate:
			cs.Updated = append(cs.Updated, a.Record)
		case ActionDelete:
			cs.Deleted = append(cs.Deleted, diff.Record{diff.FieldID: a.Key})
		}
	}
	return cs
}

// ApplyPlan executes the actions in a plan: creates first, then updates,
// then deletes. Returns the number of actions executed and any error
// encountered. Requires opts.Confirmed=true and opts.DryRun=false to actually
// execute.
func ApplyPlan(ctx context.Context, mutator Mutator, plan *Plan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun || plan == nil {
		return 0, nil
	}

	var (
		creates    []diff.Record
		updates    []Action
		deleteKeys []string
	)

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionCreate:
			creates = append(creates, action.Record)
		case ActionUpdate:
			updates = append(updates, action)
		case ActionDelete:
			deleteKeys = append(deleteKeys, action.Key)
		}
	}

	if len(creates) > 0 {
		if batcher, ok := mutator.(CreateBatcher); ok {
			if err := batcher.CreateBatch(ctx, creates); err != nil {
				return executed, fmt.Errorf("failed to batch create records: %w", err)
			}
			executed += len(creates)
		} else {
			for _, rec := range creates {
				if err := mutator.Create(ctx, rec); err != nil {
					return executed, fmt.Errorf("failed to create record %s: %w", rec.GetID(), err)
				}
				executed++
			}
		}
		actionsApplied.WithLabelValues(string(ActionCreate)).Add(float64(len(creates)))
	}

	if len(updates) > 0 {
		if batcher, ok := mutator.(UpdateBatcher); ok {
			if err := batcher.UpdateBatch(ctx, updates); err != nil {
				return executed, fmt.Errorf("failed to batch update records: %w", err)
			}
			executed += len(updates)
		} else {
			for _, action := range updates {
				if err := mutator.Update(ctx, action.Key, action.Record); err != nil {
					return executed, fmt.Errorf("failed to update record %s: %w", action.Key, err)
				}
				executed++
			}
		}
		actionsApplied.WithLabelValues(string(ActionUpdate)).Add(float64(len(updates)))
	}

	if len(deleteKeys) > 0 {
		if batcher, ok := mutator.(DeleteBatcher); ok {
			if err := batcher.DeleteBatch(ctx, deleteKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete records: %w", err)
			}
			executed += len(deleteKeys)
		} else {
			for _, key := range deleteKeys {
				if err := mutator.Delete(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete record %s: %w", key, err)
				}
				executed++
			}
		}
		actionsApplied.WithLabelValues(string(ActionDelete)).Add(float64(len(deleteKeys)))
	}

	return executed, nil
}

// changedReason lists the changed field names of an update record.
func changedReason(rec diff.Record) string {
	fields := make([]string, 0, len(rec))
	for k := range rec {
		if k != diff.FieldID {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	return "changed: " + strings.Join(fields, ", ")
}
