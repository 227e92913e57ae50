package reconcile

import (
	"context"

	"budget-core/core/diff"
)

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionCreate inserts a new record.
	ActionCreate ActionType = "create"
	// ActionUpdate writes the changed fields of an existing record.
	ActionUpdate ActionType = "update"
	// ActionDelete removes a record.
	ActionDelete ActionType = "delete"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the record id.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Record is the full record for creates and the changed fields for
	// updates. It is nil for deletes.
	Record diff.Record `json:"record,omitempty"`
}

// Plan contains planned actions and aggregate counts.
type Plan struct {
	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a plan.
type Summary struct {
	// Added, Updated and Deleted count the records in the source change set.
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`

	// CreateActions counts planned inserts.
	CreateActions int `json:"create_actions"`

	// UpdateActions counts planned updates.
	UpdateActions int `json:"update_actions"`

	// PurgeActions counts planned deletions.
	PurgeActions int `json:"purge_actions"`

	// SkippedDeletes counts deletions left out because purging was off.
	SkippedDeletes int `json:"skipped_deletes"`
}

// Options controls planning and execution.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoPurge enables deletion of records missing from the new snapshot.
	DoPurge bool

	// Confirmed indicates the caller has confirmed the plan.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}

// Mutator applies single actions to a store.
type Mutator interface {
	Create(ctx context.Context, record diff.Record) error
	Update(ctx context.Context, key string, changes diff.Record) error
	Delete(ctx context.Context, key string) error
}

// CreateBatcher is implemented by mutators that can insert many records at once.
type CreateBatcher interface {
	CreateBatch(ctx context.Context, records []diff.Record) error
}

// UpdateBatcher is implemented by mutators that can update many records at once.
type UpdateBatcher interface {
	UpdateBatch(ctx context.Context, actions []Action) error
}

// DeleteBatcher is implemented by mutators that can delete many records at once.
type DeleteBatcher interface {
	DeleteBatch(ctx context.Context, keys []string) error
}
