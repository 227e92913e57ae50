// Package reconcile turns a diff.ChangeSet into an explicit plan of mutations
// and executes that plan against a store.
//
// Planning and execution are separate so callers can show a plan, ask for
// confirmation, and only then apply it:
//
//	plan := reconcile.BuildPlan(cs, opts)
//	fmt.Println(plan.Summary)
//	executed, err := reconcile.ApplyPlan(ctx, mutator, plan, opts)
//
// # Safety
//
// Deletions are only planned when Options.DoPurge is set. ApplyPlan refuses
// to run anything unless Options.Confirmed is true and Options.DryRun is
// false; in that case it returns zero executed actions and no error.
//
// # Mutators
//
// A Mutator performs single-record operations. Implementations may also
// provide CreateBatch, UpdateBatch or DeleteBatch; ApplyPlan uses them when
// present and falls back to one call per action otherwise.
package reconcile
