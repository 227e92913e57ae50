// Package livequery keeps in-memory snapshots of query results and pushes the
// minimal change set to subscribers whenever a snapshot is refreshed.
//
// A LiveQuery owns one snapshot. Refresh re-runs its query, diffs the result
// against the current snapshot with diff.DiffItems, applies the change set,
// and then notifies subscribers. Concurrent refreshes of the same query share
// a single execution.
//
// A Registry maps table names to the queries that read them, so a write path
// only has to announce which tables it touched:
//
//	registry.Register(accounts, "accounts")
//	...
//	_ = registry.Notify(ctx, "accounts")
package livequery
