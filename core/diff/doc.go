// Package diff computes and applies minimal change sets between two
// snapshots of identity-keyed records.
//
// A snapshot is an ordered slice of Record values, each carrying a string
// "id". DiffItems indexes both snapshots by id and reports:
//   - Added: full records present only in the new snapshot
//   - Updated: the id plus only the fields that changed
//   - Deleted: {id} stubs for records that disappeared
//
// ApplyChanges replays such a ChangeSet onto a snapshot without mutating it.
// For snapshots with unique ids, ApplyChanges(DiffItems(a, b), a) holds the
// same ids and field values as b, modulo ordering.
//
// # Equality
//
// Fields are compared strictly: comparable values with ==, maps and slices by
// reference identity. Values of different dynamic types are never equal, so
// int64(1) and float64(1) count as a change.
//
// # Usage
//
//	cs := diff.DiffItems(before, after)
//	if !cs.IsEmpty() {
//	    snapshot = diff.ApplyChanges(cs, snapshot)
//	}
package diff
