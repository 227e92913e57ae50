package diff

import "reflect"

// FieldID is the identity field every Record must carry.
const FieldID = "id"

// Identifiable is implemented by anything that can be indexed by id.
type Identifiable interface {
	GetID() string
}

// Record is a domain entity represented as a plain attribute map.
type Record map[string]any

// GetID returns the record id, or "" if it is missing or not a string.
func (r Record) GetID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ChangeSet is the minimal delta between two snapshots.
// A given id appears in at most one of the three slices.
type ChangeSet struct {
	Added   []Record `json:"added"`
	Updated []Record `json:"updated"`
	Deleted []Record `json:"deleted"`
}

// IsEmpty reports whether the change set carries no changes.
func (cs ChangeSet) IsEmpty() bool {
	return len(cs.Added) == 0 && len(cs.Updated) == 0 && len(cs.Deleted) == 0
}

// Len returns the total number of changes.
func (cs ChangeSet) Len() int {
	return len(cs.Added) + len(cs.Updated) + len(cs.Deleted)
}

// Equal reports whether two field values are strictly equal.
// Maps and slices are equal only when they share the same backing storage;
// funcs and non-comparable structs never compare equal.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() {
		return va.Equal(vb)
	}

	switch va.Kind() {
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	default:
		return false
	}
}
