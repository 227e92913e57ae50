package diff

import "slices"

// GetChangedValues compares every field of b against the same field of a.
// It returns nil when nothing differs. Otherwise the result carries a's id
// (if any) plus each differing field with b's value.
//
// The diff is destination driven: fields present on a but absent from b are
// never reported, so field removal cannot be expressed.
func GetChangedValues(a, b Record) Record {
	changes := Record{}
	if id, ok := a[FieldID]; ok {
		changes[FieldID] = id
	}

	changed := false
	for key, bv := range b {
		av, ok := a[key]
		if !ok || !Equal(av, bv) {
			changes[key] = bv
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return changes
}

// HasFieldsChanged reports whether any of the listed fields differ.
// It stops at the first mismatch.
func HasFieldsChanged(a, b Record, fields []string) bool {
	for _, field := range fields {
		if !Equal(a[field], b[field]) {
			return true
		}
	}
	return false
}

// DiffItems computes the change set that turns oldItems into newItems.
// Both slices are expected to be unique by id; with duplicates the last
// record for an id wins during indexing.
func DiffItems(oldItems, newItems []Record) ChangeSet {
	grouped := GroupByID(oldItems)
	newGrouped := GroupByID(newItems)

	cs := ChangeSet{
		Added:   []Record{},
		Updated: []Record{},
		Deleted: []Record{},
	}

	for _, item := range oldItems {
		if _, ok := newGrouped[item.GetID()]; !ok {
			cs.Deleted = append(cs.Deleted, Record{FieldID: item.GetID()})
		}
	}

	for _, newItem := range newItems {
		item, ok := grouped[newItem.GetID()]
		if !ok {
			cs.Added = append(cs.Added, newItem)
			continue
		}
		if changes := GetChangedValues(item, newItem); changes != nil {
			cs.Updated = append(cs.Updated, changes)
		}
	}

	return cs
}

// ApplyChanges returns a new slice with the change set applied to items.
// Phases run in a fixed order: added records are appended, updates are
// shallow-merged into the first record with a matching id, then deletions
// remove the first match. Updates and deletions for unknown ids are skipped.
//
// An id listed in both Added and Updated is therefore updated after being
// added (last write wins by phase).
func ApplyChanges(cs ChangeSet, items []Record) []Record {
	out := make([]Record, 0, len(items)+len(cs.Added))
	out = append(out, items...)
	out = append(out, cs.Added...)

	for _, upd := range cs.Updated {
		idx := indexByID(out, upd.GetID())
		if idx == -1 {
			continue
		}
		merged := out[idx].Clone()
		if merged == nil {
			merged = Record{}
		}
		for k, v := range upd {
			if k == FieldID {
				continue
			}
			merged[k] = v
		}
		out[idx] = merged
	}

	for _, del := range cs.Deleted {
		if idx := indexByID(out, del.GetID()); idx != -1 {
			out = slices.Delete(out, idx, idx+1)
		}
	}

	return out
}

func indexByID(items []Record, id string) int {
	return slices.IndexFunc(items, func(r Record) bool {
		return r.GetID() == id
	})
}
