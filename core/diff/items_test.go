package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChangedValues(t *testing.T) {
	t.Run("ReportsOnlyChangedFields", func(t *testing.T) {
		a := Record{"id": "1", "a": 1, "b": 2}
		b := Record{"id": "1", "a": 1, "b": 3}

		assert.Equal(t, Record{"id": "1", "b": 3}, GetChangedValues(a, b))
	})

	t.Run("NoChangesReturnsNil", func(t *testing.T) {
		a := Record{"id": "1", "name": "Checking"}
		assert.Nil(t, GetChangedValues(a, a.Clone()))
	})

	t.Run("FieldsMissingOnDestinationAreIgnored", func(t *testing.T) {
		a := Record{"id": "1", "name": "Checking", "closed": false}
		b := Record{"id": "1", "name": "Checking"}

		assert.Nil(t, GetChangedValues(a, b))
	})

	t.Run("NewFieldOnDestinationIsReported", func(t *testing.T) {
		a := Record{"id": "1"}
		b := Record{"id": "1", "notes": nil}

		assert.Equal(t, Record{"id": "1", "notes": nil}, GetChangedValues(a, b))
	})

	t.Run("WithoutID", func(t *testing.T) {
		assert.Equal(t, Record{"x": 2}, GetChangedValues(Record{"x": 1}, Record{"x": 2}))
	})

	t.Run("StrictTypes", func(t *testing.T) {
		a := Record{"id": "1", "amount": int64(100)}
		b := Record{"id": "1", "amount": float64(100)}

		assert.Equal(t, Record{"id": "1", "amount": float64(100)}, GetChangedValues(a, b))
	})
}

func TestEqual(t *testing.T) {
	shared := []string{"a"}
	sharedMap := map[string]int{"a": 1}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"SameInt", 1, 1, true},
		{"DifferentInt", 1, 2, false},
		{"DifferentTypes", int64(1), 1, false},
		{"BothNil", nil, nil, true},
		{"OneNil", nil, "x", false},
		{"SameSlice", shared, shared, true},
		{"EqualContentDifferentSlice", []string{"a"}, []string{"a"}, false},
		{"SameMap", sharedMap, sharedMap, true},
		{"EqualContentDifferentMap", map[string]int{"a": 1}, map[string]int{"a": 1}, false},
		{"Strings", "x", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestHasFieldsChanged(t *testing.T) {
	a := Record{"id": "1", "name": "A", "balance": int64(10), "closed": false}
	b := Record{"id": "1", "name": "A", "balance": int64(20), "closed": false}

	assert.False(t, HasFieldsChanged(a, b, []string{"name", "closed"}))
	assert.True(t, HasFieldsChanged(a, b, []string{"name", "balance"}))
	assert.False(t, HasFieldsChanged(a, b, nil))
}

func TestDiffItems(t *testing.T) {
	t.Run("AddedUpdatedDeleted", func(t *testing.T) {
		before := []Record{
			{"id": "1", "name": "Checking", "balance": int64(100)},
			{"id": "2", "name": "Savings", "balance": int64(500)},
			{"id": "3", "name": "Cash", "balance": int64(20)},
		}
		after := []Record{
			{"id": "1", "name": "Checking", "balance": int64(150)},
			{"id": "3", "name": "Cash", "balance": int64(20)},
			{"id": "4", "name": "Credit", "balance": int64(-30)},
		}

		cs := DiffItems(before, after)

		assert.Equal(t, []Record{{"id": "4", "name": "Credit", "balance": int64(-30)}}, cs.Added)
		assert.Equal(t, []Record{{"id": "1", "balance": int64(150)}}, cs.Updated)
		assert.Equal(t, []Record{{"id": "2"}}, cs.Deleted)
		assert.Equal(t, 3, cs.Len())
	})

	t.Run("IdenticalSnapshotsProduceNothing", func(t *testing.T) {
		items := []Record{
			{"id": "1", "name": "Checking"},
			{"id": "2", "name": "Savings"},
		}

		cs := DiffItems(items, items)

		assert.Empty(t, cs.Added)
		assert.Empty(t, cs.Updated)
		assert.Empty(t, cs.Deleted)
		assert.True(t, cs.IsEmpty())
	})

	t.Run("AddedFollowsNewOrder", func(t *testing.T) {
		cs := DiffItems(nil, []Record{{"id": "b"}, {"id": "a"}, {"id": "c"}})
		require.Len(t, cs.Added, 3)
		assert.Equal(t, "b", cs.Added[0].GetID())
		assert.Equal(t, "a", cs.Added[1].GetID())
		assert.Equal(t, "c", cs.Added[2].GetID())
	})

	t.Run("EachIDInAtMostOneBucket", func(t *testing.T) {
		before := []Record{{"id": "1", "v": 1}, {"id": "2", "v": 1}}
		after := []Record{{"id": "2", "v": 2}, {"id": "3", "v": 1}}

		cs := DiffItems(before, after)
		seen := map[string]int{}
		for _, bucket := range [][]Record{cs.Added, cs.Updated, cs.Deleted} {
			for _, r := range bucket {
				seen[r.GetID()]++
			}
		}
		for id, n := range seen {
			assert.Equal(t, 1, n, "id %s", id)
		}
	})
}

func TestApplyChanges(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		before := []Record{
			{"id": "1", "name": "Checking", "balance": int64(100)},
			{"id": "2", "name": "Savings", "balance": int64(500)},
		}
		after := []Record{
			{"id": "1", "name": "Checking", "balance": int64(150)},
			{"id": "3", "name": "Cash", "balance": int64(5)},
		}

		got := ApplyChanges(DiffItems(before, after), before)

		assert.ElementsMatch(t, after, got)
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		items := []Record{{"id": "1", "name": "A"}, {"id": "2", "name": "B"}}
		cs := ChangeSet{
			Updated: []Record{{"id": "1", "name": "Z"}},
			Deleted: []Record{{"id": "2"}},
		}

		got := ApplyChanges(cs, items)

		assert.Equal(t, []Record{{"id": "1", "name": "Z"}}, got)
		assert.Equal(t, []Record{{"id": "1", "name": "A"}, {"id": "2", "name": "B"}}, items)
	})

	t.Run("UnknownIDsAreSkipped", func(t *testing.T) {
		items := []Record{{"id": "1", "name": "A"}}
		cs := ChangeSet{
			Updated: []Record{{"id": "missing", "name": "Z"}},
			Deleted: []Record{{"id": "also-missing"}},
		}

		assert.Equal(t, items, ApplyChanges(cs, items))
	})

	t.Run("AddedThenUpdatedInSameSet", func(t *testing.T) {
		cs := ChangeSet{
			Added:   []Record{{"id": "9", "name": "new", "balance": int64(1)}},
			Updated: []Record{{"id": "9", "balance": int64(2)}},
		}

		got := ApplyChanges(cs, nil)

		assert.Equal(t, []Record{{"id": "9", "name": "new", "balance": int64(2)}}, got)
		// The added record itself is left untouched.
		assert.Equal(t, int64(1), cs.Added[0]["balance"])
	})

	t.Run("UpdateKeepsExistingID", func(t *testing.T) {
		items := []Record{{"id": "1", "name": "A"}}
		got := ApplyChanges(ChangeSet{Updated: []Record{{"id": "1", "name": "B"}}}, items)
		assert.Equal(t, "1", got[0].GetID())
	})
}
