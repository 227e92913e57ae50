package diff

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ToRecord converts a struct (or map) into a Record using its json tags.
func ToRecord(v any) (Record, error) {
	out := Record{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &out,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("failed to convert %T to record: %w", v, err)
	}
	return out, nil
}

// DecodeRecord decodes r into out, which must be a pointer to a struct.
// Input is weakly typed so rows coming back from the database (int64 for
// booleans, []byte for text) decode cleanly.
func DecodeRecord(r Record, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(r)); err != nil {
		return fmt.Errorf("failed to decode record %q: %w", r.GetID(), err)
	}
	return nil
}

// ToRecords converts a slice of models into records.
func ToRecords[T any](items []T) ([]Record, error) {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		r, err := ToRecord(item)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// DiffModels diffs two slices of typed models through their record form.
func DiffModels[T any](oldItems, newItems []T) (ChangeSet, error) {
	oldRecords, err := ToRecords(oldItems)
	if err != nil {
		return ChangeSet{}, err
	}
	newRecords, err := ToRecords(newItems)
	if err != nil {
		return ChangeSet{}, err
	}
	return DiffItems(oldRecords, newRecords), nil
}
