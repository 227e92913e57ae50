package diff

// GroupBy buckets data by the key returned from keyFn. Items keep their
// input order within a bucket. If mapper is non-nil it is applied to each
// item after its key is taken, and the mapped value is stored.
func GroupBy[T any, K comparable](data []T, keyFn func(T) K, mapper func(T) T) map[K][]T {
	res := make(map[K][]T)
	for _, item := range data {
		key := keyFn(item)
		if mapper != nil {
			item = mapper(item)
		}
		res[key] = append(res[key], item)
	}
	return res
}

// PartitionByField buckets records by the value of field. Records missing
// the field land in the nil bucket. Field values must be comparable.
func PartitionByField(data []Record, field string) map[any][]Record {
	return GroupBy(data, func(r Record) any { return r[field] }, nil)
}

// GroupByID indexes data by id. Duplicate ids resolve last-write-wins.
func GroupByID[T Identifiable](data []T) map[string]T {
	res := make(map[string]T, len(data))
	for _, item := range data {
		res[item.GetID()] = item
	}
	return res
}
