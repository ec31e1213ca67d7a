package view

import (
	"github.com/google/btree"
)

type positioned struct {
	pos    int
	record Record
}

// SortStable returns a sorted copy of records. Records that compare equal
// keep their input order: the index is keyed by (comparator, position).
func SortStable(records []Record, compare Comparator) []Record {

	result := make([]Record, 0, len(records))
	if len(records) < 2 {
		return append(result, records...)
	}

	index := btree.NewG(32, func(a, b positioned) bool {
		if c := compare(a.record, b.record); c != 0 {
			return c < 0
		}
		return a.pos < b.pos
	})

	for i, r := range records {
		index.ReplaceOrInsert(positioned{pos: i, record: r})
	}

	index.Ascend(func(p positioned) bool {
		result = append(result, p.record)
		return true
	})

	return result
}

// Filter returns the records accepted by predicate, in order.
func Filter(records []Record, predicate Predicate) []Record {
	result := make([]Record, 0, len(records))
	for _, r := range records {
		if predicate(r) {
			result = append(result, r)
		}
	}
	return result
}
