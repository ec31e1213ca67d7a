package view

import (
	"testing"

	"github.com/fulldump/biff"
)

func sorted(records []Record, spec SortSpec, schema *Schema) []string {
	return ids(SortStable(records, BuildComparator(spec, schema)))
}

func TestParseSort(t *testing.T) {
	biff.AssertEqual(ParseSort("amount"), SortSpec{Key: "amount", Direction: Ascending})
	biff.AssertEqual(ParseSort("-amount"), SortSpec{Key: "amount", Direction: Descending})
	biff.AssertEqual(ParseSort("-amount").String(), "-amount")
}

func TestSort_Stable(t *testing.T) {

	records := []Record{
		{"id": "a", "k": 1.0},
		{"id": "b", "k": 1.0},
		{"id": "c", "k": 0.0},
	}
	schema := &Schema{Fields: map[string]FieldType{"k": FieldNumber}}

	biff.AssertEqual(sorted(records, SortSpec{Key: "k", Direction: Ascending}, schema), []string{"c", "a", "b"})
	biff.AssertEqual(sorted(records, SortSpec{Key: "k", Direction: Descending}, schema), []string{"a", "b", "c"})
}

func TestSort_MissingValuesLast(t *testing.T) {

	records := []Record{
		{"id": "three", "k": 3.0},
		{"id": "nil", "k": nil},
		{"id": "one", "k": 1.0},
		{"id": "absent"},
		{"id": "garbage", "k": "n/a"},
	}
	schema := &Schema{Fields: map[string]FieldType{"k": FieldNumber}}

	biff.AssertEqual(sorted(records, SortSpec{Key: "k", Direction: Ascending}, schema),
		[]string{"one", "three", "nil", "absent", "garbage"})
	biff.AssertEqual(sorted(records, SortSpec{Key: "k", Direction: Descending}, schema),
		[]string{"three", "one", "nil", "absent", "garbage"})
}

func TestSort_StringsUseCollation(t *testing.T) {
	records := []Record{
		{"id": "1", "name": "bob"},
		{"id": "2", "name": "Élodie"},
		{"id": "3", "name": "Alice"},
		{"id": "4", "name": "Frank"},
		{"id": "5", "name": "Carmen"},
	}

	biff.AssertEqual(sorted(records, SortSpec{Key: "name"}, ordersSchema), []string{"3", "1", "5", "2", "4"})
	biff.AssertEqual(sorted(records, SortSpec{Key: "name", Direction: Descending}, ordersSchema), []string{"4", "2", "5", "1", "3"})
}

func TestSort_Numbers(t *testing.T) {
	records := []Record{
		{"id": "1", "amount": 100.0},
		{"id": "2", "amount": 9.5},
		{"id": "3", "amount": 20},
	}
	// numeric, not lexicographic
	biff.AssertEqual(sorted(records, SortSpec{Key: "amount"}, ordersSchema), []string{"2", "3", "1"})
}

func TestSort_DatesByInstant(t *testing.T) {
	records := []Record{
		{"id": "utc", "createdAt": "2024-01-01T09:00:00Z"},
		{"id": "plus2", "createdAt": "2024-01-01T10:00:00+02:00"},
		{"id": "day", "createdAt": "2023-12-31"},
	}
	biff.AssertEqual(sorted(records, SortSpec{Key: "createdAt"}, ordersSchema), []string{"day", "plus2", "utc"})
}

func TestSort_Booleans(t *testing.T) {
	records := []Record{
		{"id": "1", "paid": true},
		{"id": "2", "paid": false},
		{"id": "3", "paid": true},
	}
	biff.AssertEqual(sorted(records, SortSpec{Key: "paid"}, ordersSchema), []string{"2", "1", "3"})
	biff.AssertEqual(sorted(records, SortSpec{Key: "paid", Direction: Descending}, ordersSchema), []string{"1", "3", "2"})
}

func TestSort_InferredTypes(t *testing.T) {
	records := []Record{
		{"id": "1", "score": 10},
		{"id": "2", "score": 2},
	}
	biff.AssertEqual(sorted(records, SortSpec{Key: "score"}, nil), []string{"2", "1"})
}

func TestSort_EmptyKeyKeepsOrder(t *testing.T) {
	orders := newOrders()
	biff.AssertEqual(sorted(orders, SortSpec{}, ordersSchema), ids(orders))
}
