package view

import (
	"testing"

	"github.com/fulldump/biff"
)

func count(records []Record, criteria ...Criterion) int {
	return len(Filter(records, BuildPredicate(criteria)))
}

func TestBuildPredicate_NoCriteria(t *testing.T) {
	orders := newOrders()
	biff.AssertEqual(count(orders), 23)
	biff.AssertEqual(count(orders, nil), 23)
}

func TestBuildPredicate_Idempotent(t *testing.T) {
	predicate := BuildPredicate([]Criterion{
		TextSearch{Query: "a", Fields: []string{"customer"}},
		NumericRange{Field: "amount", Min: "50"},
	})
	for _, r := range newOrders() {
		biff.AssertEqual(predicate(r), predicate(r))
	}
}

func TestBuildPredicate_NoopCriteriaAreIdentity(t *testing.T) {

	noops := []Criterion{
		TextSearch{Query: "", Fields: []string{"customer"}},
		TextSearch{Query: "   ", Fields: []string{"customer"}},
		Categorical{Field: "status", Value: All},
		Categorical{Field: "status", Value: ""},
		NumericRange{Field: "amount"},
		NumericRange{Field: "amount", Min: "abc", Max: "1e"},
		DateRange{Field: "createdAt", Start: "not a date"},
		BooleanFlag{Field: "paid", Value: "all"},
		BooleanFlag{Field: "paid", Value: "maybe"},
		Match{},
	}

	base := []Criterion{Categorical{Field: "status", Value: "pending"}}
	without := BuildPredicate(base)
	with := BuildPredicate(append(base, noops...))

	for _, r := range newOrders() {
		biff.AssertEqual(with(r), without(r))
	}

	for _, c := range noops {
		biff.AssertFalse(c.Active())
	}
}

func TestTextSearch(t *testing.T) {
	orders := newOrders()
	fields := []string{"customer", "email"}

	biff.AssertEqual(count(orders, TextSearch{Query: "ALI", Fields: fields}), 4)
	biff.AssertEqual(count(orders, TextSearch{Query: "élodie", Fields: fields}), 4)
	biff.AssertEqual(count(orders, TextSearch{Query: "example.com", Fields: fields}), 23)
	biff.AssertEqual(count(orders, TextSearch{Query: "nobody", Fields: fields}), 0)

	// fields outside the searchable set are ignored
	biff.AssertEqual(count(orders, TextSearch{Query: "pending", Fields: fields}), 0)
}

func TestTextSearch_NonStringValues(t *testing.T) {
	orders := newOrders()
	biff.AssertEqual(count(orders, TextSearch{Query: "230", Fields: []string{"amount"}}), 1)
}

func TestCategorical(t *testing.T) {
	orders := newOrders()
	biff.AssertEqual(count(orders, Categorical{Field: "status", Value: "pending"}), 9)
	biff.AssertEqual(count(orders, Categorical{Field: "status", Value: "cancelled"}), 3)
	biff.AssertEqual(count(orders, Categorical{Field: "status", Value: "lost"}), 0)
	biff.AssertEqual(count(orders, Categorical{Field: "status", Value: "ALL"}), 23)
	biff.AssertEqual(count(orders, Categorical{Field: "status", Value: " pending "}), 9)
}

func TestCategorical_TypedFields(t *testing.T) {
	records := []Record{
		{"id": "1", "stock": 0.0, "featured": true},
		{"id": "2", "stock": 3.0, "featured": false},
		{"id": "3", "stock": "0", "featured": "true"},
	}

	biff.AssertEqual(count(records, Categorical{Field: "stock", Value: "0"}), 2)
	biff.AssertEqual(count(records, Categorical{Field: "stock", Value: "3.0"}), 1)
	biff.AssertEqual(count(records, Categorical{Field: "stock", Value: "none"}), 0)
	biff.AssertEqual(count(records, Categorical{Field: "featured", Value: "true"}), 2)
	biff.AssertEqual(count(records, Categorical{Field: "featured", Value: "false"}), 1)
}

func TestNumericRange(t *testing.T) {
	orders := newOrders()

	biff.AssertEqual(count(orders, NumericRange{Field: "amount", Min: "100", Max: "150"}), 6)
	biff.AssertEqual(count(orders, NumericRange{Field: "amount", Min: "200"}), 4)
	biff.AssertEqual(count(orders, NumericRange{Field: "amount", Max: "50"}), 5)

	// a malformed bound is ignored, the other one still applies
	biff.AssertEqual(count(orders, NumericRange{Field: "amount", Min: "abc", Max: "50"}), 5)
}

func TestNumericRange_Inverted(t *testing.T) {
	orders := newOrders()

	inverted := Between("amount", 100, 50)
	biff.AssertTrue(inverted.Active())
	biff.AssertEqual(count(orders, inverted), 0)
}

func TestNumericRange_MissingField(t *testing.T) {
	records := []Record{
		{"id": "1", "amount": 10.0},
		{"id": "2"},
		{"id": "3", "amount": "n/a"},
	}
	biff.AssertEqual(count(records, NumericRange{Field: "amount", Min: "0"}), 1)
}

func TestDateRange(t *testing.T) {
	orders := newOrders()

	biff.AssertEqual(count(orders, DateRange{Field: "createdAt", Start: "2024-01-03", End: "2024-01-05"}), 3)
	biff.AssertEqual(count(orders, DateRange{Field: "createdAt", Start: "2024-01-20"}), 4)
	biff.AssertEqual(count(orders, DateRange{Field: "createdAt", End: "2024-01-01T09:59:59Z"}), 0)
	biff.AssertEqual(count(orders, DateRange{Field: "createdAt", End: "2024-01-01T10:00:00Z"}), 1)

	// inverted range
	biff.AssertEqual(count(orders, DateRange{Field: "createdAt", Start: "2024-01-05", End: "2024-01-03"}), 0)
}

func TestBooleanFlag(t *testing.T) {
	orders := newOrders()
	biff.AssertEqual(count(orders, BooleanFlag{Field: "paid", Value: "true"}), 12)
	biff.AssertEqual(count(orders, BooleanFlag{Field: "paid", Value: "false"}), 11)
	biff.AssertEqual(count(orders, BooleanFlag{Field: "paid", Value: "yes"}), 23)
}

func TestMatch(t *testing.T) {
	orders := newOrders()
	biff.AssertEqual(count(orders, Match{Filter: map[string]interface{}{"status": "cancelled"}}), 3)
}

func TestCriteria_CombinedWithAnd(t *testing.T) {
	orders := newOrders()
	n := count(orders,
		Categorical{Field: "status", Value: "pending"},
		BooleanFlag{Field: "paid", Value: "true"},
		NumericRange{Field: "amount", Min: "100"},
	)
	// pending and paid: ord-01, ord-15, ord-21; the amount leaves ord-15 and ord-21
	biff.AssertEqual(n, 2)
}
