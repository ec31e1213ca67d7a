package view

import (
	"fmt"
	"testing"

	"github.com/fulldump/biff"
)

func TestComputeView_PendingOrders(t *testing.T) {

	engine := NewEngine(ordersSchema)
	orders := newOrders()
	criteria := []Criterion{Categorical{Field: "status", Value: "pending"}}

	page1 := engine.ComputeView(orders, criteria, SortSpec{}, Pagination{PageSize: 5, Page: 1})
	biff.AssertEqual(page1.TotalFiltered, 9)
	biff.AssertEqual(page1.TotalPages, 2)
	biff.AssertEqual(len(page1.Items), 5)

	page2 := engine.ComputeView(orders, criteria, SortSpec{}, Pagination{PageSize: 5, Page: 2})
	biff.AssertEqual(page2.TotalFiltered, 9)
	biff.AssertEqual(page2.TotalPages, 2)
	biff.AssertEqual(len(page2.Items), 4)

	for _, r := range append(page1.Items, page2.Items...) {
		biff.AssertEqual(r["status"], "pending")
	}
}

func TestComputeView_PaginationCoverage(t *testing.T) {

	engine := NewEngine(ordersSchema)
	orders := newOrders()
	criteria := []Criterion{NumericRange{Field: "amount", Min: "30"}}
	sort := SortSpec{Key: "customer", Direction: Descending}

	expected := ids(SortStable(engine.Filter(orders, criteria), BuildComparator(sort, ordersSchema)))

	for pageSize := 1; pageSize <= 25; pageSize++ {
		first := engine.ComputeView(orders, criteria, sort, Pagination{PageSize: pageSize, Page: 1})
		obtained := []string{}
		for page := 1; page <= first.TotalPages; page++ {
			result := engine.ComputeView(orders, criteria, sort, Pagination{PageSize: pageSize, Page: page})
			obtained = append(obtained, ids(result.Items)...)
		}
		if fmt.Sprint(obtained) != fmt.Sprint(expected) {
			t.Fatalf("page size %d: obtained %v, expected %v", pageSize, obtained, expected)
		}
	}
}

func TestComputeView_ClampsPage(t *testing.T) {

	engine := NewEngine(ordersSchema)
	orders := newOrders()[:5]

	result := engine.ComputeView(orders, nil, SortSpec{}, Pagination{PageSize: 10, Page: 3})
	biff.AssertEqual(result.TotalFiltered, 5)
	biff.AssertEqual(result.TotalPages, 1)
	biff.AssertEqual(result.Page, 1)
	biff.AssertEqual(len(result.Items), 5)
}

func TestComputeView_Empty(t *testing.T) {

	engine := NewEngine(ordersSchema)

	result := engine.ComputeView(newOrders(), []Criterion{Between("amount", 100, 50)}, SortSpec{}, Pagination{PageSize: 10, Page: 4})
	biff.AssertEqual(result.TotalFiltered, 0)
	biff.AssertEqual(result.TotalPages, 1)
	biff.AssertEqual(result.Page, 1)
	biff.AssertNotNil(result.Items)
	biff.AssertEqual(len(result.Items), 0)

	result = engine.ComputeView(nil, nil, SortSpec{Key: "amount"}, Pagination{})
	biff.AssertEqual(result.TotalPages, 1)
	biff.AssertEqual(result.PageSize, DefaultPageSize)
}

func TestComputeView_Deterministic(t *testing.T) {

	engine := NewEngine(ordersSchema)
	orders := newOrders()
	before := ids(orders)

	criteria := []Criterion{TextSearch{Query: "e", Fields: []string{"customer"}}}
	sort := SortSpec{Key: "paid", Direction: Descending}
	pagination := Pagination{PageSize: 4, Page: 2}

	a := engine.ComputeView(orders, criteria, sort, pagination)
	b := engine.ComputeView(orders, criteria, sort, pagination)
	biff.AssertEqual(a, b)

	// input untouched
	biff.AssertEqual(ids(orders), before)
}

func TestComputeView_FilteredIDsIgnorePagination(t *testing.T) {

	engine := NewEngine(ordersSchema)

	result := engine.ComputeView(newOrders(), []Criterion{Categorical{Field: "status", Value: "pending"}}, SortSpec{Key: "amount", Direction: Descending}, Pagination{PageSize: 2, Page: 1})
	biff.AssertEqual(len(result.Items), 2)
	biff.AssertEqual(len(result.FilteredIDs), 9)
	biff.AssertEqual(result.FilteredIDs[0], "ord-21")
}

func TestTotalPages(t *testing.T) {
	biff.AssertEqual(TotalPages(0, 10), 1)
	biff.AssertEqual(TotalPages(10, 10), 1)
	biff.AssertEqual(TotalPages(11, 10), 2)
	biff.AssertEqual(TotalPages(25, 10), 3)
}
