package view

import (
	"errors"
	"testing"

	"github.com/fulldump/biff"
)

func TestSession(t *testing.T) {

	biff.Alternative("Session on page 2", func(a *biff.A) {

		s := NewSession(NewEngine(ordersSchema), newOrders())
		s.SetPageSize(5)
		s.GoToPage(2)

		result := s.View()
		biff.AssertEqual(result.Page, 2)
		biff.AssertEqual(result.TotalPages, 5)

		a.Alternative("Filter resets page", func(a *biff.A) {
			s.SetCriterion("status", Categorical{Field: "status", Value: "pending"})
			biff.AssertEqual(s.Pagination().Page, 1)
			biff.AssertEqual(s.View().TotalFiltered, 9)

			a.Alternative("Removing a filter resets page", func(a *biff.A) {
				s.GoToPage(2)
				s.RemoveCriterion("status")
				biff.AssertEqual(s.Pagination().Page, 1)
				biff.AssertEqual(s.View().TotalFiltered, 23)
			})
		})

		a.Alternative("Sort keeps page", func(a *biff.A) {
			s.SetSort(SortSpec{Key: "amount", Direction: Descending})
			biff.AssertEqual(s.Pagination().Page, 2)
			biff.AssertEqual(s.View().Items[0]["id"], "ord-18")
		})

		a.Alternative("Page size keeps page", func(a *biff.A) {
			s.SetPageSize(10)
			biff.AssertEqual(s.Pagination().Page, 2)
			biff.AssertEqual(s.View().Items[0]["id"], "ord-11")
		})

		a.Alternative("Growing page size clamps", func(a *biff.A) {
			s.SetPageSize(50)
			biff.AssertEqual(s.View().Page, 1)
			biff.AssertEqual(s.Pagination().Page, 1)
		})

		a.Alternative("Toggle sort", func(a *biff.A) {
			s.ToggleSort("amount")
			biff.AssertEqual(s.Sort(), SortSpec{Key: "amount", Direction: Ascending})
			s.ToggleSort("amount")
			biff.AssertEqual(s.Sort(), SortSpec{Key: "amount", Direction: Descending})
			s.ToggleSort("customer")
			biff.AssertEqual(s.Sort(), SortSpec{Key: "customer", Direction: Ascending})
		})

		a.Alternative("Select all pending", func(a *biff.A) {
			s.SetCriterion("status", Categorical{Field: "status", Value: "pending"})
			s.SelectAllVisible()
			biff.AssertEqual(s.Selection().Len(), 9)
			biff.AssertTrue(s.IsAllVisibleSelected())

			a.Alternative("Filter change keeps selection", func(a *biff.A) {
				s.SetCriterion("status", Categorical{Field: "status", Value: "shipped"})
				biff.AssertEqual(s.Selection().Len(), 9)
				biff.AssertFalse(s.IsAllVisibleSelected())
			})

			a.Alternative("Page change keeps selection", func(a *biff.A) {
				s.GoToPage(2)
				s.View()
				biff.AssertEqual(s.Selection().Len(), 9)
			})

			a.Alternative("Toggle reaches filtered records only", func(a *biff.A) {
				biff.AssertFalse(s.Toggle("ord-02"))
				biff.AssertFalse(s.Toggle("ord-99"))
				biff.AssertEqual(s.Selection().Len(), 9)

				s.SetCriterion("status", Categorical{Field: "status", Value: "shipped"})
				biff.AssertTrue(s.Toggle("ord-01"))
				biff.AssertFalse(s.Selection().Has("ord-01"))
				biff.AssertTrue(s.Toggle("ord-02"))
				biff.AssertEqual(s.Selection().Len(), 9)
			})

			a.Alternative("Replace clears selection", func(a *biff.A) {
				s.Replace(newOrders()[:3])
				biff.AssertEqual(s.Selection().Len(), 0)
				biff.AssertEqual(s.View().TotalFiltered, 1)
			})

			a.Alternative("Failed bulk keeps selection", func(a *biff.A) {
				err := s.ApplyBulk(func(ids []string) error {
					biff.AssertEqual(len(ids), 9)
					return errors.New("backend rejected the update")
				})
				biff.AssertNotNil(err)
				biff.AssertEqual(s.Selection().Len(), 9)
			})

			a.Alternative("Successful bulk clears selection", func(a *biff.A) {
				err := s.ApplyBulk(func(ids []string) error {
					return nil
				})
				biff.AssertNil(err)
				biff.AssertEqual(s.Selection().Len(), 0)
			})
		})

		a.Alternative("Clear criteria", func(a *biff.A) {
			s.SetCriterion("status", Categorical{Field: "status", Value: "pending"})
			s.SetCriterion("paid", BooleanFlag{Field: "paid", Value: "true"})
			biff.AssertEqual(len(s.Criteria()), 2)
			s.ClearCriteria()
			biff.AssertEqual(len(s.Criteria()), 0)
			biff.AssertEqual(s.View().TotalFiltered, 23)
		})
	})
}
