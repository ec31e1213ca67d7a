package view

import (
	"fmt"
	"testing"

	"github.com/fulldump/biff"
)

func TestSelection(t *testing.T) {

	biff.Alternative("Empty selection", func(a *biff.A) {

		s := NewSelection()
		biff.AssertEqual(s.Len(), 0)
		biff.AssertFalse(s.IsAllVisibleSelected(nil))

		a.Alternative("Toggle twice", func(a *biff.A) {
			s.Toggle("1")
			biff.AssertTrue(s.Has("1"))
			s.Toggle("1")
			biff.AssertFalse(s.Has("1"))
			biff.AssertEqual(s.Len(), 0)
		})

		a.Alternative("Select all visible across pages", func(a *biff.A) {
			filtered := []string{}
			for i := 0; i < 25; i++ {
				filtered = append(filtered, fmt.Sprintf("id-%02d", i))
			}

			s.SelectAllVisible(filtered)
			biff.AssertEqual(s.Len(), 25)
			biff.AssertTrue(s.IsAllVisibleSelected(filtered))

			a.Alternative("Unselect one", func(a *biff.A) {
				s.Toggle("id-07")
				biff.AssertFalse(s.IsAllVisibleSelected(filtered))
				biff.AssertEqual(s.Len(), 24)
			})

			a.Alternative("Header checkbox unselects", func(a *biff.A) {
				s.ToggleAllVisible(filtered[:10])
				biff.AssertEqual(s.Len(), 15)
				biff.AssertFalse(s.Has("id-00"))
				biff.AssertTrue(s.Has("id-10"))
			})

			a.Alternative("Clear", func(a *biff.A) {
				s.Clear()
				biff.AssertEqual(s.Len(), 0)
				biff.AssertEqual(s.IDs(), []string{})
			})
		})

		a.Alternative("Header checkbox selects", func(a *biff.A) {
			s.Toggle("b")
			s.ToggleAllVisible([]string{"c", "a", "b"})
			biff.AssertEqual(s.IDs(), []string{"a", "b", "c"})
		})
	})
}
