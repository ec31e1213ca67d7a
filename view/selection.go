package view

import (
	"sort"
)

// Selection is the set of selected record identifiers of a view. It is
// scoped to the filtered set, never to the current page.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{
		ids: map[string]struct{}{},
	}
}

func (s *Selection) Toggle(id string) {
	if _, exists := s.ids[id]; exists {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

func (s *Selection) Has(id string) bool {
	_, exists := s.ids[id]
	return exists
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// SelectAllVisible selects every filtered id, including those on other pages.
func (s *Selection) SelectAllVisible(filteredIDs []string) {
	for _, id := range filteredIDs {
		s.ids[id] = struct{}{}
	}
}

// ToggleAllVisible is the header checkbox: unselect the filtered ids when
// all of them are selected, select them all otherwise.
func (s *Selection) ToggleAllVisible(filteredIDs []string) {
	if s.IsAllVisibleSelected(filteredIDs) {
		for _, id := range filteredIDs {
			delete(s.ids, id)
		}
		return
	}
	s.SelectAllVisible(filteredIDs)
}

// IsAllVisibleSelected is false for an empty filtered set.
func (s *Selection) IsAllVisibleSelected(filteredIDs []string) bool {
	if len(filteredIDs) == 0 {
		return false
	}
	for _, id := range filteredIDs {
		if _, exists := s.ids[id]; !exists {
			return false
		}
	}
	return true
}

func (s *Selection) Clear() {
	clear(s.ids)
}

// IDs returns the selected identifiers sorted.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
