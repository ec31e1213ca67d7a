package view

import "slices"

// Session is the state of one open list screen. It is owned by a single
// view and must not be shared between goroutines without external locking.
//
// Changing a filter moves back to page 1. Sorting and resizing pages keep
// the current page. The selection survives filter and page changes and is
// only cleared on Replace, ClearSelection or a successful bulk action.
type Session struct {
	Engine *Engine

	records    []Record
	names      []string
	criteria   map[string]Criterion
	sort       SortSpec
	pagination Pagination
	selection  *Selection
}

func NewSession(engine *Engine, records []Record) *Session {
	return &Session{
		Engine:     engine,
		records:    records,
		criteria:   map[string]Criterion{},
		pagination: Pagination{Page: 1, PageSize: engine.pageSize(0)},
		selection:  NewSelection(),
	}
}

func (s *Session) Records() []Record {
	return s.records
}

// Replace swaps the whole collection, for example after a refetch.
func (s *Session) Replace(records []Record) {
	s.records = records
	s.selection.Clear()
}

func (s *Session) SetCriterion(name string, c Criterion) {
	if _, exists := s.criteria[name]; !exists {
		s.names = append(s.names, name)
	}
	s.criteria[name] = c
	s.pagination.Page = 1
}

func (s *Session) RemoveCriterion(name string) {
	if _, exists := s.criteria[name]; !exists {
		return
	}
	delete(s.criteria, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	s.pagination.Page = 1
}

func (s *Session) ClearCriteria() {
	s.names = nil
	clear(s.criteria)
	s.pagination.Page = 1
}

func (s *Session) Criterion(name string) (Criterion, bool) {
	c, exists := s.criteria[name]
	return c, exists
}

// Criteria returns the criteria in the order they were first set.
func (s *Session) Criteria() []Criterion {
	result := make([]Criterion, 0, len(s.names))
	for _, name := range s.names {
		result = append(result, s.criteria[name])
	}
	return result
}

func (s *Session) CriteriaByName() map[string]Criterion {
	result := make(map[string]Criterion, len(s.criteria))
	for name, c := range s.criteria {
		result[name] = c
	}
	return result
}

func (s *Session) Sort() SortSpec {
	return s.sort
}

func (s *Session) SetSort(spec SortSpec) {
	if spec.Direction == "" {
		spec.Direction = Ascending
	}
	s.sort = spec
}

// ToggleSort is a click on a column header: the active column flips its
// direction, any other column becomes the ascending sort.
func (s *Session) ToggleSort(key string) {
	if s.sort.Key == key && s.sort.Direction == Ascending {
		s.sort.Direction = Descending
		return
	}
	s.sort = SortSpec{Key: key, Direction: Ascending}
}

func (s *Session) Pagination() Pagination {
	return s.pagination
}

func (s *Session) SetPageSize(pageSize int) {
	s.pagination.PageSize = s.Engine.pageSize(pageSize)
}

func (s *Session) GoToPage(page int) {
	s.pagination.Page = max(page, 1)
}

// View computes the current page and remembers the clamped page number.
func (s *Session) View() Result {
	result := s.Engine.ComputeView(s.records, s.Criteria(), s.sort, s.pagination)
	s.pagination.Page = result.Page
	return result
}

func (s *Session) FilteredIDs() []string {
	filtered := s.Engine.Filter(s.records, s.Criteria())
	return IDs(filtered, s.Engine.Schema.IDField())
}

func (s *Session) Stats(metrics []MetricSpec) map[string]float64 {
	return s.Engine.ComputeStats(s.records, s.Criteria(), metrics)
}

func (s *Session) Selection() *Selection {
	return s.selection
}

// Toggle flips one id. Only ids in the filtered result can be selected,
// a selected id can always be unselected.
func (s *Session) Toggle(id string) bool {
	if !s.selection.Has(id) && !slices.Contains(s.FilteredIDs(), id) {
		return false
	}
	s.selection.Toggle(id)
	return true
}

func (s *Session) SelectAllVisible() {
	s.selection.SelectAllVisible(s.FilteredIDs())
}

func (s *Session) ToggleAllVisible() {
	s.selection.ToggleAllVisible(s.FilteredIDs())
}

func (s *Session) IsAllVisibleSelected() bool {
	return s.selection.IsAllVisibleSelected(s.FilteredIDs())
}

func (s *Session) ClearSelection() {
	s.selection.Clear()
}

// ApplyBulk runs f over the selected ids. The selection is cleared only when
// f succeeds.
func (s *Session) ApplyBulk(f func(ids []string) error) error {
	err := f(s.selection.IDs())
	if err != nil {
		return err
	}
	s.selection.Clear()
	return nil
}
