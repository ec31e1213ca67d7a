package service

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/fulldump/tableview/collection"
	"github.com/fulldump/tableview/database"
	"github.com/fulldump/tableview/screen"
	"github.com/fulldump/tableview/view"
)

// Session is one open list screen over a collection. Every operation holds
// the session mutex.
type Session struct {
	Id         string
	Collection string
	Screen     *screen.Screen

	db      *database.Database
	logger  *zap.Logger
	view    *view.Session
	filters map[string]interface{}
	mutex   *sync.Mutex
}

type SessionState struct {
	Id                 string                 `json:"id"`
	Collection         string                 `json:"collection"`
	Screen             string                 `json:"screen"`
	Filters            map[string]interface{} `json:"filters"`
	Sort               view.SortSpec          `json:"sort"`
	Selected           []string               `json:"selected"`
	AllVisibleSelected bool                   `json:"allVisibleSelected"`
	View               view.Result            `json:"view"`
}

func (s *Session) lock(f func() error) (*SessionState, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := f()
	if err != nil {
		return nil, err
	}

	return s.state(), nil
}

func (s *Session) state() *SessionState {

	filters := make(map[string]interface{}, len(s.filters))
	for k, v := range s.filters {
		filters[k] = v
	}

	return &SessionState{
		Id:                 s.Id,
		Collection:         s.Collection,
		Screen:             s.Screen.Name,
		Filters:            filters,
		Sort:               s.view.Sort(),
		Selected:           s.view.Selection().IDs(),
		AllVisibleSelected: s.view.IsAllVisibleSelected(),
		View:               s.view.View(),
	}
}

func (s *Session) State() *SessionState {
	state, _ := s.lock(func() error { return nil })
	return state
}

// SetFilter changes one filter control. A nil value removes it.
func (s *Session) SetFilter(name string, value interface{}) (*SessionState, error) {
	return s.lock(func() error {

		if value == nil {
			if _, exists := s.Screen.Filter(name); !exists {
				return fmt.Errorf("%w '%s'", screen.ErrUnknownFilter, name)
			}
			delete(s.filters, name)
			s.view.RemoveCriterion(name)
			return nil
		}

		criterion, err := s.Screen.Criterion(name, value)
		if err != nil {
			return err
		}
		s.filters[name] = value
		s.view.SetCriterion(name, criterion)
		return nil
	})
}

func (s *Session) ClearFilters() (*SessionState, error) {
	return s.lock(func() error {
		clear(s.filters)
		s.view.ClearCriteria()
		return nil
	})
}

// SetSort sorts by key. Without direction the same key flips and a new key
// starts ascending.
func (s *Session) SetSort(key string, direction view.Direction) (*SessionState, error) {
	return s.lock(func() error {
		switch direction {
		case "":
			s.view.ToggleSort(key)
		case view.Ascending, view.Descending:
			s.view.SetSort(view.SortSpec{Key: key, Direction: direction})
		default:
			return fmt.Errorf("%w '%s'", ErrorInvalidSort, direction)
		}
		return nil
	})
}

// SetPage moves to a page and resizes pages. Zero values keep the current
// ones.
func (s *Session) SetPage(page, pageSize int) (*SessionState, error) {
	return s.lock(func() error {
		if pageSize > 0 {
			s.view.SetPageSize(pageSize)
		}
		if page > 0 {
			s.view.GoToPage(page)
		}
		return nil
	})
}

// Toggle selects or unselects one record. Only records in the filtered
// result can be selected.
func (s *Session) Toggle(id string) (*SessionState, error) {
	return s.lock(func() error {
		if !s.view.Toggle(id) {
			return fmt.Errorf("%w: '%s'", collection.ErrRowNotFound, id)
		}
		return nil
	})
}

func (s *Session) SelectAll() (*SessionState, error) {
	return s.lock(func() error {
		s.view.SelectAllVisible()
		return nil
	})
}

func (s *Session) ToggleAll() (*SessionState, error) {
	return s.lock(func() error {
		s.view.ToggleAllVisible()
		return nil
	})
}

func (s *Session) ClearSelection() (*SessionState, error) {
	return s.lock(func() error {
		s.view.ClearSelection()
		return nil
	})
}

func (s *Session) Stats() map[string]float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.view.Stats(s.Screen.Metrics)
}

// Refresh reloads the collection. The selection is cleared.
func (s *Session) Refresh() (*SessionState, error) {
	return s.lock(s.refresh)
}

func (s *Session) refresh() error {
	col, err := s.db.GetCollection(s.Collection)
	if err != nil {
		return err
	}
	s.view.Replace(col.Snapshot())
	return nil
}

// reload takes a new snapshot and keeps the selected ids that still exist.
func (s *Session) reload() error {
	col, err := s.db.GetCollection(s.Collection)
	if err != nil {
		return err
	}
	selected := s.view.Selection().IDs()
	s.view.Replace(col.Snapshot())
	for _, id := range selected {
		if _, exists := col.Get(id); exists {
			s.view.Selection().Toggle(id)
		}
	}
	return nil
}
