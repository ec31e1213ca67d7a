package screen

import (
	"errors"
	"fmt"

	"github.com/fulldump/tableview/view"
)

const (
	KindSearch      = "search"
	KindCategorical = "categorical"
	KindRange       = "range"
	KindDate        = "date"
	KindBoolean     = "boolean"
	KindMatch       = "match"
)

var ErrUnknownFilter = errors.New("unknown filter")

// Filter is one filter control of a screen.
type Filter struct {
	Name    string   `yaml:"name" json:"name"`
	Kind    string   `yaml:"kind" json:"kind"`
	Field   string   `yaml:"field" json:"field,omitempty"`
	Fields  []string `yaml:"fields" json:"fields,omitempty"`
	Options []string `yaml:"options" json:"options,omitempty"`
}

type Bulk struct {
	StatusField string   `yaml:"statusField" json:"statusField"`
	Statuses    []string `yaml:"statuses" json:"statuses"`
}

// Screen is the configuration of one admin list screen. Every screen runs
// the same engine, only this configuration differs.
type Screen struct {
	Name     string            `yaml:"name" json:"name"`
	Title    string            `yaml:"title" json:"title"`
	Schema   view.Schema       `yaml:"schema" json:"schema"`
	PageSize int               `yaml:"pageSize" json:"pageSize"`
	Sort     string            `yaml:"sort" json:"sort"`
	Filters  []Filter          `yaml:"filters" json:"filters"`
	Metrics  []view.MetricSpec `yaml:"metrics" json:"metrics"`
	Bulk     Bulk              `yaml:"bulk" json:"bulk"`
}

func (s *Screen) setDefaults() {
	if s.Title == "" {
		s.Title = s.Name
	}
	if s.Schema.ID == "" {
		s.Schema.ID = "id"
	}
	if s.PageSize <= 0 {
		s.PageSize = view.DefaultPageSize
	}
	for i := range s.Metrics {
		if s.Metrics[i].Scope == "" {
			s.Metrics[i].Scope = view.ScopeAll
		}
		if s.Metrics[i].Kind == "" {
			s.Metrics[i].Kind = view.MetricCount
		}
	}
}

func (s *Screen) Validate() error {

	if s.Name == "" {
		return errors.New("screen without name")
	}

	for field, t := range s.Schema.Fields {
		if !t.Valid() {
			return fmt.Errorf("field '%s': unknown type '%s'", field, t)
		}
	}

	names := map[string]bool{}
	for _, f := range s.Filters {
		if names[f.Name] {
			return fmt.Errorf("duplicate filter '%s'", f.Name)
		}
		names[f.Name] = true

		switch f.Kind {
		case KindSearch:
			if len(f.Fields) == 0 {
				return fmt.Errorf("filter '%s': search needs fields", f.Name)
			}
		case KindCategorical, KindRange, KindDate, KindBoolean:
			if f.Field == "" {
				return fmt.Errorf("filter '%s': field is mandatory", f.Name)
			}
		case KindMatch:
		default:
			return fmt.Errorf("filter '%s': unknown kind '%s'", f.Name, f.Kind)
		}
	}

	metrics := map[string]bool{}
	for _, m := range s.Metrics {
		if metrics[m.Name] {
			return fmt.Errorf("duplicate metric '%s'", m.Name)
		}
		metrics[m.Name] = true

		if !m.Kind.Valid() {
			return fmt.Errorf("metric '%s': unknown kind '%s'", m.Name, m.Kind)
		}
		if m.Scope != view.ScopeAll && m.Scope != view.ScopeFiltered {
			return fmt.Errorf("metric '%s': unknown scope '%s'", m.Name, m.Scope)
		}
		if m.Kind != view.MetricCount && m.Field == "" {
			return fmt.Errorf("metric '%s': field is mandatory for %s", m.Name, m.Kind)
		}
	}

	return nil
}

func (s *Screen) Engine() *view.Engine {
	engine := view.NewEngine(&s.Schema)
	engine.PageSize = s.PageSize
	return engine
}

// NewSession opens a view over records with the screen defaults applied.
func (s *Screen) NewSession(records []view.Record) *view.Session {
	session := view.NewSession(s.Engine(), records)
	if s.Sort != "" {
		session.SetSort(view.ParseSort(s.Sort))
	}
	return session
}

func (s *Screen) Filter(name string) (*Filter, bool) {
	for i := range s.Filters {
		if s.Filters[i].Name == name {
			return &s.Filters[i], true
		}
	}
	return nil, false
}

func (s *Screen) HasStatus(status string) bool {
	for _, st := range s.Bulk.Statuses {
		if st == status {
			return true
		}
	}
	return false
}
