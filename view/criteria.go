package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/SierraSoftworks/connor"
	"golang.org/x/text/cases"
)

// All is the sentinel value of categorical and boolean controls that
// disables them.
const All = "all"

// Criterion is one independent filter test. A criterion that is not Active
// never excludes a record.
type Criterion interface {
	Active() bool
	// Matcher compiles the criterion. It is only called on active criteria.
	Matcher() func(r Record) bool
}

type Predicate func(r Record) bool

// BuildPredicate combines criteria with AND, skipping inactive ones.
func BuildPredicate(criteria []Criterion) Predicate {

	matchers := make([]func(Record) bool, 0, len(criteria))
	for _, c := range criteria {
		if c == nil || !c.Active() {
			continue
		}
		matchers = append(matchers, c.Matcher())
	}

	if len(matchers) == 0 {
		return func(Record) bool { return true }
	}

	return func(r Record) bool {
		for _, match := range matchers {
			if !match(r) {
				return false
			}
		}
		return true
	}
}

func isSentinel(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, All)
}

func never(Record) bool { return false }

// TextSearch matches Query as a case insensitive substring of any of Fields.
type TextSearch struct {
	Query  string   `json:"query"`
	Fields []string `json:"fields"`
}

func (c TextSearch) Active() bool {
	return strings.TrimSpace(c.Query) != "" && len(c.Fields) > 0
}

func (c TextSearch) Matcher() func(r Record) bool {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(c.Query))
	return func(r Record) bool {
		for _, field := range c.Fields {
			v, exists := r[field]
			if !exists || v == nil {
				continue
			}
			if strings.Contains(fold.String(toText(v)), needle) {
				return true
			}
		}
		return false
	}
}

// Categorical matches records whose Field equals Value. Value is compared as
// a number or a boolean when the record holds one.
type Categorical struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (c Categorical) Active() bool {
	return c.Field != "" && !isSentinel(c.Value)
}

func (c Categorical) Matcher() func(r Record) bool {
	value := strings.TrimSpace(c.Value)
	text := map[string]interface{}{c.Field: value}

	var number, flag map[string]interface{}
	if n, ok := parseNumber(value); ok {
		number = map[string]interface{}{c.Field: n}
	}
	if b, ok := toBool(value); ok {
		flag = map[string]interface{}{c.Field: b}
	}

	return func(r Record) bool {
		filter := text
		switch r[c.Field].(type) {
		case float64, float32, int, int64:
			filter = number
		case bool:
			filter = flag
		}
		if filter == nil {
			return false
		}
		match, err := connor.Match(filter, r)
		return err == nil && match
	}
}

// NumericRange keeps the raw user input; a bound that does not parse is
// treated as absent.
type NumericRange struct {
	Field string `json:"field"`
	Min   string `json:"min"`
	Max   string `json:"max"`
}

func Between(field string, min, max float64) NumericRange {
	return NumericRange{
		Field: field,
		Min:   strconv.FormatFloat(min, 'f', -1, 64),
		Max:   strconv.FormatFloat(max, 'f', -1, 64),
	}
}

func (c NumericRange) Active() bool {
	_, hasMin := parseNumber(c.Min)
	_, hasMax := parseNumber(c.Max)
	return c.Field != "" && (hasMin || hasMax)
}

// Matcher of an inverted range (min > max) matches nothing.
func (c NumericRange) Matcher() func(r Record) bool {
	min, hasMin := parseNumber(c.Min)
	max, hasMax := parseNumber(c.Max)
	if hasMin && hasMax && min > max {
		return never
	}
	return func(r Record) bool {
		v, ok := toFloat(r[c.Field])
		if !ok {
			return false
		}
		if hasMin && v < min {
			return false
		}
		if hasMax && v > max {
			return false
		}
		return true
	}
}

// DateRange is inclusive on both ends. A bare calendar date as End covers
// that whole day.
type DateRange struct {
	Field string `json:"field"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (c DateRange) bounds() (start time.Time, hasStart bool, end time.Time, hasEnd bool) {
	start, _, hasStart = parseDate(c.Start)
	end, wholeDay, hasEnd := parseDate(c.End)
	if hasEnd && wholeDay {
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return start, hasStart, end, hasEnd
}

func (c DateRange) Active() bool {
	_, hasStart, _, hasEnd := c.bounds()
	return c.Field != "" && (hasStart || hasEnd)
}

func (c DateRange) Matcher() func(r Record) bool {
	start, hasStart, end, hasEnd := c.bounds()
	if hasStart && hasEnd && start.After(end) {
		return never
	}
	return func(r Record) bool {
		t, ok := toTime(r[c.Field])
		if !ok {
			return false
		}
		if hasStart && t.Before(start) {
			return false
		}
		if hasEnd && t.After(end) {
			return false
		}
		return true
	}
}

// BooleanFlag matches records whose Field equals Value ("true"/"false").
type BooleanFlag struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (c BooleanFlag) Active() bool {
	if c.Field == "" || isSentinel(c.Value) {
		return false
	}
	_, ok := toBool(c.Value)
	return ok
}

func (c BooleanFlag) Matcher() func(r Record) bool {
	want, _ := toBool(c.Value)
	return func(r Record) bool {
		got, ok := toBool(r[c.Field])
		return ok && got == want
	}
}

// Match evaluates a connor document filter, like `{"status": "pending"}`
// or `{"total": {"$gt": 100}}`.
// A filter that cannot be evaluated does not exclude records.
type Match struct {
	Filter map[string]interface{} `json:"filter"`
}

func (c Match) Active() bool {
	return len(c.Filter) > 0
}

func (c Match) Matcher() func(r Record) bool {
	return func(r Record) bool {
		match, err := connor.Match(c.Filter, r)
		if err != nil {
			return true
		}
		return match
	}
}
