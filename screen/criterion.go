package screen

import (
	"fmt"
	"strconv"

	"github.com/fulldump/tableview/view"
)

// Criterion turns the raw value of a filter control, as it comes from a
// form or a JSON body, into a criterion. Values the control cannot use yet
// (half typed numbers, empty selections) give an inactive criterion, never
// an error.
func (s *Screen) Criterion(name string, value interface{}) (view.Criterion, error) {

	f, exists := s.Filter(name)
	if !exists {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownFilter, name)
	}

	switch f.Kind {
	case KindSearch:
		return view.TextSearch{Query: text(value), Fields: f.Fields}, nil
	case KindCategorical:
		return view.Categorical{Field: f.Field, Value: text(value)}, nil
	case KindBoolean:
		return view.BooleanFlag{Field: f.Field, Value: text(value)}, nil
	case KindRange:
		bounds := object(value)
		return view.NumericRange{Field: f.Field, Min: text(bounds["min"]), Max: text(bounds["max"])}, nil
	case KindDate:
		bounds := object(value)
		return view.DateRange{Field: f.Field, Start: text(bounds["start"]), End: text(bounds["end"])}, nil
	case KindMatch:
		return view.Match{Filter: object(value)}, nil
	}

	return nil, fmt.Errorf("filter '%s': unknown kind '%s'", name, f.Kind)
}

func text(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func object(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}
