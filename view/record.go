package view

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
)

// Record is one row of a collection: a product, an order or a user.
type Record map[string]any

type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldDate    FieldType = "date"
	FieldBoolean FieldType = "boolean"
	FieldEnum    FieldType = "enum"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldString, FieldNumber, FieldDate, FieldBoolean, FieldEnum:
		return true
	}
	return false
}

// Schema describes the shape shared by every record of a collection.
type Schema struct {
	ID     string               `json:"id" yaml:"id"`
	Fields map[string]FieldType `json:"fields" yaml:"fields"`
	Locale string               `json:"locale,omitempty" yaml:"locale"`
}

// TypeOf returns the declared type of field, or "" when it is unknown and
// has to be inferred from the values themselves.
func (s *Schema) TypeOf(field string) FieldType {
	if s == nil {
		return ""
	}
	return s.Fields[field]
}

func (s *Schema) IDField() string {
	if s == nil || s.ID == "" {
		return "id"
	}
	return s.ID
}

func (s *Schema) Tag() language.Tag {
	if s == nil || s.Locale == "" {
		return language.Und
	}
	tag, err := language.Parse(s.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// ID renders the identifier of the record as a string.
func (r Record) ID(field string) string {
	return formatID(r[field])
}

func formatID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return fmt.Sprint(id)
	}
}

// IDs returns the identifiers of records, in order.
func IDs(records []Record, field string) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID(field)
	}
	return ids
}
