package view

import (
	"cmp"
	"strings"
	"time"

	"golang.org/x/text/collate"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type SortSpec struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// ParseSort reads "field" as ascending and "-field" as descending.
func ParseSort(s string) SortSpec {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return SortSpec{Key: strings.TrimPrefix(s, "-"), Direction: Descending}
	}
	return SortSpec{Key: strings.TrimPrefix(s, "+"), Direction: Ascending}
}

func (s SortSpec) String() string {
	if s.Direction == Descending {
		return "-" + s.Key
	}
	return s.Key
}

// Comparator returns -1, 0 or 1.
type Comparator func(a, b Record) int

// BuildComparator orders records by spec.Key according to its type in
// schema. Records without a usable value go last in both directions.
// The returned comparator is not safe for concurrent use.
func BuildComparator(spec SortSpec, schema *Schema) Comparator {

	if spec.Key == "" {
		return func(a, b Record) int { return 0 }
	}

	kind := schema.TypeOf(spec.Key)
	collator := collate.New(schema.Tag())

	sign := 1
	if spec.Direction == Descending {
		sign = -1
	}

	return func(a, b Record) int {
		ka, okA := sortKeyOf(kind, a[spec.Key])
		kb, okB := sortKeyOf(kind, b[spec.Key])
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return sign * compareKeys(collator, ka, kb)
	}
}

type sortKey struct {
	rank int // numbers and booleans < dates < strings, when types are mixed
	f    float64
	t    time.Time
	s    string
}

func sortKeyOf(kind FieldType, v any) (sortKey, bool) {
	if v == nil {
		return sortKey{}, false
	}

	if kind == "" {
		kind = inferType(v)
	}

	switch kind {
	case FieldNumber:
		f, ok := toFloat(v)
		return sortKey{rank: 0, f: f}, ok
	case FieldBoolean:
		b, ok := toBool(v)
		if !ok {
			return sortKey{}, false
		}
		if b {
			return sortKey{rank: 0, f: 1}, true
		}
		return sortKey{rank: 0, f: 0}, true
	case FieldDate:
		t, ok := toTime(v)
		return sortKey{rank: 1, t: t}, ok
	default:
		return sortKey{rank: 2, s: toText(v)}, true
	}
}

func inferType(v any) FieldType {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return FieldNumber
	case bool:
		return FieldBoolean
	case time.Time:
		return FieldDate
	}
	return FieldString
}

func compareKeys(collator *collate.Collator, a, b sortKey) int {
	if a.rank != b.rank {
		return cmp.Compare(a.rank, b.rank)
	}
	switch a.rank {
	case 0:
		return cmp.Compare(a.f, b.f)
	case 1:
		return a.t.Compare(b.t)
	}
	c := collator.CompareString(a.s, b.s)
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}
