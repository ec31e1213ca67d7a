package view

type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeFiltered Scope = "filtered"
)

type MetricKind string

const (
	MetricCount MetricKind = "count"
	MetricSum   MetricKind = "sum"
	MetricAvg   MetricKind = "avg"
	MetricMin   MetricKind = "min"
	MetricMax   MetricKind = "max"
)

func (k MetricKind) Valid() bool {
	switch k {
	case MetricCount, MetricSum, MetricAvg, MetricMin, MetricMax:
		return true
	}
	return false
}

// MetricSpec declares one summary number. Where restricts the records the
// metric looks at, Field is the numeric field of sum/avg/min/max.
type MetricSpec struct {
	Name  string                 `json:"name" yaml:"name"`
	Scope Scope                  `json:"scope" yaml:"scope"`
	Kind  MetricKind             `json:"kind" yaml:"kind"`
	Field string                 `json:"field,omitempty" yaml:"field"`
	Where map[string]interface{} `json:"where,omitempty" yaml:"where"`
}

type accumulator struct {
	spec  MetricSpec
	where func(Record) bool
	n     int
	sum   float64
	min   float64
	max   float64
}

func (a *accumulator) add(r Record) {
	if a.where != nil && !a.where(r) {
		return
	}

	if a.spec.Kind == MetricCount || a.spec.Kind == "" {
		a.n++
		return
	}

	v, ok := toFloat(r[a.spec.Field])
	if !ok {
		return
	}
	if a.n == 0 || v < a.min {
		a.min = v
	}
	if a.n == 0 || v > a.max {
		a.max = v
	}
	a.sum += v
	a.n++
}

func (a *accumulator) value() float64 {
	switch a.spec.Kind {
	case MetricSum:
		return a.sum
	case MetricAvg:
		if a.n == 0 {
			return 0
		}
		return a.sum / float64(a.n)
	case MetricMin:
		return a.min
	case MetricMax:
		return a.max
	}
	return float64(a.n)
}

// ComputeStats evaluates every metric in a single pass over collection.
// Metrics scoped to the filtered set only see records accepted by criteria.
func (e *Engine) ComputeStats(collection []Record, criteria []Criterion, metrics []MetricSpec) map[string]float64 {

	accumulators := make([]*accumulator, len(metrics))
	for i, spec := range metrics {
		acc := &accumulator{spec: spec}
		if where := (Match{Filter: spec.Where}); where.Active() {
			acc.where = where.Matcher()
		}
		accumulators[i] = acc
	}

	predicate := BuildPredicate(criteria)

	for _, r := range collection {
		evaluated, passes := false, false
		for _, acc := range accumulators {
			if acc.spec.Scope == ScopeFiltered {
				if !evaluated {
					passes = predicate(r)
					evaluated = true
				}
				if !passes {
					continue
				}
			}
			acc.add(r)
		}
	}

	result := make(map[string]float64, len(metrics))
	for _, acc := range accumulators {
		result[acc.spec.Name] = acc.value()
	}

	return result
}
