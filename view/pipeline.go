package view

const DefaultPageSize = 10

type Pagination struct {
	PageSize int `json:"pageSize"`
	Page     int `json:"page"`
}

type Result struct {
	Items         []Record `json:"items"`
	TotalFiltered int      `json:"totalFiltered"`
	TotalPages    int      `json:"totalPages"`
	Page          int      `json:"page"`
	PageSize      int      `json:"pageSize"`

	// FilteredIDs lists every filtered record, sorted, before pagination.
	FilteredIDs []string `json:"-"`
}

// Engine is the view pipeline of one kind of screen. It holds no state
// besides its configuration, every call is a pure function of its input.
type Engine struct {
	Schema   *Schema
	PageSize int
}

func NewEngine(schema *Schema) *Engine {
	return &Engine{
		Schema:   schema,
		PageSize: DefaultPageSize,
	}
}

func (e *Engine) pageSize(requested int) int {
	if requested > 0 {
		return requested
	}
	if e.PageSize > 0 {
		return e.PageSize
	}
	return DefaultPageSize
}

// TotalPages is never less than 1, an empty result still has one page.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (total + pageSize - 1) / pageSize
	return max(pages, 1)
}

// ClampPage brings page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	return min(max(page, 1), max(totalPages, 1))
}

// Filter applies criteria only, keeping collection order.
func (e *Engine) Filter(collection []Record, criteria []Criterion) []Record {
	return Filter(collection, BuildPredicate(criteria))
}

// ComputeView filters, sorts and slices collection. collection is not
// modified.
func (e *Engine) ComputeView(collection []Record, criteria []Criterion, sort SortSpec, pagination Pagination) Result {

	filtered := e.Filter(collection, criteria)
	if sort.Key != "" {
		filtered = SortStable(filtered, BuildComparator(sort, e.Schema))
	}

	pageSize := e.pageSize(pagination.PageSize)
	total := len(filtered)
	totalPages := TotalPages(total, pageSize)
	page := ClampPage(pagination.Page, totalPages)

	from := min((page-1)*pageSize, total)
	to := min(from+pageSize, total)

	items := make([]Record, 0, to-from)
	items = append(items, filtered[from:to]...)

	return Result{
		Items:         items,
		TotalFiltered: total,
		TotalPages:    totalPages,
		Page:          page,
		PageSize:      pageSize,
		FilteredIDs:   IDs(filtered, e.Schema.IDField()),
	}
}
