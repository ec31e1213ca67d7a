package collection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

var (
	ErrMissingID   = errors.New("identifier is mandatory")
	ErrDuplicateID = errors.New("duplicate identifier")
)

// IndexID is the unique index over the identifier field of every row.
type IndexID struct {
	Field   string
	Entries map[string]*Row
	RWmutex *sync.RWMutex
}

func NewIndexID(field string) *IndexID {
	return &IndexID{
		Field:   field,
		Entries: map[string]*Row{},
		RWmutex: &sync.RWMutex{},
	}
}

// Key extracts the identifier from a raw payload. Numbers are rendered the
// same way view.Record.ID renders a decoded number.
func (i *IndexID) Key(payload []byte) (string, error) {
	value := gjson.GetBytes(payload, escapePath(i.Field))
	switch value.Type {
	case gjson.String:
		if value.Str == "" {
			return "", fmt.Errorf("%w: field '%s'", ErrMissingID, i.Field)
		}
		return value.Str, nil
	case gjson.Number:
		return strconv.FormatFloat(value.Num, 'f', -1, 64), nil
	case gjson.Null:
		return "", fmt.Errorf("%w: field '%s'", ErrMissingID, i.Field)
	}
	return "", fmt.Errorf("field '%s': type not supported as identifier", i.Field)
}

func (i *IndexID) AddRow(row *Row) error {

	key, err := i.Key(row.Payload)
	if err != nil {
		return err
	}

	i.RWmutex.Lock()
	defer i.RWmutex.Unlock()

	if _, exists := i.Entries[key]; exists {
		return fmt.Errorf("%w: field '%s' with value '%s'", ErrDuplicateID, i.Field, key)
	}
	i.Entries[key] = row
	row.ID = key

	return nil
}

func (i *IndexID) RemoveRow(row *Row) {
	i.RWmutex.Lock()
	delete(i.Entries, row.ID)
	i.RWmutex.Unlock()
}

func (i *IndexID) Get(id string) (*Row, bool) {
	i.RWmutex.RLock()
	row, ok := i.Entries[id]
	i.RWmutex.RUnlock()
	return row, ok
}

var pathEscaper = strings.NewReplacer(`.`, `\.`, `*`, `\*`, `?`, `\?`, `|`, `\|`, `#`, `\#`, `@`, `\@`)

// escapePath turns a plain key into a gjson/sjson path.
func escapePath(key string) string {
	return pathEscaper.Replace(key)
}
