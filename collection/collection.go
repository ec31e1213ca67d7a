package collection

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tidwall/sjson"

	"github.com/fulldump/tableview/utils"
	"github.com/fulldump/tableview/view"
)

var (
	ErrRowNotFound     = errors.New("row not found")
	ErrImmutableID     = errors.New("identifier cannot be changed")
	ErrCollectionClose = errors.New("collection is closed")
)

const DefaultIDField = "id"

// Collection keeps the records of one screen in memory, in insertion order,
// and appends every change to a JSONL command log.
type Collection struct {
	Filename  string // Just informative...
	Screen    string
	file      *os.File
	Rows      []*Row
	rowsMutex *sync.RWMutex
	ids       *IndexID
}

type Row struct {
	I       int // position in Rows
	ID      string
	Payload jsontext.Value
	Record  view.Record
}

func OpenCollection(filename string) (*Collection, error) {

	f, err := os.OpenFile(filename, os.O_RDONLY|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for read: %w", err)
	}
	defer f.Close()

	collection := &Collection{
		Filename:  filename,
		Rows:      []*Row{},
		rowsMutex: &sync.RWMutex{},
		ids:       NewIndexID(DefaultIDField),
	}

	err = collection.replay(f)
	if err != nil {
		return nil, err
	}

	// Open file for append only
	collection.file, err = os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for write: %w", err)
	}

	return collection, nil
}

func (c *Collection) replay(r io.Reader) error {

	d := jsontext.NewDecoder(r)
	for n := 1; ; n++ {
		command := &Command{}
		err := json2.UnmarshalDecode(d, command)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode command %d: %w", n, err)
		}

		switch command.Name {
		case CommandInsert:
			_, err = c.addRow(command.Payload)
		case CommandRemove:
			params := &removeParams{}
			err = json2.Unmarshal(command.Payload, params)
			if err == nil {
				err = c.removeByID(params.ID)
			}
		case CommandPatch:
			params := &patchParams{}
			err = json2.Unmarshal(command.Payload, params)
			if err == nil {
				_, err = c.patchByID(params.ID, params.Diff)
			}
		case CommandSetScreen:
			params := &screenParams{}
			err = json2.Unmarshal(command.Payload, params)
			if err == nil {
				err = c.setScreen(params.Screen, params.IDField)
			}
		default:
			err = fmt.Errorf("unknown command '%s'", command.Name)
		}
		if err != nil {
			return fmt.Errorf("replay command %d (%s): %w", n, command.Name, err)
		}
	}
}

func (c *Collection) persist(name string, params interface{}) error {
	if c.file == nil {
		return ErrCollectionClose
	}
	command, err := newCommand(name, params)
	if err != nil {
		return err
	}
	return writeCommand(c.file, command)
}

func newRow(payload jsontext.Value) (*Row, error) {
	record := view.Record{}
	err := json2.Unmarshal(payload, &record)
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &Row{Payload: payload, Record: record}, nil
}

func (c *Collection) addRow(payload jsontext.Value) (*Row, error) {

	row, err := newRow(payload)
	if err != nil {
		return nil, err
	}

	err = c.ids.AddRow(row)
	if err != nil {
		return nil, err
	}

	row.I = len(c.Rows)
	c.Rows = append(c.Rows, row)

	return row, nil
}

func (c *Collection) Insert(item interface{}) (*Row, error) {

	payload, err := json2.Marshal(item, json2.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}

	c.rowsMutex.Lock()
	defer c.rowsMutex.Unlock()

	if c.file == nil {
		return nil, ErrCollectionClose
	}

	row, err := c.addRow(payload)
	if err != nil {
		return nil, err
	}

	command, err := newCommand(CommandInsert, jsontext.Value(payload))
	if err != nil {
		return nil, err
	}
	err = writeCommand(c.file, command)
	if err != nil {
		return nil, err
	}

	return row, nil
}

func (c *Collection) Get(id string) (*Row, bool) {
	return c.ids.Get(id)
}

func (c *Collection) Len() int {
	c.rowsMutex.RLock()
	defer c.rowsMutex.RUnlock()
	return len(c.Rows)
}

// Snapshot returns the records in collection order. Records are never
// modified in place, so the snapshot stays valid after later changes.
func (c *Collection) Snapshot() []view.Record {
	c.rowsMutex.RLock()
	defer c.rowsMutex.RUnlock()

	records := make([]view.Record, len(c.Rows))
	for i, row := range c.Rows {
		records[i] = row.Record
	}
	return records
}

func (c *Collection) Traverse(f func(row *Row) bool) {
	c.rowsMutex.RLock()
	defer c.rowsMutex.RUnlock()

	for _, row := range c.Rows {
		if !f(row) {
			return
		}
	}
}

func (c *Collection) Remove(id string) error {

	c.rowsMutex.Lock()
	defer c.rowsMutex.Unlock()

	err := c.removeByID(id)
	if err != nil {
		return err
	}

	return c.persist(CommandRemove, &removeParams{ID: id})
}

// removeByID keeps the order of the remaining rows.
func (c *Collection) removeByID(id string) error {

	row, exists := c.ids.Get(id)
	if !exists {
		return fmt.Errorf("%w: '%s'", ErrRowNotFound, id)
	}

	c.ids.RemoveRow(row)

	copy(c.Rows[row.I:], c.Rows[row.I+1:])
	c.Rows = c.Rows[:len(c.Rows)-1]
	for i := row.I; i < len(c.Rows); i++ {
		c.Rows[i].I = i
	}

	return nil
}

// Patch merges the top level fields of patch into the row. A nil value
// removes the field. The identifier cannot change.
func (c *Collection) Patch(id string, patch map[string]interface{}) (*Row, error) {

	c.rowsMutex.Lock()
	defer c.rowsMutex.Unlock()

	row, err := c.patchByID(id, patch)
	if err != nil {
		return nil, err
	}

	err = c.persist(CommandPatch, &patchParams{ID: id, Diff: patch})
	if err != nil {
		return nil, err
	}

	return row, nil
}

func (c *Collection) patchByID(id string, patch map[string]interface{}) (*Row, error) {

	row, exists := c.ids.Get(id)
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrRowNotFound, id)
	}

	payload := append([]byte{}, row.Payload...)
	var err error
	for _, key := range utils.GetKeys(patch) {
		value := patch[key]
		if value == nil {
			payload, err = sjson.DeleteBytes(payload, escapePath(key))
		} else {
			payload, err = sjson.SetBytes(payload, escapePath(key), value)
		}
		if err != nil {
			return nil, fmt.Errorf("patch field '%s': %w", key, err)
		}
	}

	newID, err := c.ids.Key(payload)
	if err != nil || newID != row.ID {
		return nil, fmt.Errorf("%w: '%s'", ErrImmutableID, row.ID)
	}

	patched, err := newRow(payload)
	if err != nil {
		return nil, err
	}

	patched.I = row.I
	patched.ID = row.ID
	c.Rows[row.I] = patched
	c.ids.RemoveRow(row)
	c.ids.AddRow(patched)

	return patched, nil
}

// SetScreen binds the collection to a screen and its identifier field.
func (c *Collection) SetScreen(screen, idField string) error {

	c.rowsMutex.Lock()
	defer c.rowsMutex.Unlock()

	err := c.setScreen(screen, idField)
	if err != nil {
		return err
	}

	return c.persist(CommandSetScreen, &screenParams{Screen: screen, IDField: idField})
}

func (c *Collection) setScreen(screen, idField string) error {

	if idField == "" {
		idField = DefaultIDField
	}

	if idField != c.ids.Field {
		ids := NewIndexID(idField)
		keys := map[string]bool{}
		for _, row := range c.Rows {
			key, err := ids.Key(row.Payload)
			if err != nil {
				return fmt.Errorf("reindex: %w", err)
			}
			if keys[key] {
				return fmt.Errorf("reindex: %w: '%s'", ErrDuplicateID, key)
			}
			keys[key] = true
		}
		for _, row := range c.Rows {
			ids.AddRow(row)
		}
		c.ids = ids
	}

	c.Screen = screen

	return nil
}

func (c *Collection) IDField() string {
	return c.ids.Field
}

func (c *Collection) Close() error {
	c.rowsMutex.Lock()
	defer c.rowsMutex.Unlock()

	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	return err
}

func (c *Collection) Drop() error {
	err := c.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	err = os.Remove(c.Filename)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}

	return nil
}
