package collection

import (
	"fmt"
	"io"
	"time"

	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
)

const (
	CommandInsert    = "insert"
	CommandRemove    = "remove"
	CommandPatch     = "patch"
	CommandSetScreen = "set_screen"
)

type Command struct {
	Name      string         `json:"name"`
	Uuid      string         `json:"uuid"`
	Timestamp int64          `json:"timestamp"`
	StartByte int64          `json:"start_byte"`
	Payload   jsontext.Value `json:"payload"`
}

type removeParams struct {
	ID string `json:"id"`
}

type patchParams struct {
	ID   string                 `json:"id"`
	Diff map[string]interface{} `json:"diff"`
}

type screenParams struct {
	Screen  string `json:"screen"`
	IDField string `json:"idField"`
}

func newCommand(name string, params interface{}) (*Command, error) {

	payload, err := json2.Marshal(params, json2.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}

	return &Command{
		Name:      name,
		Uuid:      uuid.New().String(),
		Timestamp: time.Now().UnixNano(),
		StartByte: 0,
		Payload:   payload,
	}, nil
}

func writeCommand(w io.Writer, command *Command) error {
	line, err := json2.Marshal(command)
	if err != nil {
		return fmt.Errorf("json encode command: %w", err)
	}
	_, err = w.Write(append(line, '\n'))
	return err
}
