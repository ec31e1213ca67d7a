package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fulldump/tableview/collection"
	"github.com/fulldump/tableview/view"
)

const (
	BulkDelete = "delete"
	BulkStatus = "status"
	BulkExport = "export"
)

type BulkResult struct {
	Action   string        `json:"action"`
	Affected int           `json:"affected"`
	Items    []view.Record `json:"items,omitempty"`
	State    *SessionState `json:"state"`
}

// Bulk applies an action to every selected record. Records removed since
// they were selected are skipped. When the action fails the snapshot is
// reloaded and the selection is kept, so the user can retry. Records changed
// before the failure stay changed.
func (s *Session) Bulk(action string, value string) (*BulkResult, error) {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.view.Selection().Len() == 0 {
		return nil, ErrorEmptySelection
	}

	col, err := s.db.GetCollection(s.Collection)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{Action: action}

	var apply func(id string) error
	switch action {
	case BulkDelete:
		apply = col.Remove
	case BulkStatus:
		field := s.Screen.Bulk.StatusField
		if field == "" || !s.Screen.HasStatus(value) {
			return nil, fmt.Errorf("%w: status '%s'", ErrorInvalidBulkValue, value)
		}
		apply = func(id string) error {
			_, err := col.Patch(id, map[string]interface{}{field: value})
			return err
		}
	case BulkExport:
		result.Items = []view.Record{}
		apply = func(id string) error {
			row, exists := col.Get(id)
			if !exists {
				return fmt.Errorf("%w: '%s'", collection.ErrRowNotFound, id)
			}
			result.Items = append(result.Items, row.Record)
			return nil
		}
	default:
		return nil, fmt.Errorf("%w '%s'", ErrorUnknownBulkAction, action)
	}

	skipped := 0
	err = s.view.ApplyBulk(func(ids []string) error {
		for _, id := range ids {
			err := apply(id)
			if errors.Is(err, collection.ErrRowNotFound) {
				skipped++
				continue
			}
			if err != nil {
				return fmt.Errorf("%s '%s': %w", action, id, err)
			}
			result.Affected++
		}
		return nil
	})

	s.logger.Info("bulk action",
		zap.String("session", s.Id),
		zap.String("collection", s.Collection),
		zap.String("action", action),
		zap.Int("affected", result.Affected),
		zap.Int("skipped", skipped),
		zap.Error(err),
	)

	if err != nil {
		reloadErr := s.reload()
		if reloadErr != nil {
			s.logger.Error("reload session", zap.String("session", s.Id), zap.Error(reloadErr))
		}
		return nil, err
	}

	if action != BulkExport || skipped > 0 {
		err = s.refresh()
		if err != nil {
			return nil, err
		}
	}

	result.State = s.state()

	return result, nil
}
