package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/tableview/api/apicollection"
	"github.com/fulldump/tableview/collection"
	"github.com/fulldump/tableview/database"
	"github.com/fulldump/tableview/screen"
	"github.com/fulldump/tableview/service"
)

var ErrUnavailable = errors.New("temporary unavailable")

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status != database.StatusOperating {
				box.SetError(ctx, fmt.Errorf("%w: %s", ErrUnavailable, status))
				return
			}
			next(ctx)
		}
	}
}

type errorStatus struct {
	err         error
	status      int
	description string
}

var errorStatuses = []errorStatus{
	{box.ErrResourceNotFound, http.StatusNotFound, "resource not found"},
	{box.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "method not allowed"},
	{ErrUnavailable, http.StatusServiceUnavailable, "service is starting or stopping"},
	{service.ErrorCollectionNotFound, http.StatusNotFound, "collection not found"},
	{service.ErrorSessionNotFound, http.StatusNotFound, "session not found"},
	{screen.ErrScreenNotFound, http.StatusNotFound, "screen not found"},
	{collection.ErrRowNotFound, http.StatusNotFound, "record not found"},
	{service.ErrorCollectionAlreadyExists, http.StatusConflict, "collection already exists"},
	{collection.ErrDuplicateID, http.StatusConflict, "duplicate identifier"},
	{database.ErrorInvalidCollectionName, http.StatusBadRequest, "invalid collection name"},
	{collection.ErrMissingID, http.StatusBadRequest, "record without identifier"},
	{collection.ErrImmutableID, http.StatusBadRequest, "identifier cannot be changed"},
	{screen.ErrUnknownFilter, http.StatusBadRequest, "unknown filter"},
	{service.ErrorInvalidSort, http.StatusBadRequest, "sort direction must be asc or desc"},
	{service.ErrorUnknownBulkAction, http.StatusBadRequest, "unknown bulk action"},
	{service.ErrorInvalidBulkValue, http.StatusBadRequest, "invalid bulk value"},
	{service.ErrorEmptySelection, http.StatusBadRequest, "select some records first"},
	{apicollection.ErrMalformedBody, http.StatusBadRequest, "Malformed JSON"},
	{io.EOF, http.StatusBadRequest, "Empty body"},
}

func describe(err error) (int, string) {

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.description
		}
	}

	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	if errors.As(err, &syntaxError) || errors.As(err, &typeError) {
		return http.StatusBadRequest, "Malformed JSON"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}

		status, description := describe(err)
		if err == box.ErrResourceNotFound {
			description = fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String())
		}
		if err == box.ErrMethodNotAllowed {
			description = fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method)
		}

		w := box.GetResponse(ctx)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		PrettyError{
			Message:     err.Error(),
			Description: description,
		}.MarshalTo(w)
	}
}
