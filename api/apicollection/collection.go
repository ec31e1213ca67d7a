package apicollection

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/fulldump/box"
	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/tableview/service"
	"github.com/fulldump/tableview/view"
)

var ErrMalformedBody = errors.New("malformed body")

type createCollectionRequest struct {
	Name   string `json:"name"`
	Screen string `json:"screen"`
}

func createCollection(ctx context.Context, w http.ResponseWriter, input *createCollectionRequest) (*service.Collection, error) {

	s := service.GetServicer(ctx)

	collection, err := s.CreateCollection(input.Name, input.Screen)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return collection, nil
}

func getCollection(ctx context.Context) (*service.Collection, error) {

	s := service.GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	return s.GetCollection(collectionName)
}

func listCollections(ctx context.Context) ([]*service.Collection, error) {
	return service.GetServicer(ctx).ListCollections()
}

func dropCollection(ctx context.Context) error {

	s := service.GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	return s.DropCollection(collectionName)
}

// insert accepts one JSON object or a stream of them (JSONL) and answers
// with the inserted records, one per line.
func insert(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	s := service.GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	items := []map[string]interface{}{}
	d := jsontext.NewDecoder(r.Body)
	for {
		item := map[string]interface{}{}
		err := json2.UnmarshalDecode(d, &item)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errors.Join(ErrMalformedBody, err)
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	inserted, err := s.Insert(collectionName, items...)
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusCreated)
	return writeRecords(w, inserted)
}

func writeRecords(w io.Writer, records []view.Record) error {
	for _, record := range records {
		err := json2.MarshalWrite(w, record, json2.Deterministic(true))
		if err != nil {
			return err
		}
		w.Write([]byte("\n"))
	}
	return nil
}

type removeRequest struct {
	Id string `json:"id"`
}

func remove(ctx context.Context, input *removeRequest) (*removeRequest, error) {

	s := service.GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	err := s.Remove(collectionName, input.Id)
	if err != nil {
		return nil, err
	}

	return input, nil
}

type patchRequest struct {
	Id    string                 `json:"id"`
	Patch map[string]interface{} `json:"patch"`
}

func patch(ctx context.Context, input *patchRequest) (view.Record, error) {

	s := service.GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	return s.Patch(collectionName, input.Id, input.Patch)
}
