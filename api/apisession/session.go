package apisession

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/tableview/screen"
	"github.com/fulldump/tableview/service"
	viewpkg "github.com/fulldump/tableview/view"
)

func listScreens(ctx context.Context) []*screen.Screen {
	return service.GetServicer(ctx).ListScreens()
}

type openSessionRequest struct {
	Collection string `json:"collection"`
}

func openSession(ctx context.Context, w http.ResponseWriter, input *openSessionRequest) (*service.SessionState, error) {

	s := service.GetServicer(ctx)

	session, err := s.OpenSession(input.Collection)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return session.State(), nil
}

func getSessionFromPath(ctx context.Context) (*service.Session, error) {
	sessionId := box.GetUrlParameter(ctx, "sessionId")
	return service.GetServicer(ctx).GetSession(sessionId)
}

func getSession(ctx context.Context) (*service.SessionState, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.State(), nil
}

func closeSession(ctx context.Context) error {
	sessionId := box.GetUrlParameter(ctx, "sessionId")
	return service.GetServicer(ctx).CloseSession(sessionId)
}

func view(ctx context.Context) (*viewpkg.Result, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return &session.State().View, nil
}

type filterRequest struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

func filter(ctx context.Context, input *filterRequest) (*service.SessionState, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.SetFilter(input.Name, input.Value)
}

func clearFilters(ctx context.Context) (*service.SessionState, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.ClearFilters()
}

type sortRequest struct {
	Key       string            `json:"key"`
	Direction viewpkg.Direction `json:"direction"`
}

func sort(ctx context.Context, input *sortRequest) (*service.SessionState, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.SetSort(input.Key, input.Direction)
}

type pageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func page(ctx context.Context, input *pageRequest) (*service.SessionState, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.SetPage(input.Page, input.PageSize)
}

type toggleRequest struct {
	Id string `json:"id"`
}

func toggle(ctx context.Context, input *toggleRequest) (*service.SessionState, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.Toggle(input.Id)
}

func selectAll(ctx context.Context) (*service.SessionState, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.SelectAll()
}

func toggleAll(ctx context.Context) (*service.SessionState, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.ToggleAll()
}

func clearSelection(ctx context.Context) (*service.SessionState, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.ClearSelection()
}

func stats(ctx context.Context) (map[string]float64, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.Stats(), nil
}

func refresh(ctx context.Context) (*service.SessionState, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.Refresh()
}

type bulkRequest struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

func bulk(ctx context.Context, input *bulkRequest) (*service.BulkResult, error) {
	session, err := getSessionFromPath(ctx)
	if err != nil {
		return nil, err
	}
	return session.Bulk(input.Action, input.Value)
}
