package api

import (
	"net/http"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/fulldump/tableview/database"
	"github.com/fulldump/tableview/screen"
	"github.com/fulldump/tableview/service"
)

func TestAcceptance(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		db := database.NewDatabase(&database.Config{
			Dir: t.TempDir(),
		})

		biff.AssertNil(db.Load())
		biff.AssertEqual(db.GetStatus(), database.StatusOperating)

		catalog, err := screen.Default()
		biff.AssertNil(err)

		s := service.NewService(db, catalog, nil)

		b := Build(s, "test")
		b.WithInterceptors(
			AccessLog(nil),
			PrettyErrorInterceptor,
			InterceptorUnavailable(db),
			RecoverFromPanic,
		)

		api := apitest.NewWithHandler(b)

		service.Acceptance(a, func(method, path string) *apitest.Request {
			return api.Request(method, "/v1"+path)
		})

	})
}

func TestUnavailable(t *testing.T) {

	db := database.NewDatabase(&database.Config{
		Dir: t.TempDir(),
	})
	catalog, _ := screen.Default()

	b := Build(service.NewService(db, catalog, nil), "test")
	b.WithInterceptors(
		AccessLog(nil),
		PrettyErrorInterceptor,
		InterceptorUnavailable(db),
		RecoverFromPanic,
	)

	api := apitest.NewWithHandler(b)
	message := func(resp *apitest.Response) interface{} {
		return resp.BodyJsonMap()["error"].(map[string]interface{})["message"]
	}

	resp := api.Request("GET", "/v1/collections").Do()
	biff.AssertEqual(resp.StatusCode, http.StatusServiceUnavailable)
	biff.AssertEqual(message(resp), "temporary unavailable: opening")

	biff.AssertNil(db.Load())
	resp = api.Request("GET", "/v1/collections").Do()
	biff.AssertEqual(resp.StatusCode, http.StatusOK)

	biff.AssertNil(db.Stop())
	resp = api.Request("GET", "/v1/collections").Do()
	biff.AssertEqual(resp.StatusCode, http.StatusServiceUnavailable)
	biff.AssertEqual(message(resp), "temporary unavailable: closing")
}

func TestVersion(t *testing.T) {

	b := Build(nil, "v1.2.3")

	resp := apitest.NewWithHandler(b).Request("GET", "/version").Do()

	biff.AssertEqual(resp.StatusCode, http.StatusOK)
	biff.AssertEqual(resp.BodyJson(), "v1.2.3")
}
