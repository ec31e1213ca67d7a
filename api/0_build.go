package api

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/tableview/api/apicollection"
	"github.com/fulldump/tableview/api/apisession"
	"github.com/fulldump/tableview/service"
)

func Build(s service.Servicer, version string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1").
		WithInterceptors(
			injectServicer(s),
		)

	apicollection.BuildCollections(v1)
	apisession.BuildSessions(v1)

	b.Resource("/version").
		WithActions(
			box.Get(func() string { return version }).WithName("version"),
		)

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(service.SetServicer(ctx, s))
		}
	}
}
