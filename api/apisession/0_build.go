package apisession

import (
	"github.com/fulldump/box"
)

func BuildSessions(v1 *box.R) *box.R {

	v1.Resource("/screens").
		WithActions(
			box.Get(listScreens).WithName("listScreens"),
		)

	sessions := v1.Resource("/sessions").
		WithActions(
			box.Post(openSession).WithName("openSession"),
		)

	v1.Resource("/sessions/{sessionId}").
		WithActions(
			box.Get(getSession).WithName("getSession"),
			box.ActionPost(view).WithName("view"),
			box.ActionPost(filter).WithName("filter"),
			box.ActionPost(clearFilters).WithName("clearFilters"),
			box.ActionPost(sort).WithName("sort"),
			box.ActionPost(page).WithName("page"),
			box.ActionPost(toggle).WithName("toggle"),
			box.ActionPost(selectAll).WithName("selectAll"),
			box.ActionPost(toggleAll).WithName("toggleAll"),
			box.ActionPost(clearSelection).WithName("clearSelection"),
			box.ActionPost(stats).WithName("stats"),
			box.ActionPost(refresh).WithName("refresh"),
			box.ActionPost(bulk).WithName("bulk"),
			box.ActionPost(closeSession).WithName("close"),
		)

	return sessions
}
