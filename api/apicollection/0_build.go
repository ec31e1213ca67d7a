package apicollection

import (
	"github.com/fulldump/box"
)

func BuildCollections(v1 *box.R) *box.R {

	collections := v1.Resource("/collections").
		WithActions(
			box.Get(listCollections).WithName("listCollections"),
			box.Post(createCollection).WithName("createCollection"),
		)

	v1.Resource("/collections/{collectionName}").
		WithActions(
			box.Get(getCollection).WithName("getCollection"),
			box.ActionPost(insert).WithName("insert"),
			box.ActionPost(remove).WithName("remove"),
			box.ActionPost(patch).WithName("patch"),
			box.ActionPost(dropCollection).WithName("dropCollection"),
		)

	return collections
}
