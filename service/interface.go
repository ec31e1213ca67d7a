package service

import (
	"errors"

	"github.com/fulldump/tableview/database"
	"github.com/fulldump/tableview/screen"
	"github.com/fulldump/tableview/view"
)

var (
	ErrorCollectionNotFound      = database.ErrorCollectionNotFound
	ErrorCollectionAlreadyExists = database.ErrorCollectionAlreadyExists
	ErrorSessionNotFound         = errors.New("session not found")
	ErrorUnknownBulkAction       = errors.New("unknown bulk action")
	ErrorInvalidBulkValue        = errors.New("invalid bulk value")
	ErrorInvalidSort             = errors.New("invalid sort direction")
	ErrorEmptySelection          = errors.New("nothing selected")
)

type Servicer interface { // todo: review naming
	ListScreens() []*screen.Screen
	CreateCollection(name, screenName string) (*Collection, error)
	GetCollection(name string) (*Collection, error)
	ListCollections() ([]*Collection, error)
	DropCollection(name string) error
	Insert(collectionName string, items ...map[string]interface{}) ([]view.Record, error)
	Remove(collectionName, id string) error
	Patch(collectionName, id string, patch map[string]interface{}) (view.Record, error)
	OpenSession(collectionName string) (*Session, error)
	GetSession(id string) (*Session, error)
	CloseSession(id string) error
}
