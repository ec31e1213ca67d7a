package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fulldump/tableview/collection"
	"github.com/fulldump/tableview/database"
	"github.com/fulldump/tableview/logging"
	"github.com/fulldump/tableview/screen"
	"github.com/fulldump/tableview/view"
)

type Service struct {
	db            *database.Database
	catalog       *screen.Catalog
	logger        *zap.Logger
	sessions      map[string]*Session
	sessionsMutex *sync.RWMutex
}

func NewService(db *database.Database, catalog *screen.Catalog, logger *zap.Logger) *Service {
	return &Service{
		db:            db,
		catalog:       catalog,
		logger:        logging.OrNop(logger),
		sessions:      map[string]*Session{},
		sessionsMutex: &sync.RWMutex{},
	}
}

type Collection struct {
	Name   string `json:"name"`
	Screen string `json:"screen"`
	Total  int    `json:"total"`
}

func newCollection(name string, col *collection.Collection) *Collection {
	return &Collection{
		Name:   name,
		Screen: screenOf(name, col),
		Total:  col.Len(),
	}
}

// screenOf falls back to the collection name for logs written without a
// screen.
func screenOf(name string, col *collection.Collection) string {
	if col.Screen == "" {
		return name
	}
	return col.Screen
}

func (s *Service) ListScreens() []*screen.Screen {
	return s.catalog.Screens
}

func (s *Service) CreateCollection(name, screenName string) (*Collection, error) {

	if screenName == "" {
		screenName = name
	}
	sc, err := s.catalog.Get(screenName)
	if err != nil {
		return nil, err
	}

	col, err := s.db.CreateCollection(name)
	if err != nil {
		return nil, err
	}

	err = col.SetScreen(sc.Name, sc.Schema.IDField())
	if err != nil {
		return nil, fmt.Errorf("set screen: %w", err)
	}

	return newCollection(name, col), nil
}

func (s *Service) GetCollection(name string) (*Collection, error) {
	col, err := s.db.GetCollection(name)
	if err != nil {
		return nil, err
	}
	return newCollection(name, col), nil
}

func (s *Service) ListCollections() ([]*Collection, error) {
	result := []*Collection{}
	for _, name := range s.db.ListCollections() {
		col, err := s.GetCollection(name)
		if err != nil {
			continue // dropped meanwhile
		}
		result = append(result, col)
	}
	return result, nil
}

func (s *Service) DropCollection(name string) error {
	return s.db.DropCollection(name)
}

// Insert stops at the first failing item; the previous ones are kept.
func (s *Service) Insert(collectionName string, items ...map[string]interface{}) ([]view.Record, error) {

	col, err := s.db.GetCollection(collectionName)
	if err != nil {
		return nil, err
	}

	inserted := []view.Record{}
	for _, item := range items {
		row, err := col.Insert(item)
		if err != nil {
			return inserted, err
		}
		inserted = append(inserted, row.Record)
	}

	return inserted, nil
}

func (s *Service) Remove(collectionName, id string) error {
	col, err := s.db.GetCollection(collectionName)
	if err != nil {
		return err
	}
	return col.Remove(id)
}

func (s *Service) Patch(collectionName, id string, patch map[string]interface{}) (view.Record, error) {
	col, err := s.db.GetCollection(collectionName)
	if err != nil {
		return nil, err
	}
	row, err := col.Patch(id, patch)
	if err != nil {
		return nil, err
	}
	return row.Record, nil
}

func (s *Service) OpenSession(collectionName string) (*Session, error) {

	col, err := s.db.GetCollection(collectionName)
	if err != nil {
		return nil, err
	}

	sc, err := s.catalog.Get(screenOf(collectionName, col))
	if err != nil {
		return nil, err
	}

	session := &Session{
		Id:         uuid.New().String(),
		Collection: collectionName,
		Screen:     sc,
		db:         s.db,
		logger:     s.logger,
		view:       sc.NewSession(col.Snapshot()),
		filters:    map[string]interface{}{},
		mutex:      &sync.Mutex{},
	}

	s.sessionsMutex.Lock()
	s.sessions[session.Id] = session
	s.sessionsMutex.Unlock()

	s.logger.Info("session opened",
		zap.String("session", session.Id),
		zap.String("collection", collectionName),
		zap.String("screen", sc.Name),
	)

	return session, nil
}

func (s *Service) GetSession(id string) (*Session, error) {
	s.sessionsMutex.RLock()
	session, exists := s.sessions[id]
	s.sessionsMutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrorSessionNotFound, id)
	}
	return session, nil
}

func (s *Service) CloseSession(id string) error {
	s.sessionsMutex.Lock()
	defer s.sessionsMutex.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return fmt.Errorf("%w: '%s'", ErrorSessionNotFound, id)
	}
	delete(s.sessions, id)

	s.logger.Info("session closed", zap.String("session", id))

	return nil
}
