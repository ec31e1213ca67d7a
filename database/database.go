package database

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fulldump/tableview/collection"
	"github.com/fulldump/tableview/logging"
	"github.com/fulldump/tableview/utils"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrorCollectionNotFound      = errors.New("collection not found")
	ErrorCollectionAlreadyExists = errors.New("collection already exists")
	ErrorInvalidCollectionName   = errors.New("invalid collection name")
)

type Config struct {
	Dir    string
	Logger *zap.Logger
}

type Database struct {
	Config      *Config
	logger      *zap.Logger
	status      string
	statusMutex *sync.RWMutex
	collections map[string]*collection.Collection
	mutex       *sync.RWMutex
	ready       chan struct{}
	exit        chan struct{}
}

func NewDatabase(config *Config) *Database {
	return &Database{
		Config:      config,
		logger:      logging.OrNop(config.Logger),
		status:      StatusOpening,
		statusMutex: &sync.RWMutex{},
		collections: map[string]*collection.Collection{},
		mutex:       &sync.RWMutex{},
		ready:       make(chan struct{}),
		exit:        make(chan struct{}),
	}
}

func (db *Database) GetStatus() string {
	db.statusMutex.RLock()
	defer db.statusMutex.RUnlock()
	return db.status
}

func (db *Database) setStatus(status string) {
	db.statusMutex.Lock()
	db.status = status
	db.statusMutex.Unlock()
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && name != "." && name != ".."
}

func (db *Database) CreateCollection(name string) (*collection.Collection, error) {

	if !validName(name) {
		return nil, fmt.Errorf("%w: '%s'", ErrorInvalidCollectionName, name)
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.collections[name]; exists {
		return nil, fmt.Errorf("%w: '%s'", ErrorCollectionAlreadyExists, name)
	}

	filename := path.Join(db.Config.Dir, name)
	col, err := collection.OpenCollection(filename)
	if err != nil {
		return nil, err
	}

	db.collections[name] = col

	return col, nil
}

func (db *Database) GetCollection(name string) (*collection.Collection, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	col, exists := db.collections[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrorCollectionNotFound, name)
	}
	return col, nil
}

// ListCollections returns the collections sorted by name.
func (db *Database) ListCollections() []string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return utils.GetKeys(db.collections)
}

func (db *Database) DropCollection(name string) error {

	db.mutex.Lock()
	defer db.mutex.Unlock()

	col, exists := db.collections[name]
	if !exists {
		return fmt.Errorf("%w: '%s'", ErrorCollectionNotFound, name)
	}

	err := col.Drop()
	if err != nil {
		return fmt.Errorf("drop '%s': %w", name, err)
	}

	delete(db.collections, name)

	return nil
}

func (db *Database) Load() error {

	dir := db.Config.Dir
	db.logger.Info("loading database", zap.String("dir", dir))

	err := os.MkdirAll(dir, 0755)
	if err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	err = filepath.WalkDir(dir, func(filename string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := filename
		name = strings.TrimPrefix(name, dir)
		name = strings.TrimPrefix(name, "/")

		t0 := time.Now()
		col, err := collection.OpenCollection(filename)
		if err != nil {
			db.logger.Error("open collection", zap.String("collection", name), zap.Error(err))
			return fmt.Errorf("open collection '%s': %w", name, err)
		}
		db.logger.Info("collection loaded",
			zap.String("collection", name),
			zap.String("screen", col.Screen),
			zap.Int("rows", col.Len()),
			zap.Duration("elapsed", time.Since(t0)),
		)

		db.mutex.Lock()
		db.collections[name] = col
		db.mutex.Unlock()

		return nil
	})

	if err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	db.setStatus(StatusOperating)
	close(db.ready)

	return nil
}

// Ready is closed once every collection is loaded.
func (db *Database) Ready() <-chan struct{} {
	return db.ready
}

// Start loads the database and blocks until Stop.
func (db *Database) Start() error {

	err := db.Load()
	if err != nil {
		return err
	}

	<-db.exit

	return nil
}

func (db *Database) Stop() error {

	defer close(db.exit)

	db.setStatus(StatusClosing)

	db.mutex.Lock()
	defer db.mutex.Unlock()

	var lastErr error
	for name, col := range db.collections {
		db.logger.Info("closing collection", zap.String("collection", name))
		err := col.Close()
		if err != nil {
			db.logger.Error("close collection", zap.String("collection", name), zap.Error(err))
			lastErr = err
		}
	}

	return lastErr
}
