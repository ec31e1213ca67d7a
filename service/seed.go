package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/fulldump/tableview/mockdata"
)

// Seed creates the products, orders and users collections with mock data
// when they do not exist yet. Screens without a mock generator are skipped.
func (s *Service) Seed(seed uint64, size int) error {

	for _, kind := range mockdata.Kinds {

		if _, err := s.catalog.Get(kind); err != nil {
			continue
		}

		_, err := s.db.GetCollection(kind)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrorCollectionNotFound) {
			return err
		}

		records, err := mockdata.Generate(kind, size, seed)
		if err != nil {
			return err
		}

		_, err = s.CreateCollection(kind, kind)
		if err != nil {
			return err
		}

		items := make([]map[string]interface{}, len(records))
		for i, record := range records {
			items[i] = record
		}
		_, err = s.Insert(kind, items...)
		if err != nil {
			return err
		}

		s.logger.Info("collection seeded",
			zap.String("collection", kind),
			zap.Int("records", len(records)),
			zap.Uint64("seed", seed),
		)
	}

	return nil
}
