package bootstrap

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fulldump/box"
	"go.uber.org/zap"

	"github.com/fulldump/tableview/api"
	"github.com/fulldump/tableview/configuration"
	"github.com/fulldump/tableview/database"
	"github.com/fulldump/tableview/screen"
	"github.com/fulldump/tableview/service"
)

var VERSION = "dev"

func loadCatalog(filename string) (*screen.Catalog, error) {
	if filename == "" {
		return screen.Default()
	}
	return screen.LoadFile(filename)
}

func Bootstrap(c *configuration.Configuration, logger *zap.Logger) (start, stop func(), err error) {

	catalog, err := loadCatalog(c.Screens)
	if err != nil {
		return nil, nil, err
	}

	db := database.NewDatabase(&database.Config{
		Dir:    c.Dir,
		Logger: logger,
	})

	s := service.NewService(db, catalog, logger)

	b := api.Build(s, VERSION)
	b.WithInterceptors(
		api.AccessLog(logger),
		api.PrettyErrorInterceptor,
		api.InterceptorUnavailable(db),
		api.RecoverFromPanic,
	)

	server := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen: %w", err)
	}
	logger.Info("listening", zap.String("addr", c.HttpAddr))

	once := &sync.Once{}
	stop = func() {
		once.Do(func() {
			db.Stop()
			server.Shutdown(context.Background())
		})
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		logger.Info("signal received", zap.String("signal", sig.String()))
		stop()
	}()

	start = func() {

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Start()
			if err != nil {
				logger.Error("database", zap.Error(err))
				stop()
			}
		}()

		if c.Seed > 0 {
			go func() {
				<-db.Ready()
				err := s.Seed(uint64(c.Seed), c.MockSize)
				if err != nil {
					logger.Error("seed", zap.Error(err))
				}
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := server.Serve(ln)
			if err != nil && err != http.ErrServerClosed {
				logger.Error("http server", zap.Error(err))
			}
		}()

		wg.Wait()
	}

	return
}
