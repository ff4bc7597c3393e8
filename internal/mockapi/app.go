package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/simcar/internal/logging"
	"github.com/dmitrijs2005/simcar/internal/mockapi/config"
	"github.com/dmitrijs2005/simcar/internal/mockapi/store"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, cfg.LogLevel, "json")

	st := store.New()
	members := NewMemberService(st, cfg.SecretKey, cfg.TokenValidity)

	if cfg.Seed {
		if err := Seed(ctx, st, members); err != nil {
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(Deps{Store: st, Members: members, Logger: logger})

	return &App{
		config: cfg,
		logger: logger,
		server: &http.Server{
			Addr:              cfg.ListenAddress,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting mock API...", "address", app.config.ListenAddress)
		errCh <- app.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	app.logger.Info(ctx, "Shutting down mock API...")
	return app.server.Shutdown(shutdownCtx)
}
