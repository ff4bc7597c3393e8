package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/simcar/internal/buildinfo"
	"github.com/dmitrijs2005/simcar/internal/client/cli"
	"github.com/dmitrijs2005/simcar/internal/client/client"
	"github.com/dmitrijs2005/simcar/internal/client/config"
	"github.com/dmitrijs2005/simcar/internal/client/quiz"
	"github.com/dmitrijs2005/simcar/internal/client/services"
	"github.com/dmitrijs2005/simcar/internal/client/session"
	"github.com/dmitrijs2005/simcar/internal/client/store"
	"github.com/dmitrijs2005/simcar/internal/client/transform"
	"github.com/dmitrijs2005/simcar/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("%v", err)
	}

}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out, logOut io.Writer) error {
	logger := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)

	db, err := session.OpenDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	sess := session.NewSQLiteStore(db)

	bank, err := quiz.LoadBank(cfg.QuizBankPath)
	if err != nil {
		return err
	}

	nav := cli.NewNavigator()
	api, err := client.New(sess, client.Options{
		BaseURL:              cfg.ServerBaseURL,
		Timeout:              cfg.RequestTimeout,
		Logger:               logger,
		OnSessionInvalidated: nav.SessionInvalidated,
		AtLoginEntry:         nav.AtLoginEntry,
	})
	if err != nil {
		return err
	}

	tr := transform.New(cfg.ImageOrigin)
	cars := services.NewCarService(api, tr)

	st, err := store.New(ctx, sess, cars, logger)
	if err != nil {
		return fmt.Errorf("init state: %w", err)
	}

	app, err := cli.NewApp(cli.Deps{
		Auth:      services.NewAuthService(api, sess, st, logger),
		Profile:   services.NewProfileService(api, sess, st),
		Cars:      cars,
		Favorites: services.NewFavoriteService(api, sess, tr),
		Store:     st,
		Session:   sess,
		Nav:       nav,
		QuizBank:  bank,
		Logger:    logger,
		In:        in,
		Out:       out,
	})
	if err != nil {
		return err
	}

	app.Run(ctx)
	return nil
}
