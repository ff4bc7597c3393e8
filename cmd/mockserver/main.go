package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/simcar/internal/buildinfo"
	"github.com/dmitrijs2005/simcar/internal/mockapi"
	"github.com/dmitrijs2005/simcar/internal/mockapi/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := mockapi.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
