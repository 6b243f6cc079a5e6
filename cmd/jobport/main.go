package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/apetrenko/jobport/internal/buildinfo"
	"github.com/apetrenko/jobport/internal/cli"
	"github.com/apetrenko/jobport/internal/config"
	"github.com/apetrenko/jobport/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer zl.Sync()

	app, err := cli.NewApp(ctx, cfg, logging.NewZapLogger(zl))
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
