package main

import (
	"context"
	"log"
	"os"

	"github.com/aGautrain/legeclair/internal/buildinfo"
	"github.com/aGautrain/legeclair/internal/client/cli"
	"github.com/aGautrain/legeclair/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
