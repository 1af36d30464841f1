package main

import (
	"context"
	"os"

	"github.com/ybblog/blog/internal/app"
	"github.com/ybblog/blog/internal/infrastructure/config"
	"github.com/ybblog/blog/pkg/logger"
)

//	@title			Blog API
//	@version		1.0
//	@description	Minimal authenticated blog: accounts, sessions and articles.
//	@BasePath		/

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "blog",
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}
