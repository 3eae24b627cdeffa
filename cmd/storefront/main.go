package main

import (
	"flag"
	"log"
	"os"
	"syscall"

	"github.com/sweetnest/storefront/internal/app"
	"github.com/sweetnest/storefront/internal/config"
	"github.com/sweetnest/storefront/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAPI, "run mode: api (default), worker, all")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		log.Fatalf("storefront engine exited: %v", err)
	}
}
