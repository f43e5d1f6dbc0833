package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"huff/internal/config"
	"huff/internal/handler"
	"huff/internal/router"
	"huff/internal/service"
	"huff/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	logg, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "HUFFD_LOG_LEVEL:", err)
		os.Exit(1)
	}

	codecSvc := service.NewCodecService(logg)
	codecH := handler.NewCodecHandler(codecSvc, cfg.MaxBody)

	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	router.Register(r, router.Dependencies{
		CodecHandler: codecH,
		Log:          logg,
	})

	logg.Infof("starting huffd at %s (max body %d bytes)", cfg.Addr, cfg.MaxBody)
	if err := r.Run(cfg.Addr); err != nil {
		logg.Errorf("server: %v", err)
		os.Exit(1)
	}
}
