package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/bigredeye/studentmanager/internal/config"
	"github.com/bigredeye/studentmanager/internal/web"
	zlog "github.com/bigredeye/studentmanager/pkg/log"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "Path to the config")
}

func run() error {
	cfg, err := config.ParseConfig(configPath)
	if err != nil {
		return err
	}

	var opts []zlog.Option
	if cfg.Log.File != "" {
		opts = append(opts, zlog.WithFile(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups))
	}
	initLogger := zlog.InitProd
	if cfg.Log.Development {
		initLogger = zlog.InitDev
	}
	logger := initLogger(opts...)
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.Run(ctx, cfg, logger)
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
