package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/feddanmap/internal/config"
	"github.com/woozymasta/feddanmap/internal/logger"
	"github.com/woozymasta/feddanmap/internal/pipeline"
	"github.com/woozymasta/feddanmap/internal/raster"
	"github.com/woozymasta/feddanmap/internal/server"
	"github.com/woozymasta/feddanmap/internal/source"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string        `short:"c" long:"config"  env:"CONFIG_FILE"    description:"Path to configuration file, defaults are used when empty"`
	Addr       string        `short:"a" long:"addr"    env:"LISTEN_ADDRESS" description:"Address to listen on"       default:"0.0.0.0"`
	Port       int           `short:"p" long:"port"    env:"LISTEN_PORT"    description:"Port to listen on"          default:"8080"`
	Preview    string        `long:"preview"           env:"PREVIEW_FORMAT" description:"Preview image format"       choice:"webp" choice:"png" choice:"none" default:"webp"`
	Timeout    time.Duration `short:"t" long:"timeout" env:"FETCH_TIMEOUT"  description:"Timeout for remote sources" default:"15s"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	scene, err := pipeline.Run(context.Background(), source.NewFetcher(opts.Timeout), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build map")
	}

	var format raster.Format
	if opts.Preview != "none" {
		format = raster.Format(opts.Preview)
	}

	srvCtx, err := server.NewServerContext(cfg, scene, format)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	handler := server.RequestLogger(srvCtx.Routes())

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("features", len(scene.Shapes)).
		Int("markers", len(scene.Markers)).
		Msg("Web server started")

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
