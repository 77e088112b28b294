package main

import (
	"bytes"
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/woozymasta/feddanmap/internal/config"
	"github.com/woozymasta/feddanmap/internal/logger"
	"github.com/woozymasta/feddanmap/internal/page"
	"github.com/woozymasta/feddanmap/internal/pipeline"
	"github.com/woozymasta/feddanmap/internal/raster"
	"github.com/woozymasta/feddanmap/internal/source"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string        `short:"c" long:"config"     env:"CONFIG_FILE"   description:"Path to configuration file, defaults are used when empty"`
	Boundaries string        `short:"b" long:"boundaries" env:"BOUNDARIES"    description:"Override boundary GeoJSON path or URL"`
	Points     string        `short:"v" long:"points"     env:"POINTS"        description:"Override village CSV path or URL"`
	Output     string        `short:"o" long:"out"        env:"OUTPUT"        description:"Output HTML file" default:"index.html"`
	Preview    string        `long:"preview"              env:"PREVIEW"       description:"Also write a raster preview (.webp or .png)"`
	Timeout    time.Duration `short:"t" long:"timeout"    env:"FETCH_TIMEOUT" description:"Timeout for remote sources" default:"15s"`
	NoMinify   bool          `long:"no-minify"            description:"Write the page without minification"`
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

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.Boundaries != "" {
		cfg.Boundaries = opts.Boundaries
	}
	if opts.Points != "" {
		cfg.Points = opts.Points
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scene, err := pipeline.Run(ctx, source.NewFetcher(opts.Timeout), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build map")
	}

	m := page.NewMinifier()
	if opts.NoMinify {
		m = nil
	}

	html, err := page.Build(scene, m)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render page")
	}
	if err := os.WriteFile(opts.Output, html, 0644); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write page")
	}

	log.Info().
		Str("path", opts.Output).
		Int("bytes", len(html)).
		Int("markers", len(scene.Markers)).
		Int("skipped", len(scene.Skipped)).
		Msg("Page written")

	if opts.Preview == "" {
		return
	}

	format, err := raster.FormatFromPath(opts.Preview)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid preview path")
	}

	img, err := raster.Render(scene, cfg.Preview)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render preview")
	}

	var buf bytes.Buffer
	if err := raster.Encode(&buf, img, format); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode preview")
	}
	if err := os.WriteFile(opts.Preview, buf.Bytes(), 0644); err != nil {
		log.Fatal().Err(err).Str("path", opts.Preview).Msg("Failed to write preview")
	}

	log.Info().Str("path", opts.Preview).Str("format", string(format)).Msg("Preview written")
}
