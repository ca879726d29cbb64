package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/twentyfortyeight/automatic"
	"github.com/domino14/twentyfortyeight/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	summary, err := automatic.PlayGames(ctx, cfg,
		cfg.GetInt(config.ConfigAutoplayGames),
		cfg.GetInt(config.ConfigAutoplayThreads),
		cfg.GetString(config.ConfigAutoplayOutput))
	if err != nil {
		log.Error().Err(err).Msg("autoplay failed")
		os.Exit(1)
	}
	log.Info().Dur("elapsed", time.Since(start)).
		Str("log", cfg.GetString(config.ConfigAutoplayOutput)).Msg("autoplay-done")

	fmt.Println(summary.String())
	if err := summary.WriteHistograms(os.Stdout); err != nil {
		log.Error().Err(err).Msg("histograms")
	}
	if path := cfg.GetString(config.ConfigAutoplaySummary); path != "" {
		if err := summary.SaveYAML(path); err != nil {
			log.Error().Err(err).Msg("saving summary")
			os.Exit(1)
		}
	}
}
