package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/plus3/blockfall/soak"
	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	games := flag.Int("games", 10, "Number of games to play.")
	pieces := flag.Int("pieces", 0, "Stop each game after this many pieces lock (0 plays until game over).")
	seed := flag.Uint64("seed", 1, "Base seed; game i uses seed+i. Must be non-zero.")
	configPath := flag.String("config", "", "YAML game config overlaid on the defaults.")
	script := flag.String("script", "", "Lua bot script defining decide(state). Uses the random bot when empty.")
	kicks := flag.String("kicks", "", "Override the kick table (fixed or srs).")
	frame := flag.Duration("frame", 16*time.Millisecond, "Simulated time between bot turns.")
	actions := flag.Int("actions", 2, "Maximum intents a bot may apply per frame.")
	timeout := flag.Duration("timeout", 5*time.Minute, "Abort the run after this long.")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error).")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := tetris.DefaultConfig()
	if *configPath != "" {
		if cfg, err = tetris.LoadConfig(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *kicks != "" {
		cfg.Kicks = *kicks
		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid -kicks")
		}
	}

	botName := "random"
	newBot := func(i int) (soak.Bot, error) {
		return soak.NewRandomBot(*seed + uint64(i)), nil
	}
	if *script != "" {
		botName = *script
		newBot = func(int) (soak.Bot, error) {
			return soak.LoadLuaBot(*script)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log.Info().
		Int("games", *games).
		Str("bot", botName).
		Str("kicks", cfg.Kicks).
		Msg("starting soak run")

	report, err := soak.Run(ctx, soak.Options{
		Session: soak.SessionConfig{
			Game:            cfg,
			Frame:           *frame,
			ActionsPerFrame: *actions,
			MaxPieces:       *pieces,
		},
		Games:   *games,
		Seed:    *seed,
		BotName: botName,
		NewBot:  newBot,
	}, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("soak run failed")
	}

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")

	log.Info().Dur("elapsed", report.TotalTime).Msg("soak run complete")
}
