package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/runner"
	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const windowTitle = "Blockfall"

// Game implements ebiten.Game on top of a runner. Gravity runs on the
// runner's goroutine; Update only forwards input and Draw reads snapshots.
type Game struct {
	runner  *runner.Runner
	input   *inputMapper
	overlay *debugui.Overlay
	imgui   *debugui_ebiten.ImguiBackend
	width   int
	height  int
}

func (g *Game) Update() error {
	if g.imgui != nil {
		g.imgui.Frame(g.overlay)
		if g.overlay.InputState().WantCaptureKeyboard {
			return nil
		}
	}

	for _, in := range g.input.Poll() {
		g.runner.TrySend(in)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := g.runner.Snapshot()
	drawBoard(screen, snap)
	drawSidebar(screen, snap)

	if g.imgui != nil {
		g.imgui.DrawOver(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func main() {
	configPath := flag.String("config", "", "YAML game config overlaid on the defaults.")
	seed := flag.Uint64("seed", 0, "Randomizer seed (0 seeds from the clock).")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay.")
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
	if *seed != 0 {
		cfg.Seed = *seed
	}

	r, err := runner.New(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start game")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("runner exited")
		}
	}()

	width, height := screenSize(cfg)
	game := &Game{
		runner: r,
		input:  newInputMapper(ebitenKeys{}, 10, 3),
		width:  width,
		height: height,
	}

	if *debug {
		game.imgui = debugui_ebiten.NewImguiBackend(windowTitle, width+640, height)
		game.overlay = debugui.NewOverlay(
			debugui.NewGamePanel(r.Snapshot).Item(),
			debugui.NewPieceStatsPanel(r.Snapshot).Item(),
			debugui.NewRunnerPanel(r.GetStats, 120).Item(),
		)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(windowTitle)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Error().Err(err).Msg("game loop failed")
	}

	cancel()
	<-r.Done()
}
