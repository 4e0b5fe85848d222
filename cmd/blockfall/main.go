package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/logger"
	"github.com/plus3/blockfall/loop"
	blockfall_ebiten "github.com/plus3/blockfall/render/ebiten"
	"github.com/plus3/blockfall/render/terminal"
)

const title = "Blockfall"

type options struct {
	frontend  string
	blockSize int
	debug     bool
	tick      time.Duration
	logFile   string
}

func main() {
	cfg := game.DefaultConfig()
	opts := options{}

	flag.StringVar(&opts.frontend, "frontend", "ebiten", "Front-end to run: ebiten or terminal.")
	flag.IntVar(&cfg.Rows, "rows", cfg.Rows, "Board rows.")
	flag.IntVar(&cfg.Cols, "cols", cfg.Cols, "Board columns.")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Piece seed; 0 picks one from the clock.")
	flag.IntVar(&opts.blockSize, "block", 20, "Block size in pixels (ebiten).")
	flag.BoolVar(&opts.debug, "debug", false, "Show the ImGui debug inspector (ebiten).")
	flag.DurationVar(&opts.tick, "tick", 16*time.Millisecond, "Frame interval (terminal).")
	flag.StringVar(&opts.logFile, "log-file", "", "Log destination; the terminal front-end discards logs when empty.")
	flag.Parse()

	if err := run(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "blockfall: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg game.Config, opts options) error {
	out, err := logger.OpenFile(opts.logFile)
	if err != nil {
		return err
	}
	defer out.Close()

	// The terminal front-end owns the screen, so it only logs to a file.
	dest := io.Writer(os.Stderr)
	if opts.logFile != "" || opts.frontend == "terminal" {
		dest = out
	}
	logger.Init(dest)
	log := logger.Log

	session, err := game.NewSession(cfg, game.WithLogger(log))
	if err != nil {
		return err
	}
	log.WithField("frontend", opts.frontend).Info("starting blockfall")

	switch opts.frontend {
	case "ebiten":
		return runEbiten(session, opts)
	case "terminal":
		return runTerminal(session, opts)
	default:
		return fmt.Errorf("unknown frontend %q", opts.frontend)
	}
}

func runEbiten(session *game.Session, opts options) error {
	cfg := session.Config()
	canvas := blockfall_ebiten.NewCanvas(cfg.Rows, cfg.Cols, opts.blockSize)
	scheduler := loop.NewGameScheduler(session, canvas, canvas)

	var gameOpts []blockfall_ebiten.Option
	if opts.debug {
		imguiBackend := debugui_ebiten.NewImguiBackend(title, 1280, 720)

		imguiSystem := &debugui.ImguiSystem{}
		imguiSystem.Add(
			debugui.NewSessionInspector(scheduler),
			debugui.NewPerformanceStats(100).Item(scheduler),
		)
		scheduler.Register(imguiSystem)

		gameOpts = append(gameOpts, blockfall_ebiten.WithOverlay(imguiBackend, imguiSystem.WantsKeyboard))
	}

	return blockfall_ebiten.Run(blockfall_ebiten.NewGame(scheduler, canvas, gameOpts...), title)
}

func runTerminal(session *game.Session, opts options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	cfg := session.Config()
	surface := terminal.New(screen, cfg.Rows, cfg.Cols)
	scheduler := loop.NewGameScheduler(session, surface, surface)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	terminal.Run(ctx, surface, scheduler, opts.tick)
	logger.Log.WithField("score", session.Progress().Score).Info("terminal session ended")
	return nil
}
