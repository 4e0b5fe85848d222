package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/logger"
	"github.com/plus3/blockfall/loop"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// Settings controls a simulation run.
type Settings struct {
	Games     int
	Seed      uint64
	Rows      int
	Cols      int
	FrameCap  int
	FrameTime time.Duration
	InputRate float64
}

var inputs = []loop.Action{loop.ActionLeft, loop.ActionRight, loop.ActionDown, loop.ActionRotate}

// simulate plays settings.Games games back to back on one session, resetting between
// games, with random input submitted at settings.InputRate per frame.
func simulate(settings Settings, log *logrus.Logger) (*Report, error) {
	cfg := game.DefaultConfig()
	cfg.Rows, cfg.Cols = settings.Rows, settings.Cols
	cfg.Seed = settings.Seed

	session, err := game.NewSession(cfg, game.WithLogger(log))
	if err != nil {
		return nil, err
	}
	scheduler := loop.NewGameScheduler(session, nil, nil)
	input := rand.New(rand.NewPCG(settings.Seed, settings.Seed+1))

	report := &Report{
		Games:     settings.Games,
		Seed:      settings.Seed,
		Rows:      cfg.Rows,
		Cols:      cfg.Cols,
		FrameCap:  settings.FrameCap,
		FrameTime: settings.FrameTime,
	}

	startTime := time.Now()
	for i := range settings.Games {
		if i > 0 {
			scheduler.Submit(loop.ActionReset)
		}

		result := GameResult{}
		for result.Frames < settings.FrameCap {
			if input.Float64() < settings.InputRate {
				scheduler.Submit(inputs[input.IntN(len(inputs))])
			}

			updateStart := time.Now()
			scheduler.Once(settings.FrameTime)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			result.Frames++

			if session.State() == game.StateGameOver {
				break
			}
		}

		progress := session.Progress()
		result.Score = progress.Score
		result.Level = progress.Level
		result.Lines = progress.Lines
		result.Locks = session.Stats().Locks()
		result.Truncated = session.State() != game.StateGameOver
		report.Results = append(report.Results, result)
		session.DrainEvents()
		report.TotalFrames += int64(result.Frames)

		log.WithFields(logrus.Fields{
			"game":   i + 1,
			"score":  result.Score,
			"frames": result.Frames,
		}).Info("game finished")
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Scheduler = scheduler.GetStats()
	return report, nil
}

func hostInfo(log *logrus.Logger) Host {
	host := Host{CPUs: runtime.NumCPU()}

	if percent, err := cpu.Percent(200*time.Millisecond, false); err != nil {
		log.WithError(err).Warn("cpu usage unavailable")
	} else if len(percent) > 0 {
		host.CPUPercent = percent[0]
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.WithError(err).Warn("memory usage unavailable")
	} else {
		host.MemTotal = vm.Total
		host.MemUsedPercent = vm.UsedPercent
	}
	return host
}

func main() {
	games := flag.Int("games", 20, "Number of games to simulate.")
	seed := flag.Uint64("seed", 1, "Seed for piece selection and simulated input.")
	rows := flag.Int("rows", game.DefaultConfig().Rows, "Board rows.")
	cols := flag.Int("cols", game.DefaultConfig().Cols, "Board columns.")
	frameCap := flag.Int("frames", 100000, "Maximum frames per game.")
	frameTime := flag.Duration("dt", 16*time.Millisecond, "Simulated time per frame.")
	inputRate := flag.Float64("input-rate", 0.3, "Probability of a random action each frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger.Init(os.Stderr)
	log := logger.Log
	log.Info("Starting blockfall simulation...")

	settings := Settings{
		Games:     *games,
		Seed:      *seed,
		Rows:      *rows,
		Cols:      *cols,
		FrameCap:  *frameCap,
		FrameTime: *frameTime,
		InputRate: *inputRate,
	}

	var memStart runtime.MemStats
	runtime.ReadMemStats(&memStart)

	report, err := simulate(settings, log)
	if err != nil {
		log.WithError(err).Fatal("simulation failed")
	}

	report.GCPauseMetrics = *gcPauseMetrics
	report.MemStatsStart = memStart
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Host = hostInfo(log)

	log.Info("Simulation finished.")

	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}
