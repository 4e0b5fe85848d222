package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/loop"
)

type Report struct {
	// Configuration
	Games     int
	Seed      uint64
	Rows      int
	Cols      int
	FrameCap  int
	FrameTime time.Duration

	// Results
	Results        []GameResult
	TotalFrames    int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Scheduler      *loop.SchedulerStats
	Host           Host
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// GameResult summarizes one simulated game.
type GameResult struct {
	Score     int
	Level     int
	Lines     int
	Locks     int
	Frames    int
	Truncated bool
}

// Host describes the machine the simulation ran on.
type Host struct {
	CPUs           int
	CPUPercent     float64
	MemTotal       uint64
	MemUsedPercent float64
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// BestScore returns the highest score across all games.
func (r *Report) BestScore() int {
	best := 0
	for _, g := range r.Results {
		best = max(best, g.Score)
	}
	return best
}

// MeanScore returns the average score across all games.
func (r *Report) MeanScore() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	total := 0
	for _, g := range r.Results {
		total += g.Score
	}
	return float64(total) / float64(len(r.Results))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Simulation Report

## Configuration
- **Games:** {{.Games}}
- **Seed:** {{.Seed}}
- **Board:** {{.Rows}}x{{.Cols}}
- **Frame Time:** {{.FrameTime}}
- **Frame Cap:** {{.FrameCap}}

## Results
- **Best Score:** {{.BestScore}}
- **Mean Score:** {{printf "%.1f" .MeanScore}}

| Game | Score | Level | Lines | Locks | Frames |
|---|---|---|---|---|---|
{{- range $i, $g := .Results}}
| {{inc $i}} | {{$g.Score}} | {{$g.Level}} | {{$g.Lines}} | {{$g.Locks}} | {{$g.Frames}}{{if $g.Truncated}} (cap){{end}} |
{{- end}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{with .Scheduler}}
| System | Executions | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
## Host
- **CPUs:** {{.Host.CPUs}}
- **CPU Load:** {{printf "%.1f" .Host.CPUPercent}}%
- **Memory:** {{mb .Host.MemTotal}} MiB ({{printf "%.1f" .Host.MemUsedPercent}}% used)
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"inc": func(i int) int {
			return i + 1
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
