package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// PerformanceStats keeps a ring of recent frame times for plotting.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record stores a frame time in milliseconds.
func (ps *PerformanceStats) Record(ms float32) {
	ps.frameHistory[ps.frameIndex] = ms
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// Average returns the mean of the recorded history, counting unfilled slots as zero.
func (ps *PerformanceStats) Average() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

// Item returns a window showing frame times and the scheduler's per-system timings.
func (ps *PerformanceStats) Item(scheduler *loop.Scheduler) Item {
	return func(frame *loop.Frame) {
		ps.Record(float32(frame.DeltaTime.Microseconds()) / 1000.0)

		imgui.SetNextWindowPosV(imgui.NewVec2(320, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(400, 320), imgui.CondOnce)

		if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		stats := scheduler.GetStats()
		avg := ps.Average()

		imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
		imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))
		if avg > 0 {
			imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
		}

		imgui.Separator()
		imgui.Text("Frame Time Graph (ms)")
		imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
		if imgui.BeginTableV("Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Min (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()

				imgui.TableNextColumn()
				imgui.Text(sys.Name)

				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))

				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.MinDuration.Microseconds())/1000.0))

				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.MaxDuration.Microseconds())/1000.0))
			}
			imgui.EndTable()
		}

		imgui.End()
	}
}
