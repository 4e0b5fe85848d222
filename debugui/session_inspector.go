package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
)

// maxClearRows is the tallest shape in the catalog.
const maxClearRows = 4

// NextLevelFraction returns how far the player is through the current level, in [0, 1).
func NextLevelFraction(p game.Progress, cfg game.Config) float32 {
	if cfg.LinesPerLevel <= 0 {
		return 0
	}
	return float32(p.Lines%cfg.LinesPerLevel) / float32(cfg.LinesPerLevel)
}

// NewSessionInspector returns an item showing the session's progress, active piece and
// statistics. Its Reset button submits loop.ActionReset to the scheduler.
func NewSessionInspector(scheduler *loop.Scheduler) Item {
	return func(frame *loop.Frame) {
		session := frame.Session
		cfg := session.Config()
		progress := session.Progress()

		imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(300, 420), imgui.CondOnce)

		if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		if session.State() == game.StateGameOver {
			imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), "GAME OVER")
		} else {
			imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
		}
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("generation %d", session.Generation()))

		if imgui.Button("Reset") {
			scheduler.Submit(loop.ActionReset)
		}

		imgui.Separator()
		imgui.Text(fmt.Sprintf("Score: %d", progress.Score))
		imgui.Text(fmt.Sprintf("Level: %d", progress.Level))
		imgui.Text(fmt.Sprintf("Lines: %d", progress.Lines))
		imgui.ProgressBarV(NextLevelFraction(progress, cfg), imgui.NewVec2(-1, 0),
			fmt.Sprintf("%d/%d to next level", progress.Lines%cfg.LinesPerLevel, cfg.LinesPerLevel))
		imgui.Text(fmt.Sprintf("Drop interval: %s", progress.DropInterval))
		imgui.Text(fmt.Sprintf("Pending: %s", session.Pending()))

		imgui.Separator()
		piece := session.Piece()
		imgui.Text(fmt.Sprintf("Piece: %s at (%d, %d)", piece.Kind, piece.X, piece.Y))
		imgui.Text(fmt.Sprintf("Board: %dx%d", cfg.Rows, cfg.Cols))

		stats := session.Stats()
		if imgui.TreeNodeStr("Spawns") {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("SpawnTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("Kind")
				imgui.TableSetupColumn("Count")
				imgui.TableHeadersRow()

				for k := range game.Kind(game.KindCount) {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(k.String())
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", stats.Spawns(k)))
				}
				imgui.EndTable()
			}
			imgui.TreePop()
		}

		if imgui.TreeNodeStr("Clears") {
			imgui.Text(fmt.Sprintf("Locks: %d", stats.Locks()))
			for rows := 0; rows <= maxClearRows; rows++ {
				if n := stats.Clears(rows); n > 0 {
					imgui.BulletText(fmt.Sprintf("%d rows: %d", rows, n))
				}
			}
			imgui.TreePop()
		}

		imgui.End()
	}
}
