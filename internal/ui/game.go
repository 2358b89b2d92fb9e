package ui

import (
	"errors"
	"math"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/Jimin-park1013/delulu-dreams/core/sim"
	game_log "github.com/Jimin-park1013/delulu-dreams/internal/log"
)

// ErrRenderSurfaceUnavailable ends the run when the screen can no longer be
// drawn to. It is returned from Update so ebiten.RunGame reports it.
var ErrRenderSurfaceUnavailable = errors.New("render surface unavailable")

const noteTicks = 120 // how long transient notes stay on screen

// Game adapts a Controller to ebiten's loop. Update steps the simulation,
// Draw paints the latest frame onto a persistent canvas so the low-alpha
// wash leaves trails.
type Game struct {
	ctrl   *Controller
	logger *game_log.Logger

	winW, winH int
	canvas     *ebiten.Image
	frame      sim.Frame
	fresh      bool // frame not yet painted
	tick       int64

	snapshotPath   string
	snapshotWanted bool
	note           string
	noteUntil      int64

	startRequested bool
	stopRequested  bool
	surfaceLost    bool
	jsReady        bool
}

func New(ctrl *Controller, snapshotPath string, logger *game_log.Logger) *Game {
	return &Game{ctrl: ctrl, logger: logger, snapshotPath: snapshotPath}
}

func (g *Game) Layout(w, h int) (int, int) {
	if w != g.winW || h != g.winH {
		g.logger.Infof("[GAME] Layout: %dx%d -> %dx%d", g.winW, g.winH, w, h)
		g.winW, g.winH = w, h
		g.ctrl.Resize(float64(w), float64(h))
	}
	return w, h
}

func (g *Game) Update() error {
	if !g.jsReady {
		g.initJS()
		g.jsReady = true
	}
	if g.surfaceLost {
		g.stop()
		return ErrRenderSurfaceUnavailable
	}
	if windowClosing() {
		g.stop()
		return ebiten.Termination
	}
	g.tick++

	if g.ctrl.Status() == StatusIdle {
		if g.startRequested || startGesture() {
			g.ctrl.Start()
		}
	} else {
		switch {
		case g.stopRequested || isKeyJustPressed(ebiten.KeyEscape):
			g.stop()
		case isKeyJustPressed(ebiten.KeyS):
			g.snapshotWanted = true
		}
	}
	g.startRequested, g.stopRequested = false, false

	if f, ok := g.ctrl.Step(); ok {
		g.frame = f
		g.fresh = true
		if f.Index%600 == 0 {
			g.logger.Debugf("[GAME] frame=%d level=%.3f population=%d", f.Index, f.Level, len(f.Particles)+len(f.Shapes))
		}
	}
	g.reportStateJS()
	return nil
}

func (g *Game) stop() {
	if err := g.ctrl.Stop(); err != nil {
		g.logger.Errorf("[GAME] Stop: %v", err)
	}
	g.fresh = false
	g.frame = sim.Frame{}
	g.snapshotWanted = false
	if g.canvas != nil {
		g.canvas.Deallocate()
		g.canvas = nil
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	running := g.ctrl.Status() != StatusIdle
	if screen == nil || screen.Bounds().Empty() {
		if running {
			g.surfaceLost = true
		}
		return
	}
	if !running {
		g.drawIdle(screen)
		return
	}

	b := screen.Bounds()
	g.ensureCanvas(b.Dx(), b.Dy())
	if g.fresh {
		paintFrame(g.canvas, g.frame)
		g.fresh = false
	}
	screen.DrawImage(g.canvas, nil)
	if g.snapshotWanted {
		g.snapshotWanted = false
		g.snapshot()
	}
	g.drawOverlay(screen)
}

// ensureCanvas keeps the trail canvas at screen size, carrying the old
// pixels across a resize.
func (g *Game) ensureCanvas(w, h int) {
	if g.canvas != nil {
		cb := g.canvas.Bounds()
		if cb.Dx() == w && cb.Dy() == h {
			return
		}
	}
	next := ebiten.NewImage(w, h)
	next.Fill(colCanvasBG)
	if g.canvas != nil {
		next.DrawImage(g.canvas, nil)
		g.canvas.Deallocate()
	}
	g.canvas = next
}

func (g *Game) drawIdle(screen *ebiten.Image) {
	screen.Fill(colIdleBG)
	b := screen.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	breath := 0.5 + 0.5*math.Sin(float64(g.tick)*0.05)
	orb := colIdleOrb
	orb.A = uint8(60 + 80*breath)
	fillCircle(screen, cx, cy, 36+10*breath, orb)
	ebitenutil.DebugPrintAt(screen, idlePrompt, int(cx)-len(idlePrompt)*3, int(cy)+60)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	y := 8
	if g.ctrl.Status() == StatusStarting {
		ebitenutil.DebugPrintAt(screen, "waiting for microphone...", 8, y)
		y += 16
	}
	if msg := g.ctrl.Message(); msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, 8, y)
		y += 16
	}
	if g.note != "" && g.tick < g.noteUntil {
		ebitenutil.DebugPrintAt(screen, g.note, 8, y)
	}
	ebitenutil.DebugPrintAt(screen, runningHints, 8, screen.Bounds().Dy()-20)
}

func (g *Game) snapshot() {
	data, err := encodePNG(captureImage(g.canvas))
	if err == nil {
		err = saveSnapshot(g.snapshotPath, data)
	}
	if err != nil {
		g.logger.Errorf("[GAME] Snapshot failed: %v", err)
		g.note = "snapshot failed"
	} else {
		g.logger.Infof("[GAME] Snapshot saved to %s (%d bytes)", g.snapshotPath, len(data))
		g.note = "saved " + filepath.Base(g.snapshotPath)
	}
	g.noteUntil = g.tick + noteTicks
}

// Controller returns the controller driven by this game.
func (g *Game) Controller() *Controller { return g.ctrl }
