// Package game hosts a particle field in an ebiten window.
package game

import (
	"image/color"
	"math"
	"time"

	"github.com/Garsondee/particle-field/internal/field"
	"github.com/hajimehoshi/ebiten/v2"
)

// backgroundColor is drawn behind the field.
var backgroundColor = color.RGBA{R: 3, G: 5, B: 16, A: 255}

// quantityStep is how many particles +/- add or remove.
const quantityStep = 10

// Game is an ebiten.Game that hosts one particle field, sized to the window
// at device resolution.
type Game struct {
	// Logical window size in device-independent pixels, from Layout.
	width  int
	height int

	host   *windowHost
	target *imageTarget
	frames *field.FrameQueue
	field  *field.Field
	log    *field.EventLog
	opts   field.Options

	// surface is what the field mounts on; normally target.
	surface field.Target

	showHUD bool
	hud     *hud

	// Clipboard writer and clock, replaceable in tests.
	copyText func(string) error
	now      func() time.Time

	closed bool
}

// New creates a game that mounts a field with opts on its first Layout.
func New(opts field.Options, showHUD bool) *Game {
	target := &imageTarget{scale: 1}
	return &Game{
		host:     &windowHost{scale: 1},
		target:   target,
		surface:  target,
		frames:   &field.FrameQueue{},
		log:      field.NewEventLog(false),
		opts:     opts,
		showHUD:  showHUD,
		hud:      newHUD(),
		copyText: writeClipboard,
		now:      time.Now,
	}
}

// Update handles input, runs a due debounced resize and pumps one frame.
func (g *Game) Update() error {
	if g.closed {
		return ebiten.Termination
	}
	if g.field == nil {
		return nil
	}
	g.handleInput()
	g.field.Poll(g.now())
	g.frames.Pump()
	return nil
}

// Draw blits the field buffer and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if g.target.buf != nil {
		screen.DrawImage(g.target.buf, nil)
	}
	if g.showHUD && g.field != nil {
		g.hud.draw(screen, g.host.scale, g.hudLines())
	}
}

// Layout reports a device-resolution screen so the field can draw sharply,
// and feeds window size changes into the field's debounced resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	return g.resize(outsideWidth, outsideHeight, scale)
}

// resize records the window size, mounting the field the first time and
// arming its debounced resize afterwards. It returns the device size.
func (g *Game) resize(w, h int, scale float64) (int, int) {
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	if g.closed {
		return int(float64(w) * scale), int(float64(h) * scale)
	}
	if w != g.width || h != g.height || scale != g.host.scale || g.field == nil {
		g.width, g.height = w, h
		g.host.w, g.host.h, g.host.scale = float64(w), float64(h), scale
		if g.field == nil {
			g.field = field.Mount(g.host, g.surface, g.frames, g.opts, g.log)
		} else {
			g.field.NotifyResize(g.now())
		}
	}
	return int(float64(w) * scale), int(float64(h) * scale)
}

// Close unmounts the field and frees the buffer. Update ends the game on its
// next call.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.field != nil {
		g.field.Unmount()
	}
	g.target.release()
}

// Field returns the mounted field, or nil before the first Layout.
func (g *Game) Field() *field.Field {
	return g.field
}

// Log returns the field event log.
func (g *Game) Log() *field.EventLog {
	return g.log
}
