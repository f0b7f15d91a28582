package term

import (
	"context"
	"fmt"
	"time"

	"github.com/Garsondee/particle-field/internal/field"
	"github.com/gdamore/tcell/v2"
)

// DefaultFPS is the frame rate used when none is given.
const DefaultFPS = 30

var statusStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(120, 140, 200))

// session owns one mounted field and everything that touches it. Only the
// loop goroutine calls into it.
type session struct {
	screen tcell.Screen
	target *cellTarget
	frames *field.FrameQueue
	field  *field.Field
	opts   field.Options
}

func newSession(screen tcell.Screen, opts field.Options, log *field.EventLog) *session {
	s := &session{
		screen: screen,
		target: newCellTarget(screen),
		frames: &field.FrameQueue{},
		opts:   opts,
	}
	s.field = field.Mount(screenHost{screen: screen}, s.target, s.frames, opts, log)
	return s
}

// handle applies one terminal event. It returns false when the user asked
// to quit.
func (s *session) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
		s.field.NotifyResize(now)
	case *tcell.EventMouse:
		x, y := ev.Position()
		// Aim at the middle of the cell.
		s.field.PointerMove(float64(x)*CellW+CellW/2, float64(y)*CellH+CellH/2, 0, 0)
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return s.command(ev.Rune())
		}
	}
	return true
}

func (s *session) command(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'r':
		s.opts.Refresh = !s.opts.Refresh
		s.field.Configure(s.opts)
	case '+', '=':
		s.opts.Quantity = s.field.Options().Quantity + 10
		s.field.Configure(s.opts)
	case '-':
		s.opts.Quantity = max(0, s.field.Options().Quantity-10)
		s.field.Configure(s.opts)
	}
	return true
}

// tick runs a due resize, one frame and the status line, then shows the
// screen.
func (s *session) tick(now time.Time) {
	s.field.Poll(now)
	s.frames.Pump()
	st := s.field.Stats()
	s.status(fmt.Sprintf(" particles %d  links %d  frame %d   q quit  r refresh  +/- quantity ",
		st.Particles, st.Links, st.Frame))
	s.screen.Show()
}

func (s *session) status(line string) {
	cols, _ := s.screen.Size()
	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		s.screen.SetContent(x, 0, r, nil, statusStyle)
		x++
	}
}

func (s *session) stop() {
	s.field.Unmount()
	s.target.detach()
}

// Run mounts a field on an initialised screen and animates it at fps until
// ctx ends or the user quits. The caller finalises the screen afterwards,
// which also ends the event reader.
func Run(ctx context.Context, screen tcell.Screen, opts field.Options, fps int, log *field.EventLog) error {
	if fps <= 0 {
		fps = DefaultFPS
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	defer screen.DisableMouse()
	screen.HideCursor()

	s := newSession(screen, opts, log)
	defer s.stop()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !s.handle(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}
