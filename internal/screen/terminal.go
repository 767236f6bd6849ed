// Package screen is the alternate terminal driver, built directly on tcell.
//
// A Terminal is both the engine's Surface and its input Source. Every tcell
// mouse report carries the full button mask, so Held answers from the most
// recent report instead of guessing at releases.
package screen

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/forestfire/internal/input"
	"github.com/san-kum/forestfire/internal/render"
)

var ErrClosed = errors.New("screen: terminal closed")

const queueSize = 256

type Terminal struct {
	screen  tcell.Screen
	events  chan tcell.Event
	done    chan struct{}
	buttons tcell.ButtonMask
	closed  bool
}

// New opens the controlling terminal.
func New() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(s)
}

// NewWithScreen initialises s, turns on mouse reporting and starts the
// event pump.
func NewWithScreen(s tcell.Screen) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.HideCursor()
	s.Clear()

	t := &Terminal{
		screen: s,
		events: make(chan tcell.Event, queueSize),
		done:   make(chan struct{}),
	}
	go t.pump()
	return t, nil
}

func (t *Terminal) pump() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() {
	if t.closed {
		return
	}
	t.closed = true
	close(t.done)
	t.screen.Fini()
}

// Present draws f at the top-left corner; cells past the terminal edge are
// clipped.
func (t *Terminal) Present(f *render.Frame) error {
	if t.closed {
		return ErrClosed
	}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			st := f.At(x, y)
			t.screen.SetContent(x, y, st.Glyph, nil, styleOf(st))
		}
	}
	t.screen.Show()
	return nil
}

func styleOf(st render.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(int(st.Fg))).
		Background(tcell.PaletteColor(int(st.Bg)))
}

// Held reports the button state from the latest mouse report.
func (t *Terminal) Held(b input.Button) bool {
	switch b {
	case input.ButtonLeft:
		return t.buttons&tcell.Button1 != 0
	case input.ButtonRight:
		return t.buttons&tcell.Button2 != 0
	}
	return false
}

// Drain returns every event queued since the last call without blocking.
func (t *Terminal) Drain() ([]input.Event, error) {
	var out []input.Event
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return out, ErrClosed
			}
			out = append(out, t.translate(ev)...)
		default:
			return out, nil
		}
	}
}

func (t *Terminal) translate(ev tcell.Event) []input.Event {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		mask := ev.Buttons()
		pressed := mask &^ t.buttons
		t.buttons = mask

		var out []input.Event
		if pressed&tcell.Button1 != 0 {
			out = append(out, input.PointerButtonDown{Button: input.ButtonLeft, X: x, Y: y})
		}
		if pressed&tcell.Button2 != 0 {
			out = append(out, input.PointerButtonDown{Button: input.ButtonRight, X: x, Y: y})
		}
		if len(out) == 0 {
			out = append(out, input.PointerMoved{X: x, Y: y})
		}
		return out
	case *tcell.EventKey:
		return []input.Event{input.KeyDown{Key: keyOf(ev)}}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return nil
}

func keyOf(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyCtrlC:
		return input.KeyQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return input.KeyQuit
		case ' ':
			return input.KeyPause
		case 'r':
			return input.KeyReset
		}
	}
	return input.KeyOther
}
