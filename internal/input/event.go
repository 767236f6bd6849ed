// Package input turns raw pointer and keyboard reports into the interaction
// state the forest reads during a sweep.
//
// Button release is detected by polling, not by events. Terminals and consoles
// do not reliably deliver a release report (a release outside the window, a
// focus change, a dropped escape sequence), so a latch set by a button-down
// event stays set until a poll says the physical button is up.
package input

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	}
	return "unknown"
}

// Key is a decoded keyboard action.
type Key int

const (
	KeyOther Key = iota
	KeyEscape
	KeyQuit
	KeyPause
	KeyHelp
	KeyReset
)

// Event is one discrete report from the input source.
type Event interface {
	isEvent()
}

type KeyDown struct {
	Key Key
}

type PointerMoved struct {
	X, Y int
}

type PointerButtonDown struct {
	Button Button
	X, Y   int
}

func (KeyDown) isEvent()           {}
func (PointerMoved) isEvent()      {}
func (PointerButtonDown) isEvent() {}

// Poller reports whether a button is physically held right now.
type Poller interface {
	Held(b Button) bool
}
