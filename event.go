package gowin

import (
	"github.com/tinyrange/gowin/input"
)

// Event is a normalized window or input notification. The concrete types
// below are the only implementations.
type Event interface {
	isEvent()
}

// Created is the first event the window delivers. It carries the native
// handles an external renderer needs to attach.
type Created struct {
	Window   uintptr // HWND
	Instance uintptr // HINSTANCE
}

// CloseRequested means the user asked the window to close, usually via the
// X button. The window only acts on it when Settings.CloseOnX is set; it
// is always delivered as a hint either way.
type CloseRequested struct{}

// Paint asks the application to redraw. Redraw requests coalesce until the
// next Paint is delivered.
type Paint struct{}

// KeyEvent is a translated keyboard transition.
type KeyEvent struct {
	Key      input.Key
	State    input.KeyState
	ScanCode uint16
	Extended bool
}

// MouseButtonEvent is a translated mouse-button transition. Position is in
// physical client coordinates.
type MouseButtonEvent struct {
	Button      input.Button
	State       input.ButtonState
	Position    PhysicalPosition
	DoubleClick bool
}

// CursorKind situates a cursor report relative to the client area.
type CursorKind uint8

const (
	// CursorInside is an ordinary move within the client area.
	CursorInside CursorKind = iota
	// CursorEntered is the first report after the cursor came back.
	CursorEntered
	// CursorLeft reports the cursor leaving the client area.
	CursorLeft
)

// CursorEvent reports bounded cursor movement in physical client
// coordinates. While the cursor is confined the OS pins it to the clip
// center, so treat confined reports as cursor-at-center and use
// RawMouseMotion for actual motion.
type CursorEvent struct {
	Position PhysicalPosition
	Kind     CursorKind
}

// Scroll is a wheel actuation in notches; exactly one axis is non-zero.
// Horizontal deltas carry whatever sign the driver reported.
type Scroll struct {
	Dx float64
	Dy float64
}

// Resized reports the new physical outer size once a size change commits.
type Resized struct {
	Size PhysicalSize
}

// Moved reports the new physical outer position once a move commits.
type Moved struct {
	Position PhysicalPosition
}

// BoundsChanged precedes Resized/Moved with the full outer rectangle.
type BoundsChanged struct {
	Position PhysicalPosition
	Size     PhysicalSize
}

// Focus reports keyboard focus changes.
type Focus struct {
	Gained bool
}

// ScaleFactorChanged reports a DPI transition. The window has already been
// moved to the OS-suggested rectangle when this arrives.
type ScaleFactorChanged struct {
	Scale float64
}

// ModifiersChanged reports a change in the modifier set.
type ModifiersChanged struct {
	Mods input.Mods
}

// Text carries the characters produced by keyboard translation.
type Text struct {
	Chars string
}

// RawKey is an untranslated keyboard transition from the raw input stream.
type RawKey struct {
	Key   input.Key
	State input.ButtonState // raw keys have no repeats
}

// RawMouseButton is a button transition from the raw input stream.
type RawMouseButton struct {
	Button input.Button
	State  input.ButtonState
}

// RawMouseMotion is unbounded relative mouse motion, suited to
// first-person camera control.
type RawMouseMotion struct {
	Dx float64
	Dy float64
}

// Empty is returned by NextEvent in Poll flow when nothing is pending.
type Empty struct{}

func (Created) isEvent()            {}
func (CloseRequested) isEvent()     {}
func (Paint) isEvent()              {}
func (KeyEvent) isEvent()           {}
func (MouseButtonEvent) isEvent()   {}
func (CursorEvent) isEvent()        {}
func (Scroll) isEvent()             {}
func (Resized) isEvent()            {}
func (Moved) isEvent()              {}
func (BoundsChanged) isEvent()      {}
func (Focus) isEvent()              {}
func (ScaleFactorChanged) isEvent() {}
func (ModifiersChanged) isEvent()   {}
func (Text) isEvent()               {}
func (RawKey) isEvent()             {}
func (RawMouseButton) isEvent()     {}
func (RawMouseMotion) isEvent()     {}
func (Empty) isEvent()              {}

// IsKey reports whether e is a KeyEvent for key in the given phase.
func IsKey(e Event, key input.Key, phase input.KeyPhase) bool {
	k, ok := e.(KeyEvent)
	return ok && k.Key == key && k.State.Phase == phase
}

// IsMouseButton reports whether e is a MouseButtonEvent for button in the
// given state.
func IsMouseButton(e Event, button input.Button, state input.ButtonState) bool {
	m, ok := e.(MouseButtonEvent)
	return ok && m.Button == button && m.State == state
}
