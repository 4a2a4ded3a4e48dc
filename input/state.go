package input

import "fmt"

// KeyPhase is the lifecycle position of a key transition.
type KeyPhase uint8

const (
	// Released means the key is up. Keys that were never touched report
	// Released too.
	Released KeyPhase = iota
	// Pressed means the key went down this transition.
	Pressed
	// Held means the OS delivered an auto-repeat while the key stayed down.
	Held
)

func (p KeyPhase) String() string {
	switch p {
	case Released:
		return "Released"
	case Pressed:
		return "Pressed"
	case Held:
		return "Held"
	default:
		return fmt.Sprintf("KeyPhase(%d)", uint8(p))
	}
}

// KeyState is a key's phase plus the repeat count the OS reported with it.
// Repeats is only meaningful while Phase is Held.
type KeyState struct {
	Phase   KeyPhase
	Repeats uint16
}

// IsDown reports whether the state means the key is physically down.
func (s KeyState) IsDown() bool {
	return s.Phase == Pressed || s.Phase == Held
}

// ButtonState mirrors KeyPhase for mouse buttons, which have no repeats.
type ButtonState uint8

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

func (s ButtonState) IsDown() bool { return s == ButtonPressed }

func (s ButtonState) String() string {
	if s == ButtonPressed {
		return "Pressed"
	}
	return "Released"
}

// Mods is the set of modifier keys currently down.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

func (m Mods) Shift() bool { return m&ModShift != 0 }
func (m Mods) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Mods) Alt() bool   { return m&ModAlt != 0 }
func (m Mods) Super() bool { return m&ModSuper != 0 }

func (m Mods) String() string {
	s := ""
	if m.Shift() {
		s += "Shift+"
	}
	if m.Ctrl() {
		s += "Ctrl+"
	}
	if m.Alt() {
		s += "Alt+"
	}
	if m.Super() {
		s += "Super+"
	}
	if s == "" {
		return "None"
	}
	return s[:len(s)-1]
}

// State accumulates the most recent key, button and modifier transitions.
// It is not synchronized; the window owns one and guards it.
type State struct {
	keys    map[Key]KeyState
	buttons map[Button]ButtonState
	mods    Mods
}

func NewState() *State {
	return &State{
		keys:    make(map[Key]KeyState),
		buttons: make(map[Button]ButtonState),
	}
}

// Key returns the recorded state for k, Released if none was recorded.
func (s *State) Key(k Key) KeyState {
	return s.keys[k]
}

// Button returns the recorded state for b, Released if none was recorded.
func (s *State) Button(b Button) ButtonState {
	return s.buttons[b]
}

func (s *State) Mods() Mods { return s.mods }

func (s *State) SetKey(k Key, st KeyState) {
	if k == KeyUnknown {
		return
	}
	s.keys[k] = st
}

func (s *State) SetButton(b Button, st ButtonState) {
	s.buttons[b] = st
}

func (s *State) SetMods(m Mods) { s.mods = m }

// Clone deep-copies the state for handing to another goroutine.
func (s *State) Clone() *State {
	c := &State{
		keys:    make(map[Key]KeyState, len(s.keys)),
		buttons: make(map[Button]ButtonState, len(s.buttons)),
		mods:    s.mods,
	}
	for k, v := range s.keys {
		c.keys[k] = v
	}
	for b, v := range s.buttons {
		c.buttons[b] = v
	}
	return c
}
