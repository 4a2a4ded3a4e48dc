package gowin

import (
	"sync"

	"github.com/tinyrange/gowin/input"
	"github.com/tinyrange/gowin/internal/win32"
)

// Stage is the window's position in its lifecycle. It only ever moves
// forward.
type Stage uint8

const (
	// StageLooping is the steady state: the window exists and pumps events.
	StageLooping Stage = iota
	// StageClosing means close was requested; destruction is queued.
	StageClosing
	// StageExiting means the native window is gone and the pump is
	// unwinding.
	StageExiting
	// StageDestroyed is terminal; commands are dropped silently.
	StageDestroyed
)

func (s Stage) String() string {
	switch s {
	case StageLooping:
		return "Looping"
	case StageClosing:
		return "Closing"
	case StageExiting:
		return "Exiting"
	case StageDestroyed:
		return "Destroyed"
	default:
		return "Stage(?)"
	}
}

// Visibility covers anything that is either shown or hidden: the window,
// its decorations, the cursor.
type Visibility uint8

const (
	Shown Visibility = iota
	Hidden
)

// Fullscreen selects the window's fullscreen arrangement.
type Fullscreen uint8

const (
	// Windowed is ordinary windowed operation.
	Windowed Fullscreen = iota
	// Borderless sizes a popup-style window to exactly cover its monitor.
	Borderless
)

// CursorMode controls whether the cursor may leave the client area.
type CursorMode uint8

const (
	CursorNormal CursorMode = iota
	CursorConfined
)

// Flow selects how NextEvent behaves when no event is pending.
type Flow uint8

const (
	// Wait blocks until an event arrives.
	Wait Flow = iota
	// Poll returns Empty immediately.
	Poll
)

// Theme selects the title-bar theme.
type Theme uint8

const (
	ThemeAuto Theme = iota
	ThemeDark
	ThemeLight
)

// style is the window's appearance record. Win32 style bits are derived
// from it, never stored.
type style struct {
	visibility  Visibility
	decorations Visibility
	resizable   bool
	fullscreen  Fullscreen
	minimized   bool
	maximized   bool
	focused     bool
	active      bool
}

// bits derives the Win32 style and extended-style words. Borderless
// fullscreen wins over everything else; hidden decorations strip the
// caption and border but keep the frameless resize behavior.
func (s style) bits() (uint32, uint32) {
	st := uint32(win32.WS_CAPTION | win32.WS_BORDER | win32.WS_CLIPSIBLINGS | win32.WS_SYSMENU)
	ex := uint32(win32.WS_EX_WINDOWEDGE | win32.WS_EX_APPWINDOW)

	if s.resizable {
		st |= win32.WS_THICKFRAME | win32.WS_MINIMIZEBOX | win32.WS_MAXIMIZEBOX
	}
	if s.decorations == Hidden {
		st &^= win32.WS_CAPTION | win32.WS_BORDER
		ex &^= win32.WS_EX_WINDOWEDGE
	}
	if s.fullscreen == Borderless {
		st &^= win32.WS_OVERLAPPEDWINDOW
		st |= win32.WS_POPUP
		ex &^= win32.WS_EX_WINDOWEDGE
	}
	if s.minimized {
		st |= win32.WS_MINIMIZE
	}
	if s.maximized && s.fullscreen != Borderless {
		st |= win32.WS_MAXIMIZE
	}
	if s.visibility == Shown {
		st |= win32.WS_VISIBLE
	}
	return st, ex
}

// state is the authoritative window record. One mutex guards all of it;
// the guard is never held across an OS call.
type state struct {
	mu sync.Mutex

	title    string
	subtitle string

	stage Stage
	style style

	size      PhysicalSize
	innerSize PhysicalSize
	position  PhysicalPosition

	lastWindowedSize     PhysicalSize
	lastWindowedPosition PhysicalPosition

	scaleFactor float64

	cursorMode       CursorMode
	cursorVisibility Visibility

	flow     Flow
	closeOnX bool
	theme    Theme

	input *input.State

	requestedRedraw bool
}

func newState(s Settings) *state {
	return &state{
		title:    s.Title,
		subtitle: s.Subtitle,
		style: style{
			visibility:  s.Visibility,
			decorations: s.Decorations,
			resizable:   s.Resizable,
			fullscreen:  s.Fullscreen,
		},
		scaleFactor:      1.0,
		cursorMode:       s.CursorMode,
		cursorVisibility: s.CursorVisibility,
		flow:             s.Flow,
		closeOnX:         s.CloseOnX,
		theme:            s.Theme,
		input:            input.NewState(),
	}
}

// advance moves the stage forward, never backward.
func (s *state) advance(to Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if to > s.stage {
		s.stage = to
	}
}

func (s *state) currentStage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// caption is the OS title string, title followed by subtitle.
func (s *state) caption() string {
	return s.title + s.subtitle
}

// creationStyle is the style words to create the native window with:
// hidden until settings are applied, and windowed. A configured
// borderless fullscreen is reset on the record so the transition runs as
// a regular command once the window exists; leaving it recorded would
// make that command a no-op.
func (s *state) creationStyle() (uint32, uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style.fullscreen = Windowed
	st := s.style
	st.visibility = Hidden
	return st.bits()
}

// keyEvents records a decoded key message plus the modifier snapshot read
// with it, and returns the events to deliver. The modifier change goes
// out first, so by the time the application observes the key event a
// Mods() read already matches the OS state.
func (s *state) keyEvents(ev KeyEvent, mods input.Mods) []Event {
	s.mu.Lock()
	s.input.SetKey(ev.Key, ev.State)
	changed := s.input.Mods() != mods
	s.input.SetMods(mods)
	s.mu.Unlock()
	if changed {
		return []Event{ModifiersChanged{Mods: mods}, ev}
	}
	return []Event{ev}
}

// setBounds records committed geometry. Windowed geometry is snapshotted
// so leaving fullscreen can restore it.
func (s *state) setBounds(pos PhysicalPosition, size PhysicalSize) {
	s.position = pos
	s.size = size
	if s.style.fullscreen == Windowed && !s.style.minimized && !s.style.maximized {
		s.lastWindowedPosition = pos
		s.lastWindowedSize = size
	}
}
