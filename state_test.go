package gowin

import (
	"testing"

	"github.com/tinyrange/gowin/input"
	"github.com/tinyrange/gowin/internal/win32"
)

func TestStyleBitsDefault(t *testing.T) {
	s := style{visibility: Shown, decorations: Shown, resizable: true}
	st, ex := s.bits()

	for _, want := range []uint32{
		win32.WS_CAPTION, win32.WS_BORDER, win32.WS_SYSMENU,
		win32.WS_CLIPSIBLINGS, win32.WS_THICKFRAME,
		win32.WS_MINIMIZEBOX, win32.WS_MAXIMIZEBOX, win32.WS_VISIBLE,
	} {
		if st&want == 0 {
			t.Errorf("style bits %#x missing %#x", st, want)
		}
	}
	if st&win32.WS_POPUP != 0 {
		t.Errorf("style bits %#x carry WS_POPUP for a windowed style", st)
	}
	if ex&win32.WS_EX_WINDOWEDGE == 0 || ex&win32.WS_EX_APPWINDOW == 0 {
		t.Errorf("ex-style bits = %#x, want WINDOWEDGE|APPWINDOW", ex)
	}
}

func TestStyleBitsNotResizable(t *testing.T) {
	s := style{visibility: Shown, decorations: Shown}
	st, _ := s.bits()
	if st&(win32.WS_THICKFRAME|win32.WS_MAXIMIZEBOX|win32.WS_MINIMIZEBOX) != 0 {
		t.Errorf("style bits %#x carry resize bits without resizable", st)
	}
}

func TestStyleBitsBorderless(t *testing.T) {
	s := style{visibility: Shown, decorations: Shown, resizable: true, fullscreen: Borderless}
	st, ex := s.bits()
	if st&win32.WS_POPUP == 0 {
		t.Errorf("style bits %#x missing WS_POPUP for borderless", st)
	}
	if st&win32.WS_OVERLAPPEDWINDOW != 0 {
		t.Errorf("style bits %#x keep overlapped-window bits in borderless", st)
	}
	if ex&win32.WS_EX_WINDOWEDGE != 0 {
		t.Errorf("ex-style bits %#x keep WS_EX_WINDOWEDGE in borderless", ex)
	}
}

func TestStyleBitsHiddenDecorations(t *testing.T) {
	s := style{visibility: Shown, decorations: Hidden, resizable: true}
	st, _ := s.bits()
	if st&(win32.WS_CAPTION|win32.WS_BORDER) != 0 {
		t.Errorf("style bits %#x keep caption/border with hidden decorations", st)
	}
}

func TestStyleBitsHiddenWindow(t *testing.T) {
	s := style{visibility: Hidden, decorations: Shown}
	st, _ := s.bits()
	if st&win32.WS_VISIBLE != 0 {
		t.Errorf("style bits %#x carry WS_VISIBLE for a hidden window", st)
	}
}

func TestStageAdvanceIsMonotone(t *testing.T) {
	s := newState(DefaultSettings())
	if got := s.currentStage(); got != StageLooping {
		t.Fatalf("initial stage = %v, want Looping", got)
	}
	s.advance(StageExiting)
	s.advance(StageClosing) // backward, must not apply
	if got := s.currentStage(); got != StageExiting {
		t.Errorf("stage = %v, want Exiting after backward advance attempt", got)
	}
	s.advance(StageDestroyed)
	s.advance(StageLooping)
	if got := s.currentStage(); got != StageDestroyed {
		t.Errorf("stage = %v, want Destroyed", got)
	}
}

func TestSetBoundsSnapshotsWindowedGeometry(t *testing.T) {
	s := newState(DefaultSettings())

	s.setBounds(PhysicalPosition{100, 100}, PhysicalSize{1024, 768})
	if s.lastWindowedSize != (PhysicalSize{1024, 768}) {
		t.Errorf("lastWindowedSize = %+v, want {1024 768}", s.lastWindowedSize)
	}

	// Fullscreen geometry must not disturb the snapshot.
	s.style.fullscreen = Borderless
	s.setBounds(PhysicalPosition{0, 0}, PhysicalSize{2560, 1440})
	if s.size != (PhysicalSize{2560, 1440}) {
		t.Errorf("size = %+v, want monitor size", s.size)
	}
	if s.lastWindowedSize != (PhysicalSize{1024, 768}) ||
		s.lastWindowedPosition != (PhysicalPosition{100, 100}) {
		t.Errorf("windowed snapshot changed in fullscreen: %+v %+v",
			s.lastWindowedPosition, s.lastWindowedSize)
	}
}

func TestCreationStyleResetsConfiguredFullscreen(t *testing.T) {
	settings := DefaultSettings()
	settings.Fullscreen = Borderless
	s := newState(settings)

	st, _ := s.creationStyle()
	if st&win32.WS_POPUP != 0 {
		t.Errorf("creation style %#x carries WS_POPUP, want a windowed frame", st)
	}
	if st&win32.WS_VISIBLE != 0 {
		t.Errorf("creation style %#x carries WS_VISIBLE", st)
	}

	// The record must read Windowed afterwards, so the queued borderless
	// transition sees a real change and applies the popup style and
	// monitor rect instead of early-outing.
	s.mu.Lock()
	got := s.style.fullscreen
	s.mu.Unlock()
	if got != Windowed {
		t.Errorf("fullscreen after creationStyle = %v, want Windowed", got)
	}
}

func TestKeyEventsDeliverModifierChangeFirst(t *testing.T) {
	s := newState(DefaultSettings())

	press := KeyEvent{
		Key:      input.KeyLeftShift,
		State:    input.KeyState{Phase: input.Pressed},
		ScanCode: 0x2A,
	}
	events := s.keyEvents(press, input.ModShift)
	if len(events) != 2 {
		t.Fatalf("got %d events for a modifier press, want 2", len(events))
	}
	mc, ok := events[0].(ModifiersChanged)
	if !ok {
		t.Fatalf("first event = %T, want ModifiersChanged before the key", events[0])
	}
	if !mc.Mods.Shift() {
		t.Errorf("ModifiersChanged mods = %v, want shift down", mc.Mods)
	}
	if _, ok := events[1].(KeyEvent); !ok {
		t.Fatalf("second event = %T, want KeyEvent", events[1])
	}

	// The store is updated before either event goes out, so a Mods()
	// read inside the application's key handler is already current.
	s.mu.Lock()
	mods := s.input.Mods()
	key := s.input.Key(input.KeyLeftShift)
	s.mu.Unlock()
	if !mods.Shift() {
		t.Error("modifier snapshot not recorded before delivery")
	}
	if !key.IsDown() {
		t.Error("key state not recorded before delivery")
	}

	// An unchanged snapshot emits only the key event.
	events = s.keyEvents(KeyEvent{Key: input.KeyA, State: input.KeyState{Phase: input.Pressed}, ScanCode: 0x1E}, input.ModShift)
	if len(events) != 1 {
		t.Fatalf("got %d events with unchanged modifiers, want 1", len(events))
	}
	if _, ok := events[0].(KeyEvent); !ok {
		t.Errorf("event = %T, want KeyEvent", events[0])
	}
}

func TestCaption(t *testing.T) {
	s := newState(Settings{Title: "app", Subtitle: " - scene"})
	if got := s.caption(); got != "app - scene" {
		t.Errorf("caption() = %q, want %q", got, "app - scene")
	}
}
