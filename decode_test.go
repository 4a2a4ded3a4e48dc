package gowin

import (
	"testing"

	"github.com/tinyrange/gowin/input"
	"github.com/tinyrange/gowin/internal/win32"
)

// fakeMapVK reproduces the layout mappings the decoder relies on, enough
// of a US layout to cover the interesting keys.
func fakeMapVK(code, mapType uint32) uint32 {
	switch mapType {
	case win32.MAPVK_VSC_TO_VK_EX:
		switch code {
		case 0x1E:
			return 'A'
		case 0x2A:
			return win32.VK_LSHIFT
		case 0x36:
			return win32.VK_RSHIFT
		case 0x1D:
			return win32.VK_LCONTROL
		case 0xE01D:
			return win32.VK_RCONTROL
		case 0x1C:
			return win32.VK_RETURN
		case 0xE01C:
			return win32.VK_RETURN // numpad enter shares the VK
		case 0x45:
			return win32.VK_NUMLOCK
		case 0xE045:
			return win32.VK_PAUSE // layout API conflates these
		case 0x4F:
			return win32.VK_NUMPAD1
		case 0x52:
			return win32.VK_NUMPAD0
		case 0x48:
			return win32.VK_NUMPAD8
		case 0xE048:
			return win32.VK_UP
		}
	case win32.MAPVK_VK_TO_VSC_EX:
		switch code {
		case win32.VK_NUMLOCK:
			return 0x45
		}
	}
	return 0
}

func keyLParam(scan uint16, extended, up, repeat bool, repeats uint16) uintptr {
	flags := uint32(scan) & 0xFF
	if extended {
		flags |= win32.KF_EXTENDED
	}
	if up {
		flags |= win32.KF_UP
	}
	if repeat {
		flags |= win32.KF_REPEAT
	}
	return uintptr(flags<<16 | uint32(repeats))
}

func TestDecodeKeyPlain(t *testing.T) {
	got := decodeKey(keyLParam(0x1E, false, false, false, 1), fakeMapVK)
	want := KeyEvent{
		Key:      input.KeyA,
		State:    input.KeyState{Phase: input.Pressed},
		ScanCode: 0x1E,
	}
	if got != want {
		t.Errorf("decodeKey(A down) = %+v, want %+v", got, want)
	}

	got = decodeKey(keyLParam(0x1E, false, true, true, 1), fakeMapVK)
	if got.Key != input.KeyA || got.State.Phase != input.Released {
		t.Errorf("decodeKey(A up) = %+v, want A released", got)
	}
}

func TestDecodeKeyHeldCarriesRepeats(t *testing.T) {
	got := decodeKey(keyLParam(0x1E, false, false, true, 12), fakeMapVK)
	if got.State.Phase != input.Held || got.State.Repeats != 12 {
		t.Errorf("decodeKey(held) state = %+v, want Held/12", got.State)
	}
}

func TestDecodeKeyExtendedRightControl(t *testing.T) {
	// Right control arrives as scancode 0x1D with the extended flag; the
	// extended mapping must win over the plain one.
	got := decodeKey(keyLParam(0x1D, true, false, false, 1), fakeMapVK)
	if got.Key != input.KeyRightControl {
		t.Errorf("decodeKey(ext 0x1D) key = %v, want RightControl", got.Key)
	}
	if got.ScanCode != 0xE01D || !got.Extended {
		t.Errorf("decodeKey(ext 0x1D) = scan %#x ext %v, want 0xE01D true",
			got.ScanCode, got.Extended)
	}

	// Without the extended flag the same scancode is left control.
	got = decodeKey(keyLParam(0x1D, false, false, false, 1), fakeMapVK)
	if got.Key != input.KeyLeftControl {
		t.Errorf("decodeKey(0x1D) key = %v, want LeftControl", got.Key)
	}
}

func TestDecodeKeyNavigationVsNumpad(t *testing.T) {
	// Scancode 0x48 is numpad 8 plain but arrow-up extended.
	got := decodeKey(keyLParam(0x48, false, false, false, 1), fakeMapVK)
	if got.Key != input.KeyNumpad8 {
		t.Errorf("decodeKey(0x48) key = %v, want Numpad8", got.Key)
	}
	got = decodeKey(keyLParam(0x48, true, false, false, 1), fakeMapVK)
	if got.Key != input.KeyUp {
		t.Errorf("decodeKey(ext 0x48) key = %v, want Up", got.Key)
	}
}

func TestDecodeMouseButton(t *testing.T) {
	lparam := uintptr(uint32(200)<<16 | 320) // y=200 x=320
	tests := []struct {
		name   string
		msg    uint32
		wparam uintptr
		want   MouseButtonEvent
	}{
		{
			"left down", win32.WM_LBUTTONDOWN, win32.MK_LBUTTON,
			MouseButtonEvent{input.ButtonLeft, input.ButtonPressed, PhysicalPosition{320, 200}, false},
		},
		{
			"left up", win32.WM_LBUTTONUP, 0,
			MouseButtonEvent{input.ButtonLeft, input.ButtonReleased, PhysicalPosition{320, 200}, false},
		},
		{
			"right double", win32.WM_RBUTTONDBLCLK, win32.MK_RBUTTON,
			MouseButtonEvent{input.ButtonRight, input.ButtonPressed, PhysicalPosition{320, 200}, true},
		},
		{
			"back down", win32.WM_XBUTTONDOWN, uintptr(win32.MK_XBUTTON1 | win32.XBUTTON1<<16),
			MouseButtonEvent{input.Button4, input.ButtonPressed, PhysicalPosition{320, 200}, false},
		},
		{
			"forward up", win32.WM_XBUTTONUP, uintptr(win32.XBUTTON2 << 16),
			MouseButtonEvent{input.Button5, input.ButtonReleased, PhysicalPosition{320, 200}, false},
		},
	}
	for _, tt := range tests {
		if got := decodeMouseButton(tt.msg, tt.wparam, lparam); got != tt.want {
			t.Errorf("%s: decodeMouseButton = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestDecodeMouseButtonNegativeCoordinates(t *testing.T) {
	// Multi-monitor setups produce negative client coordinates.
	x, y := int16(-15), int16(-7)
	lparam := uintptr(uint32(uint16(y))<<16 | uint32(uint16(x)))
	got := decodeMouseButton(win32.WM_LBUTTONDOWN, win32.MK_LBUTTON, lparam)
	if got.Position != (PhysicalPosition{-15, -7}) {
		t.Errorf("position = %+v, want {-15 -7}", got.Position)
	}
}

func TestDecodeScroll(t *testing.T) {
	tests := []struct {
		msg    uint32
		wparam uintptr
		want   Scroll
	}{
		{win32.WM_MOUSEWHEEL, uintptr(uint32(uint16(int16(360))) << 16), Scroll{Dy: 3}},
		{win32.WM_MOUSEWHEEL, uintptr(uint32(0xFF88) << 16), Scroll{Dy: -1}}, // -120
		{win32.WM_MOUSEHWHEEL, uintptr(uint32(uint16(int16(120))) << 16), Scroll{Dx: 1}},
		{win32.WM_MOUSEWHEEL, uintptr(uint32(uint16(int16(60))) << 16), Scroll{Dy: 0.5}},
	}
	for _, tt := range tests {
		if got := decodeScroll(tt.msg, tt.wparam); got != tt.want {
			t.Errorf("decodeScroll(%#x, %#x) = %+v, want %+v", tt.msg, tt.wparam, got, tt.want)
		}
	}
}

func TestDecodeRawKeyboard(t *testing.T) {
	got, ok := decodeRawKeyboard(win32.RawKeyboard{
		MakeCode: 0x1E,
		VKey:     'A',
	}, fakeMapVK)
	if !ok || got.Key != input.KeyA || got.State != input.ButtonPressed {
		t.Errorf("raw A down = %+v ok=%v, want A pressed", got, ok)
	}

	got, ok = decodeRawKeyboard(win32.RawKeyboard{
		MakeCode: 0x1E,
		Flags:    win32.RI_KEY_BREAK,
		VKey:     'A',
	}, fakeMapVK)
	if !ok || got.State != input.ButtonReleased {
		t.Errorf("raw A up = %+v ok=%v, want A released", got, ok)
	}
}

func TestDecodeRawKeyboardDropsPauseCtrlPrefix(t *testing.T) {
	// Pause begins with Ctrl 0x1D carrying the E1 extension.
	if _, ok := decodeRawKeyboard(win32.RawKeyboard{
		MakeCode: 0x1D,
		Flags:    win32.RI_KEY_E1,
		VKey:     win32.VK_CONTROL,
	}, fakeMapVK); ok {
		t.Error("Pause's Ctrl prefix (0xE11D) was not dropped")
	}
}

func TestDecodeRawKeyboardDropsPrintScreenShiftPrefix(t *testing.T) {
	if _, ok := decodeRawKeyboard(win32.RawKeyboard{
		MakeCode: 0x2A,
		Flags:    win32.RI_KEY_E0,
		VKey:     win32.VK_SHIFT,
	}, fakeMapVK); ok {
		t.Error("PrintScreen's shift prefix (0xE02A) was not dropped")
	}
}

func TestDecodeRawKeyboardNumLockUsesVirtualKey(t *testing.T) {
	// Scancode 0x45 maps to Pause through the layout, but a packet whose
	// virtual key says NumLock is NumLock.
	got, ok := decodeRawKeyboard(win32.RawKeyboard{
		MakeCode: 0x45,
		VKey:     win32.VK_NUMLOCK,
	}, fakeMapVK)
	if !ok || got.Key != input.KeyNumLock {
		t.Errorf("raw NumLock = %+v ok=%v, want NumLock", got, ok)
	}
}

func TestDecodeRawKeyboardDropsFakeShiftOnNumpad(t *testing.T) {
	// The fabricated shift release reports VK_SHIFT with a numpad
	// scancode.
	if _, ok := decodeRawKeyboard(win32.RawKeyboard{
		MakeCode: 0x52, // numpad 0
		Flags:    win32.RI_KEY_BREAK,
		VKey:     win32.VK_SHIFT,
	}, fakeMapVK); ok {
		t.Error("fake shift release around a numpad press was not dropped")
	}

	// A real shift release has the shift's own scancode and passes.
	got, ok := decodeRawKeyboard(win32.RawKeyboard{
		MakeCode: 0x2A,
		Flags:    win32.RI_KEY_BREAK,
		VKey:     win32.VK_SHIFT,
	}, fakeMapVK)
	if !ok || got.Key != input.KeyLeftShift || got.State != input.ButtonReleased {
		t.Errorf("real shift release = %+v ok=%v, want LeftShift released", got, ok)
	}
}

func TestDecodeRawMouseMotion(t *testing.T) {
	events := decodeRawMouse(win32.RawMouse{LastX: 5, LastY: -3})
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if m, ok := events[0].(RawMouseMotion); !ok || m.Dx != 5 || m.Dy != -3 {
		t.Errorf("event = %#v, want RawMouseMotion{5 -3}", events[0])
	}
}

func TestDecodeRawMouseIgnoresAbsoluteAndZeroMotion(t *testing.T) {
	if events := decodeRawMouse(win32.RawMouse{
		Flags: win32.MOUSE_MOVE_ABSOLUTE,
		LastX: 100,
		LastY: 100,
	}); len(events) != 0 {
		t.Errorf("absolute motion produced %d events, want 0", len(events))
	}
	if events := decodeRawMouse(win32.RawMouse{}); len(events) != 0 {
		t.Errorf("zero motion produced %d events, want 0", len(events))
	}
}

func TestDecodeRawMouseMultipleTransitions(t *testing.T) {
	m := win32.RawMouse{
		Buttons: win32.RI_MOUSE_LEFT_BUTTON_DOWN | win32.RI_MOUSE_RIGHT_BUTTON_UP,
		LastX:   2,
	}
	events := decodeRawMouse(m)
	if len(events) != 3 {
		t.Fatalf("got %d events, want motion + 2 buttons", len(events))
	}
	if _, ok := events[0].(RawMouseMotion); !ok {
		t.Errorf("events[0] = %#v, want RawMouseMotion", events[0])
	}
	left, ok := events[1].(RawMouseButton)
	if !ok || left.Button != input.ButtonLeft || left.State != input.ButtonPressed {
		t.Errorf("events[1] = %#v, want left pressed", events[1])
	}
	right, ok := events[2].(RawMouseButton)
	if !ok || right.Button != input.ButtonRight || right.State != input.ButtonReleased {
		t.Errorf("events[2] = %#v, want right released", events[2])
	}
}

func TestReadModifiers(t *testing.T) {
	downSet := map[int32]bool{win32.VK_SHIFT: true, win32.VK_RWIN: true}
	fake := func(vk int32) int16 {
		if downSet[vk] {
			return -32768
		}
		return 0
	}
	mods := readModifiers(fake)
	if !mods.Shift() || !mods.Super() || mods.Ctrl() || mods.Alt() {
		t.Errorf("readModifiers = %v, want Shift+Super", mods)
	}
}
