package gowin

import (
	"github.com/tinyrange/gowin/input"
	"github.com/tinyrange/gowin/internal/win32"
)

// mapVKFunc is MapVirtualKeyW. The decoder takes it as a parameter so the
// translation logic stays a pure function of its inputs.
type mapVKFunc func(code, mapType uint32) uint32

func loByte(v uint16) uint8       { return uint8(v) }
func loWord(v uint32) uint16      { return uint16(v) }
func hiWord(v uint32) uint16      { return uint16(v >> 16) }
func signedHiWord(v uint32) int16 { return int16(hiWord(v)) }
func signedLoWord(v uint32) int16 { return int16(loWord(v)) }

// decodeKey translates a WM_KEYDOWN/WM_KEYUP family message. The virtual
// key is re-derived from the scancode because the message's own wparam
// mislabels numpad enter, numpad divide, right-control, right-alt and the
// navigation cluster. When the extended flag is set and the extended
// scancode maps to a key, that mapping wins.
func decodeKey(lparam uintptr, mapVK mapVKFunc) KeyEvent {
	flags := hiWord(uint32(lparam))
	extended := flags&win32.KF_EXTENDED != 0

	scan := uint16(loByte(flags))
	extScan := 0xE000 | scan

	extVK := loWord(mapVK(uint32(extScan), win32.MAPVK_VSC_TO_VK_EX))
	var vk uint16
	if extVK != 0 && extended {
		scan = extScan
		vk = extVK
	} else {
		vk = loWord(mapVK(uint32(scan), win32.MAPVK_VSC_TO_VK_EX))
	}

	var state input.KeyState
	switch {
	case flags&win32.KF_UP != 0:
		state = input.KeyState{Phase: input.Released}
	case flags&win32.KF_REPEAT != 0:
		state = input.KeyState{Phase: input.Held, Repeats: loWord(uint32(lparam))}
	default:
		state = input.KeyState{Phase: input.Pressed}
	}

	return KeyEvent{
		Key:      input.KeyFromVK(vk),
		State:    state,
		ScanCode: scan,
		Extended: extended,
	}
}

// decodeMouseButton collapses the eight down/up/double-click messages into
// one event. The wparam button flags carry the post-transition state, so a
// button reading as down on its own down message means Pressed.
func decodeMouseButton(msg uint32, wparam, lparam uintptr) MouseButtonEvent {
	flags := uint32(wparam)

	var button input.Button
	switch msg {
	case win32.WM_LBUTTONDOWN, win32.WM_LBUTTONUP, win32.WM_LBUTTONDBLCLK:
		button = input.ButtonLeft
	case win32.WM_MBUTTONDOWN, win32.WM_MBUTTONUP, win32.WM_MBUTTONDBLCLK:
		button = input.ButtonMiddle
	case win32.WM_RBUTTONDOWN, win32.WM_RBUTTONUP, win32.WM_RBUTTONDBLCLK:
		button = input.ButtonRight
	case win32.WM_XBUTTONDOWN, win32.WM_XBUTTONUP, win32.WM_XBUTTONDBLCLK:
		if hiWord(flags)&win32.XBUTTON1 != 0 {
			button = input.Button4
		} else {
			button = input.Button5
		}
	}

	doubleClick := msg == win32.WM_LBUTTONDBLCLK || msg == win32.WM_MBUTTONDBLCLK ||
		msg == win32.WM_RBUTTONDBLCLK || msg == win32.WM_XBUTTONDBLCLK

	var down bool
	switch msg {
	case win32.WM_LBUTTONDOWN, win32.WM_LBUTTONDBLCLK:
		down = flags&win32.MK_LBUTTON != 0
	case win32.WM_MBUTTONDOWN, win32.WM_MBUTTONDBLCLK:
		down = flags&win32.MK_MBUTTON != 0
	case win32.WM_RBUTTONDOWN, win32.WM_RBUTTONDBLCLK:
		down = flags&win32.MK_RBUTTON != 0
	case win32.WM_XBUTTONDOWN, win32.WM_XBUTTONDBLCLK:
		down = flags&(win32.MK_XBUTTON1|win32.MK_XBUTTON2) != 0
	}

	state := input.ButtonReleased
	if down {
		state = input.ButtonPressed
	}

	return MouseButtonEvent{
		Button: button,
		State:  state,
		Position: PhysicalPosition{
			X: int32(signedLoWord(uint32(lparam))),
			Y: int32(signedHiWord(uint32(lparam))),
		},
		DoubleClick: doubleClick,
	}
}

// decodeScroll turns a wheel message into notches. Horizontal deltas keep
// the sign the driver reported.
func decodeScroll(msg uint32, wparam uintptr) Scroll {
	delta := float64(signedHiWord(uint32(wparam))) / win32.WHEEL_DELTA
	if msg == win32.WM_MOUSEHWHEEL {
		return Scroll{Dx: delta}
	}
	return Scroll{Dy: delta}
}

// decodeRawKeyboard translates a raw keyboard packet. Three hardware
// artifacts are suppressed rather than surfaced:
//
//   - 0xE11D, the Ctrl half of the Pause sequence, and 0xE02A, the shift
//     prefix some keyboards send before PrintScreen; the real key follows
//     in its own packet.
//   - The fake shift transition Windows fabricates around shifted numpad
//     presses. It reports VK_SHIFT with the numpad key's scancode, and the
//     packet cannot say which shift it means, so it is dropped whole.
//
// NumLock is resolved from the virtual key because the packet reports the
// same 0x0045 scancode for NumLock and Pause.
func decodeRawKeyboard(kb win32.RawKeyboard, mapVK mapVKFunc) (RawKey, bool) {
	var extension uint16
	if kb.Flags&win32.RI_KEY_E0 != 0 {
		extension = 0xE000
	} else if kb.Flags&win32.RI_KEY_E1 != 0 {
		extension = 0xE100
	}

	scan := kb.MakeCode | extension
	if kb.MakeCode == 0 {
		// Media keys often report no scancode, only a virtual key.
		scan = loWord(mapVK(uint32(kb.VKey), win32.MAPVK_VK_TO_VSC_EX))
	}

	if scan == 0xE11D || scan == 0xE02A {
		return RawKey{}, false
	}

	var key input.Key
	if kb.VKey == win32.VK_NUMLOCK {
		key = input.KeyNumLock
	} else {
		key = input.KeyFromVK(loWord(mapVK(uint32(scan), win32.MAPVK_VSC_TO_VK_EX)))
	}

	if kb.VKey == win32.VK_SHIFT && key.IsNumpad() {
		return RawKey{}, false
	}

	state := input.ButtonPressed
	if kb.Flags&win32.RI_KEY_BREAK != 0 {
		state = input.ButtonReleased
	}
	return RawKey{Key: key, State: state}, true
}

// decodeRawMouse expands a raw mouse packet into events. One packet can
// carry relative motion plus several button transitions; each produces its
// own event, in a fixed button order.
func decodeRawMouse(m win32.RawMouse) []Event {
	var events []Event

	if m.Flags&win32.MOUSE_MOVE_ABSOLUTE == 0 && (m.LastX != 0 || m.LastY != 0) {
		events = append(events, RawMouseMotion{
			Dx: float64(m.LastX),
			Dy: float64(m.LastY),
		})
	}

	transitions := []struct {
		bit    uint16
		button input.Button
		state  input.ButtonState
	}{
		{win32.RI_MOUSE_LEFT_BUTTON_DOWN, input.ButtonLeft, input.ButtonPressed},
		{win32.RI_MOUSE_LEFT_BUTTON_UP, input.ButtonLeft, input.ButtonReleased},
		{win32.RI_MOUSE_RIGHT_BUTTON_DOWN, input.ButtonRight, input.ButtonPressed},
		{win32.RI_MOUSE_RIGHT_BUTTON_UP, input.ButtonRight, input.ButtonReleased},
		{win32.RI_MOUSE_MIDDLE_BUTTON_DOWN, input.ButtonMiddle, input.ButtonPressed},
		{win32.RI_MOUSE_MIDDLE_BUTTON_UP, input.ButtonMiddle, input.ButtonReleased},
		{win32.RI_MOUSE_BUTTON_4_DOWN, input.Button4, input.ButtonPressed},
		{win32.RI_MOUSE_BUTTON_4_UP, input.Button4, input.ButtonReleased},
		{win32.RI_MOUSE_BUTTON_5_DOWN, input.Button5, input.ButtonPressed},
		{win32.RI_MOUSE_BUTTON_5_UP, input.Button5, input.ButtonReleased},
	}
	flags := m.ButtonFlags()
	for _, tr := range transitions {
		if flags&tr.bit != 0 {
			events = append(events, RawMouseButton{Button: tr.button, State: tr.state})
		}
	}
	return events
}

// readModifiers snapshots the four modifier keys through GetKeyState. The
// high bit of each result means down.
func readModifiers(getKeyState func(vk int32) int16) input.Mods {
	var mods input.Mods
	down := func(vk int32) bool { return getKeyState(vk) < 0 }
	if down(win32.VK_SHIFT) {
		mods |= input.ModShift
	}
	if down(win32.VK_CONTROL) {
		mods |= input.ModCtrl
	}
	if down(win32.VK_MENU) {
		mods |= input.ModAlt
	}
	if down(win32.VK_LWIN) || down(win32.VK_RWIN) {
		mods |= input.ModSuper
	}
	return mods
}
