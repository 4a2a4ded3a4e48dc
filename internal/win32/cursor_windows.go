//go:build windows

package win32

import (
	"sync/atomic"
	"unsafe"
)

// ShowCursor maintains a process-global display counter, so visibility is
// tracked here as a single flag and only nudged across the pressed/released
// threshold when the flag actually flips.
var cursorVisible atomic.Bool

func init() {
	cursorVisible.Store(true)
}

// SetCursorVisibility flips the process-wide cursor visibility. Calls that
// restate the current state are no-ops.
func SetCursorVisibility(visible bool) {
	if !cursorVisible.CompareAndSwap(!visible, visible) {
		return
	}
	var arg uintptr
	if visible {
		arg = 1
	}
	procShowCursor.Call(arg)
}

func CursorVisible() bool {
	return cursorVisible.Load()
}

func ClipCursorTo(r Rect) error {
	ClearLastError()
	ok, _, _ := procClipCursor.Call(uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return Err("ClipCursor")
	}
	return nil
}

func ReleaseCursorClip() error {
	ClearLastError()
	ok, _, _ := procClipCursor.Call(0)
	if ok == 0 {
		return Err("ClipCursor(release)")
	}
	return nil
}

func GetCursorPos() (Point, error) {
	var pt Point
	ClearLastError()
	ok, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ok == 0 {
		return Point{}, Err("GetCursorPos")
	}
	return pt, nil
}

func SetCursorPos(x, y int32) error {
	ClearLastError()
	ok, _, _ := procSetCursorPos.Call(uintptr(uint32(x)), uintptr(uint32(y)))
	if ok == 0 {
		return Err("SetCursorPos")
	}
	return nil
}
