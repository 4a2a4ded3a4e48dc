//go:build windows

package win32

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	user32   = syscall.NewLazyDLL("user32.dll")
	shcore   = syscall.NewLazyDLL("shcore.dll")
	dwmapi   = syscall.NewLazyDLL("dwmapi.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procRegisterClassEx           = user32.NewProc("RegisterClassExW")
	procUnregisterClass           = user32.NewProc("UnregisterClassW")
	procCreateWindowEx            = user32.NewProc("CreateWindowExW")
	procDestroyWindow             = user32.NewProc("DestroyWindow")
	procDefWindowProc             = user32.NewProc("DefWindowProcW")
	procGetMessage                = user32.NewProc("GetMessageW")
	procPeekMessage               = user32.NewProc("PeekMessageW")
	procTranslateMessage          = user32.NewProc("TranslateMessage")
	procDispatchMessage           = user32.NewProc("DispatchMessageW")
	procPostMessage               = user32.NewProc("PostMessageW")
	procPostQuitMessage           = user32.NewProc("PostQuitMessage")
	procShowWindow                = user32.NewProc("ShowWindow")
	procSetWindowText             = user32.NewProc("SetWindowTextW")
	procSetWindowPos              = user32.NewProc("SetWindowPos")
	procGetWindowLongPtr          = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtr          = user32.NewProc("SetWindowLongPtrW")
	procGetClientRect             = user32.NewProc("GetClientRect")
	procGetWindowRect             = user32.NewProc("GetWindowRect")
	procClientToScreen            = user32.NewProc("ClientToScreen")
	procInvalidateRgn             = user32.NewProc("InvalidateRgn")
	procMonitorFromWindow         = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfo            = user32.NewProc("GetMonitorInfoW")
	procAdjustWindowRectExForDpi  = user32.NewProc("AdjustWindowRectExForDpi")
	procGetDpiForWindow           = user32.NewProc("GetDpiForWindow")
	procEnableNonClientDpiScaling = user32.NewProc("EnableNonClientDpiScaling")
	procSetProcessDpiAwarenessCtx = user32.NewProc("SetProcessDpiAwarenessContext")
	procLoadCursor                = user32.NewProc("LoadCursorW")
	procSetCursor                 = user32.NewProc("SetCursor")
	procShowCursor                = user32.NewProc("ShowCursor")
	procClipCursor                = user32.NewProc("ClipCursor")
	procGetCursorPos              = user32.NewProc("GetCursorPos")
	procSetCursorPos              = user32.NewProc("SetCursorPos")
	procTrackMouseEvent           = user32.NewProc("TrackMouseEvent")
	procRegisterRawInputDevices   = user32.NewProc("RegisterRawInputDevices")
	procGetRawInputData           = user32.NewProc("GetRawInputData")
	procMapVirtualKey             = user32.NewProc("MapVirtualKeyW")
	procGetKeyState               = user32.NewProc("GetKeyState")

	procSetProcessDpiAwareness = shcore.NewProc("SetProcessDpiAwareness")

	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")

	procGetModuleHandle = kernel32.NewProc("GetModuleHandleW")
	procSetLastError    = kernel32.NewProc("SetLastError")
	procGetLastError    = kernel32.NewProc("GetLastError")
)

func mustFindProc(p *syscall.LazyProc) error {
	if err := p.Find(); err != nil {
		return fmt.Errorf("missing procedure %q: %w", p.Name, err)
	}
	return nil
}

// ValidateProcs confirms the procedures the driver cannot run without.
// Per-monitor DPI and DWM procedures are probed at the call site instead
// since older builds lack them.
func ValidateProcs() error {
	procs := []*syscall.LazyProc{
		procRegisterClassEx,
		procCreateWindowEx,
		procDestroyWindow,
		procDefWindowProc,
		procGetMessage,
		procPeekMessage,
		procDispatchMessage,
		procSetWindowPos,
		procGetWindowLongPtr,
		procSetWindowLongPtr,
		procRegisterRawInputDevices,
		procGetRawInputData,
		procMapVirtualKey,
	}
	for _, p := range procs {
		if err := mustFindProc(p); err != nil {
			return err
		}
	}
	return nil
}

func lastError() syscall.Errno {
	e, _, _ := procGetLastError.Call()
	return syscall.Errno(e)
}

// ClearLastError resets the thread error slot before calls whose failure
// is only detectable through GetLastError.
func ClearLastError() {
	procSetLastError.Call(0)
}

// Err wraps the thread's last error for a failed call to op.
func Err(op string) error {
	e := lastError()
	if e == 0 {
		return fmt.Errorf("%s failed", op)
	}
	return fmt.Errorf("%s failed: %w", op, e)
}

func GetModuleHandle() uintptr {
	h, _, _ := procGetModuleHandle.Call(0)
	return h
}

func RegisterClassEx(wc *WndClassExW) (uint16, error) {
	ClearLastError()
	atom, _, _ := procRegisterClassEx.Call(uintptr(unsafe.Pointer(wc)))
	if atom == 0 {
		return 0, Err("RegisterClassExW")
	}
	return uint16(atom), nil
}

func UnregisterClass(className *uint16) {
	procUnregisterClass.Call(uintptr(unsafe.Pointer(className)), GetModuleHandle())
}

func CreateWindowEx(
	exStyle uint32,
	className, windowName *uint16,
	style uint32,
	x, y, width, height int32,
	createParams unsafe.Pointer,
) (uintptr, error) {
	ClearLastError()
	hwnd, _, _ := procCreateWindowEx.Call(
		uintptr(exStyle),
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(windowName)),
		uintptr(style),
		uintptr(uint32(x)),
		uintptr(uint32(y)),
		uintptr(uint32(width)),
		uintptr(uint32(height)),
		0, // parent
		0, // menu
		GetModuleHandle(),
		uintptr(createParams),
	)
	if hwnd == 0 {
		return 0, Err("CreateWindowExW")
	}
	return hwnd, nil
}

func DestroyWindow(hwnd uintptr) {
	procDestroyWindow.Call(hwnd)
}

func DefWindowProc(hwnd uintptr, msg uint32, wparam, lparam uintptr) uintptr {
	r, _, _ := procDefWindowProc.Call(hwnd, uintptr(msg), wparam, lparam)
	return r
}

// GetMessage blocks until a message arrives. The int result follows the
// Win32 convention: 0 for WM_QUIT, -1 for failure, anything else success.
func GetMessage(msg *Msg, hwnd uintptr) int32 {
	r, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(msg)), hwnd, 0, 0)
	return int32(r)
}

func PeekMessage(msg *Msg, hwnd uintptr) bool {
	r, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(msg)), hwnd, 0, 0, PM_REMOVE)
	return r != 0
}

func TranslateMessage(msg *Msg) {
	procTranslateMessage.Call(uintptr(unsafe.Pointer(msg)))
}

func DispatchMessage(msg *Msg) {
	procDispatchMessage.Call(uintptr(unsafe.Pointer(msg)))
}

func PostMessage(hwnd uintptr, msg uint32, wparam, lparam uintptr) error {
	ClearLastError()
	r, _, _ := procPostMessage.Call(hwnd, uintptr(msg), wparam, lparam)
	if r == 0 {
		return Err("PostMessageW")
	}
	return nil
}

func PostQuitMessage(code int32) {
	procPostQuitMessage.Call(uintptr(uint32(code)))
}

func ShowWindow(hwnd uintptr, cmd int32) {
	procShowWindow.Call(hwnd, uintptr(uint32(cmd)))
}

func SetWindowText(hwnd uintptr, text *uint16) error {
	ClearLastError()
	r, _, _ := procSetWindowText.Call(hwnd, uintptr(unsafe.Pointer(text)))
	if r == 0 {
		return Err("SetWindowTextW")
	}
	return nil
}

func SetWindowPos(hwnd uintptr, x, y, cx, cy int32, flags uint32) error {
	ClearLastError()
	r, _, _ := procSetWindowPos.Call(
		hwnd,
		0, // insert-after, masked by SWP_NOZORDER at every call site
		uintptr(uint32(x)),
		uintptr(uint32(y)),
		uintptr(uint32(cx)),
		uintptr(uint32(cy)),
		uintptr(flags),
	)
	if r == 0 {
		return Err("SetWindowPos")
	}
	return nil
}

func GetWindowLongPtr(hwnd uintptr, index int32) uintptr {
	r, _, _ := procGetWindowLongPtr.Call(hwnd, uintptr(uint32(index)))
	return r
}

func SetWindowLongPtr(hwnd uintptr, index int32, value uintptr) uintptr {
	r, _, _ := procSetWindowLongPtr.Call(hwnd, uintptr(uint32(index)), value)
	return r
}

func GetClientRect(hwnd uintptr) (Rect, error) {
	var r Rect
	ClearLastError()
	ok, _, _ := procGetClientRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return Rect{}, Err("GetClientRect")
	}
	return r, nil
}

func GetWindowRect(hwnd uintptr) (Rect, error) {
	var r Rect
	ClearLastError()
	ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return Rect{}, Err("GetWindowRect")
	}
	return r, nil
}

func ClientToScreen(hwnd uintptr, pt *Point) {
	procClientToScreen.Call(hwnd, uintptr(unsafe.Pointer(pt)))
}

func InvalidateRgn(hwnd uintptr) {
	procInvalidateRgn.Call(hwnd, 0, 0)
}

func MapVirtualKey(code, mapType uint32) uint32 {
	r, _, _ := procMapVirtualKey.Call(uintptr(code), uintptr(mapType))
	return uint32(r)
}

func GetKeyState(vk int32) int16 {
	r, _, _ := procGetKeyState.Call(uintptr(uint32(vk)))
	return int16(uint16(r))
}

func LoadArrowCursor() uintptr {
	c, _, _ := procLoadCursor.Call(0, IDC_ARROW)
	return c
}

func SetCursor(cursor uintptr) {
	procSetCursor.Call(cursor)
}

func TrackMouseLeave(hwnd uintptr) {
	tme := TrackMouseEventArgs{
		Size:  uint32(unsafe.Sizeof(TrackMouseEventArgs{})),
		Flags: TME_LEAVE,
		Track: hwnd,
	}
	procTrackMouseEvent.Call(uintptr(unsafe.Pointer(&tme)))
}
