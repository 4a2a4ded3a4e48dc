//go:build windows

package win32

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// MonitorRectForWindow returns the full bounds of the monitor the window
// overlaps most, the rect a borderless fullscreen window should cover.
func MonitorRectForWindow(hwnd uintptr) (Rect, error) {
	mon, _, _ := procMonitorFromWindow.Call(hwnd, MONITOR_DEFAULTTONEAREST)
	if mon == 0 {
		return Rect{}, Err("MonitorFromWindow")
	}
	mi := MonitorInfo{Size: uint32(unsafe.Sizeof(MonitorInfo{}))}
	ClearLastError()
	ok, _, _ := procGetMonitorInfo.Call(mon, uintptr(unsafe.Pointer(&mi)))
	if ok == 0 {
		return Rect{}, Err("GetMonitorInfoW")
	}
	return mi.Monitor, nil
}

// EnableDpiAwareness opts the process into per-monitor DPI awareness,
// preferring the v2 context and falling back through the shcore API on
// builds that predate it.
func EnableDpiAwareness() {
	if procSetProcessDpiAwarenessCtx.Find() == nil {
		// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is the pseudo handle -4.
		ctx := ^uintptr(3)
		r, _, _ := procSetProcessDpiAwarenessCtx.Call(ctx)
		if r != 0 {
			return
		}
	}
	if procSetProcessDpiAwareness.Find() == nil {
		procSetProcessDpiAwareness.Call(PROCESS_PER_MONITOR_DPI_AWARE)
	}
}

// DpiForWindow reads the window's effective DPI, defaulting to the base
// 96 when the API is unavailable.
func DpiForWindow(hwnd uintptr) uint32 {
	if procGetDpiForWindow.Find() != nil {
		return USER_DEFAULT_SCREEN_DPI
	}
	dpi, _, _ := procGetDpiForWindow.Call(hwnd)
	if dpi == 0 {
		return USER_DEFAULT_SCREEN_DPI
	}
	return uint32(dpi)
}

// EnableNonClientDpiScaling lets the non-client area scale with the
// monitor DPI. Only valid during WM_NCCREATE.
func EnableNonClientDpiScaling(hwnd uintptr) {
	if procEnableNonClientDpiScaling.Find() == nil {
		procEnableNonClientDpiScaling.Call(hwnd)
	}
}

// AdjustWindowRect grows a client rect to the outer rect for the given
// styles at the given DPI.
func AdjustWindowRect(r Rect, style, exStyle, dpi uint32) Rect {
	if procAdjustWindowRectExForDpi.Find() != nil {
		return r
	}
	procAdjustWindowRectExForDpi.Call(
		uintptr(unsafe.Pointer(&r)),
		uintptr(style),
		0, // no menu
		uintptr(exStyle),
		uintptr(dpi),
	)
	return r
}

var buildVersion = sync.OnceValue(func() uint32 {
	return windows.RtlGetVersion().BuildNumber
})

// BuildVersion reports the OS build number via RtlGetVersion, which is
// immune to the compatibility shims that lie through GetVersionExW.
func BuildVersion() uint32 {
	return buildVersion()
}

// SetDarkMode toggles the DWM immersive dark title bar. Unsupported builds
// report false and leave the window alone.
func SetDarkMode(hwnd uintptr, dark bool) bool {
	build := BuildVersion()
	if build < DarkModeMinBuild || procDwmSetWindowAttribute.Find() != nil {
		return false
	}
	attr := uintptr(DWMWA_USE_IMMERSIVE_DARK_MODE)
	if build < DarkModeAttributeRenumberBuild {
		attr = DWMWA_USE_IMMERSIVE_DARK_MODE_OLD
	}
	var value int32
	if dark {
		value = 1
	}
	r, _, _ := procDwmSetWindowAttribute.Call(
		hwnd,
		attr,
		uintptr(unsafe.Pointer(&value)),
		unsafe.Sizeof(value),
	)
	return r == 0 // S_OK
}
