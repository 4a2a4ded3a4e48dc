//go:build windows

package win32

import "unsafe"

// RegisterRawInput subscribes the window to raw mouse and keyboard input.
func RegisterRawInput(hwnd uintptr) error {
	devices := [2]RawInputDevice{
		{
			UsagePage: HID_USAGE_PAGE_GENERIC,
			Usage:     HID_USAGE_GENERIC_MOUSE,
			Target:    hwnd,
		},
		{
			UsagePage: HID_USAGE_PAGE_GENERIC,
			Usage:     HID_USAGE_GENERIC_KEYBOARD,
			Target:    hwnd,
		},
	}
	ClearLastError()
	ok, _, _ := procRegisterRawInputDevices.Call(
		uintptr(unsafe.Pointer(&devices[0])),
		uintptr(len(devices)),
		unsafe.Sizeof(devices[0]),
	)
	if ok == 0 {
		return Err("RegisterRawInputDevices")
	}
	return nil
}

// ReadRawInput dereferences the HRAWINPUT handle carried by WM_INPUT's
// lparam. The buffer the handle points at outlives the message, so the
// packet is copied out.
func ReadRawInput(lparam uintptr) (RawInput, error) {
	var ri RawInput
	size := uint32(unsafe.Sizeof(ri))
	headerSize := uint32(unsafe.Sizeof(RawInputHeader{}))
	ClearLastError()
	n, _, _ := procGetRawInputData.Call(
		lparam,
		RID_INPUT,
		uintptr(unsafe.Pointer(&ri)),
		uintptr(unsafe.Pointer(&size)),
		uintptr(headerSize),
	)
	if int32(n) < 0 {
		return RawInput{}, Err("GetRawInputData")
	}
	return ri, nil
}
