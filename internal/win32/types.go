package win32

import "unsafe"

type Point struct {
	X, Y int32
}

type Rect struct {
	Left, Top, Right, Bottom int32
}

func (r Rect) Width() int32  { return r.Right - r.Left }
func (r Rect) Height() int32 { return r.Bottom - r.Top }

type Msg struct {
	HWND    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      Point
}

type WndClassExW struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   uintptr
	Icon       uintptr
	Cursor     uintptr
	Background uintptr
	MenuName   *uint16
	ClassName  *uint16
	IconSm     uintptr
}

type CreateStructW struct {
	CreateParams uintptr
	Instance     uintptr
	Menu         uintptr
	Parent       uintptr
	Cy           int32
	Cx           int32
	Y            int32
	X            int32
	Style        int32
	Name         *uint16
	Class        *uint16
	ExStyle      uint32
}

type WindowPos struct {
	HWND            uintptr
	HWNDInsertAfter uintptr
	X               int32
	Y               int32
	Cx              int32
	Cy              int32
	Flags           uint32
}

type MonitorInfo struct {
	Size    uint32
	Monitor Rect
	Work    Rect
	Flags   uint32
}

type TrackMouseEventArgs struct {
	Size      uint32
	Flags     uint32
	Track     uintptr
	HoverTime uint32
}

type RawInputDevice struct {
	UsagePage uint16
	Usage     uint16
	Flags     uint32
	Target    uintptr
}

type RawInputHeader struct {
	Type   uint32
	Size   uint32
	Device uintptr
	WParam uintptr
}

// RawMouse matches RAWMOUSE. Buttons overlays the usButtonFlags/usButtonData
// union in the SDK layout.
type RawMouse struct {
	Flags            uint16
	_                uint16
	Buttons          uint32
	RawButtons       uint32
	LastX            int32
	LastY            int32
	ExtraInformation uint32
}

func (m *RawMouse) ButtonFlags() uint16 { return uint16(m.Buttons) }
func (m *RawMouse) ButtonData() int16   { return int16(uint16(m.Buttons >> 16)) }

type RawKeyboard struct {
	MakeCode         uint16
	Flags            uint16
	Reserved         uint16
	VKey             uint16
	Message          uint32
	ExtraInformation uint32
}

// RawInput is large enough for either union arm; pick with Mouse or Keyboard
// after checking Header.Type.
type RawInput struct {
	Header RawInputHeader
	data   [40]byte
}

func (r *RawInput) Mouse() *RawMouse       { return (*RawMouse)(unsafe.Pointer(&r.data[0])) }
func (r *RawInput) Keyboard() *RawKeyboard { return (*RawKeyboard)(unsafe.Pointer(&r.data[0])) }
