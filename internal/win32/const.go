// Package win32 holds the raw user32/shcore/dwmapi surface the window
// driver is built on. Constants and struct layouts mirror the Windows SDK
// and keep its naming so they can be checked against the headers directly.
package win32

// Window messages.
const (
	WM_NULL             = 0x0000
	WM_CREATE           = 0x0001
	WM_DESTROY          = 0x0002
	WM_MOVE             = 0x0003
	WM_SIZE             = 0x0005
	WM_ACTIVATE         = 0x0006
	WM_SETFOCUS         = 0x0007
	WM_KILLFOCUS        = 0x0008
	WM_PAINT            = 0x000F
	WM_CLOSE            = 0x0010
	WM_QUIT             = 0x0012
	WM_ERASEBKGND       = 0x0014
	WM_SHOWWINDOW       = 0x0018
	WM_SETCURSOR        = 0x0020
	WM_WINDOWPOSCHANGED = 0x0047
	WM_NCCREATE         = 0x0081
	WM_NCDESTROY        = 0x0082
	WM_NCACTIVATE       = 0x0086
	WM_INPUT            = 0x00FF
	WM_KEYDOWN          = 0x0100
	WM_KEYUP            = 0x0101
	WM_CHAR             = 0x0102
	WM_SYSKEYDOWN       = 0x0104
	WM_SYSKEYUP         = 0x0105
	WM_SYSCHAR          = 0x0106
	WM_SYSCOMMAND       = 0x0112
	WM_MOUSEMOVE        = 0x0200
	WM_LBUTTONDOWN      = 0x0201
	WM_LBUTTONUP        = 0x0202
	WM_LBUTTONDBLCLK    = 0x0203
	WM_RBUTTONDOWN      = 0x0204
	WM_RBUTTONUP        = 0x0205
	WM_RBUTTONDBLCLK    = 0x0206
	WM_MBUTTONDOWN      = 0x0207
	WM_MBUTTONUP        = 0x0208
	WM_MBUTTONDBLCLK    = 0x0209
	WM_MOUSEWHEEL       = 0x020A
	WM_XBUTTONDOWN      = 0x020B
	WM_XBUTTONUP        = 0x020C
	WM_XBUTTONDBLCLK    = 0x020D
	WM_MOUSEHWHEEL      = 0x020E
	WM_ENTERSIZEMOVE    = 0x0231
	WM_EXITSIZEMOVE     = 0x0232
	WM_MOUSELEAVE       = 0x02A3
	WM_DPICHANGED       = 0x02E0
	WM_USER             = 0x0400
)

// Window styles.
const (
	WS_OVERLAPPED   = 0x00000000
	WS_POPUP        = 0x80000000
	WS_MINIMIZE     = 0x20000000
	WS_VISIBLE      = 0x10000000
	WS_CLIPSIBLINGS = 0x04000000
	WS_CLIPCHILDREN = 0x02000000
	WS_MAXIMIZE     = 0x01000000
	WS_CAPTION      = 0x00C00000
	WS_BORDER       = 0x00800000
	WS_DLGFRAME     = 0x00400000
	WS_SYSMENU      = 0x00080000
	WS_THICKFRAME   = 0x00040000
	WS_MINIMIZEBOX  = 0x00020000
	WS_MAXIMIZEBOX  = 0x00010000

	WS_OVERLAPPEDWINDOW = WS_OVERLAPPED | WS_CAPTION | WS_SYSMENU |
		WS_THICKFRAME | WS_MINIMIZEBOX | WS_MAXIMIZEBOX
)

// Extended window styles.
const (
	WS_EX_DLGMODALFRAME = 0x00000001
	WS_EX_TOPMOST       = 0x00000008
	WS_EX_TOOLWINDOW    = 0x00000080
	WS_EX_WINDOWEDGE    = 0x00000100
	WS_EX_CLIENTEDGE    = 0x00000200
	WS_EX_APPWINDOW     = 0x00040000
)

// SetWindowPos flags.
const (
	SWP_NOSIZE         = 0x0001
	SWP_NOMOVE         = 0x0002
	SWP_NOZORDER       = 0x0004
	SWP_NOREDRAW       = 0x0008
	SWP_NOACTIVATE     = 0x0010
	SWP_FRAMECHANGED   = 0x0020
	SWP_SHOWWINDOW     = 0x0040
	SWP_HIDEWINDOW     = 0x0080
	SWP_NOCOPYBITS     = 0x0100
	SWP_NOOWNERZORDER  = 0x0200
	SWP_NOSENDCHANGING = 0x0400
	SWP_ASYNCWINDOWPOS = 0x4000
)

// ShowWindow commands.
const (
	SW_HIDE           = 0
	SW_SHOWNORMAL     = 1
	SW_SHOWMINIMIZED  = 2
	SW_SHOWMAXIMIZED  = 3
	SW_SHOWNOACTIVATE = 4
	SW_SHOW           = 5
	SW_MINIMIZE       = 6
	SW_RESTORE        = 9
)

// WM_SYSCOMMAND verbs. The low nibble of wparam carries hit-test extras
// and must be masked off before comparing.
const (
	SC_MASK     = 0xFFF0
	SC_SIZE     = 0xF000
	SC_MOVE     = 0xF010
	SC_MINIMIZE = 0xF020
	SC_MAXIMIZE = 0xF030
	SC_CLOSE    = 0xF060
	SC_RESTORE  = 0xF120
)

// WM_SIZE wparam values.
const (
	SIZE_RESTORED  = 0
	SIZE_MINIMIZED = 1
	SIZE_MAXIMIZED = 2
)

// GetWindowLongPtr / SetWindowLongPtr offsets.
const (
	GWL_STYLE     = -16
	GWL_EXSTYLE   = -20
	GWLP_USERDATA = -21
)

// Keystroke flags from the high word of WM_KEY* lparam.
const (
	KF_EXTENDED = 0x0100
	KF_ALTDOWN  = 0x2000
	KF_REPEAT   = 0x4000
	KF_UP       = 0x8000
)

// Raw input.
const (
	RIM_TYPEMOUSE    = 0
	RIM_TYPEKEYBOARD = 1

	RID_INPUT = 0x10000003

	HID_USAGE_PAGE_GENERIC     = 0x01
	HID_USAGE_GENERIC_MOUSE    = 0x02
	HID_USAGE_GENERIC_KEYBOARD = 0x06

	RI_KEY_MAKE  = 0x0
	RI_KEY_BREAK = 0x1
	RI_KEY_E0    = 0x2
	RI_KEY_E1    = 0x4

	RI_MOUSE_LEFT_BUTTON_DOWN   = 0x0001
	RI_MOUSE_LEFT_BUTTON_UP     = 0x0002
	RI_MOUSE_RIGHT_BUTTON_DOWN  = 0x0004
	RI_MOUSE_RIGHT_BUTTON_UP    = 0x0008
	RI_MOUSE_MIDDLE_BUTTON_DOWN = 0x0010
	RI_MOUSE_MIDDLE_BUTTON_UP   = 0x0020
	RI_MOUSE_BUTTON_4_DOWN      = 0x0040
	RI_MOUSE_BUTTON_4_UP        = 0x0080
	RI_MOUSE_BUTTON_5_DOWN      = 0x0100
	RI_MOUSE_BUTTON_5_UP        = 0x0200
	RI_MOUSE_WHEEL              = 0x0400
	RI_MOUSE_HWHEEL             = 0x0800

	MOUSE_MOVE_RELATIVE = 0x0
	MOUSE_MOVE_ABSOLUTE = 0x1
)

// Virtual-key codes used by the decoder.
const (
	VK_LBUTTON  = 0x01
	VK_RBUTTON  = 0x02
	VK_MBUTTON  = 0x04
	VK_XBUTTON1 = 0x05
	VK_XBUTTON2 = 0x06

	VK_BACK     = 0x08
	VK_TAB      = 0x09
	VK_CLEAR    = 0x0C
	VK_RETURN   = 0x0D
	VK_SHIFT    = 0x10
	VK_CONTROL  = 0x11
	VK_MENU     = 0x12
	VK_PAUSE    = 0x13
	VK_CAPITAL  = 0x14
	VK_ESCAPE   = 0x1B
	VK_SPACE    = 0x20
	VK_PRIOR    = 0x21
	VK_NEXT     = 0x22
	VK_END      = 0x23
	VK_HOME     = 0x24
	VK_LEFT     = 0x25
	VK_UP       = 0x26
	VK_RIGHT    = 0x27
	VK_DOWN     = 0x28
	VK_SNAPSHOT = 0x2C
	VK_INSERT   = 0x2D
	VK_DELETE   = 0x2E

	VK_0 = 0x30
	VK_9 = 0x39
	VK_A = 0x41
	VK_Z = 0x5A

	VK_LWIN = 0x5B
	VK_RWIN = 0x5C
	VK_APPS = 0x5D

	VK_NUMPAD0   = 0x60
	VK_NUMPAD1   = 0x61
	VK_NUMPAD2   = 0x62
	VK_NUMPAD3   = 0x63
	VK_NUMPAD4   = 0x64
	VK_NUMPAD5   = 0x65
	VK_NUMPAD6   = 0x66
	VK_NUMPAD7   = 0x67
	VK_NUMPAD8   = 0x68
	VK_NUMPAD9   = 0x69
	VK_MULTIPLY  = 0x6A
	VK_ADD       = 0x6B
	VK_SEPARATOR = 0x6C
	VK_SUBTRACT  = 0x6D
	VK_DECIMAL   = 0x6E
	VK_DIVIDE    = 0x6F

	VK_F1  = 0x70
	VK_F24 = 0x87

	VK_NUMLOCK = 0x90
	VK_SCROLL  = 0x91

	VK_LSHIFT   = 0xA0
	VK_RSHIFT   = 0xA1
	VK_LCONTROL = 0xA2
	VK_RCONTROL = 0xA3
	VK_LMENU    = 0xA4
	VK_RMENU    = 0xA5

	VK_OEM_1      = 0xBA
	VK_OEM_PLUS   = 0xBB
	VK_OEM_COMMA  = 0xBC
	VK_OEM_MINUS  = 0xBD
	VK_OEM_PERIOD = 0xBE
	VK_OEM_2      = 0xBF
	VK_OEM_3      = 0xC0
	VK_OEM_4      = 0xDB
	VK_OEM_5      = 0xDC
	VK_OEM_6      = 0xDD
	VK_OEM_7      = 0xDE
	VK_OEM_102    = 0xE2
)

// Mouse-message wparam flags.
const (
	MK_LBUTTON  = 0x0001
	MK_RBUTTON  = 0x0002
	MK_MBUTTON  = 0x0010
	MK_XBUTTON1 = 0x0020
	MK_XBUTTON2 = 0x0040

	XBUTTON1 = 0x0001
	XBUTTON2 = 0x0002
)

// Misc.
const (
	CS_VREDRAW = 0x0001
	CS_HREDRAW = 0x0002

	// CW_USEDEFAULT is INT min; typed signed so it can be passed directly
	// as a CreateWindowExW coordinate.
	CW_USEDEFAULT int32 = -0x80000000

	IDC_ARROW = 32512

	PM_REMOVE = 0x0001

	MONITOR_DEFAULTTONEAREST = 2

	TME_LEAVE = 0x0002

	MAPVK_VSC_TO_VK_EX = 3
	MAPVK_VK_TO_VSC_EX = 4

	WHEEL_DELTA = 120

	USER_DEFAULT_SCREEN_DPI = 96

	PROCESS_PER_MONITOR_DPI_AWARE = 2

	// Build 18985 renumbered the immersive dark mode attribute from the
	// pre-release 19 to the documented 20.
	DWMWA_USE_IMMERSIVE_DARK_MODE     = 20
	DWMWA_USE_IMMERSIVE_DARK_MODE_OLD = 19

	DarkModeMinBuild               = 17763
	DarkModeAttributeRenumberBuild = 18985
)
