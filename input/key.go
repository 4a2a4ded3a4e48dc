// Package input defines the keyboard and mouse vocabulary shared by the
// window driver and its callers: keys, buttons, their states, and the
// modifier set. Everything here is pure data so it behaves identically on
// every platform.
package input

import (
	"fmt"

	"github.com/tinyrange/gowin/internal/win32"
)

// Key identifies a physical keyboard key, independent of layout where the
// OS allows it.
type Key int

const (
	KeyUnknown Key = iota

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Numbers
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	// Modifier keys
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper
	KeyRightSuper

	// Special keys
	KeySpace
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
	KeyMenu // the application / context-menu key
	KeyClear

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Punctuation and symbols
	KeyGraveAccent  // `
	KeyMinus        // -
	KeyEqual        // =
	KeyLeftBracket  // [
	KeyRightBracket // ]
	KeyBackslash    // \
	KeySemicolon    // ;
	KeyApostrophe   // '
	KeyComma        // ,
	KeyPeriod       // .
	KeySlash        // /
	KeyOEM102       // the extra key on ISO layouts, usually < >

	// Numpad keys
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadDecimal  // .
	KeyNumpadDivide   // /
	KeyNumpadMultiply // *
	KeyNumpadSubtract // -
	KeyNumpadAdd      // +
	KeyNumpadEnter
	KeyNumpadSeparator

	keyCount
)

// IsNumpad reports whether the key sits on the numeric keypad. Shifted
// numpad presses matter to the decoder because Windows fabricates shift
// transitions around them.
func (k Key) IsNumpad() bool {
	return k >= KeyNumpad0 && k <= KeyNumpadSeparator
}

func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) && keyNames[k] != "" {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

var keyNames = [keyCount]string{
	KeyUnknown: "Unknown",

	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F",
	KeyG: "G", KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L",
	KeyM: "M", KeyN: "N", KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R",
	KeyS: "S", KeyT: "T", KeyU: "U", KeyV: "V", KeyW: "W", KeyX: "X",
	KeyY: "Y", KeyZ: "Z",

	Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",

	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5",
	KeyF6: "F6", KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10",
	KeyF11: "F11", KeyF12: "F12", KeyF13: "F13", KeyF14: "F14",
	KeyF15: "F15", KeyF16: "F16", KeyF17: "F17", KeyF18: "F18",
	KeyF19: "F19", KeyF20: "F20", KeyF21: "F21", KeyF22: "F22",
	KeyF23: "F23", KeyF24: "F24",

	KeyLeftShift:    "LeftShift",
	KeyRightShift:   "RightShift",
	KeyLeftControl:  "LeftControl",
	KeyRightControl: "RightControl",
	KeyLeftAlt:      "LeftAlt",
	KeyRightAlt:     "RightAlt",
	KeyLeftSuper:    "LeftSuper",
	KeyRightSuper:   "RightSuper",

	KeySpace:       "Space",
	KeyEnter:       "Enter",
	KeyEscape:      "Escape",
	KeyBackspace:   "Backspace",
	KeyDelete:      "Delete",
	KeyTab:         "Tab",
	KeyCapsLock:    "CapsLock",
	KeyScrollLock:  "ScrollLock",
	KeyNumLock:     "NumLock",
	KeyPrintScreen: "PrintScreen",
	KeyPause:       "Pause",
	KeyMenu:        "Menu",
	KeyClear:       "Clear",

	KeyUp:    "Up",
	KeyDown:  "Down",
	KeyLeft:  "Left",
	KeyRight: "Right",

	KeyHome:     "Home",
	KeyEnd:      "End",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
	KeyInsert:   "Insert",

	KeyGraveAccent:  "GraveAccent",
	KeyMinus:        "Minus",
	KeyEqual:        "Equal",
	KeyLeftBracket:  "LeftBracket",
	KeyRightBracket: "RightBracket",
	KeyBackslash:    "Backslash",
	KeySemicolon:    "Semicolon",
	KeyApostrophe:   "Apostrophe",
	KeyComma:        "Comma",
	KeyPeriod:       "Period",
	KeySlash:        "Slash",
	KeyOEM102:       "OEM102",

	KeyNumpad0:         "Numpad0",
	KeyNumpad1:         "Numpad1",
	KeyNumpad2:         "Numpad2",
	KeyNumpad3:         "Numpad3",
	KeyNumpad4:         "Numpad4",
	KeyNumpad5:         "Numpad5",
	KeyNumpad6:         "Numpad6",
	KeyNumpad7:         "Numpad7",
	KeyNumpad8:         "Numpad8",
	KeyNumpad9:         "Numpad9",
	KeyNumpadDecimal:   "NumpadDecimal",
	KeyNumpadDivide:    "NumpadDivide",
	KeyNumpadMultiply:  "NumpadMultiply",
	KeyNumpadSubtract:  "NumpadSubtract",
	KeyNumpadAdd:       "NumpadAdd",
	KeyNumpadEnter:     "NumpadEnter",
	KeyNumpadSeparator: "NumpadSeparator",
}

// KeyFromVK maps a Windows virtual-key code to a Key. Extended-key
// disambiguation (left vs right modifiers, numpad enter) happens before
// the lookup, so the table only sees resolved codes.
func KeyFromVK(vk uint16) Key {
	switch {
	case vk >= win32.VK_A && vk <= win32.VK_Z:
		return KeyA + Key(vk-win32.VK_A)
	case vk >= win32.VK_0 && vk <= win32.VK_9:
		return Key0 + Key(vk-win32.VK_0)
	case vk >= win32.VK_F1 && vk <= win32.VK_F24:
		return KeyF1 + Key(vk-win32.VK_F1)
	case vk >= win32.VK_NUMPAD0 && vk <= win32.VK_NUMPAD9:
		return KeyNumpad0 + Key(vk-win32.VK_NUMPAD0)
	}
	if k, ok := vkKeys[vk]; ok {
		return k
	}
	return KeyUnknown
}

var vkKeys = map[uint16]Key{
	win32.VK_BACK:     KeyBackspace,
	win32.VK_TAB:      KeyTab,
	win32.VK_CLEAR:    KeyClear,
	win32.VK_RETURN:   KeyEnter,
	win32.VK_PAUSE:    KeyPause,
	win32.VK_CAPITAL:  KeyCapsLock,
	win32.VK_ESCAPE:   KeyEscape,
	win32.VK_SPACE:    KeySpace,
	win32.VK_PRIOR:    KeyPageUp,
	win32.VK_NEXT:     KeyPageDown,
	win32.VK_END:      KeyEnd,
	win32.VK_HOME:     KeyHome,
	win32.VK_LEFT:     KeyLeft,
	win32.VK_UP:       KeyUp,
	win32.VK_RIGHT:    KeyRight,
	win32.VK_DOWN:     KeyDown,
	win32.VK_SNAPSHOT: KeyPrintScreen,
	win32.VK_INSERT:   KeyInsert,
	win32.VK_DELETE:   KeyDelete,

	win32.VK_LWIN: KeyLeftSuper,
	win32.VK_RWIN: KeyRightSuper,
	win32.VK_APPS: KeyMenu,

	win32.VK_MULTIPLY:  KeyNumpadMultiply,
	win32.VK_ADD:       KeyNumpadAdd,
	win32.VK_SEPARATOR: KeyNumpadSeparator,
	win32.VK_SUBTRACT:  KeyNumpadSubtract,
	win32.VK_DECIMAL:   KeyNumpadDecimal,
	win32.VK_DIVIDE:    KeyNumpadDivide,

	win32.VK_NUMLOCK: KeyNumLock,
	win32.VK_SCROLL:  KeyScrollLock,

	win32.VK_SHIFT:    KeyLeftShift, // unresolved VK_SHIFT defaults left
	win32.VK_LSHIFT:   KeyLeftShift,
	win32.VK_RSHIFT:   KeyRightShift,
	win32.VK_CONTROL:  KeyLeftControl,
	win32.VK_LCONTROL: KeyLeftControl,
	win32.VK_RCONTROL: KeyRightControl,
	win32.VK_MENU:     KeyLeftAlt,
	win32.VK_LMENU:    KeyLeftAlt,
	win32.VK_RMENU:    KeyRightAlt,

	win32.VK_OEM_1:      KeySemicolon,
	win32.VK_OEM_PLUS:   KeyEqual,
	win32.VK_OEM_COMMA:  KeyComma,
	win32.VK_OEM_MINUS:  KeyMinus,
	win32.VK_OEM_PERIOD: KeyPeriod,
	win32.VK_OEM_2:      KeySlash,
	win32.VK_OEM_3:      KeyGraveAccent,
	win32.VK_OEM_4:      KeyLeftBracket,
	win32.VK_OEM_5:      KeyBackslash,
	win32.VK_OEM_6:      KeyRightBracket,
	win32.VK_OEM_7:      KeyApostrophe,
	win32.VK_OEM_102:    KeyOEM102,
}
