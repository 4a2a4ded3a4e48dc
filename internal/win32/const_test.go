package win32

import "testing"

func TestDefaultCoordinateSentinel(t *testing.T) {
	// The sentinel must flow into CreateWindowExW coordinate parameters,
	// which are signed, and widen to the documented 0x80000000 pattern.
	var x int32 = CW_USEDEFAULT
	if uint32(x) != 0x80000000 {
		t.Errorf("CW_USEDEFAULT bit pattern = %#x, want 0x80000000", uint32(x))
	}
}

func TestNumpadVKRangeIsContiguous(t *testing.T) {
	keys := []int{
		VK_NUMPAD0, VK_NUMPAD1, VK_NUMPAD2, VK_NUMPAD3, VK_NUMPAD4,
		VK_NUMPAD5, VK_NUMPAD6, VK_NUMPAD7, VK_NUMPAD8, VK_NUMPAD9,
	}
	for i, vk := range keys {
		if want := 0x60 + i; vk != want {
			t.Errorf("VK_NUMPAD%d = %#x, want %#x", i, vk, want)
		}
	}
}
