package gowin

import "github.com/tinyrange/gowin/internal/win32"

// Size is any width/height pair that can resolve to physical pixels given
// a scale factor. PhysicalSize and LogicalSize implement it.
type Size interface {
	Physical(scale float64) PhysicalSize
}

// Position is any x/y pair that can resolve to physical pixels given a
// scale factor. PhysicalPosition and LogicalPosition implement it.
type Position interface {
	Physical(scale float64) PhysicalPosition
}

// PhysicalSize is an extent in device pixels, the unit every OS call uses.
type PhysicalSize struct {
	Width  int32
	Height int32
}

func (s PhysicalSize) Physical(scale float64) PhysicalSize { return s }

// Logical converts to layout units by dividing out the scale factor,
// rounding to the nearest representable value.
func (s PhysicalSize) Logical(scale float64) LogicalSize {
	return LogicalSize{
		Width:  float64(s.Width) / scale,
		Height: float64(s.Height) / scale,
	}
}

// LogicalSize is an extent in DPI-independent layout units.
type LogicalSize struct {
	Width  float64
	Height float64
}

// Physical converts to device pixels, truncating toward zero the way the
// OS rounds layout units.
func (s LogicalSize) Physical(scale float64) PhysicalSize {
	return PhysicalSize{
		Width:  int32(s.Width * scale),
		Height: int32(s.Height * scale),
	}
}

// PhysicalPosition is a point in device pixels.
type PhysicalPosition struct {
	X int32
	Y int32
}

func (p PhysicalPosition) Physical(scale float64) PhysicalPosition { return p }

func (p PhysicalPosition) Logical(scale float64) LogicalPosition {
	return LogicalPosition{
		X: float64(p.X) / scale,
		Y: float64(p.Y) / scale,
	}
}

// LogicalPosition is a point in DPI-independent layout units.
type LogicalPosition struct {
	X float64
	Y float64
}

func (p LogicalPosition) Physical(scale float64) PhysicalPosition {
	return PhysicalPosition{
		X: int32(p.X * scale),
		Y: int32(p.Y * scale),
	}
}

// scaleFromDpi maps a monitor DPI to a scale factor where the base DPI of
// 96 is 1.0.
func scaleFromDpi(dpi uint32) float64 {
	return float64(dpi) / win32.USER_DEFAULT_SCREEN_DPI
}
