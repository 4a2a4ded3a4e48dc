package input

import "fmt"

// Button represents a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	Button4 // often the back button
	Button5 // often the forward button

	buttonCount
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	case Button4:
		return "Button4"
	case Button5:
		return "Button5"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}
