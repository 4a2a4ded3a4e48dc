package gowin

// command is a deferred mutation executed against the native window on the
// OS thread. Commands are pure data; the driver gives each variant its
// Win32 effect.
type command interface {
	isCommand()
}

type cmdClose struct{}

type cmdDestroy struct{}

type cmdRedraw struct{}

type cmdSetVisibility struct {
	visibility Visibility
}

type cmdSetDecorations struct {
	decorations Visibility
}

type cmdSetTitle struct {
	title string
}

type cmdSetSubtitle struct {
	subtitle string
}

type cmdSetSize struct {
	size Size
}

type cmdSetPosition struct {
	position Position
}

type cmdSetFullscreen struct {
	fullscreen Fullscreen
}

type cmdSetCursorMode struct {
	mode CursorMode
}

type cmdSetCursorVisibility struct {
	visibility Visibility
}

func (cmdClose) isCommand()               {}
func (cmdDestroy) isCommand()             {}
func (cmdRedraw) isCommand()              {}
func (cmdSetVisibility) isCommand()       {}
func (cmdSetDecorations) isCommand()      {}
func (cmdSetTitle) isCommand()            {}
func (cmdSetSubtitle) isCommand()         {}
func (cmdSetSize) isCommand()             {}
func (cmdSetPosition) isCommand()         {}
func (cmdSetFullscreen) isCommand()       {}
func (cmdSetCursorMode) isCommand()       {}
func (cmdSetCursorVisibility) isCommand() {}
