package gowin

import (
	"errors"
	"log/slog"

	"github.com/tinyrange/gowin/input"
	"github.com/tinyrange/gowin/internal/trace"
)

// ErrUnsupported is returned by New on platforms without a window driver.
var ErrUnsupported = errors.New("gowin: platform not supported")

// Window is the public handle to a native window. It is safe to share
// across goroutines: getters snapshot the state record, setters enqueue
// commands for the OS thread, and NextEvent paces the event stream.
type Window struct {
	state *state
	sync  *eventSync
	cmds  *commandQueue
	log   *slog.Logger
	flow  Flow

	// done closes when the OS thread's pump has returned.
	done chan struct{}

	// Native handles, fixed before New returns.
	nativeWindow   uintptr
	nativeInstance uintptr

	// wake nudges the OS thread so a queued command is drained promptly.
	wake func()
}

// New creates the native window on a dedicated OS thread and returns once
// it exists. The returned handle delivers events from that point on,
// starting with Created.
func New(settings Settings) (*Window, error) {
	w := &Window{
		state: newState(settings),
		sync:  newEventSync(),
		cmds:  &commandQueue{},
		log:   settings.logger(),
		flow:  settings.Flow,
		done:  make(chan struct{}),
		wake:  func() {},
	}
	if settings.TraceFile != "" {
		if err := trace.OpenFile(settings.TraceFile); err != nil {
			w.log.Warn("tracing disabled", slog.String("error", err.Error()))
		}
	}
	if err := platformNew(w, settings); err != nil {
		return nil, err
	}
	return w, nil
}

// NextEvent returns the next event. In Wait flow it blocks until one
// arrives; in Poll flow it returns Empty when nothing is pending. The
// second result turns false once the window is gone, after which the
// OS thread has been joined and the stage is Destroyed.
func (w *Window) NextEvent() (Event, bool) {
	if w.state.currentStage() == StageDestroyed {
		return nil, false
	}
	ev, got, alive := w.sync.next(w.flow == Wait)
	if got {
		return ev, true
	}
	if alive {
		return Empty{}, true
	}
	<-w.done
	w.state.advance(StageDestroyed)
	return nil, false
}

// push enqueues a command unless the window is already destroyed.
func (w *Window) push(c command) {
	if w.state.currentStage() == StageDestroyed {
		return
	}
	w.cmds.push(c)
	w.wake()
}

// Close begins an orderly shutdown: the stage advances to Closing and the
// native window is destroyed from the OS thread.
func (w *Window) Close() { w.push(cmdClose{}) }

// Destroy tears the native window down without the Closing stage.
func (w *Window) Destroy() { w.push(cmdDestroy{}) }

// Redraw asks for a Paint event. Requests coalesce until the next Paint.
func (w *Window) Redraw() { w.push(cmdRedraw{}) }

func (w *Window) SetTitle(title string)       { w.push(cmdSetTitle{title}) }
func (w *Window) SetSubtitle(subtitle string) { w.push(cmdSetSubtitle{subtitle}) }

// SetSize resizes the outer window. Logical sizes convert with the scale
// factor current at execution time.
func (w *Window) SetSize(size Size)           { w.push(cmdSetSize{size}) }
func (w *Window) SetPosition(pos Position)    { w.push(cmdSetPosition{pos}) }
func (w *Window) SetVisibility(v Visibility)  { w.push(cmdSetVisibility{v}) }
func (w *Window) SetDecorations(d Visibility) { w.push(cmdSetDecorations{d}) }
func (w *Window) SetFullscreen(f Fullscreen)  { w.push(cmdSetFullscreen{f}) }
func (w *Window) SetCursorMode(m CursorMode)  { w.push(cmdSetCursorMode{m}) }
func (w *Window) SetCursorVisibility(v Visibility) {
	w.push(cmdSetCursorVisibility{v})
}

func (w *Window) Title() string {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.title
}

func (w *Window) Subtitle() string {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.subtitle
}

// Size is the physical outer size, frame included.
func (w *Window) Size() PhysicalSize {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.size
}

// InnerSize is the physical client-area size.
func (w *Window) InnerSize() PhysicalSize {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.innerSize
}

func (w *Window) Position() PhysicalPosition {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.position
}

func (w *Window) ScaleFactor() float64 {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.scaleFactor
}

func (w *Window) Stage() Stage { return w.state.currentStage() }

func (w *Window) Fullscreen() Fullscreen {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.style.fullscreen
}

func (w *Window) Visibility() Visibility {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.style.visibility
}

func (w *Window) Focused() bool {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.style.focused
}

func (w *Window) CursorMode() CursorMode {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.cursorMode
}

// Key reports the last recorded state of k, Released if never seen.
func (w *Window) Key(k input.Key) input.KeyState {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.input.Key(k)
}

// Button reports the last recorded state of b, Released if never seen.
func (w *Window) Button(b input.Button) input.ButtonState {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.input.Button(b)
}

func (w *Window) Mods() input.Mods {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()
	return w.state.input.Mods()
}

// NativeHandle is the HWND in the platform's raw format, for renderers.
func (w *Window) NativeHandle() uintptr { return w.nativeWindow }

// NativeInstance is the HINSTANCE the window class was registered under.
func (w *Window) NativeInstance() uintptr { return w.nativeInstance }
