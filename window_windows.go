//go:build windows

package gowin

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"syscall"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/tinyrange/gowin/internal/trace"
	"github.com/tinyrange/gowin/internal/win32"
)

// wmWake is posted to the window so a queued command gets drained even
// when the OS queue is otherwise idle.
const wmWake = win32.WM_USER + 1

var wndProcCallback = syscall.NewCallback(wndProc)

// hwnd -> *driver. The driver rides into WM_NCCREATE through the
// CREATESTRUCT's lpCreateParams and is bound to its handle there.
var activeWindows sync.Map

// driver is the control block the OS thread works from. Everything in it
// is owned by that thread except win, which has its own synchronization.
type driver struct {
	win      *Window
	settings Settings
	log      *slog.Logger

	hwnd uintptr

	createOnce sync.Once
	createErr  chan error
	created    bool

	inCommand bool
	stopDrain bool

	mouseInside   bool
	lastCursor    PhysicalPosition
	highSurrogate uint16
}

func platformNew(w *Window, settings Settings) error {
	if err := win32.ValidateProcs(); err != nil {
		return fmt.Errorf("window driver unavailable: %w", err)
	}
	d := &driver{
		win:       w,
		settings:  settings,
		log:       w.log,
		createErr: make(chan error, 1),
	}
	go d.run()
	if err := <-d.createErr; err != nil {
		return err
	}
	w.nativeWindow = d.hwnd
	w.nativeInstance = win32.GetModuleHandle()
	w.wake = d.wakePump
	return nil
}

func (d *driver) signalCreate(err error) {
	d.createOnce.Do(func() { d.createErr <- err })
}

// run owns the native window from creation to destruction. It must stay
// on one OS thread for the window's whole life.
func (d *driver) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	defer func() {
		d.win.state.advance(StageExiting)
		d.win.sync.close()
		close(d.win.done)
	}()

	win32.EnableDpiAwareness()

	className, err := windows.UTF16PtrFromString(
		fmt.Sprintf("gowin_%s_%d", d.settings.Title, os.Getpid()))
	if err != nil {
		d.signalCreate(fmt.Errorf("invalid title: %w", err))
		return
	}

	wc := win32.WndClassExW{
		Size:      uint32(unsafe.Sizeof(win32.WndClassExW{})),
		Style:     win32.CS_HREDRAW | win32.CS_VREDRAW,
		WndProc:   wndProcCallback,
		Instance:  win32.GetModuleHandle(),
		Cursor:    win32.LoadArrowCursor(),
		ClassName: className,
	}
	if _, err := win32.RegisterClassEx(&wc); err != nil {
		d.signalCreate(err)
		return
	}
	defer win32.UnregisterClass(className)

	title, err := windows.UTF16PtrFromString(d.win.state.caption())
	if err != nil {
		d.signalCreate(fmt.Errorf("invalid title: %w", err))
		return
	}

	// The window is created hidden; visibility is applied once the
	// control block is fully wired so the first events are ordered.
	style, exStyle := d.win.state.creationStyle()

	x, y := win32.CW_USEDEFAULT, win32.CW_USEDEFAULT
	if p := d.settings.Position; p != nil {
		x, y = p.X, p.Y
	}

	hwnd, err := win32.CreateWindowEx(
		exStyle, className, title, style,
		x, y, d.settings.Size.Width, d.settings.Size.Height,
		unsafe.Pointer(d),
	)
	if err != nil {
		d.signalCreate(err)
		return
	}
	defer activeWindows.Delete(hwnd)

	d.applySettings()
	// Apply the settings-derived commands now; in Wait flow the pump
	// would otherwise sit in GetMessageW until something else arrives.
	d.drainCommands()
	d.pump()
}

// applySettings runs the construction-time options that behave like
// commands, after the window exists but before the pump starts.
func (d *driver) applySettings() {
	if d.settings.Theme == ThemeDark {
		if !win32.SetDarkMode(d.hwnd, true) {
			d.log.Warn("dark mode unsupported on this build",
				slog.Uint64("build", uint64(win32.BuildVersion())))
		}
	}

	if d.settings.Visibility == Shown {
		win32.ShowWindow(d.hwnd, win32.SW_SHOW)
	}

	q := d.win.cmds
	q.push(cmdSetCursorMode{d.settings.CursorMode})
	q.push(cmdSetCursorVisibility{d.settings.CursorVisibility})
	if d.settings.Fullscreen == Borderless {
		q.push(cmdSetFullscreen{Borderless})
	}
}

func (d *driver) wakePump() {
	if err := win32.PostMessage(d.hwnd, wmWake, 0, 0); err != nil {
		d.log.Debug("wake post failed", slog.String("error", err.Error()))
	}
}

// pump runs the message loop until WM_QUIT. Commands are drained between
// OS callbacks, never from inside one.
func (d *driver) pump() {
	var msg win32.Msg
	for {
		if d.win.flow == Wait {
			switch r := win32.GetMessage(&msg, 0); r {
			case 0:
				return
			case -1:
				d.log.Warn("GetMessageW failed, leaving pump")
				return
			}
			win32.TranslateMessage(&msg)
			win32.DispatchMessage(&msg)
			d.drainCommands()
			continue
		}

		// Poll flow: run the OS queue dry, then hand the application an
		// Empty so it can run a frame. The send blocks until the
		// application takes it, which is what paces this loop.
		if win32.PeekMessage(&msg, 0) {
			if msg.Message == win32.WM_QUIT {
				return
			}
			win32.TranslateMessage(&msg)
			win32.DispatchMessage(&msg)
			d.drainCommands()
			continue
		}
		d.drainCommands()
		d.sendEvent(Empty{})
	}
}

func (d *driver) drainCommands() {
	if d.inCommand || d.stopDrain {
		return
	}
	d.inCommand = true
	defer func() { d.inCommand = false }()

	for _, c := range d.win.cmds.drain() {
		d.execute(c)
		if d.stopDrain {
			return
		}
	}
}

// sendEvent hands one event to the application thread and blocks until it
// is consumed. Events are dropped until Created has been announced.
func (d *driver) sendEvent(ev Event) {
	if !d.created {
		return
	}
	if trace.Enabled() {
		if _, empty := ev.(Empty); !empty {
			trace.Eventf(fmt.Sprintf("%T", ev), "%+v", ev)
		}
	}
	d.win.sync.send(ev)
}

func driverFor(hwnd uintptr) *driver {
	if v, ok := activeWindows.Load(hwnd); ok {
		return v.(*driver)
	}
	return nil
}

func wndProc(hwnd uintptr, msg uint32, wparam, lparam uintptr) uintptr {
	if msg == win32.WM_NCCREATE {
		// First chance to bind the control block to the handle. Non-client
		// DPI scaling must also be enabled here or not at all.
		cs := (*win32.CreateStructW)(unsafe.Pointer(lparam))
		if d := (*driver)(unsafe.Pointer(cs.CreateParams)); d != nil {
			d.hwnd = hwnd
			activeWindows.Store(hwnd, d)
		}
		win32.EnableNonClientDpiScaling(hwnd)
		return win32.DefWindowProc(hwnd, msg, wparam, lparam)
	}

	d := driverFor(hwnd)
	if d == nil {
		return win32.DefWindowProc(hwnd, msg, wparam, lparam)
	}
	return d.handle(msg, wparam, lparam)
}

func (d *driver) handle(msg uint32, wparam, lparam uintptr) uintptr {
	st := d.win.state

	switch msg {
	case win32.WM_CREATE:
		d.onCreate()
		return 0

	case wmWake:
		return 0

	case win32.WM_CLOSE:
		d.sendEvent(CloseRequested{})
		st.mu.Lock()
		closeOnX := st.closeOnX
		st.mu.Unlock()
		if closeOnX {
			st.advance(StageClosing)
			win32.DestroyWindow(d.hwnd)
		}
		return 0

	case win32.WM_DESTROY:
		st.advance(StageExiting)
		win32.PostQuitMessage(0)
		return 0

	case win32.WM_NCDESTROY:
		activeWindows.Delete(d.hwnd)

	case win32.WM_PAINT:
		st.mu.Lock()
		st.requestedRedraw = false
		st.mu.Unlock()
		d.sendEvent(Paint{})
		// DefWindowProc validates the dirty region.

	case win32.WM_SETFOCUS:
		st.mu.Lock()
		st.style.focused = true
		mode := st.cursorMode
		vis := st.cursorVisibility
		st.mu.Unlock()
		d.sendEvent(Focus{Gained: true})
		// Re-assert cursor confinement and visibility lost while
		// unfocused.
		d.win.cmds.push(cmdSetCursorMode{mode})
		d.win.cmds.push(cmdSetCursorVisibility{vis})
		return 0

	case win32.WM_KILLFOCUS:
		st.mu.Lock()
		st.style.focused = false
		st.mu.Unlock()
		d.sendEvent(Focus{Gained: false})
		return 0

	case win32.WM_NCACTIVATE:
		st.mu.Lock()
		st.style.active = wparam != 0
		st.mu.Unlock()

	case win32.WM_SYSCOMMAND:
		switch uint32(wparam) & win32.SC_MASK {
		case win32.SC_MINIMIZE:
			st.mu.Lock()
			st.style.minimized = true
			st.mu.Unlock()
		case win32.SC_RESTORE:
			st.mu.Lock()
			st.style.minimized = false
			st.mu.Unlock()
		}

	case win32.WM_WINDOWPOSCHANGED:
		wp := (*win32.WindowPos)(unsafe.Pointer(lparam))
		moved := wp.Flags&win32.SWP_NOMOVE == 0
		sized := wp.Flags&win32.SWP_NOSIZE == 0
		if moved || sized {
			pos := PhysicalPosition{X: wp.X, Y: wp.Y}
			size := PhysicalSize{Width: wp.Cx, Height: wp.Cy}
			st.mu.Lock()
			st.setBounds(pos, size)
			st.mu.Unlock()
			d.sendEvent(BoundsChanged{Position: pos, Size: size})
			if moved {
				d.sendEvent(Moved{Position: pos})
			}
		}
		// DefWindowProc synthesizes WM_SIZE from here.

	case win32.WM_SIZE:
		switch wparam {
		case win32.SIZE_MINIMIZED:
			st.mu.Lock()
			st.style.minimized = true
			st.mu.Unlock()
			return 0
		case win32.SIZE_MAXIMIZED:
			st.mu.Lock()
			st.style.minimized = false
			st.style.maximized = true
			st.mu.Unlock()
		case win32.SIZE_RESTORED:
			st.mu.Lock()
			st.style.minimized = false
			st.style.maximized = false
			st.mu.Unlock()
		}
		inner := PhysicalSize{
			Width:  int32(loWord(uint32(lparam))),
			Height: int32(hiWord(uint32(lparam))),
		}
		st.mu.Lock()
		st.innerSize = inner
		st.mu.Unlock()
		d.sendEvent(Resized{Size: inner})
		return 0

	case win32.WM_DPICHANGED:
		dpi := uint32(loWord(uint32(wparam)))
		suggested := *(*win32.Rect)(unsafe.Pointer(lparam))
		// Snap to the suggested rectangle first so the Resized/Moved
		// that follow already carry corrected-scale geometry.
		if err := win32.SetWindowPos(
			d.hwnd,
			suggested.Left, suggested.Top,
			suggested.Width(), suggested.Height(),
			win32.SWP_NOZORDER|win32.SWP_NOACTIVATE,
		); err != nil {
			d.log.Warn("DPI reposition failed", slog.String("error", err.Error()))
		}
		scale := scaleFromDpi(dpi)
		st.mu.Lock()
		st.scaleFactor = scale
		st.mu.Unlock()
		d.sendEvent(ScaleFactorChanged{Scale: scale})
		return 0

	case win32.WM_KEYDOWN, win32.WM_KEYUP, win32.WM_SYSKEYDOWN, win32.WM_SYSKEYUP:
		ev := decodeKey(lparam, win32.MapVirtualKey)
		for _, e := range st.keyEvents(ev, readModifiers(win32.GetKeyState)) {
			d.sendEvent(e)
		}
		if msg == win32.WM_KEYDOWN || msg == win32.WM_KEYUP {
			return 0
		}
		// System keys continue to DefWindowProc so Alt+F4 and the
		// window menu keep working.

	case win32.WM_CHAR, win32.WM_SYSCHAR:
		d.onChar(uint16(wparam))
		if msg == win32.WM_CHAR {
			return 0
		}

	case win32.WM_LBUTTONDOWN, win32.WM_LBUTTONUP, win32.WM_LBUTTONDBLCLK,
		win32.WM_RBUTTONDOWN, win32.WM_RBUTTONUP, win32.WM_RBUTTONDBLCLK,
		win32.WM_MBUTTONDOWN, win32.WM_MBUTTONUP, win32.WM_MBUTTONDBLCLK,
		win32.WM_XBUTTONDOWN, win32.WM_XBUTTONUP, win32.WM_XBUTTONDBLCLK:
		ev := decodeMouseButton(msg, wparam, lparam)
		st.mu.Lock()
		st.input.SetButton(ev.Button, ev.State)
		st.mu.Unlock()
		d.sendEvent(ev)
		return 0

	case win32.WM_MOUSEMOVE:
		pos := PhysicalPosition{
			X: int32(signedLoWord(uint32(lparam))),
			Y: int32(signedHiWord(uint32(lparam))),
		}
		kind := CursorInside
		if !d.mouseInside {
			d.mouseInside = true
			kind = CursorEntered
			win32.TrackMouseLeave(d.hwnd)
			d.refreshCursor()
		}
		d.lastCursor = pos
		d.sendEvent(CursorEvent{Position: pos, Kind: kind})
		return 0

	case win32.WM_MOUSELEAVE:
		d.mouseInside = false
		d.sendEvent(CursorEvent{Position: d.lastCursor, Kind: CursorLeft})
		return 0

	case win32.WM_MOUSEWHEEL, win32.WM_MOUSEHWHEEL:
		d.sendEvent(decodeScroll(msg, wparam))
		return 0

	case win32.WM_INPUT:
		d.onRawInput(lparam)
		// WM_INPUT must still reach DefWindowProc for cleanup.
	}

	return win32.DefWindowProc(d.hwnd, msg, wparam, lparam)
}

// onCreate finishes construction from inside WM_CREATE: the state record
// gets its first real geometry and DPI, the constructor is released, and
// Created goes out as the first event.
func (d *driver) onCreate() {
	st := d.win.state

	dpi := win32.DpiForWindow(d.hwnd)
	outer, outerErr := win32.GetWindowRect(d.hwnd)
	client, clientErr := win32.GetClientRect(d.hwnd)

	st.mu.Lock()
	st.scaleFactor = scaleFromDpi(dpi)
	if outerErr == nil {
		st.setBounds(
			PhysicalPosition{X: outer.Left, Y: outer.Top},
			PhysicalSize{Width: outer.Width(), Height: outer.Height()},
		)
	}
	if clientErr == nil {
		st.innerSize = PhysicalSize{Width: client.Width(), Height: client.Height()}
	}
	st.mu.Unlock()

	if err := win32.RegisterRawInput(d.hwnd); err != nil {
		d.log.Warn("raw input unavailable", slog.String("error", err.Error()))
	}

	d.signalCreate(nil)
	d.created = true
	d.sendEvent(Created{Window: d.hwnd, Instance: win32.GetModuleHandle()})
}

// onChar assembles UTF-16 units into text, pairing surrogate halves
// across messages.
func (d *driver) onChar(c uint16) {
	if utf16.IsSurrogate(rune(c)) {
		if c < 0xDC00 {
			d.highSurrogate = c
			return
		}
		if d.highSurrogate != 0 {
			r := utf16.DecodeRune(rune(d.highSurrogate), rune(c))
			d.highSurrogate = 0
			d.sendEvent(Text{Chars: string(r)})
		}
		return
	}
	d.highSurrogate = 0
	d.sendEvent(Text{Chars: string(rune(c))})
}

func (d *driver) onRawInput(lparam uintptr) {
	ri, err := win32.ReadRawInput(lparam)
	if err != nil {
		// Short or invalid readback; raw input is additive, dropping is
		// harmless.
		return
	}
	switch ri.Header.Type {
	case win32.RIM_TYPEKEYBOARD:
		if ev, ok := decodeRawKeyboard(*ri.Keyboard(), win32.MapVirtualKey); ok {
			d.sendEvent(ev)
		}
	case win32.RIM_TYPEMOUSE:
		for _, ev := range decodeRawMouse(*ri.Mouse()) {
			d.sendEvent(ev)
		}
	}
}

func (d *driver) execute(c command) {
	if trace.Enabled() {
		trace.Command(fmt.Sprintf("%T", c), "")
	}
	st := d.win.state

	switch c := c.(type) {
	case cmdClose:
		st.advance(StageClosing)
		win32.DestroyWindow(d.hwnd)

	case cmdDestroy:
		d.stopDrain = true
		win32.DestroyWindow(d.hwnd)

	case cmdRedraw:
		st.mu.Lock()
		requested := st.requestedRedraw
		st.requestedRedraw = true
		st.mu.Unlock()
		if !requested {
			win32.InvalidateRgn(d.hwnd)
		}

	case cmdSetTitle:
		st.mu.Lock()
		st.title = c.title
		caption := st.caption()
		st.mu.Unlock()
		d.setCaption(caption)

	case cmdSetSubtitle:
		st.mu.Lock()
		st.subtitle = c.subtitle
		caption := st.caption()
		st.mu.Unlock()
		d.setCaption(caption)

	case cmdSetVisibility:
		st.mu.Lock()
		st.style.visibility = c.visibility
		st.mu.Unlock()
		cmd := int32(win32.SW_HIDE)
		if c.visibility == Shown {
			cmd = win32.SW_SHOW
		}
		win32.ShowWindow(d.hwnd, cmd)

	case cmdSetDecorations:
		st.mu.Lock()
		st.style.decorations = c.decorations
		bits, ex := st.style.bits()
		st.mu.Unlock()
		d.applyStyle(bits, ex)

	case cmdSetSize:
		st.mu.Lock()
		scale := st.scaleFactor
		st.mu.Unlock()
		size := c.size.Physical(scale)
		if err := win32.SetWindowPos(
			d.hwnd, 0, 0, size.Width, size.Height,
			win32.SWP_NOZORDER|win32.SWP_NOMOVE|win32.SWP_NOOWNERZORDER|win32.SWP_NOACTIVATE,
		); err != nil {
			d.log.Warn("set size failed", slog.String("error", err.Error()))
			return
		}
		win32.InvalidateRgn(d.hwnd)

	case cmdSetPosition:
		st.mu.Lock()
		scale := st.scaleFactor
		st.mu.Unlock()
		pos := c.position.Physical(scale)
		if err := win32.SetWindowPos(
			d.hwnd, pos.X, pos.Y, 0, 0,
			win32.SWP_NOZORDER|win32.SWP_NOSIZE|win32.SWP_NOOWNERZORDER|win32.SWP_NOACTIVATE,
		); err != nil {
			d.log.Warn("set position failed", slog.String("error", err.Error()))
			return
		}
		win32.InvalidateRgn(d.hwnd)

	case cmdSetFullscreen:
		d.setFullscreen(c.fullscreen)

	case cmdSetCursorMode:
		st.mu.Lock()
		st.cursorMode = c.mode
		st.mu.Unlock()
		d.refreshCursor()

	case cmdSetCursorVisibility:
		st.mu.Lock()
		st.cursorVisibility = c.visibility
		st.mu.Unlock()
		win32.SetCursorVisibility(c.visibility == Shown)
		d.refreshCursor()
	}
}

func (d *driver) setCaption(caption string) {
	text, err := windows.UTF16PtrFromString(caption)
	if err != nil {
		d.log.Warn("invalid window title", slog.String("error", err.Error()))
		return
	}
	if err := win32.SetWindowText(d.hwnd, text); err != nil {
		d.log.Warn("set title failed", slog.String("error", err.Error()))
	}
}

func (d *driver) applyStyle(bits, ex uint32) {
	win32.SetWindowLongPtr(d.hwnd, win32.GWL_STYLE, uintptr(bits))
	win32.SetWindowLongPtr(d.hwnd, win32.GWL_EXSTYLE, uintptr(ex))
	if err := win32.SetWindowPos(
		d.hwnd, 0, 0, 0, 0,
		win32.SWP_NOZORDER|win32.SWP_NOMOVE|win32.SWP_NOSIZE|
			win32.SWP_NOACTIVATE|win32.SWP_FRAMECHANGED,
	); err != nil {
		d.log.Warn("style change failed", slog.String("error", err.Error()))
	}
}

// setFullscreen is the compound transition: style bits first, then
// geometry, so no intermediate mix is ever observable from the
// application thread.
func (d *driver) setFullscreen(f Fullscreen) {
	st := d.win.state
	st.mu.Lock()
	if st.style.fullscreen == f {
		st.mu.Unlock()
		return
	}
	st.style.fullscreen = f
	bits, ex := st.style.bits()
	restorePos := st.lastWindowedPosition
	restoreSize := st.lastWindowedSize
	st.mu.Unlock()

	win32.SetWindowLongPtr(d.hwnd, win32.GWL_STYLE, uintptr(bits))
	win32.SetWindowLongPtr(d.hwnd, win32.GWL_EXSTYLE, uintptr(ex))

	var err error
	if f == Borderless {
		var monitor win32.Rect
		monitor, err = win32.MonitorRectForWindow(d.hwnd)
		if err == nil {
			err = win32.SetWindowPos(
				d.hwnd,
				monitor.Left, monitor.Top, monitor.Width(), monitor.Height(),
				win32.SWP_ASYNCWINDOWPOS|win32.SWP_NOZORDER|win32.SWP_FRAMECHANGED,
			)
		}
	} else {
		err = win32.SetWindowPos(
			d.hwnd,
			restorePos.X, restorePos.Y, restoreSize.Width, restoreSize.Height,
			win32.SWP_ASYNCWINDOWPOS|win32.SWP_NOZORDER|win32.SWP_FRAMECHANGED,
		)
	}
	if err != nil {
		d.log.Warn("fullscreen transition failed", slog.String("error", err.Error()))
	}
}

// refreshCursor applies the recorded cursor mode and visibility to the
// OS. A confined hidden cursor is clipped to one pixel at the client
// center so it cannot wander onto another monitor or the taskbar.
func (d *driver) refreshCursor() {
	st := d.win.state
	st.mu.Lock()
	mode := st.cursorMode
	vis := st.cursorVisibility
	st.mu.Unlock()

	if mode != CursorConfined {
		if err := win32.ReleaseCursorClip(); err != nil {
			d.log.Warn("cursor release failed", slog.String("error", err.Error()))
		}
		return
	}

	r, err := d.clientRectOnScreen()
	if err != nil {
		d.log.Warn("cursor confine failed", slog.String("error", err.Error()))
		return
	}
	if vis == Hidden {
		cx := r.Left + (r.Right-r.Left)/2
		cy := r.Top + (r.Bottom-r.Top)/2
		r = win32.Rect{Left: cx, Top: cy, Right: cx + 1, Bottom: cy + 1}
	}
	if err := win32.ClipCursorTo(r); err != nil {
		d.log.Warn("cursor confine failed", slog.String("error", err.Error()))
	}
}

func (d *driver) clientRectOnScreen() (win32.Rect, error) {
	client, err := win32.GetClientRect(d.hwnd)
	if err != nil {
		return win32.Rect{}, err
	}
	topLeft := win32.Point{X: client.Left, Y: client.Top}
	bottomRight := win32.Point{X: client.Right, Y: client.Bottom}
	win32.ClientToScreen(d.hwnd, &topLeft)
	win32.ClientToScreen(d.hwnd, &bottomRight)
	return win32.Rect{
		Left:   topLeft.X,
		Top:    topLeft.Y,
		Right:  bottomRight.X,
		Bottom: bottomRight.Y,
	}, nil
}
