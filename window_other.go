//go:build !windows

package gowin

func platformNew(w *Window, settings Settings) error {
	return ErrUnsupported
}
