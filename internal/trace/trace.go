// Package trace is a thread-safe binary recorder for the window driver's
// event and command flow. It exists for postmortem debugging of ordering
// problems: every delivered event and executed command can be appended
// with a nanosecond timestamp and replayed later.
//
// Record format, little-endian:
//   - 2 bytes kind (0 = invalid, 1 = event, 2 = command)
//   - 2 bytes name length
//   - 4 bytes detail length
//   - 8 bytes timestamp (nanoseconds since epoch)
//   - name bytes, then detail bytes
//
// Thread safety comes from atomically reserving a file offset per record,
// so concurrent writers never interleave bytes.
package trace

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"
)

type Kind uint16

const (
	KindInvalid Kind = iota
	KindEvent
	KindCommand
)

const headerSize = 16

// Writer is the destination for trace records.
type Writer interface {
	io.WriterAt
	io.Closer
}

var (
	dest   atomic.Pointer[Writer]
	offset atomic.Uint64
)

// OpenFile starts recording to filename, truncating any previous trace.
func OpenFile(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	return Open(f)
}

// Open starts recording to w. A previously open writer is discarded; the
// returned error is a warning about that, not a failure.
func Open(w Writer) error {
	offset.Store(0)
	if dest.Swap(&w) != nil {
		return fmt.Errorf("trace: already open, discarded old writer")
	}
	return nil
}

// Close stops recording and closes the destination. Safe to call when
// recording never started.
func Close() error {
	w := dest.Swap(nil)
	offset.Store(0)
	if w == nil {
		return nil
	}
	return (*w).Close()
}

// Enabled reports whether records are currently being written.
func Enabled() bool {
	return dest.Load() != nil
}

func record(kind Kind, name, detail string) {
	w := dest.Load()
	if w == nil {
		return
	}

	size := uint64(headerSize + len(name) + len(detail))
	off := int64(offset.Add(size) - size)

	buf := make([]byte, size)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(kind))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(len(name)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(detail)))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(time.Now().UnixNano()))
	copy(buf[headerSize:], name)
	copy(buf[headerSize+len(name):], detail)

	// A failed trace write only loses diagnostics.
	(*w).WriteAt(buf, off)
}

// Event records a delivered event by name with formatted detail.
func Event(name string, detail string) {
	record(KindEvent, name, detail)
}

// Eventf is Event with formatting, evaluated only while recording.
func Eventf(name string, format string, args ...any) {
	if !Enabled() {
		return
	}
	record(KindEvent, name, fmt.Sprintf(format, args...))
}

// Command records an executed command by name with formatted detail.
func Command(name string, detail string) {
	record(KindCommand, name, detail)
}

// Record is one decoded trace entry.
type Record struct {
	Kind      Kind
	Name      string
	Detail    string
	Timestamp time.Time
}

// Decode parses a complete trace buffer back into records, for tooling
// and tests.
func Decode(data []byte) ([]Record, error) {
	var records []Record
	for off := 0; off < len(data); {
		if len(data)-off < headerSize {
			return records, fmt.Errorf("trace: truncated header at offset %d", off)
		}
		h := data[off : off+headerSize]
		kind := Kind(binary.LittleEndian.Uint16(h[0:2]))
		nameLen := int(binary.LittleEndian.Uint16(h[2:4]))
		detailLen := int(binary.LittleEndian.Uint32(h[4:8]))
		ts := int64(binary.LittleEndian.Uint64(h[8:16]))

		body := off + headerSize
		if len(data)-body < nameLen+detailLen {
			return records, fmt.Errorf("trace: truncated record at offset %d", off)
		}
		records = append(records, Record{
			Kind:      kind,
			Name:      string(data[body : body+nameLen]),
			Detail:    string(data[body+nameLen : body+nameLen+detailLen]),
			Timestamp: time.Unix(0, ts),
		})
		off = body + nameLen + detailLen
	}
	return records, nil
}
