package trace

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestRecordRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.trace")
	if err := OpenFile(path); err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	Event("Resized", "1024x768")
	Command("SetTitle", "hello")
	Eventf("Scroll", "dy=%v", 3.0)

	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	records, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("decoded %d records, want 3", len(records))
	}

	want := []Record{
		{Kind: KindEvent, Name: "Resized", Detail: "1024x768"},
		{Kind: KindCommand, Name: "SetTitle", Detail: "hello"},
		{Kind: KindEvent, Name: "Scroll", Detail: "dy=3"},
	}
	for i, w := range want {
		got := records[i]
		if got.Kind != w.Kind || got.Name != w.Name || got.Detail != w.Detail {
			t.Errorf("record %d = %+v, want %+v", i, got, w)
		}
		if got.Timestamp.IsZero() {
			t.Errorf("record %d has zero timestamp", i)
		}
	}
}

func TestDisabledRecordingIsNoOp(t *testing.T) {
	if Enabled() {
		t.Fatal("recording enabled at test start")
	}
	// Must not panic or write anywhere.
	Event("Paint", "")
	Eventf("Paint", "%d", 1)
}

func TestConcurrentRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.trace")
	if err := OpenFile(path); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Event("Cursor", "10,20")
			}
		}()
	}
	wg.Wait()
	if err := Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	records, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(records) != 400 {
		t.Errorf("decoded %d records, want 400", len(records))
	}
	for i, r := range records {
		if r.Name != "Cursor" || r.Detail != "10,20" {
			t.Fatalf("record %d corrupted: %+v", i, r)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	if _, err := Decode([]byte{1, 0, 5}); err == nil {
		t.Error("Decode(short header) succeeded, want error")
	}
}

func TestOpenTwiceWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.trace")
	if err := OpenFile(path); err != nil {
		t.Fatal(err)
	}
	defer Close()
	if err := OpenFile(filepath.Join(t.TempDir(), "b.trace")); err == nil {
		t.Error("second Open returned nil, want discarded-writer warning")
	}
}
