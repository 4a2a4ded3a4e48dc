package gowin

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestEventSyncDeliversInOrder(t *testing.T) {
	s := newEventSync()
	const n = 100

	go func() {
		for i := 0; i < n; i++ {
			if !s.send(Scroll{Dy: float64(i)}) {
				return
			}
		}
		s.close()
	}()

	for i := 0; i < n; i++ {
		ev, got, alive := s.next(true)
		if !got || !alive {
			t.Fatalf("next(%d) = got=%v alive=%v, want event", i, got, alive)
		}
		sc, ok := ev.(Scroll)
		if !ok || sc.Dy != float64(i) {
			t.Fatalf("event %d = %#v, want Scroll{Dy: %d}", i, ev, i)
		}
	}
	if _, _, alive := s.next(true); alive {
		t.Error("next after close reports alive")
	}
}

func TestEventSyncAtMostOneInFlight(t *testing.T) {
	s := newEventSync()
	var sent, consumed atomic.Int32

	go func() {
		for i := 0; i < 50; i++ {
			s.send(Paint{})
			sent.Add(1)
		}
		s.close()
	}()

	for {
		ev, got, alive := s.next(true)
		if !alive {
			break
		}
		if !got {
			continue
		}
		if _, ok := ev.(Paint); !ok {
			t.Fatalf("unexpected event %#v", ev)
		}
		consumed.Add(1)
		// send returns only after the consumer took the event, so the
		// producer can be at most one ahead.
		if d := sent.Load() - consumed.Load(); d > 1 {
			t.Fatalf("producer ran %d events ahead, want <= 1", d)
		}
	}
	if consumed.Load() != 50 {
		t.Errorf("consumed %d events, want 50", consumed.Load())
	}
}

func TestEventSyncPollReturnsImmediately(t *testing.T) {
	s := newEventSync()
	if _, got, alive := s.next(false); got || !alive {
		t.Errorf("empty poll = got=%v alive=%v, want no event, alive", got, alive)
	}
	s.close()
	if _, _, alive := s.next(false); alive {
		t.Error("poll after close reports alive")
	}
}

func TestEventSyncCloseUnblocksProducer(t *testing.T) {
	s := newEventSync()
	done := make(chan struct{})
	go func() {
		// No consumer: the send must park until close.
		s.send(Paint{})
		s.send(Paint{})
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	s.close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer still blocked after close")
	}
}

func TestEventSyncCloseUnblocksConsumer(t *testing.T) {
	s := newEventSync()
	done := make(chan struct{})
	go func() {
		_, _, alive := s.next(true)
		if alive {
			t.Error("next(true) returned alive after close")
		}
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	s.close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer still blocked after close")
	}
}

func TestCommandQueueFIFO(t *testing.T) {
	var q commandQueue
	q.push(cmdSetTitle{"a"})
	q.push(cmdRedraw{})
	q.push(cmdClose{})

	cmds := q.drain()
	if len(cmds) != 3 {
		t.Fatalf("drain returned %d commands, want 3", len(cmds))
	}
	if _, ok := cmds[0].(cmdSetTitle); !ok {
		t.Errorf("cmds[0] = %T, want cmdSetTitle", cmds[0])
	}
	if _, ok := cmds[1].(cmdRedraw); !ok {
		t.Errorf("cmds[1] = %T, want cmdRedraw", cmds[1])
	}
	if _, ok := cmds[2].(cmdClose); !ok {
		t.Errorf("cmds[2] = %T, want cmdClose", cmds[2])
	}
	if !q.empty() {
		t.Error("queue not empty after drain")
	}
}

func TestCommandQueueConcurrentPush(t *testing.T) {
	var q commandQueue
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.push(cmdRedraw{})
			}
		}()
	}
	wg.Wait()
	if got := len(q.drain()); got != 800 {
		t.Errorf("drained %d commands, want 800", got)
	}
}
