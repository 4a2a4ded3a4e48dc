package gowin

import "sync"

// eventSync hands events from the OS thread to the application thread in
// lockstep: at most one event is in flight, and the producer blocks until
// the consumer has taken it. This is what turns OS callback storms into
// paced delivery.
type eventSync struct {
	mu        sync.Mutex
	newEvent  *sync.Cond
	nextFrame *sync.Cond

	pending    Event
	hasPending bool
	done       bool
}

func newEventSync() *eventSync {
	s := &eventSync{}
	s.newEvent = sync.NewCond(&s.mu)
	s.nextFrame = sync.NewCond(&s.mu)
	return s
}

// send publishes one event and blocks until the consumer takes it. It
// returns false once the sync is closed; shutdown can interrupt either
// wait so a dying consumer never strands the producer.
func (s *eventSync) send(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.hasPending && !s.done {
		s.nextFrame.Wait()
	}
	if s.done {
		return false
	}

	s.pending = ev
	s.hasPending = true
	s.newEvent.Signal()

	for s.hasPending && !s.done {
		s.nextFrame.Wait()
	}
	return !s.done
}

// next takes the pending event. With block set it waits for one; without,
// it returns immediately. The second result reports whether an event was
// taken, the third whether the sync is still open.
func (s *eventSync) next(block bool) (Event, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if block {
		for !s.hasPending && !s.done {
			s.newEvent.Wait()
		}
	}
	if s.hasPending {
		ev := s.pending
		s.pending = nil
		s.hasPending = false
		s.nextFrame.Signal()
		return ev, true, true
	}
	return nil, false, !s.done
}

// close wakes both sides permanently. Any in-flight event is dropped.
func (s *eventSync) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	s.hasPending = false
	s.pending = nil
	s.newEvent.Broadcast()
	s.nextFrame.Broadcast()
}

// commandQueue is the application-to-OS-thread mailbox. Commands keep
// FIFO order and are drained in a batch between OS callbacks.
type commandQueue struct {
	mu   sync.Mutex
	cmds []command
}

func (q *commandQueue) push(c command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cmds = append(q.cmds, c)
}

// drain takes every queued command, leaving the queue empty. Commands
// pushed while the batch executes land in the next drain.
func (q *commandQueue) drain() []command {
	q.mu.Lock()
	defer q.mu.Unlock()
	cmds := q.cmds
	q.cmds = nil
	return cmds
}

func (q *commandQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.cmds) == 0
}
