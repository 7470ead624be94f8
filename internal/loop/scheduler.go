package loop

import (
	"context"
	"time"
)

type FrameID uint64

// Scheduler delivers frame callbacks on the host's presentation cadence.
type Scheduler interface {
	RequestFrame(cb func()) FrameID
	CancelFrame(id FrameID)
}

type pendingFrame struct {
	id FrameID
	cb func()
}

// FrameQueue collects frame requests until the host presents the next frame.
// Callbacks requested during Present run on the following frame. Not safe for
// concurrent use: a single goroutine owns the queue.
type FrameQueue struct {
	next    FrameID
	pending []pendingFrame
	frames  uint64
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(cb func()) FrameID {
	q.next++
	q.pending = append(q.pending, pendingFrame{id: q.next, cb: cb})
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Present runs every callback requested before this call and returns how
// many ran.
func (q *FrameQueue) Present() int {
	batch := q.pending
	q.pending = nil
	q.frames++
	for _, f := range batch {
		f.cb()
	}
	return len(batch)
}

func (q *FrameQueue) Pending() int { return len(q.pending) }

func (q *FrameQueue) Frames() uint64 { return q.frames }

// Drive presents frames at fps until ctx is done.
func Drive(ctx context.Context, q *FrameQueue, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			q.Present()
		}
	}
}

// Drain presents frames back to back until nothing is pending or maxFrames
// have been presented. It returns the number of frames presented.
func Drain(q *FrameQueue, maxFrames int) int {
	n := 0
	for q.Pending() > 0 && n < maxFrames {
		q.Present()
		n++
	}
	return n
}
