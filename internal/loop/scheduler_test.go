package loop

import (
	"context"
	"testing"
	"time"
)

func TestFrameQueueDefersRequestsMadeDuringPresent(t *testing.T) {
	q := NewFrameQueue()
	ran := 0
	var cb func()
	cb = func() {
		ran++
		q.RequestFrame(cb)
	}
	q.RequestFrame(cb)

	if n := q.Present(); n != 1 {
		t.Errorf("present ran %d", n)
	}
	if ran != 1 || q.Pending() != 1 {
		t.Errorf("ran=%d pending=%d", ran, q.Pending())
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := map[string]bool{}
	a := q.RequestFrame(func() { ran["a"] = true })
	q.RequestFrame(func() { ran["b"] = true })
	q.CancelFrame(a)
	q.CancelFrame(a)
	q.CancelFrame(999)
	q.Present()

	if ran["a"] || !ran["b"] {
		t.Errorf("ran = %v", ran)
	}
	if q.Frames() != 1 {
		t.Errorf("frames = %d", q.Frames())
	}
}

func TestDriveStopsOnCancel(t *testing.T) {
	q := NewFrameQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := Drive(ctx, q, 200)
	if err == nil {
		t.Fatal("expected context error")
	}
	if q.Frames() == 0 {
		t.Error("no frames presented")
	}
}
