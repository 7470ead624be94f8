package loop

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/quanticle/internal/dynamo"
)

type countingStepper struct {
	n        int
	terminal int
}

func (s *countingStepper) Step() dynamo.Sample {
	s.n++
	return dynamo.Sample{Step: s.n, Terminal: s.terminal > 0 && s.n >= s.terminal}
}

type recordingScene struct {
	applied  int
	rendered int
	err      error
}

func (r *recordingScene) Apply(dynamo.Sample) { r.applied++ }

func (r *recordingScene) Render() error {
	r.rendered++
	return r.err
}

// stubbornScheduler never forgets a callback, even when cancelled.
type stubbornScheduler struct {
	cbs []func()
}

func (s *stubbornScheduler) RequestFrame(cb func()) FrameID {
	s.cbs = append(s.cbs, cb)
	return FrameID(len(s.cbs))
}

func (s *stubbornScheduler) CancelFrame(FrameID) {}

func (s *stubbornScheduler) fire() {
	cbs := s.cbs
	s.cbs = nil
	for _, cb := range cbs {
		cb()
	}
}

func TestControllerTickOrder(t *testing.T) {
	q := NewFrameQueue()
	stepper := &countingStepper{}
	scene := &recordingScene{}
	var published []int
	c := New(stepper, scene, PublisherFunc(func(s dynamo.Sample) {
		if scene.rendered != s.Step {
			t.Errorf("publish before render: rendered=%d step=%d", scene.rendered, s.Step)
		}
		published = append(published, s.Step)
	}), q, nil)

	if c.Phase() != Idle {
		t.Fatalf("phase = %v, want idle", c.Phase())
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if q.Pending() != 1 {
			t.Fatalf("frame %d: pending = %d, want 1", i, q.Pending())
		}
		q.Present()
	}
	if len(published) != 5 || published[4] != 5 {
		t.Errorf("published = %v", published)
	}
	if c.Ticks() != 5 {
		t.Errorf("ticks = %d", c.Ticks())
	}
	last, ok := c.Last()
	if !ok || last.Step != 5 {
		t.Errorf("last = %+v, %v", last, ok)
	}
}

func TestControllerStartTwice(t *testing.T) {
	c := New(&countingStepper{}, &recordingScene{}, nil, NewFrameQueue(), nil)
	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(context.Background()); err == nil {
		t.Error("second start should fail")
	}
}

func TestControllerStartWithoutContext(t *testing.T) {
	q := NewFrameQueue()
	stepper := &countingStepper{}
	c := New(stepper, &recordingScene{}, nil, q, nil)
	//nolint:staticcheck // a nil context runs uncancelled
	if err := c.Start(nil); err != nil {
		t.Fatal(err)
	}
	q.Present()
	q.Present()
	if stepper.n != 2 || c.Phase() != Running {
		t.Errorf("steps = %d, phase = %v", stepper.n, c.Phase())
	}
}

func TestControllerStopCancelsPendingFrame(t *testing.T) {
	q := NewFrameQueue()
	stepper := &countingStepper{}
	c := New(stepper, &recordingScene{}, nil, q, nil)
	_ = c.Start(context.Background())
	q.Present()

	c.Stop()
	if q.Pending() != 0 {
		t.Errorf("pending after stop = %d", q.Pending())
	}
	q.Present()
	if stepper.n != 1 {
		t.Errorf("steps = %d, want 1", stepper.n)
	}
	if c.Phase() != Stopped {
		t.Errorf("phase = %v", c.Phase())
	}
	c.Stop()
}

func TestControllerStopFlagWhenCancelIgnored(t *testing.T) {
	sched := &stubbornScheduler{}
	stepper := &countingStepper{}
	published := 0
	c := New(stepper, &recordingScene{}, PublisherFunc(func(dynamo.Sample) { published++ }), sched, nil)
	_ = c.Start(context.Background())
	sched.fire()
	sched.fire()

	c.Stop()
	sched.fire()
	sched.fire()

	if stepper.n != 2 || published != 2 {
		t.Errorf("steps=%d published=%d, want 2/2", stepper.n, published)
	}
}

func TestControllerContextCancel(t *testing.T) {
	q := NewFrameQueue()
	stepper := &countingStepper{}
	ctx, cancel := context.WithCancel(context.Background())
	c := New(stepper, &recordingScene{}, nil, q, nil)
	_ = c.Start(ctx)
	q.Present()
	cancel()
	q.Present()

	if stepper.n != 1 {
		t.Errorf("steps = %d, want 1", stepper.n)
	}
	if c.Phase() != Stopped {
		t.Errorf("phase = %v, want stopped", c.Phase())
	}
	if q.Pending() != 0 {
		t.Errorf("pending = %d", q.Pending())
	}
}

func TestControllerQuiescent(t *testing.T) {
	q := NewFrameQueue()
	stepper := &countingStepper{terminal: 3}
	scene := &recordingScene{}
	c := New(stepper, scene, nil, q, nil)
	_ = c.Start(context.Background())

	n := Drain(q, 100)
	if n != 3 {
		t.Errorf("frames = %d, want 3", n)
	}
	if c.Phase() != Quiescent {
		t.Errorf("phase = %v, want quiescent", c.Phase())
	}
	if scene.rendered != 3 {
		t.Errorf("rendered = %d", scene.rendered)
	}
	c.Stop()
	if c.Phase() != Stopped {
		t.Errorf("phase = %v", c.Phase())
	}
}

func TestControllerRenderErrorAbsorbed(t *testing.T) {
	q := NewFrameQueue()
	scene := &recordingScene{err: errors.New("surface lost")}
	published := 0
	c := New(&countingStepper{}, scene, PublisherFunc(func(dynamo.Sample) { published++ }), q, nil)
	_ = c.Start(context.Background())
	q.Present()
	q.Present()

	if published != 2 || c.Phase() != Running {
		t.Errorf("published=%d phase=%v", published, c.Phase())
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{Idle: "idle", Running: "running", Quiescent: "quiescent", Stopped: "stopped"}
	for p, want := range tests {
		if p.String() != want {
			t.Errorf("%d: %q", p, p.String())
		}
	}
}
