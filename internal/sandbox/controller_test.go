package sandbox_test

import (
	"context"
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/sandbox"
)

// fakeEngine moves every body down by one unit per step when gravity is on.
type fakeEngine struct {
	gravity mgl64.Vec3
	poses   map[sandbox.BodyHandle]sandbox.Pose
	specs   []sandbox.BodySpec
	next    sandbox.BodyHandle
	steps   int
	closed  bool
}

func (f *fakeEngine) Register(spec sandbox.BodySpec) (sandbox.BodyHandle, error) {
	f.next++
	f.specs = append(f.specs, spec)
	f.poses[f.next] = sandbox.Pose{Position: spec.Position, Velocity: spec.Velocity, Angle: spec.Angle}
	return f.next, nil
}

func (f *fakeEngine) Deregister(h sandbox.BodyHandle) { delete(f.poses, h) }

func (f *fakeEngine) Step(float64) {
	f.steps++
	if f.gravity.Y() == 0 {
		return
	}
	for h, p := range f.poses {
		p.Position = p.Position.Sub(mgl64.Vec3{0, 1, 0})
		f.poses[h] = p
	}
}

func (f *fakeEngine) Pose(h sandbox.BodyHandle) (sandbox.Pose, bool) {
	p, ok := f.poses[h]
	return p, ok
}

func (f *fakeEngine) Bodies() int { return len(f.poses) }

func (f *fakeEngine) Close() { f.closed = true }

type mapSource map[string]sandbox.SavedConfig

func (m mapSource) Load(_ context.Context, id string) (sandbox.SavedConfig, error) {
	cfg, ok := m[id]
	if !ok {
		return sandbox.SavedConfig{}, dynamo.ErrNotFound
	}
	return cfg, nil
}

var _ = Describe("Controller", func() {
	var (
		engines []*fakeEngine
		ctrl    *sandbox.Controller
		cfg     sandbox.SavedConfig
	)

	BeforeEach(func() {
		engines = nil
		ctrl = sandbox.New(func(g mgl64.Vec3) sandbox.Engine {
			e := &fakeEngine{gravity: g, poses: map[sandbox.BodyHandle]sandbox.Pose{}}
			engines = append(engines, e)
			return e
		}, nil)
		cfg = sandbox.SavedConfig{Shape: dynamo.ShapeSphere, Mass: 2, Gravity: true, Color: "#00FF00"}
	})

	Context("while loading", func() {
		It("refuses to spawn", func() {
			_, err := ctrl.Spawn(dynamo.ShapeBox, 1, "#ffffff")
			Expect(err).To(MatchError(dynamo.ErrConfigNotReady))
			Expect(ctrl.State()).To(Equal(sandbox.Loading))
		})

		It("emits empty samples", func() {
			s := ctrl.Step()
			Expect(s.Bodies).To(BeEmpty())
			Expect(s.Readout).To(Equal(dynamo.BodyCountReadout{Count: 0}))
			Expect(s.Terminal).To(BeFalse())
		})

		It("refuses to toggle gravity", func() {
			Expect(ctrl.SetGravity(false)).To(MatchError(dynamo.ErrConfigNotReady))
		})
	})

	Context("once a config is applied", func() {
		BeforeEach(func() {
			Expect(ctrl.Apply(cfg)).To(Succeed())
		})

		It("builds the world with standard gravity", func() {
			Expect(ctrl.Ready()).To(BeTrue())
			Expect(engines).To(HaveLen(1))
			Expect(engines[0].gravity).To(Equal(mgl64.Vec3{0, -9.81, 0}))
			applied, ok := ctrl.Config()
			Expect(ok).To(BeTrue())
			Expect(applied.Color).To(Equal("#00ff00"))
		})

		It("spawns bodies at the spawn point in order", func() {
			a, err := ctrl.Spawn(dynamo.ShapeBox, 1, "#ff0000")
			Expect(err).NotTo(HaveOccurred())
			b, err := ctrl.SpawnDefault()
			Expect(err).NotTo(HaveOccurred())
			Expect(b).To(BeNumerically(">", a))

			bodies := ctrl.Bodies()
			Expect(bodies).To(HaveLen(2))
			Expect(bodies[0].Position).To(Equal(sandbox.SpawnPoint))
			Expect(bodies[0].Shape).To(Equal(dynamo.ShapeBox))
			Expect(bodies[1].Shape).To(Equal(dynamo.ShapeSphere))
			Expect(bodies[1].Color).To(Equal("#00ff00"))
			Expect(engines[0].Bodies()).To(Equal(2))
		})

		DescribeTable("rejects invalid bodies",
			func(shape dynamo.Shape, mass float64, color string, want error) {
				_, err := ctrl.Spawn(shape, mass, color)
				Expect(err).To(MatchError(want))
				Expect(ctrl.Len()).To(Equal(0))
			},
			Entry("zero mass", dynamo.ShapeBox, 0.0, "#ffffff", dynamo.ErrInvalidMass),
			Entry("negative mass", dynamo.ShapeBox, -1.0, "#ffffff", dynamo.ErrInvalidMass),
			Entry("NaN mass", dynamo.ShapeBox, math.NaN(), "#ffffff", dynamo.ErrInvalidMass),
			Entry("infinite mass", dynamo.ShapeSphere, math.Inf(1), "#ffffff", dynamo.ErrInvalidMass),
			Entry("unknown shape", dynamo.Shape(7), 1.0, "#ffffff", dynamo.ErrInvalidShape),
			Entry("short color", dynamo.ShapeBox, 1.0, "#fff", dynamo.ErrInvalidColor),
			Entry("named color", dynamo.ShapeBox, 1.0, "red", dynamo.ErrInvalidColor),
		)

		It("steps the world and reports the body count", func() {
			_, _ = ctrl.SpawnDefault()
			s := ctrl.Step()
			Expect(s.Step).To(Equal(1))
			Expect(s.Time).To(BeNumerically("~", sandbox.Dt, 1e-12))
			Expect(s.Readout).To(Equal(dynamo.BodyCountReadout{Count: 1}))
			Expect(s.Bodies[0].Position.Y()).To(BeNumerically("~", 4, 1e-12))
		})

		It("clears every body on reset", func() {
			_, _ = ctrl.SpawnDefault()
			_, _ = ctrl.SpawnDefault()
			ctrl.ResetScene()
			Expect(ctrl.Len()).To(Equal(0))
			Expect(engines[0].Bodies()).To(Equal(0))
			Expect(ctrl.Ready()).To(BeTrue())
		})

		It("rebuilds the world on gravity toggle and keeps poses", func() {
			_, _ = ctrl.SpawnDefault()
			ctrl.Step()
			ctrl.Step()

			Expect(ctrl.SetGravity(false)).To(Succeed())
			Expect(engines).To(HaveLen(2))
			Expect(engines[0].closed).To(BeTrue())
			Expect(engines[1].gravity).To(Equal(mgl64.Vec3{}))
			Expect(engines[1].specs[0].Position).To(Equal(mgl64.Vec3{0, 3, 0}))

			ctrl.Step()
			Expect(ctrl.Bodies()[0].Position.Y()).To(BeNumerically("~", 3, 1e-12))

			Expect(ctrl.SetGravity(false)).To(Succeed())
			Expect(engines).To(HaveLen(2))
		})

		It("returns to loading on close", func() {
			_, _ = ctrl.SpawnDefault()
			ctrl.Close()
			Expect(ctrl.Ready()).To(BeFalse())
			Expect(engines[0].closed).To(BeTrue())
		})
	})

	It("builds a weightless world when gravity is off", func() {
		cfg.Gravity = false
		Expect(ctrl.Apply(cfg)).To(Succeed())
		Expect(engines[0].gravity).To(Equal(mgl64.Vec3{}))
	})

	It("rejects an invalid config", func() {
		cfg.Mass = 0
		Expect(ctrl.Apply(cfg)).To(MatchError(dynamo.ErrInvalidMass))
		Expect(ctrl.Ready()).To(BeFalse())
	})
})

var _ = Describe("Loading", func() {
	It("falls back to the default config for the default id", func() {
		cfg, err := sandbox.LoadOrDefault(context.Background(), mapSource{}, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(sandbox.DefaultConfig()))
	})

	It("reports a missing named config", func() {
		_, err := sandbox.LoadOrDefault(context.Background(), mapSource{}, "ramp")
		Expect(errors.Is(err, dynamo.ErrNotFound)).To(BeTrue())
	})

	It("delivers one async result", func() {
		src := mapSource{"ramp": {Shape: dynamo.ShapeBox, Mass: 3, Color: "#123456"}}
		res := <-sandbox.LoadAsync(context.Background(), src, "ramp")
		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.ID).To(Equal("ramp"))
		Expect(res.Config.Mass).To(Equal(3.0))
	})

	It("validates loaded configs", func() {
		src := mapSource{"bad": {Shape: dynamo.ShapeBox, Mass: 1, Color: "blue"}}
		_, err := sandbox.LoadOrDefault(context.Background(), src, "bad")
		Expect(err).To(MatchError(dynamo.ErrInvalidColor))
	})
})
