package window

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/loop"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/sandbox"
	"github.com/san-kum/quanticle/internal/scene"
)

type staticConfigs map[string]sandbox.SavedConfig

func (s staticConfigs) Load(_ context.Context, id string) (sandbox.SavedConfig, error) {
	cfg, ok := s[id]
	if !ok {
		return sandbox.SavedConfig{}, dynamo.ErrNotFound
	}
	return cfg, nil
}

func TestDriverRedrawsAfterProjectileLands(t *testing.T) {
	g := NewWithT(t)
	var surfaces []*scene.NullSurface
	d := NewDriver(Options{
		Variant: params.VariantProjectile,
		Initial: map[params.Variant]params.Parameters{
			params.VariantProjectile: params.Projectile{AngleXY: 45, Speed: 2},
		},
		Factory: func() (scene.Surface, error) {
			s := &scene.NullSurface{}
			surfaces = append(surfaces, s)
			return s, nil
		},
	})
	defer d.Close()
	g.Expect(d.Start()).To(Succeed())
	g.Expect(surfaces).To(HaveLen(1))

	for i := 0; i < 600 && d.Active().Phase() == loop.Running; i++ {
		d.Frame()
	}
	g.Expect(d.Active().Phase()).To(Equal(loop.Quiescent))
	g.Expect(d.HUD()[0]).To(Equal("PROJECTILE  LANDED"))

	drawn := surfaces[0].Draws
	d.Frame()
	d.Frame()
	g.Expect(surfaces[0].Draws).To(Equal(drawn + 2))
}

func TestDriverPauseHoldsSimulation(t *testing.T) {
	g := NewWithT(t)
	d := NewDriver(Options{Variant: params.VariantPendulum})
	defer d.Close()
	g.Expect(d.Start()).To(Succeed())

	d.Frame()
	ticks := d.Active().Controller().Ticks()
	d.TogglePause()
	d.Frame()
	d.Frame()
	g.Expect(d.Active().Controller().Ticks()).To(Equal(ticks))
	g.Expect(d.HUD()[0]).To(Equal("PENDULUM  PAUSED"))
}

func TestDriverNudgeAndVariantSwitch(t *testing.T) {
	g := NewWithT(t)
	d := NewDriver(Options{Variant: params.VariantPendulum})
	defer d.Close()
	g.Expect(d.Start()).To(Succeed())
	first := d.Active()

	g.Expect(d.Nudge(1)).To(Succeed())
	g.Expect(d.Active()).NotTo(BeIdenticalTo(first))
	g.Expect(first.Closed()).To(BeTrue())
	g.Expect(d.Active().Mount.Params).To(Equal(params.Pendulum{Length: 2.1, Mass: 1}))

	g.Expect(d.SelectVariant(params.VariantSHM)).To(Succeed())
	g.Expect(d.Variant()).To(Equal(params.VariantSHM))
	g.Expect(d.HUD()).To(ContainElement(HavePrefix("> amplitude")))
}

func TestDriverSandboxToolbox(t *testing.T) {
	g := NewWithT(t)
	d := NewDriver(Options{
		Variant:  params.VariantSandbox,
		ConfigID: "heavy",
		Configs:  staticConfigs{"heavy": {Shape: dynamo.ShapeBox, Mass: 5, Gravity: true, Color: "#00ff00"}},
	})
	defer d.Close()
	g.Expect(d.Start()).To(Succeed())

	g.Expect(d.SpawnTool()).To(MatchError(dynamo.ErrConfigNotReady))
	g.Eventually(func() bool {
		d.Frame()
		return d.Loading()
	}, time.Second, time.Millisecond).Should(BeFalse())

	d.NudgeToolMass(4)
	g.Expect(d.Tool().Mass).To(Equal(3.0))
	g.Expect(d.SpawnShape(dynamo.ShapeSphere)).To(Succeed())
	g.Expect(d.SpawnDefault()).To(Succeed())

	bodies := d.Active().Sandbox().Bodies()
	g.Expect(bodies).To(HaveLen(2))
	g.Expect(bodies[0].Shape).To(Equal(dynamo.ShapeSphere))
	g.Expect(bodies[0].Color).To(Equal(sandbox.DefaultToolColor))
	g.Expect(bodies[1].Shape).To(Equal(dynamo.ShapeBox))
	g.Expect(bodies[1].Color).To(Equal("#00ff00"))
	g.Expect(d.HUD()).To(ContainElement("tool sphere 3.0kg #7b61ff"))

	g.Expect(d.ToggleGravity()).To(Succeed())
	g.Expect(d.Active().Sandbox().Gravity()).To(BeFalse())
	g.Expect(d.ResetScene()).To(Succeed())
	g.Expect(d.Active().Sandbox().Len()).To(BeZero())
}

func TestDriverCloseTearsDown(t *testing.T) {
	g := NewWithT(t)
	d := NewDriver(Options{Variant: params.VariantSHM})
	g.Expect(d.Start()).To(Succeed())
	s := d.Active()

	d.Close()
	d.Close()
	g.Expect(s.Closed()).To(BeTrue())
	g.Expect(d.Active()).To(BeNil())
}
