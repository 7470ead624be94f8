package sandbox_test

import (
	"github.com/lucasb-eyer/go-colorful"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/sandbox"
)

var _ = Describe("Toolbox", func() {
	It("starts as a unit box in the default color", func() {
		t := sandbox.DefaultToolbox()
		Expect(t.Shape).To(Equal(dynamo.ShapeBox))
		Expect(t.Mass).To(Equal(1.0))
		Expect(t.Color).To(Equal(sandbox.DefaultToolColor))
	})

	It("keeps the mass positive and bounded", func() {
		t := sandbox.DefaultToolbox()
		Expect(t.NudgeMass(2).Mass).To(Equal(2.0))
		Expect(t.NudgeMass(-10).Mass).To(Equal(0.5))
		Expect(t.NudgeMass(1000).Mass).To(Equal(50.0))
	})

	It("rotates the hue of the color", func() {
		t := sandbox.DefaultToolbox()
		next := t.NextColor()
		Expect(next.Color).NotTo(Equal(t.Color))

		before, _ := colorful.Hex(t.Color)
		after, err := colorful.Hex(next.Color)
		Expect(err).NotTo(HaveOccurred())
		h0, _, _ := before.Hsl()
		h1, _, _ := after.Hsl()
		Expect(h1 - h0).To(BeNumerically("~", 45, 2))

		grey := sandbox.Toolbox{Color: "#808080"}
		Expect(grey.NextColor().Color).To(Equal(sandbox.DefaultToolColor))
	})

	It("spawns with its own settings rather than the config", func() {
		ctrl := sandbox.New(nil, nil)
		defer ctrl.Close()
		Expect(ctrl.Apply(sandbox.DefaultConfig())).To(Succeed())

		tool := sandbox.Toolbox{Shape: dynamo.ShapeSphere, Mass: 3, Color: "#7B61FF"}
		_, err := ctrl.SpawnTool(tool)
		Expect(err).NotTo(HaveOccurred())

		bodies := ctrl.Bodies()
		Expect(bodies).To(HaveLen(1))
		Expect(bodies[0].Shape).To(Equal(dynamo.ShapeSphere))
		Expect(bodies[0].Color).To(Equal("#7b61ff"))
	})

	It("refuses to spawn before a config is ready", func() {
		ctrl := sandbox.New(nil, nil)
		_, err := ctrl.SpawnTool(sandbox.DefaultToolbox())
		Expect(err).To(MatchError(dynamo.ErrConfigNotReady))
	})
})
