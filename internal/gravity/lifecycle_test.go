package gravity_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/vecmath"
)

var _ = Describe("World lifecycle", func() {
	var (
		world   *gravity.World
		shooter gravity.Handle
		target  gravity.Handle
	)

	tickN := func(n int, in gravity.Intent) (hits, destroyed int) {
		for i := 0; i < n; i++ {
			rep := world.Tick(in)
			Expect(rep.Err).NotTo(HaveOccurred())
			hits += rep.Hits
			destroyed += rep.Destroyed
		}
		return hits, destroyed
	}

	BeforeEach(func() {
		params := gravity.DefaultParams()
		params.G = 0

		var err error
		world, err = gravity.NewWorld(params, nil)
		Expect(err).NotTo(HaveOccurred())

		hs, err := world.Spawn(gravity.SpawnRequest{
			Label: "duel",
			Bodies: []gravity.BodyParams{
				{Pos: vecmath.V(0, 0), Density: 1, Radius: 5, Color: "blue"},
				{Pos: vecmath.V(0, 40), Density: 1, Radius: 10, Health: 20},
			},
			Cannons: []gravity.CannonParams{{Parent: 0}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(hs).To(HaveLen(2))
		shooter, target = hs[0], hs[1]
	})

	It("places the cannon on the shooter's surface", func() {
		f := world.Frame()
		Expect(f.Cannons).To(HaveLen(1))
		Expect(f.Cannons[0].Parent).To(Equal(shooter))
		Expect(f.Cannons[0].Pos).To(Equal(vecmath.V(0, 5)))
	})

	It("damages the target once per projectile", func() {
		hits, destroyed := tickN(1, gravity.Intent{Fire: true})
		Expect(hits).To(BeZero())
		Expect(destroyed).To(BeZero())

		hits, _ = tickN(10, gravity.Intent{})
		Expect(hits).To(Equal(1))

		b, ok := world.Body(target)
		Expect(ok).To(BeTrue())
		Expect(b.Health).To(Equal(10))
		Expect(world.Projectiles()).To(BeEmpty())
	})

	It("removes the target when its health runs out", func() {
		tickN(1, gravity.Intent{Fire: true})
		tickN(10, gravity.Intent{})
		tickN(1, gravity.Intent{Fire: true})
		_, destroyed := tickN(10, gravity.Intent{})

		Expect(destroyed).To(Equal(1))
		_, ok := world.Body(target)
		Expect(ok).To(BeFalse())

		f := world.Frame()
		Expect(f.Bodies).To(HaveLen(1))
		Expect(f.Bodies[0].ID).To(Equal(shooter))
		Expect(f.Cannons).To(HaveLen(1))
	})

	It("drops the cannon in the same tick its parent dies", func() {
		Expect(world.Deactivate(shooter)).To(Succeed())
		rep := world.Tick(gravity.Intent{Fire: true})

		Expect(rep.Fired).To(BeZero())
		Expect(rep.Destroyed).To(Equal(1))
		Expect(world.Cannons()).To(BeEmpty())
		Expect(world.Deactivate(shooter)).To(MatchError(gravity.ErrStaleHandle))
	})

	It("keeps projectiles moving in a straight line without gravity", func() {
		world.Tick(gravity.Intent{Fire: true})
		p := world.Projectiles()[0]
		Expect(p.Pos.X).To(BeNumerically("~", 0, 1e-9))
		Expect(p.Pos.Y).To(BeNumerically("~", 13, 1e-9))
		Expect(p.Color).To(Equal("blue"))
	})
})
