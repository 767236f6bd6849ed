package forest_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/forestfire/internal/forest"
	"github.com/san-kum/forestfire/internal/rng"
)

var still = forest.Rules{}

func snapshot(g *forest.Grid) []forest.Cell {
	return append([]forest.Cell(nil), g.Cells()...)
}

var _ = Describe("Grid", func() {
	Context("5x5 empty world with zero probabilities", func() {
		var g *forest.Grid

		BeforeEach(func() {
			g = forest.NewGrid(5, 5, still, rng.New(7))
		})

		It("plants on click before any step runs", func() {
			Expect(g.Plant(2, 2)).To(BeTrue())
			Expect(g.At(2, 2)).To(Equal(forest.Sapling1))
		})

		It("only ages the clicked cell during the next step", func() {
			g.Plant(2, 2)
			g.Step(forest.Interaction{})

			for y := 0; y < 5; y++ {
				for x := 0; x < 5; x++ {
					if x == 2 && y == 2 {
						Expect(g.At(x, y)).To(Equal(forest.Sapling2))
						continue
					}
					Expect(g.At(x, y)).To(Equal(forest.Empty), "cell (%d,%d)", x, y)
				}
			}
		})

		It("grows a sapling into a tree after five steps", func() {
			g.Plant(0, 4)
			for i := 0; i < 5; i++ {
				g.Step(forest.Interaction{})
			}
			Expect(g.At(0, 4)).To(Equal(forest.Tree))
		})
	})

	Context("3x3 world with a single central tree", func() {
		var g *forest.Grid

		BeforeEach(func() {
			g = forest.NewGrid(3, 3, still, rng.New(7))
			g.Set(1, 1, forest.Tree)
		})

		It("smoulders immediately on right click", func() {
			Expect(g.Ignite(1, 1)).To(BeTrue())
			Expect(g.At(1, 1)).To(Equal(forest.Smoldering))
		})

		It("advances along the chain without spreading before open flame", func() {
			g.Ignite(1, 1)
			g.Step(forest.Interaction{})

			Expect(g.At(1, 1)).To(Equal(forest.Hot))
			cells := snapshot(g)
			for i, c := range cells {
				if i == 4 {
					continue
				}
				Expect(c).To(Equal(forest.Empty))
			}
		})

		It("burns down and stays collapsed forever", func() {
			g.Ignite(1, 1)
			for i := 0; i < 100; i++ {
				g.Step(forest.Interaction{})
			}
			Expect(g.At(1, 1)).To(Equal(forest.Collapsed))
		})
	})

	Context("a row of trees next to open flame", func() {
		It("spreads one cell per step", func() {
			g := forest.NewGrid(6, 1, still, rng.New(3))
			g.Set(0, 0, forest.Burning1)
			for x := 1; x < 6; x++ {
				g.Set(x, 0, forest.Tree)
			}

			g.Step(forest.Interaction{})
			Expect(snapshot(g)).To(Equal([]forest.Cell{
				forest.Burning2, forest.Smoldering, forest.Tree, forest.Tree, forest.Tree, forest.Tree,
			}))

			// smoulder -> hot -> burning1, then the next tree catches.
			g.Step(forest.Interaction{})
			g.Step(forest.Interaction{})
			Expect(g.At(1, 0)).To(Equal(forest.Burning1))
			Expect(g.At(2, 0)).To(Equal(forest.Tree))

			g.Step(forest.Interaction{})
			Expect(g.At(2, 0)).To(Equal(forest.Smoldering))
		})
	})

	Context("held buttons", func() {
		It("keeps painting saplings under the pointer while left is held", func() {
			g := forest.NewGrid(4, 4, still, rng.New(11))
			in := forest.Interaction{X: 3, Y: 0, Hover: true, Left: true}

			g.Step(in)
			Expect(g.At(3, 0)).To(Equal(forest.Sapling1))

			g.Step(in)
			Expect(g.At(3, 0)).To(Equal(forest.Sapling2))
		})

		It("ignites the hovered tree while right is held", func() {
			g := forest.NewGrid(4, 4, still, rng.New(11))
			g.Set(1, 1, forest.Tree)
			g.Step(forest.Interaction{X: 1, Y: 1, Hover: true, Right: true})
			Expect(g.At(1, 1)).To(Equal(forest.Smoldering))
		})
	})
})
