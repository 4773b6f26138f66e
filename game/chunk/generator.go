package chunk

import (
	"github.com/kasuganosora/arpgcore/game/terrain"
)

// Generator builds chunk content from the terrain height field and the
// vegetation placer.
type Generator struct {
	heights    *terrain.HeightField
	vegetation *terrain.VegetationPlacer
	size       float64
	resolution int
}

// NewGenerator creates a Generator for chunks of edge size sampled on a
// resolution x resolution vertex lattice.
func NewGenerator(heights *terrain.HeightField, vegetation *terrain.VegetationPlacer, size float64, resolution int) *Generator {
	if resolution < 2 {
		resolution = 2
	}
	return &Generator{heights: heights, vegetation: vegetation, size: size, resolution: resolution}
}

func (g *Generator) Size() float64   { return g.size }
func (g *Generator) Resolution() int { return g.resolution }

// Generate samples heights at world coordinates, so the last column of a
// chunk equals the first column of its +X neighbour.
func (g *Generator) Generate(c Coord) *Chunk {
	n := g.resolution
	ch := &Chunk{
		Coord:      c,
		Size:       g.size,
		Resolution: n,
		Heights:    make([]float64, n*n),
	}
	last := float64(n - 1)
	for j := 0; j < n; j++ {
		z := (float64(c.Z) + float64(j)/last) * g.size
		for i := 0; i < n; i++ {
			x := (float64(c.X) + float64(i)/last) * g.size
			ch.Heights[j*n+i] = g.heights.At(x, z)
		}
	}
	if g.vegetation != nil {
		ch.Vegetation = g.vegetation.Place(c.X, c.Z, g.size)
	}
	return ch
}
