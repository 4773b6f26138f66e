// Package terrain generates deterministic ground heights, vegetation and
// zone lookups from a world seed.
package terrain

import (
	"math"

	"github.com/kasuganosora/arpgcore/resource"
)

// HeightField is layered value noise over world coordinates. Heights
// depend only on the seed and the sampled coordinates, so adjacent chunks
// agree on their shared edge.
type HeightField struct {
	seed    uint64
	base    float64
	octaves []resource.Octave
}

func NewHeightField(seed int64, t resource.TerrainData) *HeightField {
	return &HeightField{
		seed:    uint64(seed),
		base:    t.BaseHeight,
		octaves: append([]resource.Octave(nil), t.Octaves...),
	}
}

// At returns the height at world position (x, z).
func (h *HeightField) At(x, z float64) float64 {
	y := h.base
	for i, o := range h.octaves {
		n := valueNoise(x*o.Frequency, z*o.Frequency, h.seed+uint64(i)*0x9e3779b97f4a7c15)
		y += o.Amplitude * (2*n - 1)
	}
	return y
}

// Range returns the lowest and highest heights At can produce.
func (h *HeightField) Range() (lo, hi float64) {
	amp := 0.0
	for _, o := range h.octaves {
		amp += math.Abs(o.Amplitude)
	}
	return h.base - amp, h.base + amp
}

// valueNoise returns smoothstep-interpolated lattice noise in [0,1].
func valueNoise(x, z float64, seed uint64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	ix, iz := int64(x0), int64(z0)
	tx, tz := smoothstep(x-x0), smoothstep(z-z0)

	v00 := lattice(ix, iz, seed)
	v10 := lattice(ix+1, iz, seed)
	v01 := lattice(ix, iz+1, seed)
	v11 := lattice(ix+1, iz+1, seed)

	a := v00 + (v10-v00)*tx
	b := v01 + (v11-v01)*tx
	return a + (b-a)*tz
}

func smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

// lattice hashes an integer grid point to [0,1).
func lattice(ix, iz int64, seed uint64) float64 {
	k := mix64(uint64(ix)*0x9e3779b97f4a7c15 ^ mix64(uint64(iz)+0x632be59bd9b4e019) ^ seed)
	return float64(k>>11) / (1 << 53)
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
