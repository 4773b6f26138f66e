package terrain

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strconv"

	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/resource"
)

// Instance is one placed decoration.
type Instance struct {
	Kind     string    `json:"kind"`
	Pos      geom.Vec2 `json:"pos"`
	Height   float64   `json:"height"`
	Scale    float64   `json:"scale"`
	Rotation float64   `json:"rotation"`
}

// ChunkSeed derives a per-chunk rng seed from the world seed and chunk
// coordinates (FNV-1a over "seed:x:z").
func ChunkSeed(seed int64, cx, cz int) int64 {
	h := fnv.New64a()
	h.Write([]byte(strconv.FormatInt(seed, 10)))
	h.Write([]byte{':'})
	h.Write([]byte(strconv.Itoa(cx)))
	h.Write([]byte{':'})
	h.Write([]byte(strconv.Itoa(cz)))
	return int64(h.Sum64())
}

// VegetationPlacer scatters decorations inside a chunk. Placement draws from
// an rng seeded only by the world seed and chunk coordinates; every attempt
// consumes the same number of draws so results never depend on the kinds
// rejected by the height band.
type VegetationPlacer struct {
	seed     int64
	kinds    []*resource.VegetationKind
	total    float64
	perChunk int
	heights  *HeightField
}

func NewVegetationPlacer(seed int64, kinds []*resource.VegetationKind, perChunk int, heights *HeightField) *VegetationPlacer {
	vp := &VegetationPlacer{seed: seed, perChunk: perChunk, heights: heights}
	for _, k := range kinds {
		if k != nil && k.Weight > 0 {
			vp.kinds = append(vp.kinds, k)
			vp.total += k.Weight
		}
	}
	return vp
}

// Place returns the decorations of chunk (cx, cz) with edge length size.
func (vp *VegetationPlacer) Place(cx, cz int, size float64) []Instance {
	if vp.perChunk <= 0 || vp.total <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(ChunkSeed(vp.seed, cx, cz)))
	ox, oz := float64(cx)*size, float64(cz)*size
	out := make([]Instance, 0, vp.perChunk)
	for i := 0; i < vp.perChunk; i++ {
		x := ox + rng.Float64()*size
		z := oz + rng.Float64()*size
		kindRoll := rng.Float64() * vp.total
		scaleRoll := rng.Float64()
		rot := rng.Float64() * 2 * math.Pi

		k := vp.pick(kindRoll)
		y := 0.0
		if vp.heights != nil {
			y = vp.heights.At(x, z)
		}
		if y < k.MinHeight || y > k.MaxHeight {
			continue
		}
		out = append(out, Instance{
			Kind:     k.Name,
			Pos:      geom.V(x, z),
			Height:   y,
			Scale:    k.MinScale + scaleRoll*(k.MaxScale-k.MinScale),
			Rotation: rot,
		})
	}
	return out
}

func (vp *VegetationPlacer) pick(roll float64) *resource.VegetationKind {
	for _, k := range vp.kinds {
		if roll < k.Weight {
			return k
		}
		roll -= k.Weight
	}
	return vp.kinds[len(vp.kinds)-1]
}
