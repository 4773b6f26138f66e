package terrain

import (
	"testing"

	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeights(seed int64) *HeightField {
	return NewHeightField(seed, resource.Defaults().Terrain)
}

func TestHeightField_Deterministic(t *testing.T) {
	a, b := testHeights(99), testHeights(99)
	for _, p := range [][2]float64{{0, 0}, {12.5, -3.25}, {-640, 128}, {1e5, -1e5}} {
		assert.Equal(t, a.At(p[0], p[1]), b.At(p[0], p[1]))
	}
}

func TestHeightField_SeedMatters(t *testing.T) {
	a, b := testHeights(1), testHeights(2)
	differ := false
	for i := 0; i < 20; i++ {
		x := float64(i) * 37.3
		if a.At(x, x*0.5) != b.At(x, x*0.5) {
			differ = true
		}
	}
	assert.True(t, differ)
}

func TestHeightField_WithinRange(t *testing.T) {
	h := testHeights(5)
	lo, hi := h.Range()
	assert.Equal(t, -17.0, lo)
	assert.Equal(t, 17.0, hi)
	for x := -300.0; x < 300; x += 7.7 {
		for z := -300.0; z < 300; z += 11.3 {
			y := h.At(x, z)
			require.GreaterOrEqual(t, y, lo)
			require.LessOrEqual(t, y, hi)
		}
	}
}

func TestHeightField_Continuous(t *testing.T) {
	h := testHeights(5)
	for x := -50.0; x < 50; x += 0.37 {
		d := h.At(x+0.001, 3) - h.At(x, 3)
		assert.Less(t, d*d, 0.01, "x=%v", x)
	}
}

func TestValueNoise_LatticeAndRange(t *testing.T) {
	for i := int64(-5); i < 5; i++ {
		v := valueNoise(float64(i), 2, 7)
		assert.Equal(t, lattice(i, 2, 7), v)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
	assert.Equal(t, 0.0, smoothstep(0))
	assert.Equal(t, 1.0, smoothstep(1))
	assert.Equal(t, 0.5, smoothstep(0.5))
}

func newPlacer(seed int64) *VegetationPlacer {
	c := resource.Defaults()
	return NewVegetationPlacer(seed, c.Vegetation, 24, NewHeightField(seed, c.Terrain))
}

func TestVegetation_Deterministic(t *testing.T) {
	a := newPlacer(11).Place(3, -2, 64)
	b := newPlacer(11).Place(3, -2, 64)
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestVegetation_IndependentOfOrder(t *testing.T) {
	vp := newPlacer(11)
	first := vp.Place(0, 0, 64)
	vp.Place(1, 0, 64)
	vp.Place(-4, 9, 64)
	assert.Equal(t, first, vp.Place(0, 0, 64))
}

func TestVegetation_InsideChunkAndBand(t *testing.T) {
	vp := newPlacer(11)
	kinds := map[string]*resource.VegetationKind{}
	for _, k := range resource.Defaults().Vegetation {
		kinds[k.Name] = k
	}
	for _, inst := range vp.Place(-1, 2, 64) {
		assert.GreaterOrEqual(t, inst.Pos.X, -64.0)
		assert.Less(t, inst.Pos.X, 0.0)
		assert.GreaterOrEqual(t, inst.Pos.Z, 128.0)
		assert.Less(t, inst.Pos.Z, 192.0)
		k := kinds[inst.Kind]
		require.NotNil(t, k)
		assert.GreaterOrEqual(t, inst.Height, k.MinHeight)
		assert.LessOrEqual(t, inst.Height, k.MaxHeight)
		assert.GreaterOrEqual(t, inst.Scale, k.MinScale)
		assert.LessOrEqual(t, inst.Scale, k.MaxScale)
	}
}

func TestVegetation_ChunksDiffer(t *testing.T) {
	vp := newPlacer(11)
	assert.NotEqual(t, vp.Place(0, 0, 64), vp.Place(0, 1, 64))
	assert.NotEqual(t, ChunkSeed(1, 2, 3), ChunkSeed(1, 3, 2))
}

func TestVegetation_Empty(t *testing.T) {
	assert.Nil(t, NewVegetationPlacer(1, nil, 24, nil).Place(0, 0, 64))
	assert.Nil(t, NewVegetationPlacer(1, resource.Defaults().Vegetation, 0, nil).Place(0, 0, 64))
}

func TestZoneTable_SmallestContaining(t *testing.T) {
	zones := []*resource.Zone{
		{ID: "big", Radius: 500},
		{ID: "small", CenterX: 10, Radius: 50},
	}
	zt := NewZoneTable(zones)
	assert.Equal(t, "small", zt.At(geom.V(20, 0)).ID)
	assert.Equal(t, "big", zt.At(geom.V(200, 0)).ID)
	assert.Nil(t, zt.At(geom.V(900, 0)))
}

func TestZoneTable_Unlocked(t *testing.T) {
	zt := NewZoneTable(resource.Defaults().Zones)
	forest := zt.At(geom.V(400, 0))
	require.NotNil(t, forest)
	assert.Equal(t, "forest", forest.ID)
	assert.False(t, zt.Unlocked(forest, 2, 100))
	assert.False(t, zt.Unlocked(forest, 5, 10))
	assert.True(t, zt.Unlocked(forest, 3, 20))
	assert.True(t, zt.Unlocked(nil, 1, 0))
	assert.Len(t, zt.All(), 3)
}
