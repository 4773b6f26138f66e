package minimap

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/kasuganosora/arpgcore/game/chunk"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

type flat struct{}

func (flat) At(x, z float64) float64   { return 0 }
func (flat) Range() (float64, float64) { return 0, 0 }

type slope struct{}

func (slope) At(x, z float64) float64   { return x }
func (slope) Range() (float64, float64) { return -50, 50 }

type zones struct{ z *resource.Zone }

func (s zones) At(p geom.Vec2) *resource.Zone {
	if s.z != nil && p.X < 0 {
		return s.z
	}
	return nil
}

func rgb(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func TestZoneColor(t *testing.T) {
	assert.Equal(t, wildsColor, ZoneColor(nil))
	assert.Equal(t, colornames.Sienna, ZoneColor(&resource.Zone{Color: "sienna"}))
	assert.Equal(t, wildsColor, ZoneColor(&resource.Zone{Color: "not-a-color"}))
}

func TestRender_SizeAndMarkers(t *testing.T) {
	r := New(flat{}, zones{}, Options{Cells: 8, Size: 128})
	img := r.Render(View{
		Center:   geom.V(0, 0),
		Extent:   100,
		Player:   geom.V(0, 0),
		Monsters: []geom.Vec2{geom.V(25, 25)},
	})
	require.Equal(t, 128, img.Bounds().Dx())
	require.Equal(t, 128, img.Bounds().Dy())

	pr, pg, pb := rgb(img.At(64, 64))
	assert.Greater(t, pr, 200)
	assert.Greater(t, pg, 200)
	assert.Greater(t, pb, 200)

	mr, mg, _ := rgb(img.At(96, 96))
	assert.Greater(t, mr, 150)
	assert.Less(t, mg, 60)
}

func TestRender_ZoneTint(t *testing.T) {
	z := &resource.Zone{Color: "sienna"}
	r := New(flat{}, zones{z: z}, Options{Cells: 4, Size: 64})
	img := r.Render(View{Extent: 100, Player: geom.V(1000, 1000)})

	want := tint(colornames.Sienna, 0.45+0.55*0.5)
	gr, gg, gb := rgb(img.At(2, 32))
	assert.Equal(t, int(want.R), gr)
	assert.Equal(t, int(want.G), gg)
	assert.Equal(t, int(want.B), gb)

	wild := tint(wildsColor, 0.45+0.55*0.5)
	wr, _, _ := rgb(img.At(60, 32))
	assert.Equal(t, int(wild.R), wr)
}

func TestRender_HeightShading(t *testing.T) {
	r := New(slope{}, zones{}, Options{Cells: 16, Size: 16})
	img := r.Render(View{Extent: 100, Player: geom.V(1000, 1000)})
	_, lowG, _ := rgb(img.At(0, 8))
	_, highG, _ := rgb(img.At(15, 8))
	assert.Greater(t, highG, lowG)
}

func TestRender_OnlyStreamedChunks(t *testing.T) {
	r := New(flat{}, zones{}, Options{Cells: 4, Size: 4})
	v := View{
		Center:    geom.V(0, 0),
		Extent:    100,
		Player:    geom.V(1000, 1000),
		Chunks:    []chunk.Coord{{X: 0, Z: 0}, {X: 0, Z: -1}},
		ChunkSize: 50,
	}
	img := r.Render(v)
	want := tint(wildsColor, 0.45+0.55*0.5)
	lr, lg, _ := rgb(img.At(3, 3))
	assert.Equal(t, int(want.R), lr)
	assert.Equal(t, int(want.G), lg)

	dr, dg, db := rgb(img.At(0, 0))
	assert.Zero(t, dr+dg+db)

	v.Chunks = append(v.Chunks, chunk.Coord{X: -1, Z: -1})
	_, ng, _ := rgb(r.Render(v).At(0, 0))
	assert.Equal(t, int(want.G), ng)
}

func TestEncode_PNG(t *testing.T) {
	r := New(flat{}, zones{}, DefaultOptions())
	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf, View{Extent: 320}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestNew_ClampsOptions(t *testing.T) {
	r := New(flat{}, zones{}, Options{Cells: 1, Size: 4})
	assert.Equal(t, 64, r.opts.Cells)
	assert.Equal(t, 64, r.opts.Size)
}

func TestWithSize(t *testing.T) {
	r := New(flat{}, zones{}, Options{Cells: 8, Size: 64})
	big := r.WithSize(200)
	assert.Equal(t, 200, big.Render(View{Extent: 10}).Bounds().Dx())
	assert.Equal(t, 64, r.Render(View{Extent: 10}).Bounds().Dx())
}
