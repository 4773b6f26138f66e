// Package minimap draws a top-down overview of the streamed world: terrain
// shaded by height and tinted by zone, with markers for the player,
// monsters and drops.
package minimap

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/kasuganosora/arpgcore/game/chunk"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/resource"
	"golang.org/x/image/colornames"
)

// HeightSource samples terrain height at world coordinates.
type HeightSource interface {
	At(x, z float64) float64
	Range() (lo, hi float64)
}

// ZoneSource resolves the zone at a position; nil means the wilds.
type ZoneSource interface {
	At(p geom.Vec2) *resource.Zone
}

// View is what to draw: a square of side Extent world units around Center.
// With a positive ChunkSize only terrain inside the listed Chunks is drawn;
// the rest stays dark.
type View struct {
	Center    geom.Vec2
	Extent    float64
	Player    geom.Vec2
	Monsters  []geom.Vec2
	Drops     []geom.Vec2
	Chunks    []chunk.Coord
	ChunkSize float64
}

// Options control the output image.
type Options struct {
	Cells int // terrain samples per edge
	Size  int // output pixels per edge
}

func DefaultOptions() Options { return Options{Cells: 64, Size: 256} }

var (
	wildsColor   = colornames.Darkolivegreen
	unloadColor  = colornames.Black
	playerColor  = colornames.White
	monsterColor = colornames.Crimson
	dropColor    = colornames.Gold
)

// Renderer holds the static world sources. It is safe for concurrent use
// as long as the sources are.
type Renderer struct {
	heights HeightSource
	zones   ZoneSource
	opts    Options
}

func New(heights HeightSource, zones ZoneSource, opts Options) *Renderer {
	if opts.Cells < 2 {
		opts.Cells = DefaultOptions().Cells
	}
	if opts.Size < opts.Cells {
		opts.Size = opts.Cells
	}
	return &Renderer{heights: heights, zones: zones, opts: opts}
}

// WithSize returns a copy of r drawing size pixels per edge.
func (r *Renderer) WithSize(size int) *Renderer {
	opts := r.opts
	opts.Size = size
	return New(r.heights, r.zones, opts)
}

// Render draws v.
func (r *Renderer) Render(v View) image.Image {
	if v.Extent <= 0 {
		v.Extent = 1
	}
	base := r.terrain(v)
	img := imaging.Resize(base, r.opts.Size, r.opts.Size, imaging.NearestNeighbor)

	dc := gg.NewContextForImage(img)
	toPx := func(p geom.Vec2) (float64, float64) {
		s := float64(r.opts.Size) / v.Extent
		return (p.X-v.Center.X)*s + float64(r.opts.Size)/2,
			(p.Z-v.Center.Z)*s + float64(r.opts.Size)/2
	}
	marker := func(p geom.Vec2, radius float64, c color.Color) {
		x, y := toPx(p)
		dc.DrawCircle(x, y, radius)
		dc.SetColor(c)
		dc.Fill()
	}
	for _, d := range v.Drops {
		marker(d, 2, dropColor)
	}
	for _, m := range v.Monsters {
		marker(m, 3, monsterColor)
	}
	marker(v.Player, 4, playerColor)
	dc.SetColor(color.Black)
	x, y := toPx(v.Player)
	dc.DrawCircle(x, y, 4)
	dc.SetLineWidth(1)
	dc.Stroke()
	return dc.Image()
}

// Encode renders v as a PNG.
func (r *Renderer) Encode(w io.Writer, v View) error {
	return imaging.Encode(w, r.Render(v), imaging.PNG)
}

// terrain samples one cell per pixel of the base image, skipping cells
// outside the streamed chunks.
func (r *Renderer) terrain(v View) *image.NRGBA {
	n := r.opts.Cells
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	lo, hi := r.heights.Range()
	span := hi - lo
	cell := v.Extent / float64(n)
	x0 := v.Center.X - v.Extent/2
	z0 := v.Center.Z - v.Extent/2
	var loaded map[chunk.Coord]bool
	if v.ChunkSize > 0 {
		loaded = make(map[chunk.Coord]bool, len(v.Chunks))
		for _, c := range v.Chunks {
			loaded[c] = true
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			p := geom.V(x0+(float64(i)+0.5)*cell, z0+(float64(j)+0.5)*cell)
			if loaded != nil && !loaded[chunk.CoordOf(p, v.ChunkSize)] {
				img.SetNRGBA(i, j, tint(unloadColor, 1))
				continue
			}
			shade := 0.5
			if span > 0 {
				shade = (r.heights.At(p.X, p.Z) - lo) / span
			}
			img.SetNRGBA(i, j, tint(ZoneColor(r.zones.At(p)), 0.45+0.55*shade))
		}
	}
	return img
}

// ZoneColor resolves a zone's color name, falling back to the wilds color
// for nil zones and unknown names.
func ZoneColor(z *resource.Zone) color.RGBA {
	if z == nil {
		return wildsColor
	}
	if c, ok := colornames.Map[z.Color]; ok {
		return c
	}
	return wildsColor
}

func tint(c color.RGBA, k float64) color.NRGBA {
	k = math.Max(0, math.Min(1, k))
	return color.NRGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: 255,
	}
}
