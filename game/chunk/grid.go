// Package chunk streams terrain chunks in a square window around the
// player.
package chunk

import (
	"cmp"
	"math"
	"slices"

	"github.com/kasuganosora/arpgcore/game/event"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/game/terrain"
	"go.uber.org/zap"
)

// Coord is a chunk key.
type Coord struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// CoordOf floors a world position into chunk coordinates.
func CoordOf(p geom.Vec2, size float64) Coord {
	return Coord{X: int(math.Floor(p.X / size)), Z: int(math.Floor(p.Z / size))}
}

func compareCoord(a, b Coord) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

// Chunk is one generated tile of terrain.
type Chunk struct {
	Coord
	Size       float64
	Resolution int
	Heights    []float64 // row-major, Resolution x Resolution
	Vegetation []terrain.Instance
	disposed   bool
}

// HeightAt returns the sample at lattice (i, j).
func (c *Chunk) HeightAt(i, j int) float64 { return c.Heights[j*c.Resolution+i] }

// Origin is the world position of the chunk's minimum corner.
func (c *Chunk) Origin() geom.Vec2 {
	return geom.V(float64(c.X)*c.Size, float64(c.Z)*c.Size)
}

// Dispose releases the chunk content. Only the first call returns true.
func (c *Chunk) Dispose() bool {
	if c.disposed {
		return false
	}
	c.disposed = true
	c.Heights = nil
	c.Vegetation = nil
	return true
}

func (c *Chunk) Disposed() bool { return c.disposed }

// Grid keeps the (2r+1)^2 chunks around the player's chunk alive.
type Grid struct {
	gen       *Generator
	radius    int
	center    Coord
	hasCenter bool
	active    map[Coord]*Chunk
	bus       *event.Bus
	logger    *zap.Logger

	OnLoad    func(*Chunk)
	OnDispose func(*Chunk)
}

// NewGrid creates an empty grid; the first Update fills the window.
func NewGrid(gen *Generator, radius int, bus *event.Bus, logger *zap.Logger) *Grid {
	if logger == nil {
		logger = zap.NewNop()
	}
	if radius < 0 {
		radius = 0
	}
	side := 2*radius + 1
	return &Grid{
		gen:    gen,
		radius: radius,
		active: make(map[Coord]*Chunk, side*side),
		bus:    bus,
		logger: logger,
	}
}

// Update re-centers the window on pos. It is a no-op while pos stays in
// the same chunk. Returns whether the window moved.
func (g *Grid) Update(pos geom.Vec2) bool {
	c := CoordOf(pos, g.gen.size)
	if g.hasCenter && c == g.center {
		return false
	}
	g.center, g.hasCenter = c, true

	created := 0
	for dz := -g.radius; dz <= g.radius; dz++ {
		for dx := -g.radius; dx <= g.radius; dx++ {
			key := Coord{X: c.X + dx, Z: c.Z + dz}
			if _, ok := g.active[key]; ok {
				continue
			}
			ch := g.gen.Generate(key)
			g.active[key] = ch
			created++
			if g.OnLoad != nil {
				g.OnLoad(ch)
			}
			g.publish(event.ChunkLoaded{X: key.X, Z: key.Z, VegetationSize: len(ch.Vegetation)})
		}
	}

	var stale []Coord
	for key := range g.active {
		if !g.inWindow(key) {
			stale = append(stale, key)
		}
	}
	slices.SortFunc(stale, compareCoord)
	for _, key := range stale {
		ch := g.active[key]
		delete(g.active, key)
		if ch.Dispose() && g.OnDispose != nil {
			g.OnDispose(ch)
		}
		g.publish(event.ChunkDisposed{X: key.X, Z: key.Z})
	}

	g.logger.Debug("chunk window moved",
		zap.Int("x", c.X),
		zap.Int("z", c.Z),
		zap.Int("created", created),
		zap.Int("disposed", len(stale)))
	return true
}

func (g *Grid) inWindow(k Coord) bool {
	return abs(k.X-g.center.X) <= g.radius && abs(k.Z-g.center.Z) <= g.radius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Center returns the current window center and whether one is set.
func (g *Grid) Center() (Coord, bool) { return g.center, g.hasCenter }

func (g *Grid) Len() int { return len(g.active) }

// Get returns the active chunk at c.
func (g *Grid) Get(c Coord) (*Chunk, bool) {
	ch, ok := g.active[c]
	return ch, ok
}

// Active returns the loaded chunks ordered by coordinate.
func (g *Grid) Active() []*Chunk {
	out := make([]*Chunk, 0, len(g.active))
	for _, ch := range g.active {
		out = append(out, ch)
	}
	slices.SortFunc(out, func(a, b *Chunk) int { return compareCoord(a.Coord, b.Coord) })
	return out
}

// HeightAt returns the terrain height at a world position.
func (g *Grid) HeightAt(p geom.Vec2) float64 {
	return g.gen.heights.At(p.X, p.Z)
}

// Clear disposes every chunk and forgets the center.
func (g *Grid) Clear() {
	for key, ch := range g.active {
		if ch.Dispose() && g.OnDispose != nil {
			g.OnDispose(ch)
		}
		delete(g.active, key)
	}
	g.hasCenter = false
}

func (g *Grid) publish(evt event.Event) {
	if g.bus != nil {
		g.bus.Publish(evt)
	}
}
