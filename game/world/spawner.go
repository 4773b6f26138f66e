package world

import (
	"math"
	"math/rand"

	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/resource"
)

// Harder tiers gain weight as kills accumulate past their unlock threshold.
const (
	tierRampPerKill = 0.05
	tierRampMax     = 3.0
)

// Spawner decides when and where the next monster appears and which tier
// it is.
type Spawner struct {
	interval float64
	timer    float64
	minR     float64
	maxR     float64
	tiers    []*resource.MonsterTier
	rng      *rand.Rand
}

// NewSpawner creates a Spawner whose first spawn fires after firstSpawn seconds.
func NewSpawner(interval, firstSpawn, minR, maxR float64, tiers []*resource.MonsterTier, rng *rand.Rand) *Spawner {
	if maxR < minR {
		minR, maxR = maxR, minR
	}
	return &Spawner{
		interval: interval,
		timer:    firstSpawn,
		minR:     minR,
		maxR:     maxR,
		tiers:    tiers,
		rng:      rng,
	}
}

// Tick advances the spawn timer and reports whether a spawn is due.
func (sp *Spawner) Tick(dt float64) bool {
	sp.timer -= dt
	if sp.timer > 0 {
		return false
	}
	sp.timer += sp.interval
	if sp.timer <= 0 {
		sp.timer = sp.interval
	}
	return true
}

// SpawnPoint returns a uniformly distributed point in the annulus
// [minR, maxR] around center.
func (sp *Spawner) SpawnPoint(center geom.Vec2) geom.Vec2 {
	angle := sp.rng.Float64() * 2 * math.Pi
	lo, hi := sp.minR*sp.minR, sp.maxR*sp.maxR
	r := math.Sqrt(lo + sp.rng.Float64()*(hi-lo))
	return center.Add(geom.FromAngle(angle).Scale(r))
}

// PickTier rolls a tier among those unlocked at the given kill count.
// Returns nil when no tier is available.
func (sp *Spawner) PickTier(kills int) *resource.MonsterTier {
	total := 0.0
	for _, t := range sp.tiers {
		total += tierWeight(t, kills)
	}
	if total <= 0 {
		return nil
	}
	roll := sp.rng.Float64() * total
	var last *resource.MonsterTier
	for _, t := range sp.tiers {
		w := tierWeight(t, kills)
		if w <= 0 {
			continue
		}
		last = t
		if roll < w {
			return t
		}
		roll -= w
	}
	return last
}

func tierWeight(t *resource.MonsterTier, kills int) float64 {
	if t == nil || t.Weight <= 0 || kills < t.UnlockKills {
		return 0
	}
	if t.UnlockKills == 0 {
		return t.Weight
	}
	ramp := 1 + tierRampPerKill*float64(kills-t.UnlockKills)
	return t.Weight * math.Min(ramp, tierRampMax)
}
