package battle

import (
	"math"
	"math/rand"
)

// ResolverConfig holds the tunable parts of damage resolution.
type ResolverConfig struct {
	VarianceMin    float64 // lower bound of the uniform variance factor
	VarianceMax    float64
	CritChance     float64 // probability in [0,1]
	CritMultiplier float64
}

// DefaultResolverConfig matches the stock combat tuning.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{VarianceMin: 0.9, VarianceMax: 1.1, CritChance: 0.15, CritMultiplier: 2}
}

// DamageResult holds the outcome of a damage calculation.
type DamageResult struct {
	FinalDamage int
	IsCrit      bool
}

// Resolver computes mitigated damage. It is used identically for
// player→monster and monster→player attacks.
type Resolver struct {
	cfg ResolverConfig
	rng *rand.Rand
}

// NewResolver creates a Resolver drawing variance and crit rolls from rng.
func NewResolver(cfg ResolverConfig, rng *rand.Rand) *Resolver {
	if cfg.VarianceMax < cfg.VarianceMin {
		cfg.VarianceMax = cfg.VarianceMin
	}
	if cfg.CritMultiplier <= 0 {
		cfg.CritMultiplier = 2
	}
	return &Resolver{cfg: cfg, rng: rng}
}

// Config returns the resolver's tuning.
func (r *Resolver) Config() ResolverConfig { return r.cfg }

// Resolve runs the damage pipeline:
//
//	reduction = def / (def + 100)
//	base      = atk * multiplier * (1 - reduction)
//	damage    = max(1, floor(base * variance)), doubled on crit
func (r *Resolver) Resolve(attackPower, targetDef int, multiplier float64) DamageResult {
	variance := r.cfg.VarianceMin + r.rng.Float64()*(r.cfg.VarianceMax-r.cfg.VarianceMin)
	dmg := Mitigate(attackPower, targetDef, multiplier, variance)

	isCrit := r.rng.Float64() < r.cfg.CritChance
	if isCrit {
		dmg = int(math.Floor(float64(dmg) * r.cfg.CritMultiplier))
		if dmg < 1 {
			dmg = 1
		}
	}
	return DamageResult{FinalDamage: dmg, IsCrit: isCrit}
}

// ResolveBasic resolves a basic attack (multiplier 1).
func (r *Resolver) ResolveBasic(attackPower, targetDef int) DamageResult {
	return r.Resolve(attackPower, targetDef, 1)
}

// Mitigate is the deterministic part of the formula for a fixed variance.
// The result is never below 1.
func Mitigate(attackPower, targetDef int, multiplier, variance float64) int {
	if targetDef < 0 {
		targetDef = 0
	}
	if attackPower < 0 {
		attackPower = 0
	}
	reduction := float64(targetDef) / float64(targetDef+100)
	base := float64(attackPower) * multiplier * (1 - reduction) * variance
	if math.IsNaN(base) || base < 1 {
		return 1
	}
	if base > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(base))
}
