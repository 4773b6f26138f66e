// Package world owns the live monster population around the player.
package world

import (
	"math/rand"
	"slices"

	"github.com/kasuganosora/arpgcore/game/ai"
	"github.com/kasuganosora/arpgcore/game/battle"
	"github.com/kasuganosora/arpgcore/game/event"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/resource"
	"go.uber.org/zap"
)

// PoolConfig tunes the monster population.
type PoolConfig struct {
	Cap              int
	SpawnInterval    float64
	FirstSpawn       float64
	SpawnMinRadius   float64
	SpawnMaxRadius   float64
	PatrolRadius     float64
	WaypointInterval float64
	RetreatHPRatio   float64
	RetreatSpeedMul  float64
	DeathSeconds     float64
	LeashRadius      float64 // 0 disables leash despawn
}

// AttackFunc is called when a monster lands an attack on the player.
type AttackFunc func(m *Monster)

// DeathFunc is called once per monster after its death sequence, before
// it leaves the pool.
type DeathFunc func(m *Monster, pos geom.Vec2)

// MonsterPool spawns, caps, updates and recycles monsters. Monsters are
// kept in spawn order so updates are deterministic.
type MonsterPool struct {
	cfg      PoolConfig
	spawner  *Spawner
	monsters []*Monster
	nextID   int64
	kills    int
	rng      *rand.Rand
	bus      *event.Bus
	logger   *zap.Logger

	OnAttack AttackFunc
	OnDeath  DeathFunc
}

// NewMonsterPool creates an empty pool.
func NewMonsterPool(cfg PoolConfig, tiers []*resource.MonsterTier, bus *event.Bus, rng *rand.Rand, logger *zap.Logger) *MonsterPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonsterPool{
		cfg:     cfg,
		spawner: NewSpawner(cfg.SpawnInterval, cfg.FirstSpawn, cfg.SpawnMinRadius, cfg.SpawnMaxRadius, tiers, rng),
		rng:     rng,
		bus:     bus,
		logger:  logger,
	}
}

// Update runs one tick: spawn timer, every monster's FSM, death removal
// and leash despawn.
func (p *MonsterPool) Update(dt float64, player geom.Vec2, playerAlive bool) {
	if p.spawner.Tick(dt) && len(p.monsters) < p.cfg.Cap {
		p.Spawn(player)
	}

	// Callbacks and bus subscribers may spawn or clear while the loop
	// runs, so it walks a fixed view and merges newcomers afterwards.
	lastID := p.nextID
	current := p.monsters
	kept := make([]*Monster, 0, len(current))
	for _, m := range current {
		if m.disposed {
			continue
		}
		out := m.AI.Step(m.perception(player, playerAlive), dt)
		if out.Attack && p.OnAttack != nil {
			p.OnAttack(m)
		}
		if out.Died {
			p.logger.Debug("monster died",
				zap.Int64("monster_id", m.ID),
				zap.String("tier", m.Tier.Name))
		}
		if out.Finished {
			p.finishDeath(m)
			continue
		}
		if p.cfg.LeashRadius > 0 && m.Alive() && m.Position().Dist(player) > p.cfg.LeashRadius {
			m.Dispose()
			p.logger.Debug("monster leashed",
				zap.Int64("monster_id", m.ID),
				zap.Float64("distance", m.Position().Dist(player)))
			continue
		}
		if m.disposed {
			continue
		}
		kept = append(kept, m)
	}
	for _, m := range p.monsters {
		if m.ID > lastID {
			kept = append(kept, m)
		}
	}
	p.monsters = slices.DeleteFunc(kept, (*Monster).Disposed)
}

func (p *MonsterPool) finishDeath(m *Monster) {
	if !m.Dispose() {
		return
	}
	p.kills++
	pos := m.Position()
	if p.OnDeath != nil {
		p.OnDeath(m, pos)
	}
	p.publish(event.MonsterDied{
		MonsterID: m.ID,
		TierID:    m.Tier.ID,
		Position:  pos,
		Kills:     p.kills,
	})
}

// Spawn adds one monster around center regardless of the timer. Returns
// nil when the pool is full or no tier is available.
func (p *MonsterPool) Spawn(center geom.Vec2) *Monster {
	if len(p.monsters) >= p.cfg.Cap {
		return nil
	}
	tier := p.spawner.PickTier(p.kills)
	if tier == nil {
		p.logger.Warn("no monster tier available", zap.Int("kills", p.kills))
		return nil
	}
	return p.SpawnAt(tier, p.spawner.SpawnPoint(center))
}

// SpawnAt adds a monster of tier at pos, ignoring the cap.
func (p *MonsterPool) SpawnAt(tier *resource.MonsterTier, pos geom.Vec2) *Monster {
	p.nextID++
	m := NewMonster(p.nextID, tier, pos, p.profile(tier), p.rng)
	p.monsters = append(p.monsters, m)
	p.logger.Debug("monster spawned",
		zap.Int64("monster_id", m.ID),
		zap.String("tier", tier.Name),
		zap.Float64("x", pos.X),
		zap.Float64("z", pos.Z))
	p.publish(event.MonsterSpawned{MonsterID: m.ID, TierID: tier.ID, Name: tier.Name, Position: pos})
	return m
}

func (p *MonsterPool) profile(t *resource.MonsterTier) ai.Profile {
	return ai.Profile{
		DetectRange:      t.DetectRange,
		AttackRange:      t.AttackRange,
		Speed:            t.Speed,
		RetreatSpeedMul:  p.cfg.RetreatSpeedMul,
		PatrolRadius:     p.cfg.PatrolRadius,
		WaypointInterval: p.cfg.WaypointInterval,
		AttackCooldown:   t.AttackCooldown,
		DeathDuration:    p.cfg.DeathSeconds,
		RetreatHPRatio:   p.cfg.RetreatHPRatio,
	}
}

// InRange returns live monsters within radius of center, in spawn order.
func (p *MonsterPool) InRange(center geom.Vec2, radius float64) []*Monster {
	var out []*Monster
	r2 := radius * radius
	for _, m := range p.monsters {
		if m.Alive() && center.DistSq(m.Position()) <= r2 {
			out = append(out, m)
		}
	}
	return out
}

// CombatantsInRange implements skill.TargetFinder.
func (p *MonsterPool) CombatantsInRange(center geom.Vec2, radius float64) []battle.Combatant {
	ms := p.InRange(center, radius)
	if len(ms) == 0 {
		return nil
	}
	out := make([]battle.Combatant, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

// Alive returns every non-dead monster.
func (p *MonsterPool) Alive() []*Monster {
	var out []*Monster
	for _, m := range p.monsters {
		if m.Alive() {
			out = append(out, m)
		}
	}
	return out
}

// Monsters returns every pooled monster, dying ones included.
func (p *MonsterPool) Monsters() []*Monster {
	out := make([]*Monster, len(p.monsters))
	copy(out, p.monsters)
	return out
}

func (p *MonsterPool) Len() int   { return len(p.monsters) }
func (p *MonsterPool) Kills() int { return p.kills }

// Clear disposes every monster without counting kills.
func (p *MonsterPool) Clear() {
	for _, m := range p.monsters {
		m.Dispose()
	}
	p.monsters = nil
}

func (p *MonsterPool) publish(evt event.Event) {
	if p.bus != nil {
		p.bus.Publish(evt)
	}
}
