package loot

import (
	"math"
	"math/rand"

	"github.com/kasuganosora/arpgcore/game/battle"
	"github.com/kasuganosora/arpgcore/game/event"
	"github.com/kasuganosora/arpgcore/game/geom"
	"go.uber.org/zap"
)

// Launch velocities for freshly spawned drops.
const (
	launchMinSpeed = 1.5
	launchMaxSpeed = 3.5
	launchMinUp    = 4.0
	launchMaxUp    = 7.0
)

// Recipient is whoever collects drops.
type Recipient interface {
	CombatID() int64
	Position() geom.Vec2
	Alive() bool
	AddGold(n int)
	GainExp(n int) int
	Heal(n int) int
}

// Config holds drop physics and the kill reward table.
type Config struct {
	Physics Physics
	Table   battle.DropTable
}

// Economy owns every live drop.
type Economy struct {
	cfg    Config
	drops  []*Drop
	nextID int64
	rng    *rand.Rand
	bus    *event.Bus
	logger *zap.Logger
}

// NewEconomy creates an empty Economy.
func NewEconomy(cfg Config, rng *rand.Rand, bus *event.Bus, logger *zap.Logger) *Economy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Economy{cfg: cfg, rng: rng, bus: bus, logger: logger}
}

// SpawnForKill rolls the rewards of a kill and launches them from pos.
func (e *Economy) SpawnForKill(pos geom.Vec2, gold, exp int) []*Drop {
	results := battle.CalculateDrops(gold, exp, e.cfg.Table, e.rng)
	spawned := make([]*Drop, 0, len(results))
	for _, r := range results {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := launchMinSpeed + e.rng.Float64()*(launchMaxSpeed-launchMinSpeed)
		up := launchMinUp + e.rng.Float64()*(launchMaxUp-launchMinUp)
		e.nextID++
		d := newDrop(e.nextID, r, pos, geom.FromAngle(angle).Scale(speed), up)
		e.drops = append(e.drops, d)
		spawned = append(spawned, d)
	}
	e.logger.Debug("loot spawned",
		zap.Int("drops", len(spawned)),
		zap.Int("gold", gold),
		zap.Int("exp", exp))
	return spawned
}

// Update moves every drop and grants collected rewards exactly once.
func (e *Economy) Update(dt float64, r Recipient) {
	target, alive := r.Position(), r.Alive()
	kept := e.drops[:0]
	for _, d := range e.drops {
		switch d.Update(dt, target, alive, e.cfg.Physics) {
		case ResultCollected:
			if alive {
				e.grant(d, r)
			}
			d.Dispose()
		case ResultExpired:
			e.logger.Debug("loot expired", zap.Int64("drop_id", d.ID))
		}
		if !d.Disposed() {
			kept = append(kept, d)
		}
	}
	clear(e.drops[len(kept):])
	e.drops = kept
}

func (e *Economy) grant(d *Drop, r Recipient) {
	amount := d.Amount
	switch d.Reward {
	case battle.RewardGold:
		r.AddGold(d.Amount)
	case battle.RewardExp:
		if levels := r.GainExp(d.Amount); levels > 0 {
			e.publish(event.LevelUp{PlayerID: r.CombatID(), Levels: levels, NewLevel: levelOf(r)})
		}
	case battle.RewardHP:
		amount = r.Heal(d.Amount)
	}
	e.publish(event.ItemCollected{DropID: d.ID, Reward: d.Reward.String(), Amount: amount})
}

// levelOf reads the level from recipients that expose one.
func levelOf(r Recipient) int {
	if l, ok := r.(interface{ Level() int }); ok {
		return l.Level()
	}
	return 0
}

// Drops returns the live drops in spawn order.
func (e *Economy) Drops() []*Drop {
	out := make([]*Drop, len(e.drops))
	copy(out, e.drops)
	return out
}

func (e *Economy) Len() int { return len(e.drops) }

// Clear disposes every drop without granting it.
func (e *Economy) Clear() {
	for _, d := range e.drops {
		d.Dispose()
	}
	clear(e.drops)
	e.drops = e.drops[:0]
}

func (e *Economy) publish(evt event.Event) {
	if e.bus != nil {
		e.bus.Publish(evt)
	}
}
