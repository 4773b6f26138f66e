package world

import (
	"math/rand"

	"github.com/kasuganosora/arpgcore/game/ai"
	"github.com/kasuganosora/arpgcore/game/battle"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/resource"
)

// Monster is a live monster instance. The pool owns it; the FSM mutates
// only its Body.
type Monster struct {
	ID       int64
	Tier     *resource.MonsterTier
	Stats    battle.ActorStats
	AI       *ai.MonsterFSM
	disposed bool
}

// NewMonster creates a full-health monster of tier at pos.
func NewMonster(id int64, tier *resource.MonsterTier, pos geom.Vec2, profile ai.Profile, rng *rand.Rand) *Monster {
	return &Monster{
		ID:    id,
		Tier:  tier,
		Stats: battle.NewActorStats(tier.MaxHP, tier.Atk, tier.Def),
		AI:    ai.NewMonsterFSM(profile, pos, rng),
	}
}

func (m *Monster) CombatID() int64        { return m.ID }
func (m *Monster) Position() geom.Vec2    { return m.AI.Body.Pos }
func (m *Monster) Defense() int           { return m.Stats.Def }
func (m *Monster) State() ai.MonsterState { return m.AI.State() }

// Alive reports whether the monster can still be targeted.
func (m *Monster) Alive() bool {
	return !m.disposed && !m.Stats.IsDead() && m.AI.State() != ai.StateDead
}

// ApplyDamage implements battle.Combatant. The FSM notices the death on
// its next evaluation.
func (m *Monster) ApplyDamage(dmg int) (int, bool) {
	if m.disposed {
		return 0, false
	}
	return m.Stats.TakeDamage(dmg)
}

// Dispose marks the monster released. Only the first call returns true.
func (m *Monster) Dispose() bool {
	if m.disposed {
		return false
	}
	m.disposed = true
	return true
}

func (m *Monster) Disposed() bool { return m.disposed }

func (m *Monster) perception(target geom.Vec2, targetAlive bool) ai.Perception {
	return ai.Perception{
		Target:      target,
		TargetAlive: targetAlive,
		HP:          m.Stats.HP,
		MaxHP:       m.Stats.MaxHP,
	}
}
