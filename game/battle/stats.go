package battle

import "github.com/kasuganosora/arpgcore/game/geom"

// ActorStats is the attribute block shared by players and monsters.
// HP stays within [0, MaxHP]; every mutation goes through a method that clamps.
type ActorStats struct {
	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`
	Atk   int `json:"atk"`
	Def   int `json:"def"`
}

// NewActorStats returns stats at full health.
func NewActorStats(maxHP, atk, def int) ActorStats {
	if maxHP < 1 {
		maxHP = 1
	}
	return ActorStats{HP: maxHP, MaxHP: maxHP, Atk: atk, Def: def}
}

// TakeDamage subtracts dmg from HP. Returns the HP actually removed and
// whether this call brought HP to zero.
func (s *ActorStats) TakeDamage(dmg int) (dealt int, died bool) {
	if dmg <= 0 || s.HP <= 0 {
		return 0, false
	}
	before := s.HP
	s.HP -= dmg
	if s.HP < 0 {
		s.HP = 0
	}
	return before - s.HP, s.HP == 0
}

// Heal adds amount to HP capped at MaxHP and returns the HP restored.
// Dead actors are not healed.
func (s *ActorStats) Heal(amount int) int {
	if amount <= 0 || s.HP <= 0 {
		return 0
	}
	before := s.HP
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	return s.HP - before
}

// Refill restores HP to MaxHP, reviving a dead actor.
func (s *ActorStats) Refill() { s.HP = s.MaxHP }

// RaiseMaxHP grows MaxHP by delta; maxima never shrink.
func (s *ActorStats) RaiseMaxHP(delta int) {
	if delta > 0 {
		s.MaxHP += delta
	}
}

func (s *ActorStats) IsDead() bool { return s.HP <= 0 }

// HPRatio returns HP/MaxHP in [0,1].
func (s *ActorStats) HPRatio() float64 {
	if s.MaxHP <= 0 {
		return 0
	}
	return float64(s.HP) / float64(s.MaxHP)
}

// Combatant is anything a skill can hit.
type Combatant interface {
	CombatID() int64
	Position() geom.Vec2
	Defense() int
	// ApplyDamage removes HP; died is true only on the killing blow.
	ApplyDamage(dmg int) (dealt int, died bool)
	Alive() bool
}
