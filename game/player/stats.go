package player

import (
	"github.com/kasuganosora/arpgcore/game/battle"
	"github.com/kasuganosora/arpgcore/resource"
)

// Stats is the player's attribute block. Every mutation clamps to its
// maximum; maxima only grow through level-ups.
type Stats struct {
	battle.ActorStats
	MP         int     `json:"mp"`
	MaxMP      int     `json:"max_mp"`
	Stamina    float64 `json:"stamina"`
	MaxStamina float64 `json:"max_stamina"`
	Level      int     `json:"level"`
	Exp        int     `json:"exp"`
	MaxExp     int     `json:"max_exp"`
	Gold       int     `json:"gold"`
}

// NewStats builds level-1 stats from a template.
func NewStats(t resource.PlayerTemplate) Stats {
	s := Stats{
		ActorStats: battle.NewActorStats(t.MaxHP, t.Atk, t.Def),
		MP:         max(t.MaxMP, 0),
		MaxMP:      max(t.MaxMP, 0),
		Stamina:    max(t.MaxStamina, 0),
		MaxStamina: max(t.MaxStamina, 0),
		Level:      1,
		MaxExp:     max(t.MaxExp, 1),
	}
	return s
}

// SpendMP deducts cost if affordable.
func (s *Stats) SpendMP(cost int) bool {
	if cost < 0 || cost > s.MP {
		return false
	}
	s.MP -= cost
	return true
}

// RestoreMP adds n capped at MaxMP and returns the amount restored.
func (s *Stats) RestoreMP(n int) int {
	if n <= 0 {
		return 0
	}
	before := s.MP
	s.MP = min(s.MP+n, s.MaxMP)
	return s.MP - before
}

// SpendStamina deducts n if affordable.
func (s *Stats) SpendStamina(n float64) bool {
	if n < 0 || n > s.Stamina {
		return false
	}
	s.Stamina -= n
	return true
}

func (s *Stats) RestoreStamina(n float64) {
	if n <= 0 {
		return
	}
	s.Stamina = min(s.Stamina+n, s.MaxStamina)
}

// AddGold ignores non-positive amounts.
func (s *Stats) AddGold(n int) {
	if n > 0 {
		s.Gold += n
	}
}

// GainExp adds n experience and runs the level-up loop: while exp reaches
// maxExp the surplus carries over, level increments, maxima grow by
// growth and maxExp scales by expGrowth. A living player is refilled to
// full hp and mp; a dead one stays dead until respawn. Returns the number
// of levels gained.
func (s *Stats) GainExp(n int, growth resource.LevelGrowth, expGrowth float64) int {
	if n <= 0 {
		return 0
	}
	s.Exp += n
	levels := 0
	for s.Exp >= s.MaxExp {
		s.Exp -= s.MaxExp
		s.Level++
		levels++
		s.RaiseMaxHP(growth.HP)
		if growth.MP > 0 {
			s.MaxMP += growth.MP
		}
		if growth.Atk > 0 {
			s.Atk += growth.Atk
		}
		if growth.Def > 0 {
			s.Def += growth.Def
		}
		s.MaxExp = battle.NextMaxExp(s.MaxExp, expGrowth)
	}
	if levels > 0 && !s.IsDead() {
		s.Refill()
		s.MP = s.MaxMP
	}
	return levels
}

// RefillAll restores hp, mp and stamina to their maxima.
func (s *Stats) RefillAll() {
	s.Refill()
	s.MP = s.MaxMP
	s.Stamina = s.MaxStamina
}
