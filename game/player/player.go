// Package player holds the controllable hero: stats, movement, skills and
// statuses.
package player

import (
	"github.com/kasuganosora/arpgcore/game/event"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/game/skill"
	"github.com/kasuganosora/arpgcore/resource"
)

const sprintSpeedMul = 1.6

// Player is the single hero of a session. It implements skill.Caster and
// battle.Combatant.
type Player struct {
	ID    int64
	Name  string
	Stats Stats

	pos       geom.Vec2
	facing    float64
	move      geom.Vec2
	sprint    bool
	speed     float64
	expGrowth float64
	growth    resource.LevelGrowth
	skills    []string
	mpAccum   float64

	cooldowns *skill.CooldownTracker
	statuses  skill.StatusList
}

// New creates a player at the origin from a template.
func New(id int64, t resource.PlayerTemplate, catalog *skill.Catalog, speed, expGrowth float64) *Player {
	return &Player{
		ID:        id,
		Name:      t.Name,
		Stats:     NewStats(t),
		speed:     speed,
		expGrowth: expGrowth,
		growth:    t.Growth,
		skills:    append([]string(nil), t.Skills...),
		cooldowns: skill.NewCooldownTracker(catalog),
	}
}

func (p *Player) CombatID() int64                   { return p.ID }
func (p *Player) Position() geom.Vec2               { return p.pos }
func (p *Player) Facing() float64                   { return p.facing }
func (p *Player) AttackPower() int                  { return p.Stats.Atk }
func (p *Player) Defense() int                      { return p.Stats.Def }
func (p *Player) MP() int                           { return p.Stats.MP }
func (p *Player) SpendMP(cost int) bool             { return p.Stats.SpendMP(cost) }
func (p *Player) Alive() bool                       { return !p.Stats.IsDead() }
func (p *Player) Cooldowns() *skill.CooldownTracker { return p.cooldowns }
func (p *Player) Statuses() *skill.StatusList       { return &p.statuses }

// Skills returns the skill ids on the player's bar.
func (p *Player) Skills() []string { return p.skills }

// ApplyDamage implements battle.Combatant.
func (p *Player) ApplyDamage(dmg int) (int, bool) { return p.Stats.TakeDamage(dmg) }

// SetMove sets the input direction; it is normalized, zero stops.
func (p *Player) SetMove(dir geom.Vec2) { p.move = dir.Normalize() }

func (p *Player) SetSprint(on bool) { p.sprint = on }

// Teleport places the player without movement rules.
func (p *Player) Teleport(pos geom.Vec2) { p.pos = pos }

// Step applies movement input for dt seconds. Sprinting drains stamina at
// sprintCost per second and stops when stamina runs out. Dead players do
// not move.
func (p *Player) Step(dt, sprintCost float64) {
	if !p.Alive() || p.move.IsZero() || dt <= 0 {
		return
	}
	speed := p.speed
	if p.sprint && p.Stats.SpendStamina(sprintCost*dt) {
		speed *= sprintSpeedMul
	}
	p.pos = p.pos.Add(p.move.Scale(speed * dt))
	p.facing = p.move.Heading()
}

// Regen restores mp and stamina at per-second rates. Fractional mp is
// accumulated across ticks.
func (p *Player) Regen(dt, mpPerSec, staminaPerSec float64) {
	if !p.Alive() || dt <= 0 {
		return
	}
	if p.Stats.MP < p.Stats.MaxMP {
		p.mpAccum += mpPerSec * dt
		if whole := int(p.mpAccum); whole > 0 {
			p.mpAccum -= float64(whole)
			p.Stats.RestoreMP(whole)
		}
	} else {
		p.mpAccum = 0
	}
	if !p.sprint || p.move.IsZero() {
		p.Stats.RestoreStamina(staminaPerSec * dt)
	}
}

// Heal restores hp capped at max and returns the amount restored.
func (p *Player) Heal(n int) int { return p.Stats.Heal(n) }

func (p *Player) AddGold(n int) { p.Stats.AddGold(n) }

// GainExp grants experience and returns the number of levels gained.
func (p *Player) GainExp(n int) int {
	return p.Stats.GainExp(n, p.growth, p.expGrowth)
}

// Respawn revives the player at pos with full resources and clears
// cooldowns and statuses.
func (p *Player) Respawn(pos geom.Vec2) {
	p.pos = pos
	p.move = geom.Vec2{}
	p.sprint = false
	p.mpAccum = 0
	p.Stats.RefillAll()
	p.cooldowns.Reset()
	p.statuses.Clear()
}

// StatsEvent builds the HUD payload for the current stats.
func (p *Player) StatsEvent() event.StatsChanged {
	s := &p.Stats
	return event.StatsChanged{
		ActorID:    p.ID,
		HP:         s.HP,
		MaxHP:      s.MaxHP,
		MP:         s.MP,
		MaxMP:      s.MaxMP,
		Stamina:    s.Stamina,
		MaxStamina: s.MaxStamina,
		Level:      s.Level,
		Exp:        s.Exp,
		MaxExp:     s.MaxExp,
		Gold:       s.Gold,
	}
}

func (p *Player) Level() int { return p.Stats.Level }
