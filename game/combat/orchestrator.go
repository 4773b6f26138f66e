// Package combat runs the per-tick combat loop: cooldowns, monster AI and
// attacks, auto-battle, manual skill requests and loot.
package combat

import (
	"github.com/kasuganosora/arpgcore/game/ai"
	"github.com/kasuganosora/arpgcore/game/battle"
	"github.com/kasuganosora/arpgcore/game/event"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/game/loot"
	"github.com/kasuganosora/arpgcore/game/player"
	"github.com/kasuganosora/arpgcore/game/skill"
	"github.com/kasuganosora/arpgcore/game/world"
	"go.uber.org/zap"
)

const maxPendingSkills = 8

// Config tunes the orchestrator.
type Config struct {
	AutoBattle       bool
	EmergencyHPRatio float64
	RespawnSeconds   float64
	MPRegen          float64 // per second
	StaminaRegen     float64 // per second
	SprintCost       float64 // stamina per second
	RespawnPoint     geom.Vec2
}

// Orchestrator owns the fixed per-tick combat order.
type Orchestrator struct {
	cfg      Config
	player   *player.Player
	skills   *skill.Service
	pool     *world.MonsterPool
	loot     *loot.Economy
	resolver *battle.Resolver
	bus      *event.Bus
	logger   *zap.Logger

	autoTree     *ai.BehaviorTree[*autoBoard]
	autoBattle   bool
	pending      []string
	respawnTimer float64
	lastStats    event.StatsChanged
}

// New wires the orchestrator into the pool's attack and death callbacks
// and registers the player as a caster.
func New(cfg Config, p *player.Player, skills *skill.Service, pool *world.MonsterPool, economy *loot.Economy,
	resolver *battle.Resolver, bus *event.Bus, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		cfg:        cfg,
		player:     p,
		skills:     skills,
		pool:       pool,
		loot:       economy,
		resolver:   resolver,
		bus:        bus,
		logger:     logger,
		autoTree:   newAutoTree(),
		autoBattle: cfg.AutoBattle,
		pending:    make([]string, 0, maxPendingSkills),
	}
	skills.Register(p)
	pool.OnAttack = o.monsterAttack
	pool.OnDeath = o.monsterDeath
	return o
}

func (o *Orchestrator) Player() *player.Player { return o.player }

func (o *Orchestrator) SetAutoBattle(on bool) { o.autoBattle = on }
func (o *Orchestrator) AutoBattle() bool      { return o.autoBattle }

// SetMove forwards movement input to the player.
func (o *Orchestrator) SetMove(dir geom.Vec2) { o.player.SetMove(dir) }

// RequestSkill queues a manual cast for the next Update. Requests beyond
// the queue capacity or while dead are dropped.
func (o *Orchestrator) RequestSkill(id string) bool {
	if !o.player.Alive() || len(o.pending) >= maxPendingSkills {
		return false
	}
	o.pending = append(o.pending, id)
	return true
}

// RespawnIn returns the seconds left before respawn, 0 while alive.
func (o *Orchestrator) RespawnIn() float64 {
	if o.player.Alive() {
		return 0
	}
	return o.respawnTimer
}

// Update runs one combat tick in fixed order: movement, respawn,
// cooldowns and statuses, regen, monster pool, auto-battle, manual
// requests, loot and the HUD refresh.
func (o *Orchestrator) Update(dt float64) {
	p := o.player
	p.Step(dt, o.cfg.SprintCost)
	if !p.Alive() {
		o.tickRespawn(dt)
	}

	o.skills.TickCooldowns(p.ID, dt)
	p.Regen(dt, o.cfg.MPRegen, o.cfg.StaminaRegen)

	o.pool.Update(dt, p.Position(), p.Alive())

	if o.autoBattle {
		if id := o.ChooseAutoSkill(); id != "" {
			o.skills.UseSkill(p.ID, id)
		}
	}
	for _, id := range o.pending {
		if !o.skills.UseSkill(p.ID, id) {
			o.logger.Debug("skill request rejected", zap.String("skill_id", id))
		}
	}
	o.pending = o.pending[:0]

	o.loot.Update(dt, p)
	o.publishStatsIfDirty()
}

func (o *Orchestrator) monsterAttack(m *world.Monster) {
	p := o.player
	if !p.Alive() {
		return
	}
	if o.skills.IsInvulnerable(p.ID) {
		o.logger.Debug("attack dodged", zap.Int64("monster_id", m.ID))
		return
	}
	res := o.resolver.ResolveBasic(m.Stats.Atk, p.Defense())
	dealt, died := p.ApplyDamage(res.FinalDamage)
	o.publish(event.PlayerHit{
		PlayerID:  p.ID,
		MonsterID: m.ID,
		Damage:    dealt,
		Critical:  res.IsCrit,
		HPAfter:   p.Stats.HP,
	})
	if died {
		o.playerDied()
	}
}

func (o *Orchestrator) playerDied() {
	o.respawnTimer = o.cfg.RespawnSeconds
	o.pending = o.pending[:0]
	o.player.SetMove(geom.Vec2{})
	o.logger.Info("player died",
		zap.Int64("player_id", o.player.ID),
		zap.Int("level", o.player.Stats.Level),
		zap.Int("kills", o.pool.Kills()))
	o.publish(event.PlayerDied{PlayerID: o.player.ID, Position: o.player.Position()})
}

func (o *Orchestrator) tickRespawn(dt float64) {
	o.respawnTimer -= dt
	if o.respawnTimer > 0 {
		return
	}
	o.respawnTimer = 0
	o.player.Respawn(o.cfg.RespawnPoint)
	o.logger.Info("player respawned", zap.Int64("player_id", o.player.ID))
	o.publish(event.PlayerRespawned{PlayerID: o.player.ID, Position: o.cfg.RespawnPoint})
}

func (o *Orchestrator) monsterDeath(m *world.Monster, pos geom.Vec2) {
	o.loot.SpawnForKill(pos, m.Tier.Gold, m.Tier.Exp)
}

// publishStatsIfDirty emits StatsChanged only when a HUD-visible value
// changed since the last publish.
func (o *Orchestrator) publishStatsIfDirty() {
	cur := o.player.StatsEvent()
	if cur == o.lastStats {
		return
	}
	o.lastStats = cur
	o.publish(cur)
}

func (o *Orchestrator) publish(evt event.Event) {
	if o.bus != nil {
		o.bus.Publish(evt)
	}
}
