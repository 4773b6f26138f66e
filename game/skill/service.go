package skill

import (
	"github.com/kasuganosora/arpgcore/game/battle"
	"github.com/kasuganosora/arpgcore/game/event"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/resource"
	"go.uber.org/zap"
)

// Caster is an actor able to use skills.
type Caster interface {
	CombatID() int64
	Position() geom.Vec2
	AttackPower() int
	MP() int
	// SpendMP deducts cost and reports whether it was affordable.
	SpendMP(cost int) bool
	Alive() bool
	Cooldowns() *CooldownTracker
	Statuses() *StatusList
}

// TargetFinder answers range queries for skill targeting.
type TargetFinder interface {
	CombatantsInRange(center geom.Vec2, radius float64) []battle.Combatant
}

// CastResult describes what a successful cast did.
type CastResult struct {
	SkillID     string
	Hits        int
	TotalDamage int
	Targets     []event.TargetHit
}

// Service handles skill use, cooldowns and the dodge window.
type Service struct {
	catalog      *Catalog
	resolver     *battle.Resolver
	targets      TargetFinder
	bus          *event.Bus
	casters      map[int64]Caster
	dodgeSeconds float64
	logger       *zap.Logger
}

// NewSkillService creates a new Service. dodgeSeconds is the invulnerability
// window for utility skills that do not define their own.
func NewSkillService(c *Catalog, resolver *battle.Resolver, targets TargetFinder, bus *event.Bus, dodgeSeconds float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:      c,
		resolver:     resolver,
		targets:      targets,
		bus:          bus,
		casters:      make(map[int64]Caster),
		dodgeSeconds: dodgeSeconds,
		logger:       logger,
	}
}

func (svc *Service) Catalog() *Catalog { return svc.catalog }

// Register makes c addressable by its CombatID.
func (svc *Service) Register(c Caster) { svc.casters[c.CombatID()] = c }

// Unregister forgets an actor.
func (svc *Service) Unregister(actorID int64) { delete(svc.casters, actorID) }

// StartCooldown puts skillID on cooldown for actorID. Unknown actors or
// skills are ignored.
func (svc *Service) StartCooldown(actorID int64, skillID string) {
	c, ok := svc.casters[actorID]
	if !ok {
		return
	}
	svc.startCooldown(c, skillID)
}

func (svc *Service) startCooldown(c Caster, skillID string) {
	c.Cooldowns().Start(skillID)
	if def, ok := svc.catalog.Get(skillID); ok && def.Cooldown > 0 {
		svc.publish(event.CooldownUpdated{
			ActorID:   c.CombatID(),
			SkillID:   skillID,
			Remaining: c.Cooldowns().Remaining(skillID),
			Total:     def.Cooldown,
		})
	}
}

// TickCooldowns advances actorID's cooldowns and statuses by dt and
// announces the skills that became ready.
func (svc *Service) TickCooldowns(actorID int64, dt float64) {
	c, ok := svc.casters[actorID]
	if !ok {
		return
	}
	for _, id := range c.Cooldowns().Tick(dt) {
		total := 0.0
		if def, ok := svc.catalog.Get(id); ok {
			total = def.Cooldown
		}
		svc.publish(event.CooldownUpdated{ActorID: actorID, SkillID: id, Total: total})
	}
	c.Statuses().Tick(dt)
}

// CanCast reports whether skillID exists, is off cooldown and is affordable.
func (svc *Service) CanCast(actorID int64, skillID string) bool {
	c, ok := svc.casters[actorID]
	if !ok || !c.Alive() {
		return false
	}
	def, ok := svc.catalog.Get(skillID)
	if !ok {
		return false
	}
	return c.Cooldowns().IsReady(skillID) && c.MP() >= def.MPCost
}

// IsInvulnerable reports whether actorID is inside a dodge window.
func (svc *Service) IsInvulnerable(actorID int64) bool {
	c, ok := svc.casters[actorID]
	return ok && c.Statuses().Has(StatusInvulnerable)
}

// UseSkill casts skillID for actorID. It returns false without any side
// effect when the skill is unknown, on cooldown or unaffordable.
func (svc *Service) UseSkill(actorID int64, skillID string) bool {
	_, ok := svc.Cast(actorID, skillID)
	return ok
}

// Cast is UseSkill returning the per-target outcome.
func (svc *Service) Cast(actorID int64, skillID string) (CastResult, bool) {
	c, ok := svc.casters[actorID]
	if !ok || !c.Alive() {
		return CastResult{}, false
	}
	def, ok := svc.catalog.Get(skillID)
	if !ok {
		return CastResult{}, false
	}
	if !c.Cooldowns().IsReady(skillID) {
		return CastResult{}, false
	}
	if !c.SpendMP(def.MPCost) {
		return CastResult{}, false
	}
	svc.startCooldown(c, skillID)

	result := CastResult{SkillID: skillID}
	if def.IsUtility() {
		window := def.InvulnSeconds
		if window <= 0 {
			window = svc.dodgeSeconds
		}
		c.Statuses().Add(StatusInvulnerable, window, 1)
		svc.publish(event.SkillUsed{ActorID: actorID, SkillID: skillID})
		return result, true
	}

	for _, target := range svc.selectTargets(c, def) {
		dmg := svc.resolver.Resolve(c.AttackPower(), target.Defense(), def.DamageMultiplier)
		dealt, died := target.ApplyDamage(dmg.FinalDamage)
		result.Hits++
		result.TotalDamage += dealt
		result.Targets = append(result.Targets, event.TargetHit{
			TargetID: target.CombatID(),
			Damage:   dealt,
			Critical: dmg.IsCrit,
			Killed:   died,
		})
	}
	svc.logger.Debug("skill cast",
		zap.Int64("actor_id", actorID),
		zap.String("skill_id", skillID),
		zap.Int("hits", result.Hits),
		zap.Int("damage", result.TotalDamage))
	svc.publish(event.SkillUsed{
		ActorID:     actorID,
		SkillID:     skillID,
		Hits:        result.Hits,
		TotalDamage: result.TotalDamage,
		Targets:     result.Targets,
	})
	return result, true
}

// HasTargetInRange reports whether any live combatant is within skillID's
// range of actorID.
func (svc *Service) HasTargetInRange(actorID int64, skillID string) bool {
	c, ok := svc.casters[actorID]
	if !ok || svc.targets == nil {
		return false
	}
	def, ok := svc.catalog.Get(skillID)
	if !ok || def.IsUtility() {
		return ok
	}
	for _, t := range svc.targets.CombatantsInRange(c.Position(), def.Range) {
		if t.Alive() {
			return true
		}
	}
	return false
}

// selectTargets gathers live candidates in range: all of them for AOE,
// the nearest one otherwise.
func (svc *Service) selectTargets(c Caster, def *resource.Skill) []battle.Combatant {
	if svc.targets == nil {
		return nil
	}
	origin := c.Position()
	candidates := svc.targets.CombatantsInRange(origin, def.Range)
	live := candidates[:0:0]
	for _, t := range candidates {
		if t.Alive() {
			live = append(live, t)
		}
	}
	if def.IsAOE || len(live) <= 1 {
		return live
	}
	nearest := live[0]
	best := origin.DistSq(nearest.Position())
	for _, t := range live[1:] {
		if d := origin.DistSq(t.Position()); d < best {
			nearest, best = t, d
		}
	}
	return []battle.Combatant{nearest}
}

func (svc *Service) publish(evt event.Event) {
	if svc.bus != nil {
		svc.bus.Publish(evt)
	}
}
