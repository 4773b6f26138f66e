package ai

import (
	"math"
	"math/rand"

	"github.com/kasuganosora/arpgcore/game/geom"
)

// Hysteresis multipliers applied to exit thresholds.
const (
	ChaseExitMul   = 1.5 // chase -> patrol beyond detect*1.5
	AttackExitMul  = 1.5 // attack -> chase beyond attack*1.5
	RetreatExitMul = 1.3 // retreat -> patrol beyond detect*1.3

	patrolSpeedMul = 0.5
	arriveEpsilon  = 0.5
)

// Profile holds the per-tier tuning of a monster's behavior.
type Profile struct {
	DetectRange      float64
	AttackRange      float64
	Speed            float64
	RetreatSpeedMul  float64
	PatrolRadius     float64
	WaypointInterval float64 // seconds
	AttackCooldown   float64 // seconds
	DeathDuration    float64 // seconds
	RetreatHPRatio   float64
}

// Body is the mutable AI-owned part of a monster.
type Body struct {
	State         MonsterState
	Pos           geom.Vec2
	Anchor        geom.Vec2
	Waypoint      geom.Vec2
	Facing        float64
	WaypointTimer float64
	AttackTimer   float64
	DeathTimer    float64
	Sink          float64 // 0..1 progress of the death sink
	finished      bool
}

// MonsterFSM drives one monster's Body through
// Patrol -> Chase -> Attack -> Retreat -> Dead.
type MonsterFSM struct {
	Profile Profile
	Body    Body
	rng     *rand.Rand
}

// NewMonsterFSM places a monster at pos in Patrol with pos as its anchor.
func NewMonsterFSM(p Profile, pos geom.Vec2, rng *rand.Rand) *MonsterFSM {
	if p.RetreatSpeedMul <= 0 {
		p.RetreatSpeedMul = 1
	}
	return &MonsterFSM{
		Profile: p,
		Body:    Body{State: StatePatrol, Pos: pos, Anchor: pos, Waypoint: pos},
		rng:     rng,
	}
}

func (m *MonsterFSM) State() MonsterState { return m.Body.State }

// Step evaluates transitions, then acts for the resulting state.
func (m *MonsterFSM) Step(in Perception, dt float64) Outcome {
	b := &m.Body
	var out Outcome

	if b.State == StateDead {
		b.DeathTimer += dt
		if m.Profile.DeathDuration > 0 {
			b.Sink = math.Min(1, b.DeathTimer/m.Profile.DeathDuration)
		} else {
			b.Sink = 1
		}
		if !b.finished && b.DeathTimer >= m.Profile.DeathDuration {
			b.finished = true
			out.Finished = true
		}
		return out
	}
	if in.HP <= 0 {
		b.State = StateDead
		b.DeathTimer = 0
		out.Died = true
		return out
	}

	if b.AttackTimer > 0 {
		b.AttackTimer = math.Max(0, b.AttackTimer-dt)
	}

	d := math.Inf(1)
	if in.TargetAlive {
		d = b.Pos.Dist(in.Target)
	}
	m.transition(d, in)

	p := &m.Profile
	switch b.State {
	case StatePatrol:
		m.patrol(dt)
	case StateChase:
		m.moveToward(in.Target, p.Speed*dt)
	case StateAttack:
		b.Facing = in.Target.Sub(b.Pos).Heading()
		if d > p.AttackRange {
			m.moveToward(in.Target, p.Speed*dt)
		} else if b.AttackTimer <= 0 {
			b.AttackTimer = p.AttackCooldown
			out.Attack = true
		}
	case StateRetreat:
		away := b.Pos.Sub(in.Target)
		if away.IsZero() {
			away = geom.FromAngle(b.Facing + math.Pi)
		}
		step := away.Normalize().Scale(p.Speed * p.RetreatSpeedMul * dt)
		b.Pos = b.Pos.Add(step)
		b.Facing = step.Heading()
	}
	return out
}

func (m *MonsterFSM) transition(d float64, in Perception) {
	b, p := &m.Body, &m.Profile
	switch b.State {
	case StatePatrol:
		if d < p.DetectRange {
			b.State = StateChase
		}
	case StateChase:
		if d <= p.AttackRange {
			b.State = StateAttack
		} else if d > p.DetectRange*ChaseExitMul {
			b.State = StatePatrol
			b.WaypointTimer = 0
		}
	case StateAttack:
		if in.hpRatio() < p.RetreatHPRatio {
			b.State = StateRetreat
		} else if d > p.AttackRange*AttackExitMul {
			b.State = StateChase
		}
	case StateRetreat:
		if d > p.DetectRange*RetreatExitMul {
			b.State = StatePatrol
			b.Anchor = b.Pos
			b.WaypointTimer = 0
		}
	}
}

func (m *MonsterFSM) patrol(dt float64) {
	b, p := &m.Body, &m.Profile
	b.WaypointTimer -= dt
	if b.WaypointTimer <= 0 || b.Pos.Dist(b.Waypoint) < arriveEpsilon {
		b.Waypoint = m.pickWaypoint()
		b.WaypointTimer = p.WaypointInterval
	}
	m.moveToward(b.Waypoint, p.Speed*patrolSpeedMul*dt)
}

func (m *MonsterFSM) pickWaypoint() geom.Vec2 {
	if m.rng == nil || m.Profile.PatrolRadius <= 0 {
		return m.Body.Anchor
	}
	angle := m.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(m.rng.Float64()) * m.Profile.PatrolRadius
	return m.Body.Anchor.Add(geom.FromAngle(angle).Scale(r))
}

func (m *MonsterFSM) moveToward(target geom.Vec2, step float64) {
	b := &m.Body
	if dir := target.Sub(b.Pos); !dir.IsZero() {
		b.Facing = dir.Heading()
	}
	b.Pos = b.Pos.MoveToward(target, step)
}
