// Package ai holds the monster state machine and a small generic behavior
// tree used by the player's auto-battle.
package ai

import "github.com/kasuganosora/arpgcore/game/geom"

// MonsterState enumerates the high-level AI states of a monster.
type MonsterState int

const (
	StatePatrol  MonsterState = iota // wander around the anchor
	StateChase                       // actively pursuing the player
	StateAttack                      // close enough to attack
	StateRetreat                     // fleeing at low hp
	StateDead
)

func (s MonsterState) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateAttack:
		return "attack"
	case StateRetreat:
		return "retreat"
	case StateDead:
		return "dead"
	}
	return "unknown"
}

// Perception is what a monster knows about the world in one evaluation.
type Perception struct {
	Target      geom.Vec2
	TargetAlive bool
	HP          int
	MaxHP       int
}

func (p Perception) hpRatio() float64 {
	if p.MaxHP <= 0 {
		return 0
	}
	return float64(p.HP) / float64(p.MaxHP)
}

// Outcome reports what happened during one Step.
type Outcome struct {
	Attack   bool // an attack should be resolved against the target
	Died     bool // entered Dead this step
	Finished bool // death sequence completed; remove the monster
}
