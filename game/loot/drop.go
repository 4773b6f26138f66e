// Package loot spawns kill rewards as physical drops and grants them to the
// player on pickup.
package loot

import (
	"math"

	"github.com/kasuganosora/arpgcore/game/battle"
	"github.com/kasuganosora/arpgcore/game/geom"
)

// Phase is a drop's lifecycle stage.
type Phase int

const (
	PhaseBounce Phase = iota
	PhaseIdle
	PhasePickup
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseBounce:
		return "bounce"
	case PhaseIdle:
		return "idle"
	case PhasePickup:
		return "pickup"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

const (
	bobAmplitude   = 0.15
	bobFrequency   = 3.0
	groundFriction = 0.6
	minScale       = 0.2
)

// Physics tunes drop motion.
type Physics struct {
	Gravity         float64
	Restitution     float64
	MaxBounces      int
	SettleSpeed     float64 // vertical speed below which bouncing stops
	PickupRadius    float64
	CollectDistance float64
	PickupAccel     float64
	Lifetime        float64 // seconds an idle drop survives; 0 = forever
}

// Result reports what a drop update concluded.
type Result int

const (
	ResultNone Result = iota
	ResultCollected
	ResultExpired
)

// Drop is one reward lying in the world.
type Drop struct {
	ID     int64
	Reward battle.RewardType
	Amount int

	Pos     geom.Vec2
	Height  float64
	Vel     geom.Vec2
	VelY    float64
	Phase   Phase
	Bounces int
	Scale   float64
	Bob     float64
	Age     float64 // seconds spent idle

	pickupSpeed float64
	disposed    bool
}

func newDrop(id int64, r battle.DropResult, pos, vel geom.Vec2, velY float64) *Drop {
	return &Drop{
		ID:     id,
		Reward: r.Type,
		Amount: r.Amount,
		Pos:    pos,
		Vel:    vel,
		VelY:   velY,
		Scale:  1,
	}
}

// Update advances the drop by dt toward target.
func (d *Drop) Update(dt float64, target geom.Vec2, targetAlive bool, ph Physics) Result {
	if d.disposed || d.Phase == PhaseDone {
		return ResultNone
	}
	switch d.Phase {
	case PhaseBounce:
		d.bounce(dt, ph)
	case PhaseIdle:
		d.Age += dt
		d.Bob = bobAmplitude * (1 + math.Sin(d.Age*bobFrequency)) / 2
		if targetAlive && d.Pos.Dist(target) <= ph.PickupRadius {
			d.Phase = PhasePickup
			d.Bob = 0
			return ResultNone
		}
		if ph.Lifetime > 0 && d.Age >= ph.Lifetime {
			d.Dispose()
			return ResultExpired
		}
	case PhasePickup:
		if !targetAlive {
			d.Phase = PhaseIdle
			d.pickupSpeed = 0
			d.Scale = 1
			return ResultNone
		}
		d.pickupSpeed += ph.PickupAccel * dt
		d.Pos = d.Pos.MoveToward(target, d.pickupSpeed*dt)
		dist := d.Pos.Dist(target)
		if ph.PickupRadius > 0 {
			d.Scale = math.Max(minScale, math.Min(1, dist/ph.PickupRadius))
		}
		if dist <= ph.CollectDistance {
			d.Phase = PhaseDone
			return ResultCollected
		}
	}
	return ResultNone
}

func (d *Drop) bounce(dt float64, ph Physics) {
	d.VelY -= ph.Gravity * dt
	d.Height += d.VelY * dt
	d.Pos = d.Pos.Add(d.Vel.Scale(dt))
	if d.Height > 0 {
		return
	}
	d.Height = 0
	d.Bounces++
	d.VelY = -d.VelY * ph.Restitution
	d.Vel = d.Vel.Scale(groundFriction)
	if d.Bounces >= ph.MaxBounces || math.Abs(d.VelY) < ph.SettleSpeed {
		d.Phase = PhaseIdle
		d.VelY = 0
		d.Vel = geom.Vec2{}
	}
}

// Dispose releases the drop. Only the first call returns true.
func (d *Drop) Dispose() bool {
	if d.disposed {
		return false
	}
	d.disposed = true
	return true
}

func (d *Drop) Disposed() bool { return d.disposed }
