package ai

import (
	"math/rand"
	"testing"

	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() Profile {
	return Profile{
		DetectRange:      15,
		AttackRange:      2,
		Speed:            4,
		RetreatSpeedMul:  1.5,
		PatrolRadius:     6,
		WaypointInterval: 3,
		AttackCooldown:   1.5,
		DeathDuration:    1,
		RetreatHPRatio:   0.2,
	}
}

func newTestFSM(pos geom.Vec2) *MonsterFSM {
	return NewMonsterFSM(testProfile(), pos, rand.New(rand.NewSource(7)))
}

func seen(target geom.Vec2, hp int) Perception {
	return Perception{Target: target, TargetAlive: true, HP: hp, MaxHP: 100}
}

func TestFSM_StartsInPatrol(t *testing.T) {
	m := newTestFSM(geom.V(0, 0))
	assert.Equal(t, StatePatrol, m.State())
	assert.Equal(t, "patrol", m.State().String())
}

func TestFSM_PatrolStaysNearAnchor(t *testing.T) {
	m := newTestFSM(geom.V(10, 10))
	far := geom.V(500, 500)
	for i := 0; i < 600; i++ {
		m.Step(seen(far, 100), 0.1)
		require.Equal(t, StatePatrol, m.State())
		assert.LessOrEqual(t, m.Body.Pos.Dist(m.Body.Anchor), testProfile().PatrolRadius+1e-6)
	}
}

func TestFSM_PatrolToChase(t *testing.T) {
	m := newTestFSM(geom.V(0, 0))
	m.Step(seen(geom.V(14, 0), 100), 0.016)
	assert.Equal(t, StateChase, m.State())
}

func TestFSM_ChaseHysteresis(t *testing.T) {
	m := newTestFSM(geom.V(0, 0))
	m.Body.State = StateChase
	// beyond detect but inside detect*1.5: keeps chasing
	m.Step(seen(geom.V(20, 0), 100), 0)
	assert.Equal(t, StateChase, m.State())
	m.Step(seen(geom.V(23, 0), 100), 0)
	assert.Equal(t, StatePatrol, m.State())
}

func TestFSM_ChaseMovesTowardTarget(t *testing.T) {
	m := newTestFSM(geom.V(0, 0))
	m.Body.State = StateChase
	m.Step(seen(geom.V(10, 0), 100), 0.5)
	assert.InDelta(t, 2.0, m.Body.Pos.X, 1e-9)
}

func TestFSM_ChaseToAttackAndAttackCadence(t *testing.T) {
	m := newTestFSM(geom.V(0, 0))
	m.Body.State = StateChase
	target := geom.V(1.5, 0)

	out := m.Step(seen(target, 100), 0.1)
	require.Equal(t, StateAttack, m.State())
	assert.True(t, out.Attack, "first attack is immediate")

	attacks := 0
	for i := 0; i < 12; i++ { // 3 seconds
		if m.Step(seen(target, 100), 0.25).Attack {
			attacks++
		}
	}
	assert.Equal(t, 2, attacks)
}

func TestFSM_AttackHysteresis(t *testing.T) {
	m := newTestFSM(geom.V(0, 0))
	m.Body.State = StateAttack
	m.Body.AttackTimer = 10
	m.Step(seen(geom.V(2.9, 0), 100), 0)
	assert.Equal(t, StateAttack, m.State())
	m.Step(seen(geom.V(3.1, 0), 100), 0)
	assert.Equal(t, StateChase, m.State())
}

func TestFSM_RetreatWheneverLowHP(t *testing.T) {
	m := newTestFSM(geom.V(0, 0))
	m.Body.State = StateAttack
	target := geom.V(1, 0)

	m.Step(seen(target, 15), 0.1)
	require.Equal(t, StateRetreat, m.State())
	before := m.Body.Pos.Dist(target)
	m.Step(seen(target, 15), 0.1)
	assert.Greater(t, m.Body.Pos.Dist(target), before)

	// flee beyond detect*1.3 and the anchor resets
	m.Body.Pos = geom.V(-20, 0)
	m.Step(seen(target, 15), 0.1)
	require.Equal(t, StatePatrol, m.State())
	assert.InDelta(t, -20.0, m.Body.Anchor.X, 1e-9)

	// walk back in: patrol -> chase -> attack, then flee again
	m.Body.Pos = geom.V(0, 0)
	m.Step(seen(target, 15), 0.1)
	require.Equal(t, StateChase, m.State())
	m.Step(seen(target, 15), 0.1)
	require.Equal(t, StateAttack, m.State())
	m.Step(seen(target, 15), 0.1)
	assert.Equal(t, StateRetreat, m.State())
}

func TestFSM_RetreatSpeed(t *testing.T) {
	m := newTestFSM(geom.V(0, 0))
	m.Body.State = StateRetreat
	m.Step(seen(geom.V(2, 0), 100), 1)
	assert.InDelta(t, -6.0, m.Body.Pos.X, 1e-9)
}

func TestFSM_DeadOnNextEvaluation(t *testing.T) {
	for _, s := range []MonsterState{StatePatrol, StateChase, StateAttack, StateRetreat} {
		m := newTestFSM(geom.V(0, 0))
		m.Body.State = s
		out := m.Step(seen(geom.V(1, 0), 0), 0.016)
		assert.Equal(t, StateDead, m.State(), s.String())
		assert.True(t, out.Died)
		assert.False(t, out.Attack)
	}
}

func TestFSM_DeathSequenceFinishesOnce(t *testing.T) {
	m := newTestFSM(geom.V(0, 0))
	m.Step(seen(geom.V(1, 0), 0), 0.1)
	require.Equal(t, StateDead, m.State())

	finished := 0
	for i := 0; i < 30; i++ {
		out := m.Step(seen(geom.V(1, 0), 0), 0.1)
		assert.False(t, out.Attack)
		if out.Finished {
			finished++
		}
	}
	assert.Equal(t, 1, finished)
	assert.Equal(t, 1.0, m.Body.Sink)
	assert.Equal(t, StateDead, m.State())
}

func TestFSM_IgnoresDeadTarget(t *testing.T) {
	m := newTestFSM(geom.V(0, 0))
	m.Body.State = StateAttack
	out := m.Step(Perception{Target: geom.V(1, 0), TargetAlive: false, HP: 100, MaxHP: 100}, 0.1)
	assert.False(t, out.Attack)
	assert.Equal(t, StateChase, m.State())
	m.Step(Perception{Target: geom.V(1, 0), TargetAlive: false, HP: 100, MaxHP: 100}, 0.1)
	assert.Equal(t, StatePatrol, m.State())
}
