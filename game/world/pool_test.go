package world

import (
	"math/rand"
	"testing"

	"github.com/kasuganosora/arpgcore/game/ai"
	"github.com/kasuganosora/arpgcore/game/event"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoolConfig() PoolConfig {
	return PoolConfig{
		Cap:              8,
		SpawnInterval:    5,
		FirstSpawn:       1,
		SpawnMinRadius:   15,
		SpawnMaxRadius:   30,
		PatrolRadius:     6,
		WaypointInterval: 4,
		RetreatHPRatio:   0.2,
		RetreatSpeedMul:  1.5,
		DeathSeconds:     1,
		LeashRadius:      80,
	}
}

func newTestPool(t *testing.T, cfg PoolConfig) (*MonsterPool, *event.Bus) {
	t.Helper()
	bus := event.NewBus(nil)
	return NewMonsterPool(cfg, resource.Defaults().Tiers, bus, rand.New(rand.NewSource(42)), nil), bus
}

// quietConfig disables timed spawns so tests control the population.
func quietConfig() PoolConfig {
	cfg := testPoolConfig()
	cfg.FirstSpawn = 1e9
	return cfg
}

func far() geom.Vec2 { return geom.V(0, 0) }

func TestPool_FirstSpawnAndInterval(t *testing.T) {
	p, _ := newTestPool(t, testPoolConfig())
	p.Update(0.5, far(), true)
	assert.Equal(t, 0, p.Len())
	p.Update(0.5, far(), true)
	assert.Equal(t, 1, p.Len())
	p.Update(4.5, far(), true)
	assert.Equal(t, 1, p.Len())
	p.Update(0.5, far(), true)
	assert.Equal(t, 2, p.Len())
}

func TestPool_RespectsCap(t *testing.T) {
	cfg := testPoolConfig()
	cfg.Cap = 3
	cfg.SpawnInterval = 0.1
	cfg.LeashRadius = 0
	p, _ := newTestPool(t, cfg)
	for i := 0; i < 200; i++ {
		p.Update(0.1, geom.V(1000, 1000), false)
		require.LessOrEqual(t, p.Len(), 3)
	}
	assert.Equal(t, 3, p.Len())
	assert.Nil(t, p.Spawn(far()))
}

func TestPool_SpawnInAnnulus(t *testing.T) {
	p, _ := newTestPool(t, testPoolConfig())
	center := geom.V(100, -40)
	for i := 0; i < 8; i++ {
		m := p.Spawn(center)
		require.NotNil(t, m)
		d := m.Position().Dist(center)
		assert.GreaterOrEqual(t, d, 15.0-1e-9)
		assert.LessOrEqual(t, d, 30.0+1e-9)
		assert.Equal(t, ai.StatePatrol, m.State())
	}
}

func TestPool_SpawnPublishesEvent(t *testing.T) {
	p, bus := newTestPool(t, testPoolConfig())
	var got []event.MonsterSpawned
	bus.Subscribe(event.KindMonsterSpawned, func(e event.Event) {
		got = append(got, e.(event.MonsterSpawned))
	})
	m := p.Spawn(far())
	require.Len(t, got, 1)
	assert.Equal(t, m.ID, got[0].MonsterID)
}

func TestPool_DeathLifecycle(t *testing.T) {
	p, bus := newTestPool(t, quietConfig())
	var died []event.MonsterDied
	bus.Subscribe(event.KindMonsterDied, func(e event.Event) {
		died = append(died, e.(event.MonsterDied))
	})
	deaths := 0
	p.OnDeath = func(m *Monster, pos geom.Vec2) { deaths++ }

	tier := resource.Defaults().Tiers[0]
	m := p.SpawnAt(tier, geom.V(40, 0))
	m.ApplyDamage(100000)
	assert.False(t, m.Alive())
	assert.Empty(t, p.InRange(geom.V(40, 0), 5), "dead monsters are not targetable")

	p.Update(0.1, far(), true)
	require.Equal(t, ai.StateDead, m.State())
	assert.Equal(t, 1, p.Len(), "corpse stays for the death sequence")

	for i := 0; i < 15; i++ {
		p.Update(0.1, far(), true)
	}
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 1, deaths)
	require.Len(t, died, 1)
	assert.Equal(t, 1, died[0].Kills)
	assert.Equal(t, 1, p.Kills())
	assert.True(t, m.Disposed())
	assert.False(t, m.Dispose(), "dispose is idempotent")
}

func TestPool_SpawnFromDeathSubscriberIsKept(t *testing.T) {
	p, bus := newTestPool(t, quietConfig())
	tier := resource.Defaults().Tiers[0]
	var spawned []int64
	bus.Subscribe(event.KindMonsterSpawned, func(e event.Event) {
		spawned = append(spawned, e.(event.MonsterSpawned).MonsterID)
	})
	var replacement *Monster
	bus.Subscribe(event.KindMonsterDied, func(event.Event) {
		replacement = p.SpawnAt(tier, geom.V(45, 0))
	})
	p.SpawnAt(tier, geom.V(50, 0))
	dying := p.SpawnAt(tier, geom.V(40, 0))
	p.SpawnAt(tier, geom.V(35, 0))
	dying.ApplyDamage(100000)

	for i := 0; i < 15 && replacement == nil; i++ {
		p.Update(0.1, far(), true)
	}
	require.NotNil(t, replacement)
	assert.Equal(t, 3, p.Len())
	assert.Contains(t, p.Monsters(), replacement)
	assert.NotContains(t, p.Monsters(), dying)
	assert.Contains(t, spawned, replacement.ID)

	p.Update(0.1, far(), true)
	assert.Contains(t, p.Monsters(), replacement)
}

func TestPool_ClearFromCallback(t *testing.T) {
	p, _ := newTestPool(t, quietConfig())
	tier := resource.Defaults().Tiers[0]
	p.OnDeath = func(*Monster, geom.Vec2) { p.Clear() }
	p.SpawnAt(tier, geom.V(30, 0))
	p.SpawnAt(tier, geom.V(40, 0)).ApplyDamage(100000)
	for i := 0; i < 15; i++ {
		p.Update(0.1, far(), true)
	}
	assert.Zero(t, p.Len())
}

func TestPool_AttackCallback(t *testing.T) {
	p, _ := newTestPool(t, quietConfig())
	var attackers []int64
	p.OnAttack = func(m *Monster) { attackers = append(attackers, m.ID) }
	tier := resource.Defaults().Tiers[0]
	m := p.SpawnAt(tier, geom.V(1, 0))

	p.Update(0.1, far(), true) // patrol -> chase
	p.Update(0.1, far(), true) // chase -> attack, first swing
	assert.Equal(t, []int64{m.ID}, attackers)

	attackers = nil
	for i := 0; i < 10; i++ {
		p.Update(0.1, far(), false)
	}
	assert.Empty(t, attackers, "no attacks on a dead player")
}

func TestPool_LeashDespawnIsNotAKill(t *testing.T) {
	p, _ := newTestPool(t, quietConfig())
	deaths := 0
	p.OnDeath = func(*Monster, geom.Vec2) { deaths++ }
	m := p.SpawnAt(resource.Defaults().Tiers[0], geom.V(0, 0))
	p.Update(0.01, geom.V(500, 0), true)
	assert.Equal(t, 0, p.Len())
	assert.True(t, m.Disposed())
	assert.Zero(t, deaths)
	assert.Zero(t, p.Kills())
}

func TestPool_RangeQueries(t *testing.T) {
	p, _ := newTestPool(t, quietConfig())
	tier := resource.Defaults().Tiers[0]
	a := p.SpawnAt(tier, geom.V(2, 0))
	b := p.SpawnAt(tier, geom.V(0, 4))
	p.SpawnAt(tier, geom.V(50, 0))

	in := p.InRange(geom.V(0, 0), 5)
	require.Len(t, in, 2)
	assert.Equal(t, a.ID, in[0].ID)
	assert.Equal(t, b.ID, in[1].ID)
	assert.Len(t, p.CombatantsInRange(geom.V(0, 0), 5), 2)
	assert.Nil(t, p.CombatantsInRange(geom.V(-100, 0), 1))
	assert.Len(t, p.Alive(), 3)

	b.ApplyDamage(1 << 20)
	assert.Len(t, p.Alive(), 2)
}

func TestPool_Clear(t *testing.T) {
	p, _ := newTestPool(t, testPoolConfig())
	m := p.Spawn(far())
	p.Clear()
	assert.Zero(t, p.Len())
	assert.True(t, m.Disposed())
	assert.Zero(t, p.Kills())
}

func TestSpawner_PickTierUnlocks(t *testing.T) {
	tiers := resource.Defaults().Tiers
	sp := NewSpawner(5, 1, 15, 30, tiers, rand.New(rand.NewSource(3)))

	for i := 0; i < 200; i++ {
		assert.Equal(t, tiers[0].ID, sp.PickTier(0).ID)
	}

	counts := map[int]int{}
	for i := 0; i < 3000; i++ {
		counts[sp.PickTier(100).ID]++
	}
	assert.Len(t, counts, 3)
	assert.Greater(t, counts[3], 0)
}

func TestSpawner_HarderTiersGainWeight(t *testing.T) {
	tiers := resource.Defaults().Tiers
	assert.Greater(t, tierWeight(tiers[1], 40), tierWeight(tiers[1], 10))
	assert.Zero(t, tierWeight(tiers[2], 29))
	assert.Equal(t, tiers[0].Weight, tierWeight(tiers[0], 1000))
	assert.Equal(t, tiers[1].Weight*tierRampMax, tierWeight(tiers[1], 10000))
}

func TestSpawner_NoTiers(t *testing.T) {
	sp := NewSpawner(5, 1, 15, 30, nil, rand.New(rand.NewSource(3)))
	assert.Nil(t, sp.PickTier(10))
}
