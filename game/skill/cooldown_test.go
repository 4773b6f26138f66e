package skill

import (
	"testing"

	"github.com/kasuganosora/arpgcore/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(resource.Defaults().Skills)
	require.NoError(t, err)
	return c
}

// ---- Catalog ----

func TestCatalog_Lookup(t *testing.T) {
	c := testCatalog(t)
	def, ok := c.Get("whirlwind")
	require.True(t, ok)
	assert.True(t, def.IsAOE)
	_, ok = c.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, 5, c.Len())
}

func TestCatalog_ByKindAndUtility(t *testing.T) {
	c := testCatalog(t)
	assert.Len(t, c.ByKind(resource.SkillUltimate), 1)
	u, ok := c.Utility()
	require.True(t, ok)
	assert.Equal(t, "dodge", u.ID)
}

func TestCatalog_Duplicate(t *testing.T) {
	s := &resource.Skill{ID: "x", Kind: resource.SkillBasic}
	_, err := NewCatalog([]*resource.Skill{s, s})
	assert.Error(t, err)
}

func TestCatalog_CopiesDefinitions(t *testing.T) {
	src := resource.Defaults().Skills
	c, err := NewCatalog(src)
	require.NoError(t, err)
	src[0].Cooldown = 999
	def, _ := c.Get(src[0].ID)
	assert.NotEqual(t, 999.0, def.Cooldown)
}

// ---- CooldownTracker ----

func TestCooldown_StartAndTick(t *testing.T) {
	tr := NewCooldownTracker(testCatalog(t))
	assert.True(t, tr.IsReady("power_strike"))

	tr.Start("power_strike") // 3s
	assert.False(t, tr.IsReady("power_strike"))
	assert.InDelta(t, 3.0, tr.Remaining("power_strike"), 1e-9)

	assert.Nil(t, tr.Tick(1.0))
	assert.InDelta(t, 2.0, tr.Remaining("power_strike"), 1e-9)
	assert.InDelta(t, 1.0/3.0, tr.Progress("power_strike"), 1e-9)

	ready := tr.Tick(5.0)
	assert.Equal(t, []string{"power_strike"}, ready)
	assert.True(t, tr.IsReady("power_strike"))
	assert.Zero(t, tr.Remaining("power_strike"))
	assert.Equal(t, 1.0, tr.Progress("power_strike"))
}

func TestCooldown_Monotonic(t *testing.T) {
	tr := NewCooldownTracker(testCatalog(t))
	tr.Start("meteor")
	prev := tr.Remaining("meteor")
	for i := 0; i < 500; i++ {
		tr.Tick(0.05)
		cur := tr.Remaining("meteor")
		assert.LessOrEqual(t, cur, prev)
		assert.GreaterOrEqual(t, cur, 0.0)
		prev = cur
	}
	assert.Zero(t, prev)
}

func TestCooldown_UnknownSkillIsNoop(t *testing.T) {
	tr := NewCooldownTracker(testCatalog(t))
	tr.Start("ghost")
	assert.True(t, tr.IsReady("ghost"))
	assert.Zero(t, tr.Remaining("ghost"))
	assert.Equal(t, 1.0, tr.Progress("ghost"))
}

func TestCooldown_NonPositiveDtIgnored(t *testing.T) {
	tr := NewCooldownTracker(testCatalog(t))
	tr.Start("whirlwind")
	tr.Tick(0)
	tr.Tick(-3)
	assert.InDelta(t, 6.0, tr.Remaining("whirlwind"), 1e-9)
}

func TestCooldown_Reset(t *testing.T) {
	tr := NewCooldownTracker(testCatalog(t))
	tr.Start("whirlwind")
	tr.Start("meteor")
	tr.Reset()
	assert.True(t, tr.IsReady("whirlwind"))
	assert.True(t, tr.IsReady("meteor"))
}

// ---- StatusList ----

func TestStatusList_AddTickExpire(t *testing.T) {
	var sl StatusList
	sl.Add(StatusInvulnerable, 0.4, 1)
	assert.True(t, sl.Has(StatusInvulnerable))

	assert.Nil(t, sl.Tick(0.3))
	assert.True(t, sl.Has(StatusInvulnerable))

	expired := sl.Tick(0.2)
	assert.Equal(t, []StatusID{StatusInvulnerable}, expired)
	assert.False(t, sl.Has(StatusInvulnerable))
}

func TestStatusList_RefreshKeepsLonger(t *testing.T) {
	var sl StatusList
	sl.Add("haste", 5, 3)
	s := sl.Add("haste", 2, 3)
	assert.InDelta(t, 5.0, s.Remaining, 1e-9)
	assert.Equal(t, 2, s.Stacks)
	sl.Add("haste", 1, 3)
	s = sl.Add("haste", 1, 3)
	assert.Equal(t, 3, s.Stacks)
	assert.Len(t, sl.All(), 1)
}

func TestStatusList_RemoveAndClear(t *testing.T) {
	var sl StatusList
	sl.Add("a", 1, 1)
	sl.Add("b", 1, 1)
	assert.True(t, sl.Remove("a"))
	assert.False(t, sl.Remove("a"))
	assert.Nil(t, sl.Get("a"))
	sl.Clear()
	assert.Empty(t, sl.All())
}
