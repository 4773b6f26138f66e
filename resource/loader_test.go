package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

// ---- Defaults ----

func TestDefaults_Valid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestDefaults_FreshCopies(t *testing.T) {
	a := Defaults()
	a.Skills[0].Cooldown = 99
	b := Defaults()
	assert.NotEqual(t, 99.0, b.Skills[0].Cooldown)
}

func TestContent_Lookups(t *testing.T) {
	c := Defaults()
	require.NotNil(t, c.SkillByID("dodge"))
	assert.True(t, c.SkillByID("dodge").IsUtility())
	assert.Nil(t, c.SkillByID("nope"))
	require.NotNil(t, c.TierByID(2))
	assert.Equal(t, "Orc", c.TierByID(2).Name)
	assert.Nil(t, c.TierByID(42))
}

// ---- Loader ----

func TestLoader_EmptyDirUsesDefaults(t *testing.T) {
	c, err := NewLoader(t.TempDir(), nil).Load()
	require.NoError(t, err)
	assert.Len(t, c.Skills, len(Defaults().Skills))
	assert.Len(t, c.Tiers, len(Defaults().Tiers))
}

func TestLoader_OverridesSkills(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "skills.yaml", `
skills:
  - id: basic_attack
    name: Jab
    kind: basic
    cooldown: 0.5
    damage_multiplier: 1
    range: 2
  - id: power_strike
    kind: single
    cooldown: 2
    mp_cost: 5
    damage_multiplier: 2
    range: 3
  - id: whirlwind
    kind: aoe
    cooldown: 4
    damage_multiplier: 1.2
    range: 4
    aoe: true
  - id: meteor
    kind: ultimate
    cooldown: 10
    damage_multiplier: 3
    range: 6
    aoe: true
  - id: dodge
    kind: utility
    cooldown: 1
    invuln_seconds: 0.25
`)
	c, err := NewLoader(dir, nil).Load()
	require.NoError(t, err)
	require.Len(t, c.Skills, 5)
	assert.Equal(t, "Jab", c.SkillByID("basic_attack").Name)
	assert.InDelta(t, 0.25, c.SkillByID("dodge").InvulnSeconds, 1e-9)
	assert.True(t, c.SkillByID("meteor").IsAOE)
}

func TestLoader_ParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "monsters.yaml", "tiers: [this is: not valid")
	_, err := NewLoader(dir, nil).Load()
	assert.Error(t, err)
}

func TestLoader_InvalidContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "monsters.yaml", `
tiers:
  - id: 1
    name: Boss
    max_hp: 100
    weight: 1
    unlock_kills: 5
`)
	_, err := NewLoader(dir, nil).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidContent)
}

// ---- Validate ----

func TestValidate_Failures(t *testing.T) {
	cases := map[string]func(c *Content){
		"no skills":      func(c *Content) { c.Skills = nil },
		"duplicate":      func(c *Content) { c.Skills = append(c.Skills, c.Skills[0]) },
		"unknown kind":   func(c *Content) { c.Skills[0].Kind = "psionic" },
		"zero range":     func(c *Content) { c.Skills[0].Range = 0 },
		"missing player": func(c *Content) { c.Player.Skills = []string{"ghost"} },
		"no tiers":       func(c *Content) { c.Tiers = nil },
		"zero weight":    func(c *Content) { c.Tiers[0].Weight = 0 },
		"no octaves":     func(c *Content) { c.Terrain.Octaves = nil },
		"player hp":      func(c *Content) { c.Player.MaxHP = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Defaults()
			mutate(c)
			assert.ErrorIs(t, Validate(c), ErrInvalidContent)
		})
	}
}
