// Package testutil builds small, quiet fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/kasuganosora/arpgcore/config"
	"github.com/kasuganosora/arpgcore/game/sim"
	"github.com/kasuganosora/arpgcore/resource"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// SetupTestConfig returns the defaults shrunk for fast tests: a 3x3 chunk
// window, coarse heights, no timed spawns and auto-battle off.
func SetupTestConfig() *config.Config {
	cfg := config.Default()
	cfg.Game.AutoBattle = false
	cfg.Monster.FirstSpawn = 1e9
	cfg.World.ViewRadius = 1
	cfg.World.Resolution = 5
	cfg.World.VegetationPerChunk = 2
	return cfg
}

// SetupTestLogger logs through t so output only shows for failing tests.
func SetupTestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel))
}

// SetupTestSession builds a session on the built-in content.
func SetupTestSession(t *testing.T, opts ...sim.Option) *sim.Session {
	t.Helper()
	s, err := sim.NewSession(SetupTestConfig(), resource.Defaults(), SetupTestLogger(t), opts...)
	require.NoError(t, err, "SetupTestSession")
	return s
}
