// Package sim assembles every subsystem into one single-threaded
// simulation and drives it tick by tick.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/kasuganosora/arpgcore/config"
	"github.com/kasuganosora/arpgcore/game/battle"
	"github.com/kasuganosora/arpgcore/game/chunk"
	"github.com/kasuganosora/arpgcore/game/combat"
	"github.com/kasuganosora/arpgcore/game/event"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/game/loot"
	"github.com/kasuganosora/arpgcore/game/player"
	"github.com/kasuganosora/arpgcore/game/skill"
	"github.com/kasuganosora/arpgcore/game/terrain"
	"github.com/kasuganosora/arpgcore/game/world"
	"github.com/kasuganosora/arpgcore/resource"
	"go.uber.org/zap"
)

const playerID int64 = 1

// Option customises a Session.
type Option func(*Session)

// WithRenderer routes proxy calls to r.
func WithRenderer(r Renderer) Option { return func(s *Session) { s.renderer = r } }

// WithAssets sets the asset loader and the channel its late upgrades
// arrive on (nil when the loader never upgrades).
func WithAssets(l AssetLoader, upgrades <-chan AssetUpgrade) Option {
	return func(s *Session) {
		s.assets = l
		s.upgrades = upgrades
	}
}

// WithStore publishes a snapshot to store after every tick.
func WithStore(store *SnapshotStore) Option { return func(s *Session) { s.store = store } }

// Session is the dependency-injection root: it owns every subsystem of one
// run and must only be driven from a single goroutine.
type Session struct {
	ID      string
	cfg     *config.Config
	content *resource.Content
	logger  *zap.Logger
	rng     *rand.Rand

	Bus     *event.Bus
	Player  *player.Player
	Skills  *skill.Service
	Pool    *world.MonsterPool
	Loot    *loot.Economy
	Combat  *combat.Orchestrator
	Heights *terrain.HeightField
	Zones   *terrain.ZoneTable
	Grid    *chunk.Grid

	renderer Renderer
	assets   AssetLoader
	upgrades <-chan AssetUpgrade
	store    *SnapshotStore

	frame    uint64
	elapsed  float64
	zone     *resource.Zone
	monsters map[int64]bool
	drops    map[int64]bool
}

// NewSession builds every subsystem from cfg and content.
func NewSession(cfg *config.Config, content *resource.Content, logger *zap.Logger, opts ...Option) (*Session, error) {
	if cfg == nil || content == nil {
		return nil, fmt.Errorf("sim: config and content are required")
	}
	if err := resource.Validate(content); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	if err := checkTierGold(content.Tiers, cfg.Loot.MinGoldShards); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		ID:       uuid.NewString(),
		cfg:      cfg,
		content:  content,
		logger:   logger,
		rng:      rand.New(rand.NewSource(cfg.Game.Seed)),
		renderer: NopRenderer{},
		monsters: make(map[int64]bool),
		drops:    make(map[int64]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session_id", s.ID))
	s.Bus = event.NewBus(s.logger)

	catalog, err := skill.NewCatalog(content.Skills)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	resolver := battle.NewResolver(resolverConfig(cfg), s.rng)

	s.Pool = world.NewMonsterPool(poolConfig(cfg), content.Tiers, s.Bus, s.rng, s.logger)
	s.Skills = skill.NewSkillService(catalog, resolver, s.Pool, s.Bus, cfg.Combat.DodgeSeconds, s.logger)
	s.Loot = loot.NewEconomy(lootConfig(cfg), s.rng, s.Bus, s.logger)
	s.Player = player.New(playerID, content.Player, catalog, cfg.Combat.PlayerSpeed, cfg.Loot.ExpGrowth)
	s.Combat = combat.New(combatConfig(cfg), s.Player, s.Skills, s.Pool, s.Loot, resolver, s.Bus, s.logger)

	s.Heights = terrain.NewHeightField(cfg.Game.Seed, content.Terrain)
	s.Zones = terrain.NewZoneTable(content.Zones)
	veg := terrain.NewVegetationPlacer(cfg.Game.Seed, content.Vegetation, cfg.World.VegetationPerChunk, s.Heights)
	gen := chunk.NewGenerator(s.Heights, veg, cfg.World.ChunkSize, cfg.World.Resolution)
	s.Grid = chunk.NewGrid(gen, cfg.World.ViewRadius, s.Bus, s.logger)
	s.Grid.OnLoad = func(c *chunk.Chunk) {
		s.renderer.Spawn(ProxyChunk, chunkProxyID(c.Coord), c.Origin(), proceduralAsset("terrain"))
	}
	s.Grid.OnDispose = func(c *chunk.Chunk) {
		s.renderer.Remove(ProxyChunk, chunkProxyID(c.Coord))
	}

	s.renderer.Spawn(ProxyPlayer, s.Player.ID, s.Player.Position(), s.asset("player"))
	s.Grid.Update(s.Player.Position())
	s.zone = s.Zones.At(s.Player.Position())

	s.logger.Info("session created",
		zap.Int64("seed", cfg.Game.Seed),
		zap.Int("skills", catalog.Len()),
		zap.Int("tiers", len(content.Tiers)),
		zap.Int("chunks", s.Grid.Len()))
	return s, nil
}

// Update advances the simulation by dt seconds: asset upgrades, combat,
// zone gating, world streaming, renderer sync and the snapshot.
func (s *Session) Update(dt float64) {
	if dt <= 0 {
		return
	}
	s.drainUpgrades()

	before := s.Player.Position()
	s.Combat.Update(dt)
	s.gateZones(before)

	s.Grid.Update(s.Player.Position())
	s.syncRenderer()

	s.frame++
	s.elapsed += dt
	if s.store != nil {
		s.store.Set(s.Snapshot())
	}
}

// drainUpgrades applies finished asset loads without blocking.
func (s *Session) drainUpgrades() {
	if s.upgrades == nil {
		return
	}
	for {
		select {
		case up, ok := <-s.upgrades:
			if !ok {
				s.upgrades = nil
				return
			}
			s.renderer.Upgrade(up.Name, up.Asset)
			s.logger.Debug("asset upgraded", zap.String("asset", up.Name))
		default:
			return
		}
	}
}

// gateZones keeps the player out of zones they have not unlocked.
func (s *Session) gateZones(before geom.Vec2) {
	pos := s.Player.Position()
	z := s.Zones.At(pos)
	if z == s.zone {
		return
	}
	if !s.Zones.Unlocked(z, s.Player.Stats.Level, s.Pool.Kills()) {
		s.Player.Teleport(before)
		return
	}
	s.zone = z
	name := "wilds"
	if z != nil {
		name = z.Name
	}
	s.logger.Info("entered zone", zap.String("zone", name))
}

// syncRenderer reconciles monster and drop proxies with the live sets.
func (s *Session) syncRenderer() {
	s.renderer.Move(ProxyPlayer, s.Player.ID, s.Player.Position(), s.Player.Facing())

	seen := make(map[int64]bool, s.Pool.Len())
	for _, m := range s.Pool.Monsters() {
		seen[m.ID] = true
		if !s.monsters[m.ID] {
			s.renderer.Spawn(ProxyMonster, m.ID, m.Position(), s.asset(tierModel(m.Tier)))
			s.monsters[m.ID] = true
		}
		s.renderer.Move(ProxyMonster, m.ID, m.Position(), m.AI.Body.Facing)
	}
	for id := range s.monsters {
		if !seen[id] {
			s.renderer.Remove(ProxyMonster, id)
			delete(s.monsters, id)
		}
	}

	clear(seen)
	for _, d := range s.Loot.Drops() {
		seen[d.ID] = true
		if !s.drops[d.ID] {
			s.renderer.Spawn(ProxyDrop, d.ID, d.Pos, s.asset("drop_"+d.Reward.String()))
			s.drops[d.ID] = true
		}
		s.renderer.Move(ProxyDrop, d.ID, d.Pos, 0)
	}
	for id := range s.drops {
		if !seen[id] {
			s.renderer.Remove(ProxyDrop, id)
			delete(s.drops, id)
		}
	}
}

// asset resolves name through the loader, falling back to a procedural
// stand-in.
func (s *Session) asset(name string) Asset {
	if s.assets != nil {
		if a, ok := s.assets.Load(name); ok {
			return a
		}
	}
	return proceduralAsset(name)
}

// checkTierGold rejects tiers whose gold cannot fill the minimum number
// of gold shards with at least one coin each.
func checkTierGold(tiers []*resource.MonsterTier, minShards int) error {
	for _, t := range tiers {
		if t.Gold < minShards {
			return fmt.Errorf("%w: monster tier %q drops %d gold, below the %d gold shards per kill",
				resource.ErrInvalidContent, t.Name, t.Gold, minShards)
		}
	}
	return nil
}

func tierModel(t *resource.MonsterTier) string {
	if t.Model != "" {
		return t.Model
	}
	return "monster"
}

func chunkProxyID(c chunk.Coord) int64 {
	return int64(int32(c.X))<<32 | int64(uint32(int32(c.Z)))
}

func (s *Session) Frame() uint64          { return s.frame }
func (s *Session) Elapsed() float64       { return s.elapsed }
func (s *Session) Config() *config.Config { return s.cfg }

// Zone returns the zone the player is in, nil in the wilds.
func (s *Session) Zone() *resource.Zone { return s.zone }

func resolverConfig(cfg *config.Config) battle.ResolverConfig {
	return battle.ResolverConfig{
		VarianceMin:    cfg.Combat.VarianceMin,
		VarianceMax:    cfg.Combat.VarianceMax,
		CritChance:     cfg.Combat.CritChance,
		CritMultiplier: cfg.Combat.CritMultiplier,
	}
}

func poolConfig(cfg *config.Config) world.PoolConfig {
	m := cfg.Monster
	return world.PoolConfig{
		Cap:              m.Cap,
		SpawnInterval:    m.SpawnInterval,
		FirstSpawn:       m.FirstSpawn,
		SpawnMinRadius:   m.SpawnMinRadius,
		SpawnMaxRadius:   m.SpawnMaxRadius,
		PatrolRadius:     m.PatrolRadius,
		WaypointInterval: m.WaypointInterval,
		RetreatHPRatio:   m.RetreatHPRatio,
		RetreatSpeedMul:  m.RetreatSpeedMul,
		DeathSeconds:     m.DeathSeconds,
		LeashRadius:      m.LeashRadius,
	}
}

func lootConfig(cfg *config.Config) loot.Config {
	l := cfg.Loot
	return loot.Config{
		Physics: loot.Physics{
			Gravity:         l.Gravity,
			Restitution:     l.Restitution,
			MaxBounces:      l.MaxBounces,
			SettleSpeed:     l.SettleSpeed,
			PickupRadius:    l.PickupRadius,
			CollectDistance: l.CollectDistance,
			PickupAccel:     l.PickupAccel,
			Lifetime:        l.LifetimeS,
		},
		Table: battle.DropTable{
			MinGoldShards: l.MinGoldShards,
			MaxGoldShards: l.MaxGoldShards,
			HPChance:      l.HPDropChance,
			HPAmount:      l.HPDropAmount,
		},
	}
}

func combatConfig(cfg *config.Config) combat.Config {
	c := cfg.Combat
	return combat.Config{
		AutoBattle:       cfg.Game.AutoBattle,
		EmergencyHPRatio: c.EmergencyHPRatio,
		RespawnSeconds:   c.RespawnSeconds,
		MPRegen:          c.MPRegen,
		StaminaRegen:     c.StaminaRegen,
		SprintCost:       c.SprintCost,
	}
}
