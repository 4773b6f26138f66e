package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Combat   CombatConfig   `mapstructure:"combat"`
	Monster  MonsterConfig  `mapstructure:"monster"`
	Loot     LootConfig     `mapstructure:"loot"`
	World    WorldConfig    `mapstructure:"world"`
	Security SecurityConfig `mapstructure:"security"`
}

type ServerConfig struct {
	Debug      bool `mapstructure:"debug"`
	DebugPort  int  `mapstructure:"debug_port"`  // 0 disables the inspector
	RunSeconds int  `mapstructure:"run_seconds"` // 0 runs until interrupted
}

type GameConfig struct {
	TickMs     int    `mapstructure:"tick_ms"`
	Seed       int64  `mapstructure:"seed"`
	ContentDir string `mapstructure:"content_dir"`
	AutoBattle bool   `mapstructure:"auto_battle"`
	Wander     bool   `mapstructure:"wander"` // scripted movement for headless runs
}

type CombatConfig struct {
	CritChance       float64 `mapstructure:"crit_chance"`
	CritMultiplier   float64 `mapstructure:"crit_multiplier"`
	VarianceMin      float64 `mapstructure:"variance_min"`
	VarianceMax      float64 `mapstructure:"variance_max"`
	DodgeSeconds     float64 `mapstructure:"dodge_seconds"`
	EmergencyHPRatio float64 `mapstructure:"emergency_hp_ratio"`
	RespawnSeconds   float64 `mapstructure:"respawn_seconds"`
	MPRegen          float64 `mapstructure:"mp_regen"`      // per second
	StaminaRegen     float64 `mapstructure:"stamina_regen"` // per second
	SprintCost       float64 `mapstructure:"sprint_cost"`   // stamina per second
	PlayerSpeed      float64 `mapstructure:"player_speed"`
}

type MonsterConfig struct {
	Cap              int     `mapstructure:"cap"`
	SpawnInterval    float64 `mapstructure:"spawn_interval"`
	FirstSpawn       float64 `mapstructure:"first_spawn"`
	SpawnMinRadius   float64 `mapstructure:"spawn_min_radius"`
	SpawnMaxRadius   float64 `mapstructure:"spawn_max_radius"`
	PatrolRadius     float64 `mapstructure:"patrol_radius"`
	WaypointInterval float64 `mapstructure:"waypoint_interval"`
	RetreatHPRatio   float64 `mapstructure:"retreat_hp_ratio"`
	RetreatSpeedMul  float64 `mapstructure:"retreat_speed_mul"`
	DeathSeconds     float64 `mapstructure:"death_seconds"`
	LeashRadius      float64 `mapstructure:"leash_radius"`
}

type LootConfig struct {
	Gravity         float64 `mapstructure:"gravity"`
	Restitution     float64 `mapstructure:"restitution"`
	MaxBounces      int     `mapstructure:"max_bounces"`
	SettleSpeed     float64 `mapstructure:"settle_speed"`
	PickupRadius    float64 `mapstructure:"pickup_radius"`
	CollectDistance float64 `mapstructure:"collect_distance"`
	PickupAccel     float64 `mapstructure:"pickup_accel"`
	HPDropChance    float64 `mapstructure:"hp_drop_chance"`
	HPDropAmount    int     `mapstructure:"hp_drop_amount"`
	MinGoldShards   int     `mapstructure:"min_gold_shards"`
	MaxGoldShards   int     `mapstructure:"max_gold_shards"`
	LifetimeS       float64 `mapstructure:"lifetime_s"` // idle drops expire; 0 = never
	ExpGrowth       float64 `mapstructure:"exp_growth"`
}

type WorldConfig struct {
	ChunkSize          float64 `mapstructure:"chunk_size"`
	ViewRadius         int     `mapstructure:"view_radius"`
	Resolution         int     `mapstructure:"resolution"` // height samples per chunk edge
	VegetationPerChunk int     `mapstructure:"vegetation_per_chunk"`
}

type SecurityConfig struct {
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.debug", false)
	v.SetDefault("server.debug_port", 0)
	v.SetDefault("server.run_seconds", 0)
	v.SetDefault("game.tick_ms", 50)
	v.SetDefault("game.seed", 20240601)
	v.SetDefault("game.content_dir", "./content")
	v.SetDefault("game.auto_battle", true)
	v.SetDefault("game.wander", true)
	v.SetDefault("combat.crit_chance", 0.15)
	v.SetDefault("combat.crit_multiplier", 2.0)
	v.SetDefault("combat.variance_min", 0.9)
	v.SetDefault("combat.variance_max", 1.1)
	v.SetDefault("combat.dodge_seconds", 0.4)
	v.SetDefault("combat.emergency_hp_ratio", 0.3)
	v.SetDefault("combat.respawn_seconds", 3.0)
	v.SetDefault("combat.mp_regen", 2.0)
	v.SetDefault("combat.stamina_regen", 10.0)
	v.SetDefault("combat.sprint_cost", 20.0)
	v.SetDefault("combat.player_speed", 6.0)
	v.SetDefault("monster.cap", 8)
	v.SetDefault("monster.spawn_interval", 5.0)
	v.SetDefault("monster.first_spawn", 1.0)
	v.SetDefault("monster.spawn_min_radius", 15.0)
	v.SetDefault("monster.spawn_max_radius", 30.0)
	v.SetDefault("monster.patrol_radius", 6.0)
	v.SetDefault("monster.waypoint_interval", 4.0)
	v.SetDefault("monster.retreat_hp_ratio", 0.2)
	v.SetDefault("monster.retreat_speed_mul", 1.5)
	v.SetDefault("monster.death_seconds", 1.0)
	v.SetDefault("monster.leash_radius", 80.0)
	v.SetDefault("loot.gravity", 20.0)
	v.SetDefault("loot.restitution", 0.5)
	v.SetDefault("loot.max_bounces", 3)
	v.SetDefault("loot.settle_speed", 0.8)
	v.SetDefault("loot.pickup_radius", 3.0)
	v.SetDefault("loot.collect_distance", 0.5)
	v.SetDefault("loot.pickup_accel", 30.0)
	v.SetDefault("loot.hp_drop_chance", 0.3)
	v.SetDefault("loot.hp_drop_amount", 30)
	v.SetDefault("loot.min_gold_shards", 2)
	v.SetDefault("loot.max_gold_shards", 4)
	v.SetDefault("loot.lifetime_s", 60.0)
	v.SetDefault("loot.exp_growth", 1.5)
	v.SetDefault("world.chunk_size", 64.0)
	v.SetDefault("world.view_radius", 2)
	v.SetDefault("world.resolution", 17)
	v.SetDefault("world.vegetation_per_chunk", 24)
	v.SetDefault("security.rate_limit_rps", 20)
	v.SetDefault("security.rate_limit_burst", 40)
}

// Load reads config from the given YAML file path. An empty path yields the
// defaults plus any ARPG_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ARPG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(err) // defaults are static
	}
	return cfg
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Game.TickMs <= 0:
		return fmt.Errorf("game.tick_ms must be positive, got %d", c.Game.TickMs)
	case c.Combat.VarianceMin <= 0 || c.Combat.VarianceMax < c.Combat.VarianceMin:
		return fmt.Errorf("combat variance range [%g, %g] is invalid", c.Combat.VarianceMin, c.Combat.VarianceMax)
	case c.Combat.CritChance < 0 || c.Combat.CritChance > 1:
		return fmt.Errorf("combat.crit_chance must be within [0,1], got %g", c.Combat.CritChance)
	case c.Monster.Cap < 0:
		return fmt.Errorf("monster.cap must not be negative")
	case c.Monster.SpawnMaxRadius < c.Monster.SpawnMinRadius:
		return fmt.Errorf("monster spawn annulus [%g, %g] is invalid", c.Monster.SpawnMinRadius, c.Monster.SpawnMaxRadius)
	case c.Loot.MinGoldShards < 1 || c.Loot.MaxGoldShards < c.Loot.MinGoldShards:
		return fmt.Errorf("loot gold shard range [%d, %d] is invalid", c.Loot.MinGoldShards, c.Loot.MaxGoldShards)
	case c.World.ChunkSize <= 0:
		return fmt.Errorf("world.chunk_size must be positive")
	case c.World.ViewRadius < 0:
		return fmt.Errorf("world.view_radius must not be negative")
	case c.World.Resolution < 2:
		return fmt.Errorf("world.resolution must be at least 2, got %d", c.World.Resolution)
	}
	return nil
}
