// Package event carries state-change notifications from the simulation to
// any number of observers (HUD, renderer bridge, debug tooling).
package event

import "github.com/kasuganosora/arpgcore/game/geom"

// Kind identifies an event type on the bus.
type Kind string

const (
	KindStatsChanged    Kind = "stats_changed"
	KindSkillUsed       Kind = "skill_used"
	KindCooldownUpdated Kind = "cooldown_updated"
	KindMonsterSpawned  Kind = "monster_spawned"
	KindMonsterDied     Kind = "monster_died"
	KindPlayerHit       Kind = "player_hit"
	KindPlayerDied      Kind = "player_died"
	KindPlayerRespawned Kind = "player_respawned"
	KindLevelUp         Kind = "level_up"
	KindItemCollected   Kind = "item_collected"
	KindChunkLoaded     Kind = "chunk_loaded"
	KindChunkDisposed   Kind = "chunk_disposed"
)

// Event is implemented by every concrete event type.
type Event interface {
	EventKind() Kind
}

// --- Concrete event types ---

type StatsChanged struct {
	ActorID    int64   `json:"actor_id"`
	HP         int     `json:"hp"`
	MaxHP      int     `json:"max_hp"`
	MP         int     `json:"mp"`
	MaxMP      int     `json:"max_mp"`
	Stamina    float64 `json:"stamina"`
	MaxStamina float64 `json:"max_stamina"`
	Level      int     `json:"level"`
	Exp        int     `json:"exp"`
	MaxExp     int     `json:"max_exp"`
	Gold       int     `json:"gold"`
}

func (StatsChanged) EventKind() Kind { return KindStatsChanged }

type TargetHit struct {
	TargetID int64 `json:"target_id"`
	Damage   int   `json:"damage"`
	Critical bool  `json:"critical"`
	Killed   bool  `json:"killed"`
}

type SkillUsed struct {
	ActorID     int64       `json:"actor_id"`
	SkillID     string      `json:"skill_id"`
	Hits        int         `json:"hits"`
	TotalDamage int         `json:"total_damage"`
	Targets     []TargetHit `json:"targets,omitempty"`
}

func (SkillUsed) EventKind() Kind { return KindSkillUsed }

// CooldownUpdated fires when a cooldown starts and when it runs out.
type CooldownUpdated struct {
	ActorID   int64   `json:"actor_id"`
	SkillID   string  `json:"skill_id"`
	Remaining float64 `json:"remaining"`
	Total     float64 `json:"total"`
}

func (CooldownUpdated) EventKind() Kind { return KindCooldownUpdated }

type MonsterSpawned struct {
	MonsterID int64     `json:"monster_id"`
	TierID    int       `json:"tier_id"`
	Name      string    `json:"name"`
	Position  geom.Vec2 `json:"position"`
}

func (MonsterSpawned) EventKind() Kind { return KindMonsterSpawned }

// MonsterDied fires once the death sequence has finished and the monster
// has left the pool.
type MonsterDied struct {
	MonsterID int64     `json:"monster_id"`
	TierID    int       `json:"tier_id"`
	Position  geom.Vec2 `json:"position"`
	Kills     int       `json:"kills"`
}

func (MonsterDied) EventKind() Kind { return KindMonsterDied }

type PlayerHit struct {
	PlayerID  int64 `json:"player_id"`
	MonsterID int64 `json:"monster_id"`
	Damage    int   `json:"damage"`
	Critical  bool  `json:"critical"`
	HPAfter   int   `json:"hp_after"`
}

func (PlayerHit) EventKind() Kind { return KindPlayerHit }

type PlayerDied struct {
	PlayerID int64     `json:"player_id"`
	Position geom.Vec2 `json:"position"`
}

func (PlayerDied) EventKind() Kind { return KindPlayerDied }

type PlayerRespawned struct {
	PlayerID int64     `json:"player_id"`
	Position geom.Vec2 `json:"position"`
}

func (PlayerRespawned) EventKind() Kind { return KindPlayerRespawned }

type LevelUp struct {
	PlayerID int64 `json:"player_id"`
	Levels   int   `json:"levels"`
	NewLevel int   `json:"new_level"`
}

func (LevelUp) EventKind() Kind { return KindLevelUp }

type ItemCollected struct {
	DropID int64  `json:"drop_id"`
	Reward string `json:"reward"`
	Amount int    `json:"amount"`
}

func (ItemCollected) EventKind() Kind { return KindItemCollected }

type ChunkLoaded struct {
	X              int `json:"x"`
	Z              int `json:"z"`
	VegetationSize int `json:"vegetation"`
}

func (ChunkLoaded) EventKind() Kind { return KindChunkLoaded }

type ChunkDisposed struct {
	X int `json:"x"`
	Z int `json:"z"`
}

func (ChunkDisposed) EventKind() Kind { return KindChunkDisposed }
