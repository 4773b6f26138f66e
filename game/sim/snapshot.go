package sim

import (
	"sync"

	"github.com/kasuganosora/arpgcore/game/chunk"
	"github.com/kasuganosora/arpgcore/game/geom"
)

// PlayerView is the read-only player state in a Snapshot.
type PlayerView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Position   geom.Vec2 `json:"position"`
	Facing     float64   `json:"facing"`
	HP         int       `json:"hp"`
	MaxHP      int       `json:"max_hp"`
	MP         int       `json:"mp"`
	MaxMP      int       `json:"max_mp"`
	Stamina    float64   `json:"stamina"`
	MaxStamina float64   `json:"max_stamina"`
	Level      int       `json:"level"`
	Exp        int       `json:"exp"`
	MaxExp     int       `json:"max_exp"`
	Gold       int       `json:"gold"`
	Alive      bool      `json:"alive"`
	RespawnIn  float64   `json:"respawn_in,omitempty"`
}

type MonsterView struct {
	ID       int64     `json:"id"`
	Tier     string    `json:"tier"`
	State    string    `json:"state"`
	Position geom.Vec2 `json:"position"`
	HP       int       `json:"hp"`
	MaxHP    int       `json:"max_hp"`
}

type DropView struct {
	ID       int64     `json:"id"`
	Reward   string    `json:"reward"`
	Amount   int       `json:"amount"`
	Phase    string    `json:"phase"`
	Position geom.Vec2 `json:"position"`
}

// Snapshot is an immutable copy of one tick's state for readers outside
// the tick goroutine.
type Snapshot struct {
	SessionID  string        `json:"session_id"`
	Frame      uint64        `json:"frame"`
	Elapsed    float64       `json:"elapsed"`
	Zone       string        `json:"zone"`
	Kills      int           `json:"kills"`
	AutoBattle bool          `json:"auto_battle"`
	Player     PlayerView    `json:"player"`
	Monsters   []MonsterView `json:"monsters"`
	Drops      []DropView    `json:"drops"`
	Chunks     []chunk.Coord `json:"chunks"`
	Extent     float64       `json:"extent"` // side of the streamed square in world units
	ChunkSize  float64       `json:"chunk_size"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	p := s.Player
	snap := Snapshot{
		SessionID:  s.ID,
		Frame:      s.frame,
		Elapsed:    s.elapsed,
		Zone:       "wilds",
		Extent:     float64(2*s.cfg.World.ViewRadius+1) * s.cfg.World.ChunkSize,
		ChunkSize:  s.cfg.World.ChunkSize,
		Kills:      s.Pool.Kills(),
		AutoBattle: s.Combat.AutoBattle(),
		Player: PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Position:   p.Position(),
			Facing:     p.Facing(),
			HP:         p.Stats.HP,
			MaxHP:      p.Stats.MaxHP,
			MP:         p.Stats.MP,
			MaxMP:      p.Stats.MaxMP,
			Stamina:    p.Stats.Stamina,
			MaxStamina: p.Stats.MaxStamina,
			Level:      p.Stats.Level,
			Exp:        p.Stats.Exp,
			MaxExp:     p.Stats.MaxExp,
			Gold:       p.Stats.Gold,
			Alive:      p.Alive(),
			RespawnIn:  s.Combat.RespawnIn(),
		},
		Monsters: make([]MonsterView, 0, s.Pool.Len()),
		Drops:    make([]DropView, 0, s.Loot.Len()),
	}
	if s.zone != nil {
		snap.Zone = s.zone.Name
	}
	for _, m := range s.Pool.Monsters() {
		snap.Monsters = append(snap.Monsters, MonsterView{
			ID:       m.ID,
			Tier:     m.Tier.Name,
			State:    m.AI.State().String(),
			Position: m.Position(),
			HP:       m.Stats.HP,
			MaxHP:    m.Stats.MaxHP,
		})
	}
	for _, d := range s.Loot.Drops() {
		snap.Drops = append(snap.Drops, DropView{
			ID:       d.ID,
			Reward:   d.Reward.String(),
			Amount:   d.Amount,
			Phase:    d.Phase.String(),
			Position: d.Pos,
		})
	}
	for _, c := range s.Grid.Active() {
		snap.Chunks = append(snap.Chunks, c.Coord)
	}
	return snap
}

// SnapshotStore hands the latest Snapshot from the tick goroutine to
// concurrent readers.
type SnapshotStore struct {
	mu   sync.RWMutex
	snap Snapshot
	ok   bool
}

func NewSnapshotStore() *SnapshotStore { return &SnapshotStore{} }

func (st *SnapshotStore) Set(s Snapshot) {
	st.mu.Lock()
	st.snap, st.ok = s, true
	st.mu.Unlock()
}

// Latest returns the newest snapshot; false before the first tick.
func (st *SnapshotStore) Latest() (Snapshot, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snap, st.ok
}
