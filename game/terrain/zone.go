package terrain

import (
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/resource"
)

// ZoneTable resolves world positions to zones.
type ZoneTable struct {
	zones []*resource.Zone
}

func NewZoneTable(zones []*resource.Zone) *ZoneTable {
	t := &ZoneTable{}
	for _, z := range zones {
		if z != nil && z.Radius > 0 {
			t.zones = append(t.zones, z)
		}
	}
	return t
}

// At returns the smallest zone containing p, or nil outside every zone.
// Ties go to the zone declared first.
func (t *ZoneTable) At(p geom.Vec2) *resource.Zone {
	var best *resource.Zone
	for _, z := range t.zones {
		c := geom.V(z.CenterX, z.CenterZ)
		if p.DistSq(c) > z.Radius*z.Radius {
			continue
		}
		if best == nil || z.Radius < best.Radius {
			best = z
		}
	}
	return best
}

// Unlocked reports whether a player of level with kills may enter z.
// A nil zone (the wilds) is always open.
func (t *ZoneTable) Unlocked(z *resource.Zone, level, kills int) bool {
	if z == nil {
		return true
	}
	return level >= z.MinLevel && kills >= z.RequiredKills
}

func (t *ZoneTable) All() []*resource.Zone {
	out := make([]*resource.Zone, len(t.zones))
	copy(out, t.zones)
	return out
}
