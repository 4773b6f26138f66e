package skill

import (
	"fmt"

	"github.com/kasuganosora/arpgcore/resource"
)

// AutoPriority is the auto-battle order, highest impact first.
var AutoPriority = []resource.SkillKind{
	resource.SkillUltimate,
	resource.SkillAOE,
	resource.SkillSingle,
	resource.SkillBasic,
}

// Catalog is the read-only table of skill definitions. Definitions are
// shared by pointer across all casts and must not be mutated.
type Catalog struct {
	byID  map[string]*resource.Skill
	order []*resource.Skill
}

// NewCatalog builds a Catalog; duplicate ids are rejected.
func NewCatalog(skills []*resource.Skill) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*resource.Skill, len(skills))}
	for _, s := range skills {
		if s == nil {
			continue
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("skill: duplicate definition %q", s.ID)
		}
		cp := *s
		c.byID[s.ID] = &cp
		c.order = append(c.order, &cp)
	}
	return c, nil
}

// Get returns the definition for id.
func (c *Catalog) Get(id string) (*resource.Skill, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// All returns definitions in declaration order.
func (c *Catalog) All() []*resource.Skill {
	out := make([]*resource.Skill, len(c.order))
	copy(out, c.order)
	return out
}

// ByKind returns the definitions of one kind in declaration order.
func (c *Catalog) ByKind(kind resource.SkillKind) []*resource.Skill {
	var out []*resource.Skill
	for _, s := range c.order {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// Utility returns the first utility (dodge) skill, if any.
func (c *Catalog) Utility() (*resource.Skill, bool) {
	for _, s := range c.order {
		if s.IsUtility() {
			return s, true
		}
	}
	return nil, false
}

func (c *Catalog) Len() int { return len(c.order) }
