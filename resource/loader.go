package resource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrInvalidContent is wrapped by every content validation failure.
var ErrInvalidContent = errors.New("resource: invalid content")

// ---- Content Data Structures ----

// SkillKind classifies a skill for auto-battle priority and resolution.
type SkillKind string

const (
	SkillBasic    SkillKind = "basic"
	SkillSingle   SkillKind = "single"
	SkillAOE      SkillKind = "aoe"
	SkillUltimate SkillKind = "ultimate"
	SkillUtility  SkillKind = "utility" // non-damaging, e.g. dodge
)

// Skill is an immutable skill definition shared by every cast.
type Skill struct {
	ID               string    `yaml:"id"`
	Name             string    `yaml:"name"`
	Kind             SkillKind `yaml:"kind"`
	Cooldown         float64   `yaml:"cooldown"` // seconds
	MPCost           int       `yaml:"mp_cost"`
	DamageMultiplier float64   `yaml:"damage_multiplier"`
	Range            float64   `yaml:"range"`
	IsAOE            bool      `yaml:"aoe"`
	InvulnSeconds    float64   `yaml:"invuln_seconds"` // utility only; 0 = use combat.dodge_seconds
}

// IsUtility reports whether the skill skips target search entirely.
func (s *Skill) IsUtility() bool { return s.Kind == SkillUtility }

// MonsterTier is a spawnable monster template.
type MonsterTier struct {
	ID             int     `yaml:"id"`
	Name           string  `yaml:"name"`
	MaxHP          int     `yaml:"max_hp"`
	Atk            int     `yaml:"atk"`
	Def            int     `yaml:"def"`
	Speed          float64 `yaml:"speed"`
	DetectRange    float64 `yaml:"detect_range"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	Gold           int     `yaml:"gold"`
	Exp            int     `yaml:"exp"`
	Weight         float64 `yaml:"weight"`       // spawn roll weight once unlocked
	UnlockKills    int     `yaml:"unlock_kills"` // kill count before this tier may spawn
	Model          string  `yaml:"model"`        // logical asset name, optional
}

// Zone is a static world region used for terrain tint and unlock gating.
type Zone struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	CenterX       float64 `yaml:"center_x"`
	CenterZ       float64 `yaml:"center_z"`
	Radius        float64 `yaml:"radius"`
	MinLevel      int     `yaml:"min_level"`
	RequiredKills int     `yaml:"required_kills"`
	Color         string  `yaml:"color"` // x/image/colornames key
}

// VegetationKind is one decoration type the placer may pick.
type VegetationKind struct {
	Name      string  `yaml:"name"`
	Weight    float64 `yaml:"weight"`
	MinScale  float64 `yaml:"min_scale"`
	MaxScale  float64 `yaml:"max_scale"`
	MinHeight float64 `yaml:"min_height"` // terrain height band the kind grows in
	MaxHeight float64 `yaml:"max_height"`
}

// Octave is one (frequency, amplitude) band of the terrain height field.
type Octave struct {
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
}

type TerrainData struct {
	BaseHeight float64  `yaml:"base_height"`
	Octaves    []Octave `yaml:"octaves"`
}

// LevelGrowth is added to the player's maxima on each level-up.
type LevelGrowth struct {
	HP  int `yaml:"hp"`
	MP  int `yaml:"mp"`
	Atk int `yaml:"atk"`
	Def int `yaml:"def"`
}

type PlayerTemplate struct {
	Name       string      `yaml:"name"`
	MaxHP      int         `yaml:"max_hp"`
	MaxMP      int         `yaml:"max_mp"`
	MaxStamina float64     `yaml:"max_stamina"`
	Atk        int         `yaml:"atk"`
	Def        int         `yaml:"def"`
	MaxExp     int         `yaml:"max_exp"`
	Growth     LevelGrowth `yaml:"growth"`
	Skills     []string    `yaml:"skills"`
}

// Content is the full static data set the simulation runs on.
type Content struct {
	Player     PlayerTemplate
	Skills     []*Skill
	Tiers      []*MonsterTier
	Zones      []*Zone
	Vegetation []*VegetationKind
	Terrain    TerrainData
}

// SkillByID returns the Skill with the given ID, or nil.
func (c *Content) SkillByID(id string) *Skill {
	for _, s := range c.Skills {
		if s != nil && s.ID == id {
			return s
		}
	}
	return nil
}

// TierByID returns the MonsterTier with the given ID, or nil.
func (c *Content) TierByID(id int) *MonsterTier {
	for _, t := range c.Tiers {
		if t != nil && t.ID == id {
			return t
		}
	}
	return nil
}

// ---- Loader ----

// Loader reads YAML content tables from a directory. Files that are absent
// keep their built-in defaults.
type Loader struct {
	Dir    string
	logger *zap.Logger
}

// NewLoader creates a Loader for the given content directory.
func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{Dir: dir, logger: logger}
}

type skillsFile struct {
	Skills []*Skill `yaml:"skills"`
}

type monstersFile struct {
	Tiers []*MonsterTier `yaml:"tiers"`
}

type zonesFile struct {
	Zones []*Zone `yaml:"zones"`
}

type vegetationFile struct {
	Kinds []*VegetationKind `yaml:"kinds"`
}

// Load reads all content files, falling back to defaults per file, and
// validates the result.
func (l *Loader) Load() (*Content, error) {
	c := Defaults()

	var sf skillsFile
	if ok, err := l.loadYAML("skills.yaml", &sf); err != nil {
		return nil, err
	} else if ok {
		c.Skills = sf.Skills
	}

	var mf monstersFile
	if ok, err := l.loadYAML("monsters.yaml", &mf); err != nil {
		return nil, err
	} else if ok {
		c.Tiers = mf.Tiers
	}

	var zf zonesFile
	if ok, err := l.loadYAML("zones.yaml", &zf); err != nil {
		return nil, err
	} else if ok {
		c.Zones = zf.Zones
	}

	var vf vegetationFile
	if ok, err := l.loadYAML("vegetation.yaml", &vf); err != nil {
		return nil, err
	} else if ok {
		c.Vegetation = vf.Kinds
	}

	var td TerrainData
	if ok, err := l.loadYAML("terrain.yaml", &td); err != nil {
		return nil, err
	} else if ok {
		c.Terrain = td
	}

	var pt PlayerTemplate
	if ok, err := l.loadYAML("player.yaml", &pt); err != nil {
		return nil, err
	} else if ok {
		c.Player = pt
	}

	if err := Validate(c); err != nil {
		return nil, err
	}
	l.logger.Info("content loaded",
		zap.String("dir", l.Dir),
		zap.Int("skills", len(c.Skills)),
		zap.Int("tiers", len(c.Tiers)),
		zap.Int("zones", len(c.Zones)),
		zap.Int("vegetation", len(c.Vegetation)))
	return c, nil
}

// loadYAML decodes file into out. It reports false without error when the
// file does not exist.
func (l *Loader) loadYAML(file string, out any) (bool, error) {
	path := filepath.Join(l.Dir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("content file missing, using defaults", zap.String("path", path))
			return false, nil
		}
		return false, fmt.Errorf("resource: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("resource: parse %s: %w", path, err)
	}
	return true, nil
}

// Validate checks cross-table consistency of c.
func Validate(c *Content) error {
	if len(c.Skills) == 0 {
		return fmt.Errorf("%w: no skills defined", ErrInvalidContent)
	}
	seen := make(map[string]bool, len(c.Skills))
	for _, s := range c.Skills {
		if s == nil || s.ID == "" {
			return fmt.Errorf("%w: skill without id", ErrInvalidContent)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate skill %q", ErrInvalidContent, s.ID)
		}
		seen[s.ID] = true
		switch s.Kind {
		case SkillBasic, SkillSingle, SkillAOE, SkillUltimate, SkillUtility:
		default:
			return fmt.Errorf("%w: skill %q has unknown kind %q", ErrInvalidContent, s.ID, s.Kind)
		}
		if s.Cooldown < 0 || s.MPCost < 0 {
			return fmt.Errorf("%w: skill %q has negative cooldown or cost", ErrInvalidContent, s.ID)
		}
		if !s.IsUtility() && (s.DamageMultiplier <= 0 || s.Range <= 0) {
			return fmt.Errorf("%w: damaging skill %q needs positive multiplier and range", ErrInvalidContent, s.ID)
		}
	}
	for _, id := range c.Player.Skills {
		if !seen[id] {
			return fmt.Errorf("%w: player skill %q is not defined", ErrInvalidContent, id)
		}
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("%w: no monster tiers defined", ErrInvalidContent)
	}
	unlocked := false
	for _, t := range c.Tiers {
		if t == nil || t.MaxHP <= 0 {
			return fmt.Errorf("%w: monster tier needs positive max_hp", ErrInvalidContent)
		}
		if t.Weight <= 0 {
			return fmt.Errorf("%w: monster tier %q needs positive weight", ErrInvalidContent, t.Name)
		}
		if t.UnlockKills == 0 {
			unlocked = true
		}
	}
	if !unlocked {
		return fmt.Errorf("%w: at least one monster tier must be available at zero kills", ErrInvalidContent)
	}
	if len(c.Terrain.Octaves) == 0 {
		return fmt.Errorf("%w: terrain needs at least one octave", ErrInvalidContent)
	}
	if c.Player.MaxHP <= 0 || c.Player.MaxExp <= 0 {
		return fmt.Errorf("%w: player template needs positive max_hp and max_exp", ErrInvalidContent)
	}
	return nil
}
