package resource

// Defaults returns the built-in content used when a table is not provided
// on disk. Each call returns fresh values so callers may mutate them.
func Defaults() *Content {
	return &Content{
		Player: PlayerTemplate{
			Name:       "Wanderer",
			MaxHP:      400,
			MaxMP:      120,
			MaxStamina: 100,
			Atk:        45,
			Def:        20,
			MaxExp:     300,
			Growth:     LevelGrowth{HP: 40, MP: 10, Atk: 6, Def: 3},
			Skills:     []string{"basic_attack", "power_strike", "whirlwind", "meteor", "dodge"},
		},
		Skills: []*Skill{
			{ID: "basic_attack", Name: "Slash", Kind: SkillBasic, Cooldown: 0.6, DamageMultiplier: 1.0, Range: 3},
			{ID: "power_strike", Name: "Power Strike", Kind: SkillSingle, Cooldown: 3, MPCost: 10, DamageMultiplier: 2.2, Range: 4},
			{ID: "whirlwind", Name: "Whirlwind", Kind: SkillAOE, Cooldown: 6, MPCost: 20, DamageMultiplier: 1.5, Range: 5, IsAOE: true},
			{ID: "meteor", Name: "Meteor", Kind: SkillUltimate, Cooldown: 20, MPCost: 50, DamageMultiplier: 4.0, Range: 8, IsAOE: true},
			{ID: "dodge", Name: "Dodge", Kind: SkillUtility, Cooldown: 2, MPCost: 5},
		},
		Tiers: []*MonsterTier{
			{ID: 1, Name: "Slime", MaxHP: 200, Atk: 25, Def: 10, Speed: 3.5,
				DetectRange: 12, AttackRange: 2, AttackCooldown: 1.5, Gold: 12, Exp: 60, Weight: 6},
			{ID: 2, Name: "Orc", MaxHP: 450, Atk: 45, Def: 25, Speed: 4.5,
				DetectRange: 15, AttackRange: 2.5, AttackCooldown: 1.5, Gold: 30, Exp: 150, Weight: 3, UnlockKills: 10},
			{ID: 3, Name: "Golem", MaxHP: 1200, Atk: 80, Def: 60, Speed: 3,
				DetectRange: 10, AttackRange: 3, AttackCooldown: 2.2, Gold: 90, Exp: 400, Weight: 1, UnlockKills: 30,
				Model: "golem"},
		},
		Zones: []*Zone{
			{ID: "meadow", Name: "Sunlit Meadow", Radius: 200, MinLevel: 1, Color: "yellowgreen"},
			{ID: "forest", Name: "Old Forest", CenterX: 400, Radius: 250, MinLevel: 3, RequiredKills: 20, Color: "forestgreen"},
			{ID: "ashlands", Name: "Ashlands", CenterX: -500, CenterZ: 300, Radius: 300, MinLevel: 6, RequiredKills: 60, Color: "sienna"},
		},
		Vegetation: []*VegetationKind{
			{Name: "tree", Weight: 5, MinScale: 0.8, MaxScale: 1.4, MinHeight: -100, MaxHeight: 14},
			{Name: "bush", Weight: 4, MinScale: 0.6, MaxScale: 1.1, MinHeight: -100, MaxHeight: 16},
			{Name: "rock", Weight: 2, MinScale: 0.5, MaxScale: 1.8, MinHeight: -100, MaxHeight: 100},
			{Name: "flower", Weight: 3, MinScale: 0.4, MaxScale: 0.7, MinHeight: -100, MaxHeight: 8},
		},
		Terrain: TerrainData{
			Octaves: []Octave{
				{Frequency: 0.01, Amplitude: 12},
				{Frequency: 0.04, Amplitude: 4},
				{Frequency: 0.12, Amplitude: 1},
			},
		},
	}
}
