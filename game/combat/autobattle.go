package combat

import (
	"slices"

	"github.com/kasuganosora/arpgcore/game/ai"
	"github.com/kasuganosora/arpgcore/game/skill"
)

// autoBoard is the blackboard of one auto-battle decision.
type autoBoard struct {
	o      *Orchestrator
	chosen string
}

// newAutoTree builds the auto-battle policy:
//
//	selector
//	├── sequence: hp below emergency ratio, dodge ready -> dodge
//	└── first ready, affordable skill with a target in range,
//	    ultimate -> aoe -> single -> basic
func newAutoTree() *ai.BehaviorTree[*autoBoard] {
	return &ai.BehaviorTree[*autoBoard]{Root: ai.AnyOf(
		ai.AllOf(
			ai.If(func(b *autoBoard) bool {
				return b.o.player.Stats.HPRatio() < b.o.cfg.EmergencyHPRatio
			}),
			ai.Do(chooseDodge),
		),
		ai.Do(choosePriority),
	)}
}

func chooseDodge(b *autoBoard) ai.Status {
	def, ok := b.o.skills.Catalog().Utility()
	if !ok || !b.o.hasSkill(def.ID) || !b.o.skills.CanCast(b.o.player.ID, def.ID) {
		return ai.StatusFailure
	}
	b.chosen = def.ID
	return ai.StatusSuccess
}

func choosePriority(b *autoBoard) ai.Status {
	o := b.o
	for _, kind := range skill.AutoPriority {
		for _, def := range o.skills.Catalog().ByKind(kind) {
			if !o.hasSkill(def.ID) {
				continue
			}
			if !o.skills.CanCast(o.player.ID, def.ID) {
				continue
			}
			if !o.skills.HasTargetInRange(o.player.ID, def.ID) {
				continue
			}
			b.chosen = def.ID
			return ai.StatusSuccess
		}
	}
	return ai.StatusFailure
}

// ChooseAutoSkill returns the skill auto-battle would cast now, or "" when
// nothing qualifies.
func (o *Orchestrator) ChooseAutoSkill() string {
	if !o.player.Alive() {
		return ""
	}
	b := &autoBoard{o: o}
	if o.autoTree.Tick(b) != ai.StatusSuccess {
		return ""
	}
	return b.chosen
}

func (o *Orchestrator) hasSkill(id string) bool {
	return slices.Contains(o.player.Skills(), id)
}
