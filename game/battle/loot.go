package battle

import (
	"math"
	"math/rand"
)

// RewardType is what a drop grants on pickup.
type RewardType int

const (
	RewardGold RewardType = iota
	RewardExp
	RewardHP
)

func (r RewardType) String() string {
	switch r {
	case RewardGold:
		return "gold"
	case RewardExp:
		return "exp"
	case RewardHP:
		return "hp"
	}
	return "unknown"
}

// DropResult is one entity to spawn from a kill.
type DropResult struct {
	Type   RewardType
	Amount int
}

// DropTable parameterises the kill reward roll.
type DropTable struct {
	MinGoldShards int
	MaxGoldShards int
	HPChance      float64
	HPAmount      int
}

// CalculateDrops rolls the drops for a kill worth gold and exp:
// 2–4 gold shards splitting gold, exactly one exp drop and an hp drop with
// probability HPChance.
func CalculateDrops(gold, exp int, table DropTable, rng *rand.Rand) []DropResult {
	results := make([]DropResult, 0, table.MaxGoldShards+2)

	shards := table.MinGoldShards
	if span := table.MaxGoldShards - table.MinGoldShards; span > 0 {
		shards += rng.Intn(span + 1)
	}
	for _, amount := range SplitGold(gold, shards) {
		results = append(results, DropResult{Type: RewardGold, Amount: amount})
	}

	results = append(results, DropResult{Type: RewardExp, Amount: exp})

	if table.HPAmount > 0 && rng.Float64() < table.HPChance {
		results = append(results, DropResult{Type: RewardHP, Amount: table.HPAmount})
	}
	return results
}

// SplitGold divides total into shards integer shares. The remainder of the
// division goes one coin at a time to the leading shards so the shares sum
// to total. A total smaller than shards yields one-coin shards only.
func SplitGold(total, shards int) []int {
	if total <= 0 || shards <= 0 {
		return nil
	}
	if shards > total {
		shards = total
	}
	each, rem := total/shards, total%shards
	out := make([]int, shards)
	for i := range out {
		out[i] = each
		if i < rem {
			out[i]++
		}
	}
	return out
}

// NextMaxExp grows the exp requirement by growth, always by at least one.
func NextMaxExp(maxExp int, growth float64) int {
	next := int(math.Floor(float64(maxExp) * growth))
	if next <= maxExp {
		next = maxExp + 1
	}
	return next
}
