package tables

import "github.com/joojungwoo/yakson/internal/core"

// Caps returns the per-category upper bound for each of the eight steps, in
// step order. Caps for each category sum to 100, so a fully trusted result
// can reach the top of the total-score range.
//
// call_to_action and visual are defined as not applicable to the
// product_itself category; their caps there are 0.
func Caps() map[core.AdType][core.NumSteps]int {
	productAd := [core.NumSteps]int{15, 15, 15, 10, 15, 10, 10, 10}
	return map[core.AdType][core.NumSteps]int{
		core.AdProductAd:     productAd,
		core.AdUnknown:       productAd,
		core.AdBrandAd:       {15, 20, 15, 10, 10, 10, 10, 10},
		core.AdProductItself: {20, 20, 20, 15, 15, 0, 0, 10},
	}
}

// Floors returns the per-category, per-tier minimum for each step, in step
// order. Floors never exceed their category's caps; the normalizer clamps to
// caps after flooring regardless.
//
// The official-channel and trusted-seller heuristics floor at the KnownMid
// row when no brand tier resolved.
func Floors() map[core.AdType]map[core.Tier][core.NumSteps]int {
	return map[core.AdType]map[core.Tier][core.NumSteps]int{
		core.AdProductItself: {
			core.TierTopCorp:  {15, 18, 15, 10, 10, 0, 0, 7},
			core.TierOTC:      {13, 15, 13, 9, 9, 0, 0, 6},
			core.TierKnownMid: {10, 12, 10, 7, 7, 0, 0, 5},
		},
		core.AdBrandAd: {
			core.TierTopCorp:  {12, 16, 12, 7, 7, 7, 7, 7},
			core.TierOTC:      {10, 14, 10, 6, 6, 6, 6, 6},
			core.TierKnownMid: {8, 10, 8, 5, 5, 5, 5, 5},
		},
		core.AdProductAd: {
			core.TierTopCorp:  {12, 12, 12, 7, 10, 7, 7, 7},
			core.TierOTC:      {10, 10, 10, 6, 9, 6, 6, 6},
			core.TierKnownMid: {8, 8, 8, 5, 7, 5, 5, 5},
		},
		core.AdUnknown: {
			core.TierTopCorp:  {12, 12, 12, 7, 10, 7, 7, 7},
			core.TierOTC:      {10, 10, 10, 6, 9, 6, 6, 6},
			core.TierKnownMid: {8, 8, 8, 5, 7, 5, 5, 5},
		},
	}
}
