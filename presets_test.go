// presets_test.go: tests for config validation and hierarchy-tier presets
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

import "testing"

func TestValidateConfig_FlagsAdvisorySuggestions(t *testing.T) {
	result := ValidateConfig(CacheConfig{Lines: 10, Ways: 1, Policy: PseudoLRU, FillPorts: 1})
	if !result.Valid {
		t.Fatalf("expected a valid-but-advised config, got error: %v", result.Error)
	}
	if len(result.Suggestions) == 0 {
		t.Fatalf("expected suggestions for PLRU ways=1 and non-power-of-two lines=10")
	}
}

func TestValidateConfig_PropagatesConstructionFault(t *testing.T) {
	result := ValidateConfig(CacheConfig{Lines: 1, Ways: 3, Policy: PseudoLRU})
	if result.Valid || result.Error != errWaysNotPowerOfTwo {
		t.Fatalf("got %+v, want invalid with errWaysNotPowerOfTwo", result)
	}
}

func TestRecommend_EachTierProducesAValidConfig(t *testing.T) {
	for _, tier := range []HierarchyTier{TierL1, TierL2, TierL3} {
		cfg := Recommend(tier, 32)
		result := ValidateConfig(cfg)
		if !result.Valid {
			t.Fatalf("tier %s produced invalid config %+v: %v", tier, cfg, result.Error)
		}
	}
}

func TestRecommend_TiersScaleUpInSize(t *testing.T) {
	l1 := Recommend(TierL1, 32)
	l2 := Recommend(TierL2, 32)
	l3 := Recommend(TierL3, 32)
	if !(l1.Lines < l2.Lines && l2.Lines < l3.Lines) {
		t.Fatalf("expected strictly increasing line counts across tiers: l1=%d l2=%d l3=%d", l1.Lines, l2.Lines, l3.Lines)
	}
}

func TestRecommend_UnknownTierYieldsBareAddrWidth(t *testing.T) {
	cfg := Recommend(HierarchyTier("bogus"), 40)
	if cfg.AddrWidth != 40 || cfg.Lines != 0 || cfg.Ways != 0 {
		t.Fatalf("unexpected fallback for unknown tier: %+v", cfg)
	}
}
