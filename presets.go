// presets.go: hierarchy-tier configuration presets and validation
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

import "fmt"

// ValidationResult reports construction-time validity plus non-fatal
// suggestions for a CacheConfig, in the style of the teacher's own
// config validator.
type ValidationResult struct {
	Valid       bool
	Error       error
	Suggestions []string
}

// ValidateConfig checks config for construction-time faults and flags
// shapes that will validate but are likely mis-sized (spec.md §7 covers
// only hard faults; these are advisory).
func ValidateConfig(config CacheConfig) ValidationResult {
	cfg := config.withDefaults()
	if err := cfg.validate(); err != nil {
		return ValidationResult{Valid: false, Error: err}
	}

	var suggestions []string
	if cfg.Policy == PseudoLRU && cfg.Ways == 1 {
		suggestions = append(suggestions, "PseudoLRU with ways=1 has no replacement decision to make; consider AvailableInvalidated or ways>=2")
	}
	if cfg.Lines&(cfg.Lines-1) != 0 {
		suggestions = append(suggestions, fmt.Sprintf("lines=%d is not a power of two; addressing still works but wastes index space", cfg.Lines))
	}
	if cfg.FillPorts > cfg.Ways {
		suggestions = append(suggestions, fmt.Sprintf("fill_ports=%d exceeds ways=%d; simultaneous allocators to the same line will contend for distinct ways", cfg.FillPorts, cfg.Ways))
	}

	return ValidationResult{Valid: true, Suggestions: suggestions}
}

// HierarchyTier selects a conventional cache-level sizing preset
// (spec.md's functional model is level-agnostic; these are convenience
// starting points, not requirements).
type HierarchyTier string

const (
	TierL1 HierarchyTier = "l1"
	TierL2 HierarchyTier = "l2"
	TierL3 HierarchyTier = "l3"
)

// Recommend returns a CacheConfig sized for a conventional hierarchy tier,
// in the style of the teacher's GetConfigRecommendation use-case switch.
func Recommend(tier HierarchyTier, addrWidth int) CacheConfig {
	switch tier {
	case TierL1:
		return CacheConfig{
			AddrWidth: addrWidth,
			Lines:     64,
			Ways:      4,
			Policy:    PseudoLRU,
			FillPorts: 1,
			ReadPorts: 2,
		}
	case TierL2:
		return CacheConfig{
			AddrWidth: addrWidth,
			Lines:     512,
			Ways:      8,
			Policy:    PseudoLRU,
			FillPorts: 1,
			ReadPorts: 1,
		}
	case TierL3:
		return CacheConfig{
			AddrWidth: addrWidth,
			Lines:     4096,
			Ways:      16,
			Policy:    AvailableInvalidated,
			FillPorts: 4,
			ReadPorts: 1,
		}
	default:
		return CacheConfig{AddrWidth: addrWidth}
	}
}
