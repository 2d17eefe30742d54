package enums

import (
	"fmt"
	"strings"
)

// TierMode controls how a quantity is matched against bundle tiers.
type TierMode string

const (
	// TierModeRange matches the tier whose [min, max] range contains the quantity.
	TierModeRange TierMode = "range"
	// TierModeExact matches only tiers whose discrete quantity equals the quantity.
	TierModeExact TierMode = "exact"
)

var validTierModes = []TierMode{
	TierModeRange,
	TierModeExact,
}

func (m TierMode) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known tier mode.
func (m TierMode) IsValid() bool {
	for _, candidate := range validTierModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseTierMode converts the raw string to TierMode.
func ParseTierMode(value string) (TierMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validTierModes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tier mode %q", value)
}
