package tiervalues

import (
	"slices"
	"strings"
)

var tierValues = map[string]int{
	"IRON":        0,
	"BRONZE":      10000,
	"SILVER":      20000,
	"GOLD":        30000,
	"PLATINUM":    40000,
	"EMERALD":     50000,
	"DIAMOND":     60000,
	"MASTER":      70000,
	"GRANDMASTER": 80000,
	"CHALLENGER":  90000,
}

var rankValues = map[string]int{
	"IV":  0,
	"III": 2500,
	"II":  5000,
	"I":   7500,
}

// Tiers without divisions.
var highElo = []string{"MASTER", "GRANDMASTER", "CHALLENGER"}

// Tiers split in divisions, lowest first.
var divisionTiers = []string{"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM", "EMERALD", "DIAMOND"}

// Divisions of a tier, lowest first.
var divisions = []string{"IV", "III", "II", "I"}

// Normalize a tier or rank entry.
func normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// IsValidTier verifies if the tier is one of the known ladder tiers.
func IsValidTier(tier string) bool {
	_, exists := tierValues[normalize(tier)]
	return exists
}

// IsHighElo verifies if the tier has no divisions.
func IsHighElo(tier string) bool {
	return slices.Contains(highElo, normalize(tier))
}

// DivisionTiers returns the tiers listed by division, lowest first.
func DivisionTiers() []string {
	return slices.Clone(divisionTiers)
}

// Divisions returns the divisions of a tier, lowest first.
func Divisions() []string {
	return slices.Clone(divisions)
}

// IsDivisionTier verifies if the tier is split in divisions.
func IsDivisionTier(tier string) bool {
	return slices.Contains(divisionTiers, normalize(tier))
}

// IsValidDivision verifies if the value is one of the four divisions.
func IsValidDivision(division string) bool {
	_, exists := rankValues[normalize(division)]
	return exists
}

// Calculate numeric rank from tier and division.
func CalculateRank(tier string, rank string, lp int) int {
	tier = normalize(tier)

	baseValue, exists := tierValues[tier]
	if !exists {
		return 0 // Unknown tier
	}

	divisionValue, exists := rankValues[normalize(rank)]
	if !exists {
		return baseValue + lp
	}

	// Don't add the division value if it's a highelo.
	if IsHighElo(tier) {
		divisionValue = 0
	}

	// Return the sum of the ratings and lp.
	return baseValue + divisionValue + lp
}
