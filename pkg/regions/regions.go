package regions

// Simple package containing the region list.
// Create the types for clarity.
type (
	MainRegion string
	SubRegion  string
)

// List of regions.
var RegionList = map[MainRegion][]SubRegion{
	"AMERICAS": {"BR1", "LA1", "LA2", "NA1"},
	"EUROPE":   {"EUN1", "EUW1", "TR1", "ME1", "RU"},
	"ASIA":     {"KR", "JP1"},
	"SEA":      {"OC1", "SG2", "TW2", "VN2"},
}

// IsPlatform verifies if the sub region is a known platform.
func IsPlatform(region SubRegion) bool {
	for _, subRegions := range RegionList {
		for _, subRegion := range subRegions {
			if subRegion == region {
				return true
			}
		}
	}
	return false
}
