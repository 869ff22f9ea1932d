package queuevalues

// Ranked queue names as used by the league endpoints.
const (
	RankedSolo = "RANKED_SOLO_5x5"
	RankedFlex = "RANKED_FLEX_SR"
)

var RankedQueueValue = map[int]string{
	420: RankedSolo,
	440: RankedFlex,
}

// IsRankedQueue verifies if the queue name is accepted by the league endpoints.
func IsRankedQueue(queue string) bool {
	for _, name := range RankedQueueValue {
		if name == queue {
			return true
		}
	}
	return false
}
