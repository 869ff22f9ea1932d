package filters

import "lolanalyzer/pkg/repositories"

// Query parameters for the player listing.
type PlayerListParams struct {
	Tier  string `form:"tier"`
	Limit int    `form:"limit" binding:"gte=0,lte=100"`
}

// AsFilter converts the query parameters to the repository filter.
func (q *PlayerListParams) AsFilter() *repositories.PlayerListFilter {
	return &repositories.PlayerListFilter{
		Tier:  q.Tier,
		Limit: q.Limit,
	}
}
