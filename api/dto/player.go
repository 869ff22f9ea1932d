package dto

import "time"

// PlayerEntry is a player returned by the API.
type PlayerEntry struct {
	Puuid        string    `json:"puuid"`
	PlayerName   string    `json:"playerName"`
	Tier         string    `json:"tier"`
	Rank         *string   `json:"rank,omitempty"`
	LeaguePoints int       `json:"lp"`
	Wins         *int      `json:"wins,omitempty"`
	Losses       *int      `json:"losses,omitempty"`
	NumericScore int       `json:"numericScore"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreatePlayer is the body of a player creation.
type CreatePlayer struct {
	Puuid        string `json:"puuid" binding:"required"`
	PlayerName   string `json:"playerName" binding:"required"`
	Tier         string `json:"tier" binding:"required"`
	LeaguePoints *int   `json:"lp" binding:"required,gte=0"`
}
