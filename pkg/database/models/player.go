package models

import "time"

// Player is a row of the players table.
// Column names keep the camel case used by the rest of the project.
// Rank, wins and losses are only known for players found by the ladder sweep.
type Player struct {
	Puuid        string    `gorm:"column:puuid;primaryKey" json:"puuid"`
	PlayerName   string    `gorm:"column:playerName" json:"playerName"`
	Tier         string    `gorm:"column:tier" json:"tier"`
	Rank         *string   `gorm:"column:rank" json:"rank,omitempty"`
	LeaguePoints int       `gorm:"column:lp" json:"lp"`
	Wins         *int      `gorm:"column:wins" json:"wins,omitempty"`
	Losses       *int      `gorm:"column:losses" json:"losses,omitempty"`
	CreatedAt    time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

// TableName overrides the pluralized default.
func (Player) TableName() string {
	return "players"
}
