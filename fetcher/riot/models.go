package riot

// LeagueEntry is a single entry of a league listing.
// Fields beyond puuid, tier and league points are kept for completeness.
type LeagueEntry struct {
	FreshBlood   bool    `json:"freshBlood"`
	HotStreak    bool    `json:"hotStreak"`
	Inactive     bool    `json:"inactive"`
	LeaguePoints int     `json:"leaguePoints"`
	Losses       int     `json:"losses"`
	Puuid        string  `json:"puuid"`
	QueueType    *string `json:"queueType,omitempty"`
	Rank         *string `json:"rank,omitempty"`
	SummonerName string  `json:"summonerName,omitempty"`
	Tier         *string `json:"tier,omitempty"`
	Veteran      bool    `json:"veteran"`
	Wins         int     `json:"wins"`
}

// HighEloLeague come in a very similar way.
// Only having some outer keys.
type HighEloLeague struct {
	LeagueId string        `json:"leagueId"`
	Name     string        `json:"name"`
	Queue    string        `json:"queue"`
	Tier     string        `json:"tier"`
	Entries  []LeagueEntry `json:"entries"`
}
