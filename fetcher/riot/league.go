package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"lolanalyzer/pkg/messages"
	queuevalues "lolanalyzer/pkg/riotvalues/queue"
	tiervalues "lolanalyzer/pkg/riotvalues/tier"
	"strings"
)

// GetChallengerLeague returns the challenger league of a given ranked queue.
func (c *Client) GetChallengerLeague(ctx context.Context, queue string) (*HighEloLeague, error) {
	return c.getHighEloLeague(ctx, "challengerleagues", queue)
}

// GetGrandmasterLeague returns the grandmaster league of a given ranked queue.
func (c *Client) GetGrandmasterLeague(ctx context.Context, queue string) (*HighEloLeague, error) {
	return c.getHighEloLeague(ctx, "grandmasterleagues", queue)
}

// GetMasterLeague returns the master league of a given ranked queue.
func (c *Client) GetMasterLeague(ctx context.Context, queue string) (*HighEloLeague, error) {
	return c.getHighEloLeague(ctx, "masterleagues", queue)
}

// Get a given high elo league page.
func (c *Client) getHighEloLeague(ctx context.Context, division string, queue string) (*HighEloLeague, error) {
	if !queuevalues.IsRankedQueue(queue) {
		return nil, fmt.Errorf("unknown ranked queue %q", queue)
	}

	resp, err := c.authGet(ctx, fmt.Sprintf("/lol/league/v4/%s/by-queue/%s", division, queue))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Parse the league entries.
	var league HighEloLeague
	if err := json.NewDecoder(resp.Body).Decode(&league); err != nil {
		return nil, fmt.Errorf("%s: %w", messages.FailedToParseMsg, err)
	}

	// For high elo we don't have the tier inside the entries array, so we set manually.
	for i := range league.Entries {
		if league.Entries[i].Tier == nil {
			league.Entries[i].Tier = &league.Tier
		}
		if league.Entries[i].QueueType == nil {
			league.Entries[i].QueueType = &queue
		}
	}

	return &league, nil
}

// GetLeagueEntries returns a page of a tier division, from IRON to DIAMOND.
// Pages start at 1, an empty page means the division has no more entries.
func (c *Client) GetLeagueEntries(ctx context.Context, queue, tier, division string, page int) ([]LeagueEntry, error) {
	if !queuevalues.IsRankedQueue(queue) {
		return nil, fmt.Errorf("unknown ranked queue %q", queue)
	}
	if !tiervalues.IsDivisionTier(tier) {
		return nil, fmt.Errorf("tier %q has no divisions", tier)
	}
	if !tiervalues.IsValidDivision(division) {
		return nil, fmt.Errorf("unknown division %q", division)
	}
	if page < 1 {
		page = 1
	}

	path := fmt.Sprintf("/lol/league/v4/entries/%s/%s/%s?page=%d",
		queue, strings.ToUpper(tier), strings.ToUpper(division), page)

	resp, err := c.authGet(ctx, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var entries []LeagueEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%s: %w", messages.FailedToParseMsg, err)
	}

	return entries, nil
}
