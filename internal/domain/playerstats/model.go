package playerstats

// Line is the canonical statistical line of one player in one game.
type Line struct {
	PlayerID  string
	GameID    string
	Minutes   string
	Points    int
	Rebounds  int
	Assists   int
	Steals    int
	Blocks    int
	Turnovers int
	FGM       int
	FGA       int
	TPM       int
	TPA       int
	FTM       int
	FTA       int
}

// SeasonAverage aggregates completed games of one player in one season.
type SeasonAverage struct {
	PlayerID    string
	PlayerName  string
	TeamID      string
	TeamName    string
	GamesPlayed int
	PPG         float64
	RPG         float64
	APG         float64
	SPG         float64
	BPG         float64
	TOV         float64
}

// GameLogEntry is one completed game line joined with its game row.
type GameLogEntry struct {
	GameID   string
	Date     string
	HomeTeam string
	AwayTeam string
	Line     Line
}

// Matchup renders "away @ home".
func (e GameLogEntry) Matchup() string {
	return e.AwayTeam + " @ " + e.HomeTeam
}

// DateOnly returns the YYYY-MM-DD prefix of the ISO date.
func (e GameLogEntry) DateOnly() string {
	if len(e.Date) >= 10 {
		return e.Date[:10]
	}
	return e.Date
}

// AveragesFilter narrows season average queries.
type AveragesFilter struct {
	SeasonYear int
	TeamID     string
	PlayerID   string
}
