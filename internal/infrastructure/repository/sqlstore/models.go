package sqlstore

import "time"

type teamTableModel struct {
	ID         string `db:"team_id"`
	Name       string `db:"team_name"`
	Slug       string `db:"team_slug"`
	Conference string `db:"conference"`
}

type playerTableModel struct {
	ID           string `db:"player_id"`
	Name         string `db:"player_name"`
	TeamID       string `db:"team_id"`
	IdentityKind string `db:"identity_kind"`
}

type gameTableModel struct {
	ID         string `db:"game_id"`
	Date       string `db:"date"`
	HomeTeam   string `db:"home_team"`
	AwayTeam   string `db:"away_team"`
	Status     string `db:"status"`
	SeasonYear int    `db:"season_year"`
}

type playerGameStatTableModel struct {
	PlayerID  string `db:"player_id"`
	GameID    string `db:"game_id"`
	Minutes   string `db:"minutes"`
	Points    int    `db:"pts"`
	Rebounds  int    `db:"reb"`
	Assists   int    `db:"ast"`
	Steals    int    `db:"stl"`
	Blocks    int    `db:"blk"`
	Turnovers int    `db:"tov"`
	FGM       int    `db:"fgm"`
	FGA       int    `db:"fga"`
	TPM       int    `db:"tpm"`
	TPA       int    `db:"tpa"`
	FTM       int    `db:"ftm"`
	FTA       int    `db:"fta"`
}

type gameLogRow struct {
	GameID    string `db:"game_id"`
	Date      string `db:"date"`
	HomeTeam  string `db:"home_team"`
	AwayTeam  string `db:"away_team"`
	PlayerID  string `db:"player_id"`
	Minutes   string `db:"minutes"`
	Points    int    `db:"pts"`
	Rebounds  int    `db:"reb"`
	Assists   int    `db:"ast"`
	Steals    int    `db:"stl"`
	Blocks    int    `db:"blk"`
	Turnovers int    `db:"tov"`
	FGM       int    `db:"fgm"`
	FGA       int    `db:"fga"`
	TPM       int    `db:"tpm"`
	TPA       int    `db:"tpa"`
	FTM       int    `db:"ftm"`
	FTA       int    `db:"fta"`
}

type seasonAverageRow struct {
	PlayerID    string  `db:"player_id"`
	PlayerName  string  `db:"player_name"`
	TeamID      string  `db:"team_id"`
	TeamName    string  `db:"team_name"`
	GamesPlayed int     `db:"games_played"`
	PPG         float64 `db:"ppg"`
	RPG         float64 `db:"rpg"`
	APG         float64 `db:"apg"`
	SPG         float64 `db:"spg"`
	BPG         float64 `db:"bpg"`
	TOV         float64 `db:"tov"`
}

type rawPayloadTableModel struct {
	Source      string    `db:"source"`
	EntityType  string    `db:"entity_type"`
	EntityKey   string    `db:"entity_key"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	IngestedAt  time.Time `db:"ingested_at"`
}
