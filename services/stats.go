package services

import (
	"database/sql"
	"math"

	"chipbook/database"
	"chipbook/models"

	"gorm.io/gorm"
)

// StatsSummary aggregates finished games, for one year or all time.
type StatsSummary struct {
	Year                 *int     `json:"year,omitempty"`
	TotalGames           int64    `json:"total_games"`
	TotalPlayers         int64    `json:"total_players"`
	TotalBuyIn           int64    `json:"total_buy_in"`
	TotalDurationSeconds int64    `json:"total_duration_seconds"`
	BiggestPot           int64    `json:"biggest_pot"`
	BiggestPotGameID     *uint    `json:"biggest_pot_game_id,omitempty"`
	BestSingleGameROI    *float64 `json:"best_single_game_roi,omitempty"`
	BestROIPlayers       []string `json:"best_roi_players,omitempty"`
	TopMvpNames          []string `json:"top_mvp_names,omitempty"`
	TopMvpCount          int64    `json:"top_mvp_count"`
	TopHostNames         []string `json:"top_host_names,omitempty"`
	TopHostGames         int64    `json:"top_host_games"`
}

// PlayerStats is one row of the per-player table accompanying the summary.
type PlayerStats struct {
	UserID      int64    `json:"user_id"`
	Fullname    string   `json:"fullname"`
	GamesPlayed int64    `json:"games_played"`
	TotalBuyIn  int64    `json:"total_buy_in"`
	TotalBuyOut int64    `json:"total_buy_out"`
	Net         int64    `json:"net"`
	ROI         *float64 `json:"roi,omitempty"`
}

// GetStats builds the summary and per-player table over finished games.
// A nil year means all time.
func GetStats(year *int) (*StatsSummary, []PlayerStats, error) {
	db := database.DB
	summary := &StatsSummary{Year: year}

	args := []any{models.GameFinished}
	yearClause := ""
	if year != nil {
		yearClause = " AND EXTRACT(YEAR FROM games.created_at) = ?"
		args = append(args, *year)
	}

	row := db.Raw(`
		SELECT COUNT(DISTINCT games.id),
		       COUNT(DISTINCT records.user_id),
		       COALESCE(SUM(records.buy_in), 0)
		FROM games
		JOIN records ON records.game_id = games.id
		WHERE games.status = ?`+yearClause, args...).Row()
	if err := row.Scan(&summary.TotalGames, &summary.TotalPlayers, &summary.TotalBuyIn); err != nil {
		return nil, nil, err
	}

	row = db.Raw(`
		SELECT COALESCE(SUM(games.duration), 0)
		FROM games
		WHERE games.status = ?`+yearClause, args...).Row()
	if err := row.Scan(&summary.TotalDurationSeconds); err != nil {
		return nil, nil, err
	}

	var biggest struct {
		TotalPot int64
		ID       uint
	}
	err := db.Raw(`
		SELECT games.total_pot, games.id
		FROM games
		WHERE games.status = ?`+yearClause+`
		ORDER BY games.total_pot DESC, games.id ASC
		LIMIT 1`, args...).Scan(&biggest).Error
	if err != nil {
		return nil, nil, err
	}
	if biggest.ID != 0 {
		summary.BiggestPot = biggest.TotalPot
		summary.BiggestPotGameID = &biggest.ID
	}

	var bestROI sql.NullFloat64
	row = db.Raw(`
		SELECT MAX(records.roi)
		FROM records
		JOIN games ON games.id = records.game_id
		WHERE games.status = ? AND records.roi IS NOT NULL`+yearClause, args...).Row()
	if err := row.Scan(&bestROI); err != nil {
		return nil, nil, err
	}
	if bestROI.Valid {
		summary.BestSingleGameROI = &bestROI.Float64
		err = db.Raw(`
			SELECT DISTINCT users.fullname
			FROM users
			JOIN records ON records.user_id = users.id
			JOIN games ON games.id = records.game_id
			WHERE games.status = ? AND records.roi = ?`+yearClause+`
			ORDER BY users.fullname`,
			append([]any{models.GameFinished, bestROI.Float64}, args[1:]...)...).
			Scan(&summary.BestROIPlayers).Error
		if err != nil {
			return nil, nil, err
		}
	}

	summary.TopMvpNames, summary.TopMvpCount, err = topCounted(db.Raw(`
		SELECT users.fullname AS name, COUNT(games.id) AS cnt
		FROM users
		JOIN games ON games.mvp_id = users.id
		WHERE games.status = ? AND games.mvp_id IS NOT NULL`+yearClause+`
		GROUP BY users.id, users.fullname
		ORDER BY cnt DESC, users.fullname ASC`, args...))
	if err != nil {
		return nil, nil, err
	}

	summary.TopHostNames, summary.TopHostGames, err = topCounted(db.Raw(`
		SELECT users.fullname AS name, COUNT(games.id) AS cnt
		FROM users
		JOIN games ON games.host_id = users.id
		WHERE games.status = ?`+yearClause+`
		GROUP BY users.id, users.fullname
		ORDER BY cnt DESC, users.fullname ASC`, args...))
	if err != nil {
		return nil, nil, err
	}

	var players []PlayerStats
	err = db.Raw(`
		SELECT users.id AS user_id,
		       users.fullname,
		       COUNT(records.id) AS games_played,
		       COALESCE(SUM(records.buy_in), 0) AS total_buy_in,
		       COALESCE(SUM(records.buy_out), 0) AS total_buy_out
		FROM users
		JOIN records ON records.user_id = users.id
		JOIN games ON games.id = records.game_id
		WHERE games.status = ?`+yearClause+`
		GROUP BY users.id, users.fullname
		ORDER BY users.fullname`, args...).Scan(&players).Error
	if err != nil {
		return nil, nil, err
	}
	for i := range players {
		p := &players[i]
		p.Net = p.TotalBuyOut - p.TotalBuyIn
		if p.TotalBuyIn > 0 {
			roi := math.Round(float64(p.Net)/float64(p.TotalBuyIn)*100*100) / 100
			p.ROI = &roi
		}
	}

	return summary, players, nil
}

type namedCount struct {
	Name string
	Cnt  int64
}

// topCounted collects every name tied for the highest count of a ranking
// query ordered count-descending.
func topCounted(q *gorm.DB) ([]string, int64, error) {
	var rows []namedCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}
	top := rows[0].Cnt
	var names []string
	for _, r := range rows {
		if r.Cnt == top {
			names = append(names, r.Name)
		}
	}
	return names, top, nil
}
