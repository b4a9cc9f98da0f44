package services

import (
	"time"

	"chipbook/models"
	"chipbook/settlement"

	"gorm.io/gorm"
)

// refreshNetAndROI recomputes the derived columns of every record in a game
// and returns the refreshed records ordered by user id.
func refreshNetAndROI(tx *gorm.DB, gameID uint) ([]models.Record, error) {
	var records []models.Record
	if err := tx.Where("game_id = ?", gameID).Order("user_id").Find(&records).Error; err != nil {
		return nil, err
	}
	for i := range records {
		r := &records[i]
		r.NetProfit = r.Net()
		r.ROI = settlement.ROI(r.BuyIn, r.BuyOut)
		updates := map[string]any{"net_profit": r.NetProfit, "roi": r.ROI}
		if err := tx.Model(&models.Record{}).Where("id = ?", r.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return records, nil
}

// potOf is the total pot: the sum of entered buy-ins.
func potOf(records []models.Record) int64 {
	var pot int64
	for _, r := range records {
		if r.BuyIn != nil {
			pot += *r.BuyIn
		}
	}
	return pot
}

// pickMVP selects the record with the highest ROI, lower user id breaking
// ties. Nil when no record has an ROI.
func pickMVP(records []models.Record) *models.Record {
	var mvp *models.Record
	for i := range records {
		r := &records[i]
		if r.ROI == nil {
			continue
		}
		if mvp == nil || *r.ROI > *mvp.ROI || (*r.ROI == *mvp.ROI && r.UserID < mvp.UserID) {
			mvp = r
		}
	}
	return mvp
}

func toSettlementRecords(records []models.Record) []settlement.Record {
	out := make([]settlement.Record, len(records))
	for i, r := range records {
		out[i] = settlement.Record{UserID: r.UserID, BuyIn: r.BuyIn, BuyOut: r.BuyOut}
	}
	return out
}

// GameReport is the snapshot persisted on the game at finalization and
// rewritten on roster rebuilds.
type GameReport struct {
	GameID      uint           `json:"game_id"`
	RefID       string         `json:"ref_id"`
	Pot         int64          `json:"pot"`
	Ratio       int64          `json:"ratio"`
	MvpID       *int64         `json:"mvp_id,omitempty"`
	MvpROI      *float64       `json:"mvp_roi,omitempty"`
	Players     []PlayerResult `json:"players"`
	GeneratedAt time.Time      `json:"generated_at"`
}

type PlayerResult struct {
	UserID  int64    `json:"user_id"`
	BuyIn   int64    `json:"buy_in"`
	BuyOut  int64    `json:"buy_out"`
	Net     int64    `json:"net"`
	ROI     *float64 `json:"roi,omitempty"`
}

func buildReport(game *models.Game, records []models.Record, refID string, pot int64, mvp *models.Record) GameReport {
	report := GameReport{
		GameID:      game.ID,
		RefID:       refID,
		Pot:         pot,
		Ratio:       game.Ratio,
		GeneratedAt: time.Now().In(OperatorTZ()),
	}
	if mvp != nil {
		id := mvp.UserID
		report.MvpID = &id
		report.MvpROI = mvp.ROI
	}
	for _, r := range records {
		result := PlayerResult{UserID: r.UserID, ROI: r.ROI}
		if r.BuyIn != nil {
			result.BuyIn = *r.BuyIn
		}
		if r.BuyOut != nil {
			result.BuyOut = *r.BuyOut
		}
		if net := r.Net(); net != nil {
			result.Net = *net
		}
		report.Players = append(report.Players, result)
	}
	return report
}
