package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"chipbook/database"
	"chipbook/models"
	"chipbook/settlement"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FinalizeResult carries everything the post-commit notification fan-out
// needs, so it never has to touch the transaction again.
type FinalizeResult struct {
	Game    models.Game
	Records []models.Record
	Debts   []models.Debt
	MVP     models.User
	MvpROI  *float64
	RefID   string
}

// FinalizeGame settles an active game: validation, solving and persistence
// run inside one transaction, so a refusal at any step leaves the game ACTIVE
// and untouched. The status flip out of ACTIVE doubles as the single-writer
// guard: a concurrent finalize blocks on the row lock and then sees no ACTIVE
// game. Notifications are dispatched only after the transaction commits and
// never roll it back.
func FinalizeGame(gameID uint) (*FinalizeResult, error) {
	res := &FinalizeResult{}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.Game{}).
			Where("id = ? AND status = ?", gameID, models.GameActive).
			Update("status", models.GameFinished)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return ErrNoActiveGame
		}

		var game models.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			return err
		}

		// Upstream gate: every seated player must have a buy-out.
		var remaining []string
		err := tx.Model(&models.User{}).
			Joins("JOIN records ON records.user_id = users.id").
			Where("records.game_id = ? AND records.buy_out IS NULL", gameID).
			Order("users.fullname").
			Pluck("users.fullname", &remaining).Error
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			return &PlayersRemainingError{Names: remaining}
		}

		records, err := refreshNetAndROI(tx, gameID)
		if err != nil {
			return err
		}

		balances, err := settlement.AggregateAndValidate(toSettlementRecords(records))
		if err != nil {
			return err
		}

		refID := uuid.New().String()
		transfers := settlement.Equalize(balances, gameID)
		debts := make([]models.Debt, 0, len(transfers))
		for _, tr := range transfers {
			debts = append(debts, models.Debt{
				GameID:     tr.GameID,
				CreditorID: tr.CreditorID,
				DebtorID:   tr.DebtorID,
				Amount:     tr.Amount,
				RefID:      refID,
			})
		}
		if len(debts) > 0 {
			if err := tx.Create(&debts).Error; err != nil {
				return err
			}
		}

		mvp := pickMVP(records)
		if mvp == nil {
			return ErrNoMvpFound
		}
		var mvpUser models.User
		if err := tx.First(&mvpUser, "id = ?", mvp.UserID).Error; err != nil {
			return err
		}

		pot := potOf(records)
		duration := int64(time.Since(game.CreatedAt).Seconds())

		report := buildReport(&game, records, refID, pot, mvp)
		raw, err := json.Marshal(report)
		if err != nil {
			return err
		}

		if err := tx.Model(&game).Updates(map[string]any{
			"total_pot": pot,
			"mvp_id":    mvp.UserID,
			"duration":  duration,
			"report":    datatypes.JSON(raw),
		}).Error; err != nil {
			return err
		}

		userIDs := make([]int64, len(records))
		for i, r := range records {
			userIDs[i] = r.UserID
		}
		if len(userIDs) > 0 {
			err := tx.Model(&models.User{}).
				Where("id IN ?", userIDs).
				UpdateColumn("games_played", gorm.Expr("games_played + 1")).Error
			if err != nil {
				return err
			}
		}

		res.Game = game
		res.Game.Status = models.GameFinished
		res.Game.TotalPot = pot
		res.Records = records
		res.Debts = debts
		res.MVP = mvpUser
		res.MvpROI = mvp.ROI
		res.RefID = refID
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("game finalized",
		"game_id", gameID,
		"pot", res.Game.TotalPot,
		"debts", len(res.Debts),
		"mvp_id", res.MVP.ID,
		"ref_id", res.RefID,
	)

	// The ledger is authoritative once committed; players not hearing about
	// it is an operator problem, not a rollback.
	NotifySettlement(res)

	return res, nil
}
