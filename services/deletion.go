package services

import (
	"encoding/json"
	"errors"
	"log/slog"

	"chipbook/database"
	"chipbook/models"
	"chipbook/settlement"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DeletionResult summarizes a destructive player removal for the operator.
type DeletionResult struct {
	PlayerID       int64  `json:"player_id"`
	PlayerName     string `json:"player_name"`
	DebtsRemoved   int    `json:"debts_removed"`
	RecordsRemoved int    `json:"records_removed"`
	HostReassigned []uint `json:"host_reassigned_games"`
	RebuiltGames   []uint `json:"rebuilt_games"`
}

// DeletePlayer removes a player and rebuilds every finished game they touched:
// their debts and records are deleted, hosted games are handed to the game
// admin, and each affected game gets recomputed balances, pot and MVP plus a
// fresh debt set from a clean solver run. Everything commits together or not
// at all. Refused while the player sits in the active game.
func DeletePlayer(playerID int64) (*DeletionResult, error) {
	res := &DeletionResult{PlayerID: playerID}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var player models.User
		if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}
		res.PlayerName = player.Fullname

		var active models.Game
		err := tx.Where("status = ?", models.GameActive).Order("id DESC").First(&active).Error
		switch {
		case err == nil:
			if active.HostID == playerID {
				return ErrPlayerInActiveGame
			}
			var seated int64
			if err := tx.Model(&models.Record{}).
				Where("game_id = ? AND user_id = ?", active.ID, playerID).
				Count(&seated).Error; err != nil {
				return err
			}
			if seated > 0 {
				return ErrPlayerInActiveGame
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// nothing active, removal is safe
		default:
			return err
		}

		var playedGameIDs []uint
		if err := tx.Model(&models.Record{}).
			Where("user_id = ?", playerID).
			Distinct().
			Pluck("game_id", &playedGameIDs).Error; err != nil {
			return err
		}
		var mvpGameIDs []uint
		if err := tx.Model(&models.Game{}).
			Where("mvp_id = ?", playerID).
			Pluck("id", &mvpGameIDs).Error; err != nil {
			return err
		}

		del := tx.Where("debtor_id = ? OR creditor_id = ?", playerID, playerID).Delete(&models.Debt{})
		if del.Error != nil {
			return del.Error
		}
		res.DebtsRemoved = int(del.RowsAffected)

		del = tx.Where("user_id = ?", playerID).Delete(&models.Record{})
		if del.Error != nil {
			return del.Error
		}
		res.RecordsRemoved = int(del.RowsAffected)

		// Hosted games pass to their admin before any rebuild, so the admin
		// becomes the bank absorbing residual balances.
		if err := tx.Model(&models.Game{}).
			Where("host_id = ?", playerID).
			Pluck("id", &res.HostReassigned).Error; err != nil {
			return err
		}
		if len(res.HostReassigned) > 0 {
			if err := tx.Model(&models.Game{}).
				Where("host_id = ?", playerID).
				Update("host_id", gorm.Expr("admin_id")).Error; err != nil {
				return err
			}
		}

		for _, gameID := range uniqueGameIDs(playedGameIDs, mvpGameIDs) {
			rebuilt, err := rebuildFinishedGame(tx, gameID)
			if err != nil {
				return err
			}
			if rebuilt {
				res.RebuiltGames = append(res.RebuiltGames, gameID)
			}
		}

		return tx.Delete(&models.User{}, "id = ?", playerID).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("player deleted",
		"player_id", res.PlayerID,
		"debts_removed", res.DebtsRemoved,
		"records_removed", res.RecordsRemoved,
		"rebuilt_games", res.RebuiltGames,
	)
	return res, nil
}

// rebuildFinishedGame re-derives a finished game from its remaining records:
// net/ROI per record, pot, MVP, report snapshot, and a full fresh debt set.
// The old debts are deleted wholesale; amounts are never patched in place.
// The host absorbs whatever imbalance the roster change left behind.
func rebuildFinishedGame(tx *gorm.DB, gameID uint) (bool, error) {
	var game models.Game
	if err := tx.First(&game, gameID).Error; err != nil {
		return false, err
	}
	if game.Status != models.GameFinished {
		return false, nil
	}

	if err := tx.Where("game_id = ?", gameID).Delete(&models.Debt{}).Error; err != nil {
		return false, err
	}

	records, err := refreshNetAndROI(tx, gameID)
	if err != nil {
		return false, err
	}

	refID := uuid.New().String()
	balances := settlement.AggregateWithBank(toSettlementRecords(records), game.HostID)
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
			return false, err
		}
	}

	pot := potOf(records)
	mvp := pickMVP(records)
	var mvpID *int64
	if mvp != nil {
		id := mvp.UserID
		mvpID = &id
	}

	report := buildReport(&game, records, refID, pot, mvp)
	raw, err := json.Marshal(report)
	if err != nil {
		return false, err
	}

	err = tx.Model(&game).Updates(map[string]any{
		"total_pot": pot,
		"mvp_id":    mvpID,
		"report":    datatypes.JSON(raw),
	}).Error
	if err != nil {
		return false, err
	}

	slog.Info("game rebuilt after roster change",
		"game_id", gameID,
		"pot", pot,
		"debts", len(debts),
		"ref_id", refID,
	)
	return true, nil
}

func uniqueGameIDs(groups ...[]uint) []uint {
	seen := make(map[uint]bool)
	var out []uint
	for _, group := range groups {
		for _, id := range group {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
