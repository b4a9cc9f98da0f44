package game

import (
	"errors"
	"log/slog"

	"chipbook/database"
	"chipbook/helpers"
	"chipbook/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BuyInRequest struct {
	UserID int64 `json:"user_id"`
	Amount int64 `json:"amount"`
}

type BuyOutRequest struct {
	UserID int64 `json:"user_id"`
	Amount int64 `json:"amount"`
}

// BuyIn adds chips to a seated player's stack. Repeated buy-ins accumulate
// on top of the existing total.
func BuyIn(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	var req BuyInRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.UserID == 0 {
		return helpers.JSONError(c, "USER_ID_REQUIRED")
	}
	if req.Amount <= 0 {
		return helpers.JSONError(c, "AMOUNT_MUST_BE_POSITIVE")
	}

	game, fail := activeGameByID(c, uint(id))
	if fail != nil {
		return fail(c)
	}

	record, fail := seatedRecord(game.ID, req.UserID)
	if fail != nil {
		return fail(c)
	}

	result := database.DB.Model(&models.Record{}).
		Where("id = ?", record.ID).
		Update("buy_in", gorm.Expr("COALESCE(buy_in, 0) + ?", req.Amount))
	if result.Error != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_BUY_IN")
	}

	if err := database.DB.First(record, record.ID).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_RELOAD_RECORD")
	}

	slog.Info("buy-in added", "game_id", game.ID, "user_id", req.UserID, "amount", req.Amount)
	return helpers.JSONSuccess(c, "Buy-in recorded", record)
}

// BuyOut sets a seated player's cash-out to the given amount. Calling it
// again overwrites the previous value, so a miscounted stack can be fixed
// before the game is finalized.
func BuyOut(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	var req BuyOutRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.UserID == 0 {
		return helpers.JSONError(c, "USER_ID_REQUIRED")
	}
	if req.Amount < 0 {
		return helpers.JSONError(c, "AMOUNT_MUST_BE_NON_NEGATIVE")
	}

	game, fail := activeGameByID(c, uint(id))
	if fail != nil {
		return fail(c)
	}

	record, fail := seatedRecord(game.ID, req.UserID)
	if fail != nil {
		return fail(c)
	}

	if record.BuyIn == nil {
		return helpers.JSONError(c, "PLAYER_HAS_NO_BUY_IN")
	}

	if err := database.DB.Model(record).Update("buy_out", req.Amount).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_BUY_OUT")
	}

	if err := database.DB.First(record, record.ID).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_RELOAD_RECORD")
	}

	slog.Info("buy-out set", "game_id", game.ID, "user_id", req.UserID, "amount", req.Amount)
	return helpers.JSONSuccess(c, "Buy-out recorded", record)
}

func seatedRecord(gameID uint, userID int64) (*models.Record, func(*fiber.Ctx) error) {
	var record models.Record
	err := database.DB.Where("game_id = ? AND user_id = ?", gameID, userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, func(c *fiber.Ctx) error {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "PLAYER_NOT_SEATED")
		}
	}
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return helpers.JSONError(c, "FAILED_TO_LOAD_RECORD")
		}
	}
	return &record, nil
}
