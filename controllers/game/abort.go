package game

import (
	"log/slog"

	"chipbook/database"
	"chipbook/helpers"
	"chipbook/models"

	"github.com/gofiber/fiber/v2"
)

// Abort cancels an active game without settling it. Records stay on file so
// the operator can audit what was bought in, but no debts are ever produced.
func Abort(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	claim := database.DB.Model(&models.Game{}).
		Where("id = ? AND status = ?", uint(id), models.GameActive).
		Update("status", models.GameAborted)
	if claim.Error != nil {
		return helpers.JSONError(c, "FAILED_TO_ABORT_GAME")
	}
	if claim.RowsAffected == 0 {
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "GAME_NOT_ACTIVE")
	}

	slog.Info("game aborted", "game_id", id)
	return helpers.JSONSuccess(c, "Game aborted", fiber.Map{"game_id": id})
}
