package game

import (
	"errors"

	"chipbook/database"
	"chipbook/helpers"
	"chipbook/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Active returns the currently running game with its roster.
func Active(c *fiber.Ctx) error {
	var game models.Game
	err := database.DB.
		Preload("Records").
		Where("status = ?", models.GameActive).
		Order("id DESC").
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "NO_ACTIVE_GAME")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_GAME")
	}

	return helpers.JSONSuccess(c, "Active game", game)
}

// ByID returns one game with records and debts.
func ByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	var game models.Game
	err = database.DB.Preload("Records").Preload("Debts").First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "GAME_NOT_FOUND")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_GAME")
	}

	return helpers.JSONSuccess(c, "Game", game)
}

// Report returns the finalization snapshot persisted on the game.
func Report(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	var game models.Game
	err = database.DB.First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "GAME_NOT_FOUND")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_GAME")
	}
	if len(game.Report) == 0 {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "GAME_NOT_FINALIZED")
	}

	c.Set("Content-Type", "application/json")
	return c.Send(game.Report)
}

// Remaining lists the players still without a buy-out, the gate an operator
// checks before asking for finalization.
func Remaining(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	var names []string
	err = database.DB.Model(&models.User{}).
		Joins("JOIN records ON records.user_id = users.id").
		Where("records.game_id = ? AND records.buy_out IS NULL", id).
		Order("users.fullname").
		Pluck("users.fullname", &names).Error
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_REMAINING")
	}

	return helpers.JSONSuccess(c, "Remaining players", fiber.Map{"remaining": names})
}
