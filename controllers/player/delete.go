package player

import (
	"errors"

	"chipbook/helpers"
	"chipbook/services"

	"github.com/gofiber/fiber/v2"
)

// Delete removes a player and rebuilds every finished game they touched.
// Destructive: records, debts and the player row go in one transaction.
func Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_PLAYER_ID")
	}

	result, err := services.DeletePlayer(int64(id))
	switch {
	case errors.Is(err, services.ErrPlayerNotFound):
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "PLAYER_NOT_FOUND")
	case errors.Is(err, services.ErrPlayerInActiveGame):
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "PLAYER_IN_ACTIVE_GAME")
	case err != nil:
		return helpers.JSONError(c, "FAILED_TO_DELETE_PLAYER")
	}

	return helpers.JSONSuccess(c, "Player deleted", result)
}
