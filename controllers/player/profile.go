package player

import (
	"chipbook/database"
	"chipbook/helpers"
	"chipbook/models"

	"github.com/gofiber/fiber/v2"
)

// Profile returns a player together with their lifetime table figures.
func Profile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_PLAYER_ID")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "PLAYER_NOT_FOUND")
	}

	var hosted, mvpCount int64
	if err := database.DB.Model(&models.Game{}).Where("host_id = ?", id).Count(&hosted).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}
	if err := database.DB.Model(&models.Game{}).Where("mvp_id = ?", id).Count(&mvpCount).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}

	var totals struct {
		TotalBuyIn  int64
		TotalBuyOut int64
	}
	err = database.DB.Model(&models.Record{}).
		Select("COALESCE(SUM(buy_in), 0) AS total_buy_in, COALESCE(SUM(buy_out), 0) AS total_buy_out").
		Where("user_id = ?", id).
		Scan(&totals).Error
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}

	return helpers.JSONSuccess(c, "Player profile", fiber.Map{
		"player":        user,
		"games_hosted":  hosted,
		"mvp_count":     mvpCount,
		"total_buy_in":  totals.TotalBuyIn,
		"total_buy_out": totals.TotalBuyOut,
		"net":           totals.TotalBuyOut - totals.TotalBuyIn,
	})
}
