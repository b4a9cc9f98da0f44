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

type CreateRequest struct {
	AdminID int64 `json:"admin_id"`
	HostID  int64 `json:"host_id"`
	Ratio   int64 `json:"ratio"`
}

// Create opens a new game. At most one game may be ACTIVE, so creation is
// refused with a conflict while another is running.
func Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.AdminID == 0 || req.HostID == 0 {
		return helpers.JSONError(c, "ADMIN_AND_HOST_REQUIRED")
	}
	if req.Ratio <= 0 {
		req.Ratio = 1
	}

	var existing models.Game
	err := database.DB.Where("status = ?", models.GameActive).Order("id DESC").First(&existing).Error
	if err == nil {
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "ACTIVE_GAME_EXISTS")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.JSONError(c, "FAILED_TO_CHECK_ACTIVE_GAME")
	}

	game := models.Game{
		Status:  models.GameActive,
		AdminID: req.AdminID,
		HostID:  req.HostID,
		Ratio:   req.Ratio,
	}
	if err := database.DB.Create(&game).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_GAME")
	}

	slog.Info("new game created", "game_id", game.ID, "host_id", game.HostID, "ratio", game.Ratio)
	return helpers.JSONSuccess(c, "Game created", game)
}
