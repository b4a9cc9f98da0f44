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

type JoinRequest struct {
	UserID int64 `json:"user_id"`
}

// Join seats a registered player at an active game by creating their record.
// Seating the same player twice is a no-op.
func Join(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	var req JoinRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.UserID == 0 {
		return helpers.JSONError(c, "USER_ID_REQUIRED")
	}

	game, fail := activeGameByID(c, uint(id))
	if fail != nil {
		return fail(c)
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "PLAYER_NOT_FOUND")
	}

	var existing models.Record
	err = database.DB.Where("game_id = ? AND user_id = ?", game.ID, req.UserID).First(&existing).Error
	if err == nil {
		return helpers.JSONSuccess(c, "Player already seated", existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.JSONError(c, "FAILED_TO_CHECK_ROSTER")
	}

	record := models.Record{GameID: game.ID, UserID: req.UserID}
	if err := database.DB.Create(&record).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_SEAT_PLAYER")
	}

	slog.Info("player seated", "game_id", game.ID, "user_id", req.UserID)
	return helpers.JSONSuccess(c, "Player seated", record)
}

// activeGameByID loads a game and refuses when it is not ACTIVE; mutations of
// roster or funds only make sense while the table is open.
func activeGameByID(_ *fiber.Ctx, id uint) (*models.Game, func(*fiber.Ctx) error) {
	var game models.Game
	err := database.DB.First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, func(c *fiber.Ctx) error {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "GAME_NOT_FOUND")
		}
	}
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return helpers.JSONError(c, "FAILED_TO_LOAD_GAME")
		}
	}
	if game.Status != models.GameActive {
		return nil, func(c *fiber.Ctx) error {
			return helpers.JSONErrorStatus(c, fiber.StatusConflict, "GAME_NOT_ACTIVE")
		}
	}
	return &game, nil
}
