package player

import (
	"chipbook/database"
	"chipbook/helpers"
	"chipbook/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

type RegisterRequest struct {
	ID       int64   `json:"id"`
	Fullname string  `json:"fullname"`
	Username *string `json:"username"`
}

// Register upserts a player by chat user id.
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.ID == 0 || req.Fullname == "" {
		return helpers.JSONError(c, "ID_AND_FULLNAME_REQUIRED")
	}

	user := models.User{
		ID:       req.ID,
		Fullname: req.Fullname,
		Username: req.Username,
	}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"fullname", "username"}),
	}).Create(&user).Error
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_REGISTER_PLAYER")
	}

	return helpers.JSONSuccess(c, "Player registered", user)
}

type RequisitesRequest struct {
	Bank        *string `json:"bank"`
	IBAN        *string `json:"iban"`
	NameSurname *string `json:"name_surname"`
}

// UpdateRequisites sets the banking details attached to debt notices.
func UpdateRequisites(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_PLAYER_ID")
	}

	var req RequisitesRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "PLAYER_NOT_FOUND")
	}

	user.Bank = req.Bank
	user.IBAN = req.IBAN
	user.NameSurname = req.NameSurname
	if err := database.DB.Save(&user).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_REQUISITES")
	}

	return helpers.JSONSuccess(c, "Requisites updated", user)
}
