package player

import (
	"chipbook/database"
	"chipbook/helpers"
	"chipbook/models"

	"github.com/gofiber/fiber/v2"
)

type debtView struct {
	models.Debt
	State   models.DebtState `json:"state"`
	Display string           `json:"display_amount"`
}

// Debts lists a player's debts on both sides of the ledger, with display
// amounts already scaled by each game's ratio.
func Debts(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_PLAYER_ID")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "PLAYER_NOT_FOUND")
	}

	asDebtor, err := loadDebtViews(int64(id), "debtor_id")
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_DEBTS")
	}
	asCreditor, err := loadDebtViews(int64(id), "creditor_id")
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_DEBTS")
	}

	return helpers.JSONSuccess(c, "Player debts", fiber.Map{
		"owes": asDebtor,
		"owed": asCreditor,
	})
}

func loadDebtViews(userID int64, column string) ([]debtView, error) {
	var debts []models.Debt
	err := database.DB.Where(column+" = ?", userID).Order("created_at ASC").Find(&debts).Error
	if err != nil {
		return nil, err
	}

	views := make([]debtView, 0, len(debts))
	for _, d := range debts {
		var game models.Game
		if err := database.DB.First(&game, d.GameID).Error; err != nil {
			return nil, err
		}
		views = append(views, debtView{
			Debt:    d,
			State:   d.State(),
			Display: helpers.DisplayAmount(d.Amount, game.Ratio),
		})
	}
	return views, nil
}
