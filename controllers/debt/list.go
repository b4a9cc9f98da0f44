package debt

import (
	"chipbook/database"
	"chipbook/helpers"
	"chipbook/models"

	"github.com/gofiber/fiber/v2"
)

type debtView struct {
	models.Debt
	State   models.DebtState `json:"state"`
	Display string           `json:"display"`
}

// List returns debts, optionally filtered to one game or to open ones only.
func List(c *fiber.Ctx) error {
	q := database.DB.Model(&models.Debt{}).Order("debts.id")

	if c.Query("game_id") != "" {
		gameID := c.QueryInt("game_id")
		if gameID <= 0 {
			return helpers.JSONError(c, "INVALID_GAME_ID")
		}
		q = q.Where("debts.game_id = ?", gameID)
	}
	if c.QueryBool("open") {
		q = q.Where("debts.is_paid = ? OR debts.paid_at IS NULL", false)
	}

	var debts []models.Debt
	if err := q.Find(&debts).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_DEBTS")
	}

	ratios := map[uint]int64{}
	views := make([]debtView, 0, len(debts))
	for i := range debts {
		d := debts[i]
		ratio, ok := ratios[d.GameID]
		if !ok {
			var game models.Game
			if err := database.DB.Select("ratio").First(&game, d.GameID).Error; err != nil {
				return helpers.JSONError(c, "FAILED_TO_LOAD_GAME")
			}
			ratio = game.Ratio
			ratios[d.GameID] = ratio
		}
		views = append(views, debtView{
			Debt:    d,
			State:   d.State(),
			Display: helpers.DisplayAmount(d.Amount, ratio),
		})
	}

	return helpers.JSONSuccess(c, "Debts loaded", views)
}
