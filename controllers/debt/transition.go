package debt

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chipbook/database"
	"chipbook/helpers"
	"chipbook/models"
	"chipbook/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MarkPaid records the debtor's claim that payment was sent. The debt stays
// open until the creditor confirms; marking an already-confirmed debt is a
// no-op so a stale retry cannot reopen anything.
func MarkPaid(c *fiber.Ctx) error {
	debt, fail := loadDebt(c)
	if fail != nil {
		return fail(c)
	}

	if debt.State() == models.DebtConfirmed {
		return helpers.JSONSuccess(c, "Debt already confirmed", viewOf(debt))
	}
	if debt.State() == models.DebtMarkedPaid {
		return helpers.JSONSuccess(c, "Debt already marked as paid", viewOf(debt))
	}

	debt.MarkPaid()
	err := database.DB.Model(debt).
		Update("is_paid", true).Error
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_DEBT")
	}

	slog.Info("debt marked paid", "debt_id", debt.ID, "game_id", debt.GameID)
	if _, err := services.NotifyPlayer(debt.CreditorID, fmt.Sprintf(
		"Game %02d, debt #%d was marked as paid. Confirm once the money arrives, or dispute it.",
		debt.GameID, debt.ID,
	)); err != nil {
		slog.Error("creditor notification failed", "debt_id", debt.ID, "error", err)
	}

	return helpers.JSONSuccess(c, "Debt marked as paid", viewOf(debt))
}

// Confirm records the creditor's confirmation of receipt and closes the debt.
// Confirming again returns the already-closed debt unchanged.
func Confirm(c *fiber.Ctx) error {
	debt, fail := loadDebt(c)
	if fail != nil {
		return fail(c)
	}

	if debt.State() == models.DebtConfirmed {
		return helpers.JSONSuccess(c, "Debt already confirmed", viewOf(debt))
	}

	now := time.Now().In(services.OperatorTZ())
	debt.Confirm(now)
	err := database.DB.Model(debt).Updates(map[string]any{
		"is_paid": true,
		"paid_at": debt.PaidAt,
	}).Error
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_DEBT")
	}

	slog.Info("debt confirmed", "debt_id", debt.ID, "game_id", debt.GameID)
	if _, err := services.NotifyPlayer(debt.DebtorID, fmt.Sprintf(
		"Game %02d, debt #%d was confirmed. You are settled up.",
		debt.GameID, debt.ID,
	)); err != nil {
		slog.Error("debtor notification failed", "debt_id", debt.ID, "error", err)
	}

	return helpers.JSONSuccess(c, "Debt confirmed", viewOf(debt))
}

// Dispute records the creditor rejecting a mark-as-paid claim. The debt
// reopens and the debtor is told to sort it out.
func Dispute(c *fiber.Ctx) error {
	debt, fail := loadDebt(c)
	if fail != nil {
		return fail(c)
	}

	if debt.State() == models.DebtConfirmed {
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "DEBT_ALREADY_CONFIRMED")
	}
	if debt.State() == models.DebtUnpaid {
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "DEBT_NOT_MARKED_PAID")
	}

	now := time.Now().In(services.OperatorTZ())
	debt.Dispute(now)
	err := database.DB.Model(debt).Updates(map[string]any{
		"is_paid": false,
		"paid_at": debt.PaidAt,
	}).Error
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_DEBT")
	}

	slog.Info("debt disputed", "debt_id", debt.ID, "game_id", debt.GameID)
	if _, err := services.NotifyPlayer(debt.DebtorID, fmt.Sprintf(
		"Game %02d, debt #%d: the creditor disputes your payment. Please check and try again.",
		debt.GameID, debt.ID,
	)); err != nil {
		slog.Error("debtor notification failed", "debt_id", debt.ID, "error", err)
	}

	return helpers.JSONSuccess(c, "Debt disputed", viewOf(debt))
}

func loadDebt(c *fiber.Ctx) (*models.Debt, func(*fiber.Ctx) error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return helpers.JSONError(c, "INVALID_DEBT_ID")
		}
	}

	var debt models.Debt
	err = database.DB.First(&debt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, func(c *fiber.Ctx) error {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "DEBT_NOT_FOUND")
		}
	}
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return helpers.JSONError(c, "FAILED_TO_LOAD_DEBT")
		}
	}
	return &debt, nil
}

func viewOf(d *models.Debt) debtView {
	var ratio int64 = 1
	var game models.Game
	if err := database.DB.Select("ratio").First(&game, d.GameID).Error; err == nil {
		ratio = game.Ratio
	}
	return debtView{
		Debt:    *d,
		State:   d.State(),
		Display: helpers.DisplayAmount(d.Amount, ratio),
	}
}
