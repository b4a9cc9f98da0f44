package game

import (
	"errors"

	"chipbook/helpers"
	"chipbook/services"
	"chipbook/settlement"

	"github.com/gofiber/fiber/v2"
)

// Finalize settles an active game. The heavy lifting lives in the service
// layer; this handler only maps refusals onto HTTP statuses so the caller
// can tell a fixable table state from a broken request.
func Finalize(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	res, err := services.FinalizeGame(uint(id))
	if err != nil {
		return finalizeError(c, err)
	}

	return helpers.JSONSuccess(c, "Game finalized", fiber.Map{
		"game":    res.Game,
		"records": res.Records,
		"debts":   res.Debts,
		"mvp":     res.MVP,
		"mvp_roi": res.MvpROI,
		"ref_id":  res.RefID,
	})
}

// finalizeError maps every refusal FinalizeGame can produce onto a specific
// envelope; refusals caused by table state carry the details the operator
// needs to fix it.
func finalizeError(c *fiber.Ctx, err error) error {
	var remaining *services.PlayersRemainingError
	if errors.As(err, &remaining) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "PLAYERS_STILL_SEATED",
			"players": remaining.Names,
		})
	}

	var incomplete *settlement.IncompletePlayersError
	if errors.As(err, &incomplete) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":  false,
			"message":  "INCOMPLETE_PLAYERS",
			"user_ids": incomplete.UserIDs,
		})
	}

	var mismatch *settlement.BalanceMismatchError
	if errors.As(err, &mismatch) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "POT_MISMATCH",
			"pot":     mismatch.Pot,
			"delta":   mismatch.Delta,
		})
	}

	switch {
	case errors.Is(err, services.ErrNoActiveGame):
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "GAME_NOT_ACTIVE")
	case errors.Is(err, services.ErrNoMvpFound):
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "NO_MVP_FOUND")
	default:
		return helpers.JSONError(c, "FAILED_TO_FINALIZE_GAME")
	}
}
