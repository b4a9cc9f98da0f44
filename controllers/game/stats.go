package game

import (
	"strconv"

	"chipbook/helpers"
	"chipbook/services"

	"github.com/gofiber/fiber/v2"
)

// Stats returns the summary and per-player table over finished games.
// An optional year query parameter narrows the window to that year.
func Stats(c *fiber.Ctx) error {
	var year *int
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 || y > 2200 {
			return helpers.JSONError(c, "INVALID_YEAR")
		}
		year = &y
	}

	summary, players, err := services.GetStats(year)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_BUILD_STATS")
	}

	return helpers.JSONSuccess(c, "Stats built", fiber.Map{
		"summary": summary,
		"players": players,
	})
}
