package routes

import (
	"chipbook/controllers/debt"
	"chipbook/controllers/game"
	"chipbook/controllers/player"
	"chipbook/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	playerroutes := app.Group("/players")
	playerroutes.Post("/", player.Register)
	playerroutes.Get("/:id", player.Profile)
	playerroutes.Put("/:id/requisites", player.UpdateRequisites)
	playerroutes.Get("/:id/debts", player.Debts)
	playerroutes.Delete("/:id", middlewares.AdminAuth(), player.Delete)

	gameroutes := app.Group("/games")
	gameroutes.Get("/active", game.Active)
	gameroutes.Get("/:id", game.ByID)
	gameroutes.Get("/:id/report", game.Report)
	gameroutes.Get("/:id/remaining", game.Remaining)

	// every game mutation runs behind the operator signature
	gameadmin := app.Group("/games", middlewares.AdminAuth())
	gameadmin.Post("/", game.Create)
	gameadmin.Post("/:id/players", game.Join)
	gameadmin.Post("/:id/buyin", game.BuyIn)
	gameadmin.Post("/:id/buyout", game.BuyOut)
	gameadmin.Post("/:id/finalize", game.Finalize)
	gameadmin.Post("/:id/abort", game.Abort)

	debtroutes := app.Group("/debts")
	debtroutes.Get("/", debt.List)
	debtroutes.Post("/:id/paid", debt.MarkPaid)
	debtroutes.Post("/:id/confirm", debt.Confirm)
	debtroutes.Post("/:id/dispute", debt.Dispute)

	app.Get("/stats", game.Stats)
}
