package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"chipbook/database"
	"chipbook/jobs"
	"chipbook/logging"
	"chipbook/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}
	logging.Setup()

	if err := database.Connect(); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	host := os.Getenv("HOST")
	port := os.Getenv("PORT")

	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3000"
	}

	app := fiber.New()
	routes.Setup(app)
	jobs.StartStaleDebtScheduler()

	addr := fmt.Sprintf("%s:%s", host, port)
	slog.Info("server running", "addr", addr)

	go func() {
		if err := app.Listen(addr); err != nil {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	slog.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited cleanly")
}
