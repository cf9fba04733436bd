package handlers

import (
	"fairway-pickem/middleware"
	"fairway-pickem/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTournamentRoutes(app *fiber.App, tournamentService *services.TournamentService) {
	// Public schedule reads
	app.Get("/tournaments", tournamentService.GetSchedule)
	app.Get("/tournaments/current", tournamentService.GetCurrentTournament)
	app.Get("/tournaments/:id", tournamentService.GetTournamentByID)

	// Commissioner + result-sync routes, guarded by the service token
	admin := app.Group("/admin", middleware.ServiceAuthMiddleware())
	admin.Post("/tournaments", tournamentService.CreateTournament)
	admin.Patch("/tournaments/:id/status", tournamentService.UpdateStatus)
	admin.Post("/tournaments/:id/results", tournamentService.IngestResults)
}
