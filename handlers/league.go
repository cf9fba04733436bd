package handlers

import (
	"fairway-pickem/middleware"
	"fairway-pickem/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeagueRoutes(app *fiber.App, teamService *services.TeamService, pickService *services.PickService, standingsService *services.StandingsService) {
	// Public standings reads
	app.Get("/teams", teamService.GetAllTeams)
	app.Get("/teams/:id", teamService.GetTeamByID)
	app.Get("/standings", standingsService.GetStandings)
	app.Get("/standings/divisions", standingsService.GetDivisionStandings)
	app.Get("/standings/playoffs", standingsService.GetPlayoffBracket)

	// Authenticated routes: the auth layer in front of the service
	// forwards the caller identity as X-User-ID
	secured := app.Group("/", middleware.UserContextMiddleware())
	secured.Post("/teams", teamService.RegisterTeam)
	secured.Post("/picks", pickService.SubmitPick)
	secured.Get("/picks/mine", pickService.GetMyPicks)
	secured.Get("/picks/used-golfers", pickService.GetUsedGolfers)

	// Commissioner routes
	admin := app.Group("/admin", middleware.ServiceAuthMiddleware())
	admin.Patch("/teams/:id/payment", teamService.SetPaymentStatus)
	admin.Post("/teams/assign-divisions", teamService.AssignDivisions)
	admin.Post("/standings/recompute", standingsService.Recompute)
}
