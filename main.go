package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fairway-pickem/handlers"
	"fairway-pickem/models"
	"fairway-pickem/services"
	"fairway-pickem/utils"
	"fairway-pickem/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	originList := strings.Split(allowedOrigins, ",")
	for i, origin := range originList {
		originList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(originList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-User-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	logoStore, err := utils.NewLogoStore()
	if err != nil {
		log.Fatal("failed to initialize logo storage:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Tournament{},
		&models.Team{},
		&models.Pick{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	scoringService := services.NewScoringService(db)
	tournamentService := services.NewTournamentService(db, scoringService)
	teamService := services.NewTeamService(db, logoStore)
	pickService := services.NewPickService(db, scoringService)
	standingsService := services.NewStandingsService(db, scoringService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Standings self-heal: totals are always a full recompute, so the
	// periodic pass costs little and corrects any interrupted ingestion.
	go workers.PollStandings(ctx, scoringService, 15*time.Minute)

	tournamentService.StartStatusScheduler()

	handlers.SetupTournamentRoutes(app, tournamentService)
	handlers.SetupLeagueRoutes(app, teamService, pickService, standingsService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)
	log.Println("Tournament status scheduler running (every 10m)")
	log.Println("Standings reconciliation running (every 15m)")

	<-ctx.Done()
	log.Println("Shutting down server...")
}
