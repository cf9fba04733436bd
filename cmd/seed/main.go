// Seeds the season: the full tournament schedule, and optionally a set
// of demo teams with first-week picks (SEED_DEMO=1).
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"fairway-pickem/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedTournament struct {
	ID      string
	Name    string
	Dates   string
	Start   string // YYYY-MM-DD, first tee day
	Purse   float64
	Type    models.TournamentType
	WeekNum int
}

var schedule = []seedTournament{
	{"pga-2026-01", "Sony Open in Hawaii", "Jan 15-18", "2026-01-15", 8500000, models.TypePGATour, 1},
	{"pga-2026-02", "The American Express", "Jan 22-25", "2026-01-22", 8400000, models.TypePGATour, 2},
	{"pga-2026-03", "Farmers Insurance Open", "Jan 28-31", "2026-01-28", 9000000, models.TypePGATour, 3},
	{"pga-2026-04", "WM Phoenix Open", "Feb 5-8", "2026-02-05", 9000000, models.TypePGATour, 4},
	{"pga-2026-05", "AT&T Pebble Beach Pro-Am", "Feb 12-15", "2026-02-12", 20000000, models.TypeSignature, 5},
	{"pga-2026-06", "The Genesis Invitational", "Feb 19-22", "2026-02-19", 20000000, models.TypeSignature, 6},
	{"pga-2026-07", "Cognizant Classic in The Palm Beaches", "Feb 26-Mar 1", "2026-02-26", 9000000, models.TypePGATour, 7},
	{"pga-2026-08", "Arnold Palmer Invitational", "Mar 5-8", "2026-03-05", 20000000, models.TypeSignature, 8},
	{"pga-2026-09", "THE PLAYERS Championship", "Mar 12-15", "2026-03-12", 25000000, models.TypePGATour, 9},
	{"pga-2026-10", "Valspar Championship", "Mar 19-22", "2026-03-19", 8500000, models.TypePGATour, 10},
	{"pga-2026-11", "Texas Children's Houston Open", "Mar 26-29", "2026-03-26", 9500000, models.TypePGATour, 11},
	{"pga-2026-12", "Valero Texas Open", "Apr 2-5", "2026-04-02", 9500000, models.TypePGATour, 12},
	{"pga-2026-13", "The Masters Tournament", "Apr 9-12", "2026-04-09", 20000000, models.TypeMajor, 13},
	{"pga-2026-14", "RBC Heritage", "Apr 16-19", "2026-04-16", 20000000, models.TypeSignature, 14},
	{"pga-2026-15", "Zurich Classic of New Orleans", "Apr 23-26", "2026-04-23", 9000000, models.TypePGATour, 15},
	{"pga-2026-16", "Cadillac Championship", "Apr 30-May 3", "2026-04-30", 20000000, models.TypeSignature, 16},
	{"pga-2026-17", "Truist Championship", "May 7-10", "2026-05-07", 20000000, models.TypeSignature, 17},
	{"pga-2026-18", "PGA Championship", "May 14-17", "2026-05-14", 18500000, models.TypeMajor, 18},
	{"pga-2026-19", "THE CJ CUP Byron Nelson", "May 21-24", "2026-05-21", 9500000, models.TypePGATour, 19},
	{"pga-2026-20", "Charles Schwab Challenge", "May 28-31", "2026-05-28", 9100000, models.TypePGATour, 20},
	{"pga-2026-21", "The Memorial Tournament", "Jun 4-7", "2026-06-04", 20000000, models.TypeSignature, 21},
	{"pga-2026-22", "RBC Canadian Open", "Jun 11-14", "2026-06-11", 9500000, models.TypePGATour, 22},
	{"pga-2026-23", "U.S. Open", "Jun 18-21", "2026-06-18", 21500000, models.TypeMajor, 23},
	{"pga-2026-24", "Travelers Championship", "Jun 25-28", "2026-06-25", 20000000, models.TypeSignature, 24},
	{"pga-2026-25", "John Deere Classic", "Jul 2-5", "2026-07-02", 8000000, models.TypePGATour, 25},
	{"pga-2026-26", "Genesis Scottish Open", "Jul 9-12", "2026-07-09", 9000000, models.TypePGATour, 26},
	{"pga-2026-27", "The Open Championship", "Jul 16-19", "2026-07-16", 17000000, models.TypeMajor, 27},
	{"pga-2026-28", "3M Open", "Jul 23-26", "2026-07-23", 8500000, models.TypePGATour, 28},
	{"pga-2026-29", "Rocket Mortgage Classic", "Jul 30-Aug 2", "2026-07-30", 9200000, models.TypePGATour, 29},
	{"pga-2026-30", "Wyndham Championship", "Aug 6-9", "2026-08-06", 8500000, models.TypePGATour, 30},
	{"pga-2026-31", "FedEx St. Jude Championship", "Aug 13-16", "2026-08-13", 20000000, models.TypeFedEx, 31},
	{"pga-2026-32", "BMW Championship", "Aug 20-23", "2026-08-20", 20000000, models.TypeFedEx, 32},
	{"pga-2026-33", "TOUR Championship", "Aug 27-30", "2026-08-27", 25000000, models.TypeFedEx, 33},
}

var demoGolfers = []string{
	"Scottie Scheffler", "Rory McIlroy", "Xander Schauffele", "Ludvig Aberg",
	"Wyndham Clark", "Collin Morikawa", "Viktor Hovland", "Patrick Cantlay",
	"Max Homa", "Jordan Spieth",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	if err := db.AutoMigrate(&models.Tournament{}, &models.Team{}, &models.Pick{}); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	log.Println("Seeding season schedule...")
	for _, t := range schedule {
		start, err := time.Parse("2006-01-02", t.Start)
		if err != nil {
			log.Fatalf("bad start date for %s: %v", t.Name, err)
		}
		row := models.Tournament{
			ID:        t.ID,
			Name:      t.Name,
			Slug:      slug.Make(t.Name),
			Dates:     t.Dates,
			WeekNum:   t.WeekNum,
			Type:      t.Type,
			Purse:     t.Purse,
			Status:    models.StatusUpcoming,
			StartTime: start,
			EndTime:   start.AddDate(0, 0, 3).Add(23 * time.Hour),
		}
		// Reseeding must not clobber a status the scheduler already advanced.
		err = db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "slug", "dates", "week_num", "type", "purse", "start_time", "end_time",
			}),
		}).Create(&row).Error
		if err != nil {
			log.Fatalf("failed to seed tournament %s: %v", t.Name, err)
		}
	}
	log.Printf("Seeded %d tournaments.", len(schedule))

	if os.Getenv("SEED_DEMO") != "1" {
		return
	}

	log.Println("Seeding demo teams and first-week picks...")
	for i := 1; i <= 20; i++ {
		name := fmt.Sprintf("Demo Team %d", i)
		var existing models.Team
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			continue
		}
		team := models.Team{
			ID:         uuid.NewString(),
			Name:       name,
			Slug:       slug.Make(name),
			OwnerID:    fmt.Sprintf("demo-owner-%d", i),
			OwnerName:  fmt.Sprintf("Player %d", i),
			OwnerEmail: fmt.Sprintf("player%d@example.com", i),
			Division:   models.Divisions[i%len(models.Divisions)],
			IsPaid:     true,
		}
		if err := db.Create(&team).Error; err != nil {
			log.Fatalf("failed to seed team %s: %v", name, err)
		}

		pick := models.Pick{
			ID:           uuid.NewString(),
			TeamID:       team.ID,
			TournamentID: schedule[0].ID,
			GolferName:   demoGolfers[rand.Intn(len(demoGolfers))],
		}
		if err := db.Create(&pick).Error; err != nil {
			log.Fatalf("failed to seed pick for %s: %v", name, err)
		}
	}
	log.Println("Demo seeding finished.")
}
