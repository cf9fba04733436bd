package services

import (
	"log"

	"fairway-pickem/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TeamStanding is one row of a standings read: a team plus its rank and
// clinch flags. Flags are a projection of current totals, recomputed on
// every read and never persisted.
type TeamStanding struct {
	Rank             int     `json:"rank"`
	TeamID           string  `json:"team_id"`
	Name             string  `json:"name"`
	OwnerName        string  `json:"owner_name"`
	Division         string  `json:"division"`
	TotalPoints      float64 `json:"total_points"`
	ClinchedPlayoffs bool    `json:"clinched_playoffs"`
	ClinchedDivision bool    `json:"clinched_division"`
}

// PlayoffSeed is one slot of the eight-team playoff bracket.
type PlayoffSeed struct {
	Seed int `json:"seed"`
	TeamStanding
}

// Classify derives the clinch flags from a team snapshot: within each
// division the top two by standings order have clinched playoffs, and
// the single leader has additionally clinched the division. Teams
// without a division never clinch. Pure function over its input.
func Classify(teams []models.Team) []TeamStanding {
	byDivision := make(map[string][]models.Team)
	for _, t := range teams {
		if models.ValidDivision(t.Division) {
			byDivision[t.Division] = append(byDivision[t.Division], t)
		}
	}

	clinchedPlayoffs := make(map[string]bool)
	clinchedDivision := make(map[string]bool)
	for _, divTeams := range byDivision {
		SortByStandings(divTeams)
		for i, t := range divTeams {
			if i < 2 {
				clinchedPlayoffs[t.ID] = true
			}
			if i == 0 {
				clinchedDivision[t.ID] = true
			}
		}
	}

	ordered := make([]models.Team, len(teams))
	copy(ordered, teams)
	SortByStandings(ordered)

	standings := make([]TeamStanding, 0, len(ordered))
	for i, t := range ordered {
		standings = append(standings, TeamStanding{
			Rank:             i + 1,
			TeamID:           t.ID,
			Name:             t.Name,
			OwnerName:        t.OwnerName,
			Division:         t.Division,
			TotalPoints:      t.TotalPoints,
			ClinchedPlayoffs: clinchedPlayoffs[t.ID],
			ClinchedDivision: clinchedDivision[t.ID],
		})
	}
	return standings
}

// PlayoffBracket seeds the division qualifiers 1 through 8 by total
// points: the union of each division's top two, re-sorted overall.
func PlayoffBracket(teams []models.Team) []PlayoffSeed {
	standings := Classify(teams)
	bracket := make([]PlayoffSeed, 0, 8)
	for _, s := range standings {
		if !s.ClinchedPlayoffs {
			continue
		}
		bracket = append(bracket, PlayoffSeed{Seed: len(bracket) + 1, TeamStanding: s})
	}
	return bracket
}

// StandingsService serves leaderboard and division reads. It owns no
// state beyond the store handle; every response is computed fresh from
// the Team Registry.
type StandingsService struct {
	DB      *gorm.DB
	Scoring *ScoringService
}

func NewStandingsService(db *gorm.DB, scoring *ScoringService) *StandingsService {
	return &StandingsService{DB: db, Scoring: scoring}
}

// GetStandings returns the overall leaderboard with clinch flags.
func (s *StandingsService) GetStandings(c *fiber.Ctx) error {
	var teams []models.Team
	if err := s.DB.Find(&teams).Error; err != nil {
		log.Printf("[Standings] fetch teams failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch standings"})
	}
	return c.JSON(Classify(teams))
}

// GetDivisionStandings returns standings grouped by division. A single
// division can be requested with ?division=Name.
func (s *StandingsService) GetDivisionStandings(c *fiber.Ctx) error {
	division := c.Query("division")
	if division != "" && !models.ValidDivision(division) {
		return c.Status(400).JSON(fiber.Map{"error": "unknown division"})
	}

	var teams []models.Team
	if err := s.DB.Find(&teams).Error; err != nil {
		log.Printf("[Standings] fetch teams failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch standings"})
	}

	grouped := make(map[string][]TeamStanding)
	for _, div := range models.Divisions {
		grouped[div] = []TeamStanding{}
	}
	for _, st := range Classify(teams) {
		if !models.ValidDivision(st.Division) {
			continue
		}
		grouped[st.Division] = append(grouped[st.Division], st)
	}
	// Division rank is position within the division, not overall rank.
	for _, div := range models.Divisions {
		for i := range grouped[div] {
			grouped[div][i].Rank = i + 1
		}
	}

	if division != "" {
		return c.JSON(fiber.Map{"division": division, "teams": grouped[division]})
	}
	return c.JSON(grouped)
}

// GetPlayoffBracket returns the current eight seeds.
func (s *StandingsService) GetPlayoffBracket(c *fiber.Ctx) error {
	var teams []models.Team
	if err := s.DB.Find(&teams).Error; err != nil {
		log.Printf("[Standings] fetch teams failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch standings"})
	}
	return c.JSON(PlayoffBracket(teams))
}

// Recompute forces a full standings re-aggregation. Safe to call any
// number of times; the computation is a complete overwrite.
func (s *StandingsService) Recompute(c *fiber.Ctx) error {
	if err := s.Scoring.RecomputeStandings(); err != nil {
		log.Printf("[Standings] recompute failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "recompute failed"})
	}
	return c.JSON(fiber.Map{"message": "standings recomputed"})
}
