package services

import (
	"errors"
	"log"

	"fairway-pickem/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PickService is the HTTP surface over the engine's pick acceptance:
// it resolves the caller's team from the request context and maps the
// engine's validation errors onto response codes and the feedback
// messages the UI renders.
type PickService struct {
	DB      *gorm.DB
	Scoring *ScoringService
}

func NewPickService(db *gorm.DB, scoring *ScoringService) *PickService {
	return &PickService{DB: db, Scoring: scoring}
}

// SubmitPick locks in the caller's golfer for a tournament.
// Body: {"tournament_id": "...", "golfer_name": "..."}.
func (s *PickService) SubmitPick(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	if ownerID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "not authenticated"})
	}

	type Req struct {
		TournamentID string `json:"tournament_id"`
		GolferName   string `json:"golfer_name"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.TournamentID == "" || req.GolferName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "tournament_id and golfer_name are required"})
	}

	var team models.Team
	if err := s.DB.Where("owner_id = ?", ownerID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "team not found"})
		}
		log.Printf("[Pick] team lookup for owner %s failed: %v", ownerID, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	pick, written, err := s.Scoring.SubmitPick(team.ID, req.TournamentID, req.GolferName)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingInput):
			return c.Status(400).JSON(fiber.Map{"error": "missing required fields"})
		case errors.Is(err, ErrTeamNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "team not found"})
		case errors.Is(err, ErrTournamentNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
		case errors.Is(err, ErrPaymentRequired):
			return c.Status(402).JSON(fiber.Map{"error": "entry fee must be verified before picking"})
		case errors.Is(err, ErrGolferAlreadyUsed):
			return c.Status(409).JSON(fiber.Map{"error": "Golfer already used", "golfer": CanonicalGolfer(req.GolferName)})
		case errors.Is(err, ErrPickLocked):
			return c.Status(409).JSON(fiber.Map{"error": "picks are locked for this tournament"})
		}
		log.Printf("[Pick] submission failed for team %s: %v", team.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to submit pick"})
	}
	// Resubmitting the pending golfer writes nothing; report 200, not 201.
	if !written {
		return c.JSON(pick)
	}
	return c.Status(201).JSON(pick)
}

// GetMyPicks lists the caller's picks for the season, newest week last.
func (s *PickService) GetMyPicks(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	if ownerID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "not authenticated"})
	}

	var team models.Team
	if err := s.DB.Where("owner_id = ?", ownerID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "team not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	var picks []models.Pick
	err := s.DB.
		Joins("JOIN tournaments ON tournaments.id = picks.tournament_id").
		Where("picks.team_id = ?", team.ID).
		Order("tournaments.week_num ASC").
		Preload("Tournament").
		Find(&picks).Error
	if err != nil {
		log.Printf("[Pick] list for team %s failed: %v", team.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch picks"})
	}
	return c.JSON(picks)
}

// GetUsedGolfers returns the golfers the caller's team can no longer
// pick: every previously picked name whose pick did not win.
func (s *PickService) GetUsedGolfers(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	if ownerID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "not authenticated"})
	}

	var team models.Team
	if err := s.DB.Preload("Picks").Where("owner_id = ?", ownerID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "team not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	used := make([]string, 0, len(team.Picks))
	seen := make(map[string]bool)
	for _, p := range team.Picks {
		name := CanonicalGolfer(p.GolferName)
		if !p.IsWinner && !seen[name] {
			seen[name] = true
			used = append(used, name)
		}
	}
	return c.JSON(fiber.Map{"used_golfers": used})
}
