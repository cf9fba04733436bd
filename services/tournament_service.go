package services

import (
	"errors"
	"log"
	"time"

	"fairway-pickem/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// TournamentService serves the season schedule: the static catalog of
// tour stops plus their lifecycle status. Scoring is delegated to the
// engine; this service only owns catalog reads and commissioner writes.
type TournamentService struct {
	DB      *gorm.DB
	Scoring *ScoringService
}

func NewTournamentService(db *gorm.DB, scoring *ScoringService) *TournamentService {
	return &TournamentService{DB: db, Scoring: scoring}
}

// CreateTournament adds a stop to the season schedule (commissioner).
func (s *TournamentService) CreateTournament(c *fiber.Ctx) error {
	type Req struct {
		Name      string                `json:"name"`
		Dates     string                `json:"dates"`
		WeekNum   int                   `json:"week_num"`
		Type      models.TournamentType `json:"type"`
		Purse     float64               `json:"purse"`
		StartTime string                `json:"start_time"` // RFC3339
		EndTime   string                `json:"end_time"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Name == "" || req.WeekNum <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "name and a positive week_num are required"})
	}
	if req.Type == "" {
		req.Type = models.TypePGATour
	}
	if !models.ValidType(req.Type) {
		return c.Status(400).JSON(fiber.Map{"error": "type must be one of PGA_TOUR, SIGNATURE, MAJOR, FEDEX"})
	}

	var startTime, endTime time.Time
	var err error
	if req.StartTime != "" {
		startTime, err = time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid start_time (use RFC3339)"})
		}
	}
	if req.EndTime != "" {
		endTime, err = time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid end_time (use RFC3339)"})
		}
	}

	tournamentSlug := slug.Make(req.Name)
	var existing models.Tournament
	if err := s.DB.Where("slug = ? OR week_num = ?", tournamentSlug, req.WeekNum).
		First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{"error": "a tournament with that name or week already exists"})
	}

	tournament := &models.Tournament{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Slug:      tournamentSlug,
		Dates:     req.Dates,
		WeekNum:   req.WeekNum,
		Type:      req.Type,
		Purse:     req.Purse,
		Status:    models.StatusUpcoming,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := s.DB.Create(tournament).Error; err != nil {
		log.Printf("[Tournament] create failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to create tournament"})
	}
	return c.Status(201).JSON(tournament)
}

// GetSchedule lists the whole season in week order.
func (s *TournamentService) GetSchedule(c *fiber.Ctx) error {
	var tournaments []models.Tournament
	q := s.DB.Order("week_num ASC")
	if status := c.Query("status"); status != "" {
		if !models.ValidStatus(models.TournamentStatus(status)) {
			return c.Status(400).JSON(fiber.Map{"error": "unknown status"})
		}
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&tournaments).Error; err != nil {
		log.Printf("[Tournament] schedule fetch failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch schedule"})
	}
	return c.JSON(tournaments)
}

// GetTournamentByID returns one tournament with its picks.
func (s *TournamentService) GetTournamentByID(c *fiber.Ctx) error {
	id := c.Params("id")
	var tournament models.Tournament
	if err := s.DB.Preload("Picks").First(&tournament, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
		}
		log.Printf("[Tournament] fetch %s failed: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(tournament)
}

// CurrentTournament resolves "this week's tournament" explicitly: the
// ACTIVE stop if there is one, otherwise the next UPCOMING by week.
// Callers pass the result into the engine rather than the engine
// re-querying it ambiently.
func (s *TournamentService) CurrentTournament() (*models.Tournament, error) {
	var tournament models.Tournament
	err := s.DB.
		Where("status IN ?", []models.TournamentStatus{models.StatusActive, models.StatusUpcoming}).
		Order("CASE status WHEN 'ACTIVE' THEN 0 ELSE 1 END, week_num ASC").
		First(&tournament).Error
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

// GetCurrentTournament is the HTTP read of CurrentTournament.
func (s *TournamentService) GetCurrentTournament(c *fiber.Ctx) error {
	tournament, err := s.CurrentTournament()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "no active or upcoming tournament"})
		}
		log.Printf("[Tournament] current fetch failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(tournament)
}

// UpdateStatus advances a tournament's lifecycle (commissioner). The
// scheduler normally does this from the stop's dates; the endpoint
// exists for corrections.
func (s *TournamentService) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		Status models.TournamentStatus `json:"status"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if !models.ValidStatus(req.Status) {
		return c.Status(400).JSON(fiber.Map{"error": "status must be one of UPCOMING, ACTIVE, COMPLETED"})
	}

	result := s.DB.Model(&models.Tournament{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if result.Error != nil {
		log.Printf("[Tournament] status update %s failed: %v", id, result.Error)
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
	}

	var updated models.Tournament
	s.DB.First(&updated, "id = ?", id)
	return c.JSON(updated)
}

// IngestResults accepts a leaderboard batch for one tournament from the
// external data-sync job and hands it to the engine. Malformed entries
// are skipped, never fatal to the batch.
func (s *TournamentService) IngestResults(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		Results []GolferResult `json:"results"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	updated, skipped, err := s.Scoring.ApplyResults(id, req.Results)
	if err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
		}
		if errors.Is(err, ErrMissingInput) {
			return c.Status(400).JSON(fiber.Map{"error": "tournament id required"})
		}
		log.Printf("[Tournament] result ingestion for %s failed: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to apply results"})
	}
	return c.JSON(fiber.Map{
		"message":       "results applied",
		"picks_updated": updated,
		"skipped":       skipped,
	})
}
