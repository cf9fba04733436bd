package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"sort"

	"fairway-pickem/models"
	"fairway-pickem/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// MaxTeams caps league size. Four divisions of ten.
const MaxTeams = 40

// TeamService owns the Team Registry: registration, commissioner
// actions (payment verification, division assignment) and reads.
// Point totals are written only by the scoring engine.
type TeamService struct {
	DB    *gorm.DB
	Logos *utils.LogoStore
}

func NewTeamService(db *gorm.DB, logos *utils.LogoStore) *TeamService {
	return &TeamService{DB: db, Logos: logos}
}

// RegisterTeam creates a team from a multipart registration form.
// Fields: name, owner_name, owner_email, optional logo file. The owner
// identity comes from the authenticated request context.
func (s *TeamService) RegisterTeam(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	if ownerID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "not authenticated"})
	}

	name := c.FormValue("name")
	ownerName := c.FormValue("owner_name")
	ownerEmail := c.FormValue("owner_email")
	if name == "" || ownerName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name and owner_name are required"})
	}

	var count int64
	if err := s.DB.Model(&models.Team{}).Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if count >= MaxTeams {
		return c.Status(403).JSON(fiber.Map{"error": fmt.Sprintf("league is full (%d teams max)", MaxTeams)})
	}

	// Uniqueness covers the slug too: distinct names can collapse to
	// the same slug.
	teamSlug := slug.Make(name)
	var existing models.Team
	if err := s.DB.Where("name = ? OR slug = ?", name, teamSlug).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{"error": "team name already taken"})
	}
	if err := s.DB.Where("owner_id = ?", ownerID).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{"error": "owner already has a team"})
	}

	var logoURL string
	if logo, err := c.FormFile("logo"); err == nil && logo.Size > 0 {
		if s.Logos == nil {
			return c.Status(500).JSON(fiber.Map{"error": "logo storage is not configured"})
		}
		ext := filepath.Ext(logo.Filename)
		if ext == "" {
			ext = ".png"
		}
		key := "teams/logos/" + uuid.NewString() + ext
		url, err := s.Logos.Upload(c.Context(), logo, key)
		if err != nil {
			if errors.Is(err, utils.ErrLogoTooLarge) {
				return c.Status(400).JSON(fiber.Map{"error": "logo must be 5MB or smaller"})
			}
			log.Printf("[Team] logo upload failed: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload logo"})
		}
		logoURL = url
	}

	team := &models.Team{
		ID:         uuid.NewString(),
		Name:       name,
		Slug:       teamSlug,
		OwnerID:    ownerID,
		OwnerName:  ownerName,
		OwnerEmail: ownerEmail,
		LogoURL:    logoURL,
	}
	if err := s.DB.Create(team).Error; err != nil {
		log.Printf("[Team] create failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "registration failed"})
	}
	return c.Status(201).JSON(team)
}

// GetAllTeams lists teams, optionally filtered by division.
func (s *TeamService) GetAllTeams(c *fiber.Ctx) error {
	q := s.DB.Order("total_points DESC, created_at ASC")
	if division := c.Query("division"); division != "" {
		if !models.ValidDivision(division) {
			return c.Status(400).JSON(fiber.Map{"error": "unknown division"})
		}
		q = q.Where("division = ?", division)
	}
	var teams []models.Team
	if err := q.Find(&teams).Error; err != nil {
		log.Printf("[Team] list failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch teams"})
	}
	return c.JSON(teams)
}

// GetTeamByID returns one team with its picks and their tournaments.
func (s *TeamService) GetTeamByID(c *fiber.Ctx) error {
	id := c.Params("id")
	var team models.Team
	err := s.DB.
		Preload("Picks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Picks.Tournament").
		First(&team, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "team not found"})
		}
		log.Printf("[Team] fetch %s failed: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(team)
}

// SetPaymentStatus toggles a team's entry-fee verification flag
// (commissioner). The payment itself happens outside this service;
// only the verified bit lives here.
func (s *TeamService) SetPaymentStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		IsPaid bool `json:"is_paid"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	result := s.DB.Model(&models.Team{}).Where("id = ?", id).Update("is_paid", req.IsPaid)
	if result.Error != nil {
		log.Printf("[Team] payment toggle %s failed: %v", id, result.Error)
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "team not found"})
	}

	var team models.Team
	s.DB.First(&team, "id = ?", id)
	return c.JSON(team)
}

// AssignDivisions randomly spreads every unassigned team across the
// four divisions, keeping counts balanced (commissioner, run once
// registration closes). Teams already assigned keep their division.
func (s *TeamService) AssignDivisions(c *fiber.Ctx) error {
	var assigned int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		counts := make(map[string]int, len(models.Divisions))
		for _, div := range models.Divisions {
			var n int64
			if err := tx.Model(&models.Team{}).Where("division = ?", div).Count(&n).Error; err != nil {
				return err
			}
			counts[div] = int(n)
		}

		var unassigned []models.Team
		if err := tx.Where("division = '' OR division IS NULL").Find(&unassigned).Error; err != nil {
			return err
		}
		rand.Shuffle(len(unassigned), func(i, j int) {
			unassigned[i], unassigned[j] = unassigned[j], unassigned[i]
		})

		for i := range unassigned {
			// Smallest division takes the next team; division name breaks ties
			// so assignment is well-defined.
			divs := append([]string(nil), models.Divisions...)
			sort.SliceStable(divs, func(a, b int) bool {
				if counts[divs[a]] != counts[divs[b]] {
					return counts[divs[a]] < counts[divs[b]]
				}
				return divs[a] < divs[b]
			})
			target := divs[0]
			if err := tx.Model(&models.Team{}).
				Where("id = ?", unassigned[i].ID).
				Update("division", target).Error; err != nil {
				return err
			}
			counts[target]++
			assigned++
		}
		return nil
	})
	if err != nil {
		log.Printf("[Team] division assignment failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "division assignment failed"})
	}
	return c.JSON(fiber.Map{"message": "divisions assigned", "teams_assigned": assigned})
}
