package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"fairway-pickem/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Validation errors returned by the engine. Handlers map these to HTTP
// statuses; none of them leave any state change behind.
var (
	ErrMissingInput       = errors.New("missing required input")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPaymentRequired    = errors.New("entry fee not verified")
	ErrGolferAlreadyUsed  = errors.New("golfer already used")
	ErrPickLocked         = errors.New("pick is locked for this tournament")
)

// MultiplierFor returns the event boost applied to raw prize money.
// The table is fixed for the season, not configurable at runtime.
func MultiplierFor(t models.TournamentType) float64 {
	switch t {
	case models.TypeMajor:
		return 2.0
	case models.TypeSignature, models.TypeFedEx:
		return 1.5
	default:
		return 1.0
	}
}

// winningPosition reports whether a finish position denotes a win.
func winningPosition(pos string) bool {
	return pos == "1" || pos == "T1"
}

// CanonicalGolfer normalizes a golfer name for matching between pick
// submissions and ingested results: trimmed, inner whitespace collapsed.
func CanonicalGolfer(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// GolferResult is one row of an ingested leaderboard for an active
// tournament: real-world finish position and prize money.
type GolferResult struct {
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	RawEarnings float64 `json:"raw_earnings"`
}

// ScoringService is the scoring and standings engine: it accepts picks
// against the once-only rule, converts tournament results into fantasy
// points, and keeps team totals equal to the sum of their picks.
type ScoringService struct {
	DB *gorm.DB
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{DB: db}
}

// SubmitPick locks in golferName for the given team and tournament.
//
// Rules, checked in order and before any write:
//   - all three inputs present
//   - team and tournament exist, team's entry fee is verified
//   - the tournament is not COMPLETED and no results have posted for
//     this team/tournament pair (otherwise the pick is locked)
//   - resubmitting the currently pending golfer is a no-op success
//   - a golfer from any other pick who did not win is spent for the
//     season; a previous winner is eligible again unconditionally
//
// On success the pick row is upserted keyed by (team, tournament) with
// all result fields reset, so a resubmission never retains stale results.
// The bool reports whether a pick was written; false means the no-op path.
func (s *ScoringService) SubmitPick(teamID, tournamentID, golferName string) (*models.Pick, bool, error) {
	golferName = CanonicalGolfer(golferName)
	if teamID == "" || tournamentID == "" || golferName == "" {
		return nil, false, ErrMissingInput
	}

	var pick *models.Pick
	var written bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.Preload("Picks").First(&team, "id = ?", teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("fetch team: %w", err)
		}
		if !team.IsPaid {
			return ErrPaymentRequired
		}

		var tournament models.Tournament
		if err := tx.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("fetch tournament: %w", err)
		}
		if tournament.Status == models.StatusCompleted {
			return ErrPickLocked
		}

		var current *models.Pick
		for i := range team.Picks {
			if team.Picks[i].TournamentID == tournamentID {
				current = &team.Picks[i]
				break
			}
		}
		if current != nil && current.Scored() {
			return ErrPickLocked
		}
		if current != nil && CanonicalGolfer(current.GolferName) == golferName {
			// Same golfer already pending for this week: idempotent success.
			pick = current
			return nil
		}

		// Once-Only Rule: a non-winning pick of this golfer in any other
		// tournament spends them for the season.
		for i := range team.Picks {
			p := &team.Picks[i]
			if p.TournamentID == tournamentID {
				continue
			}
			if CanonicalGolfer(p.GolferName) == golferName && !p.IsWinner {
				return ErrGolferAlreadyUsed
			}
		}

		fresh := models.Pick{
			ID:           uuid.NewString(),
			TeamID:       teamID,
			TournamentID: tournamentID,
			GolferName:   golferName,
			Position:     nil,
			RawEarnings:  0,
			Multiplier:   0,
			Earnings:     0,
			IsWinner:     false,
		}
		// Upsert on the (team, tournament) unique index so a racing
		// submission can never produce a second row for the pair.
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "team_id"}, {Name: "tournament_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"golfer_name":  fresh.GolferName,
				"position":     nil,
				"raw_earnings": 0.0,
				"multiplier":   0.0,
				"earnings":     0.0,
				"is_winner":    false,
			}),
		}).Create(&fresh).Error; err != nil {
			return fmt.Errorf("upsert pick: %w", err)
		}

		var saved models.Pick
		if err := tx.Where("team_id = ? AND tournament_id = ?", teamID, tournamentID).
			First(&saved).Error; err != nil {
			return fmt.Errorf("reload pick: %w", err)
		}
		pick = &saved
		written = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return pick, written, nil
}

// ApplyResults scores every pick in the tournament against the ingested
// leaderboard, then re-aggregates team totals. Returns how many picks
// were updated and how many result entries were skipped as malformed.
//
// Golfers absent from the result list keep their current fields; a zero
// for a missed cut is an explicit input, never an engine decision. The
// whole computation assigns absolute values, so replaying the same batch
// reproduces identical earnings.
func (s *ScoringService) ApplyResults(tournamentID string, results []GolferResult) (updated, skipped int, err error) {
	if tournamentID == "" {
		return 0, 0, ErrMissingInput
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var tournament models.Tournament
		if err := tx.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("fetch tournament: %w", err)
		}

		multiplier := MultiplierFor(tournament.Type)
		for _, r := range results {
			name := CanonicalGolfer(r.Name)
			if name == "" || r.RawEarnings < 0 {
				skipped++
				continue
			}
			isWinner := winningPosition(r.Position)
			earnings := r.RawEarnings * multiplier

			res := tx.Model(&models.Pick{}).
				Where("tournament_id = ? AND golfer_name = ?", tournamentID, name).
				Updates(map[string]interface{}{
					"position":     r.Position,
					"raw_earnings": r.RawEarnings,
					"multiplier":   multiplier,
					"earnings":     earnings,
					"is_winner":    isWinner,
				})
			if res.Error != nil {
				return fmt.Errorf("score picks for %s: %w", name, res.Error)
			}
			updated += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	if err := s.RecomputeStandings(); err != nil {
		return updated, skipped, fmt.Errorf("recompute standings: %w", err)
	}
	log.Printf("[Scoring] Tournament %s scored: %d picks updated, %d entries skipped", tournamentID, updated, skipped)
	return updated, skipped, nil
}

// RecomputeStandings sets every team's total to the full sum of its
// picks' earnings. Always a complete recomputation, so corrections to any
// pick self-heal on the next pass, and retries never double-credit.
func (s *ScoringService) RecomputeStandings() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var teams []models.Team
		if err := tx.Find(&teams).Error; err != nil {
			return fmt.Errorf("fetch teams: %w", err)
		}
		for i := range teams {
			var total float64
			if err := tx.Model(&models.Pick{}).
				Where("team_id = ?", teams[i].ID).
				Select("COALESCE(SUM(earnings), 0)").
				Scan(&total).Error; err != nil {
				return fmt.Errorf("sum picks for team %s: %w", teams[i].ID, err)
			}
			if err := tx.Model(&models.Team{}).
				Where("id = ?", teams[i].ID).
				Update("total_points", total).Error; err != nil {
				return fmt.Errorf("update team %s total: %w", teams[i].ID, err)
			}
		}
		return nil
	})
}

// SortByStandings orders teams by total points descending. Ties go to
// the earlier registration, then ID, so rank is deterministic.
func SortByStandings(teams []models.Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].TotalPoints != teams[j].TotalPoints {
			return teams[i].TotalPoints > teams[j].TotalPoints
		}
		if !teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].CreatedAt.Before(teams[j].CreatedAt)
		}
		return teams[i].ID < teams[j].ID
	})
}
