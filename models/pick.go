package models

import (
	"time"
)

// Pick is a team's single golfer selection for one tournament plus the
// result computed from real-world prize money. The (team, tournament)
// pair is unique at the storage layer, so concurrent submissions can
// never produce a second row. Picks are never deleted; a golfer stays
// "spent" for the season unless the pick shows a win.
type Pick struct {
	ID           string  `json:"id" gorm:"primaryKey"`
	TeamID       string  `json:"team_id" gorm:"not null;uniqueIndex:idx_team_tournament,priority:1"`
	TournamentID string  `json:"tournament_id" gorm:"not null;uniqueIndex:idx_team_tournament,priority:2;index"`
	GolferName   string  `json:"golfer_name" gorm:"not null;index"`
	Position     *string `json:"position,omitempty"` // nil until results post, e.g. "1", "T5", "MC"
	RawEarnings  float64 `json:"raw_earnings" gorm:"default:0"`
	Multiplier   float64 `json:"multiplier" gorm:"default:0"`
	// Earnings is always RawEarnings * Multiplier, written together with
	// both inputs. These are the fantasy points credited to the team.
	Earnings  float64   `json:"earnings" gorm:"default:0"`
	IsWinner  bool      `json:"is_winner" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Team       *Team       `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Tournament *Tournament `json:"tournament,omitempty" gorm:"foreignKey:TournamentID"`
}

// Scored reports whether results have been posted for this pick.
func (p *Pick) Scored() bool {
	return p.Position != nil
}
