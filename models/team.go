package models

import (
	"time"
)

// Divisions are the four fixed groupings teams compete in for playoff
// qualification. A team starts unassigned; the commissioner assigns
// divisions once registration closes.
var Divisions = []string{"Nicklaus", "Woods", "Hogan", "Jones"}

// ValidDivision reports whether d names one of the four divisions.
func ValidDivision(d string) bool {
	for _, div := range Divisions {
		if div == d {
			return true
		}
	}
	return false
}

// Team is one competing entry in the league. TotalPoints is derived:
// always the full sum of its picks' earnings, recomputed rather than
// patched incrementally.
type Team struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex"`
	OwnerID     string    `json:"owner_id" gorm:"uniqueIndex;not null"` // external identity, one team per owner
	OwnerName   string    `json:"owner_name"`
	OwnerEmail  string    `json:"owner_email"`
	Division    string    `json:"division" gorm:"type:varchar(16);index"`
	TotalPoints float64   `json:"total_points" gorm:"default:0"`
	IsPaid      bool      `json:"is_paid" gorm:"default:false"`
	LogoURL     string    `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Picks []Pick `json:"picks,omitempty" gorm:"foreignKey:TeamID"`
}
