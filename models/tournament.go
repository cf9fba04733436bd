package models

import (
	"time"
)

// TournamentType is the prestige tier of a tour stop. It drives the
// scoring multiplier applied to raw prize money.
type TournamentType string

const (
	TypePGATour   TournamentType = "PGA_TOUR"
	TypeSignature TournamentType = "SIGNATURE"
	TypeMajor     TournamentType = "MAJOR"
	TypeFedEx     TournamentType = "FEDEX"
)

// TournamentStatus tracks where a tournament sits in the season.
// By convention at most one tournament is ACTIVE at a time.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "UPCOMING"
	StatusActive    TournamentStatus = "ACTIVE"
	StatusCompleted TournamentStatus = "COMPLETED"
)

// Tournament is one stop on the season schedule. Identity is fixed at
// seed time; only Status changes afterwards.
type Tournament struct {
	ID        string           `json:"id" gorm:"primaryKey"`
	Name      string           `json:"name" gorm:"not null"`
	Slug      string           `json:"slug" gorm:"uniqueIndex"`
	Dates     string           `json:"dates"` // display string, e.g. "Apr 9-12"
	WeekNum   int              `json:"week_num" gorm:"uniqueIndex;not null"`
	Type      TournamentType   `json:"type" gorm:"type:varchar(16);default:'PGA_TOUR'"`
	Purse     float64          `json:"purse" gorm:"default:0"` // reference only, not used in scoring
	Status    TournamentStatus `json:"status" gorm:"type:varchar(16);default:'UPCOMING';index"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time        `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Picks []Pick `json:"picks,omitempty" gorm:"foreignKey:TournamentID"`
}

// ValidType reports whether t is one of the four known tiers.
func ValidType(t TournamentType) bool {
	switch t {
	case TypePGATour, TypeSignature, TypeMajor, TypeFedEx:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s TournamentStatus) bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return true
	}
	return false
}
