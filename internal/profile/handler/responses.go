package handler

import (
	"time"

	"govportal/internal/profile/models"
)

// ProfileResponse is the HTTP representation of a citizen profile.
type ProfileResponse struct {
	ID              string    `json:"profileId"`
	UserID          string    `json:"userId"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	Category        string    `json:"category"`
	Occupation      string    `json:"occupation"`
	Income          int64     `json:"income"`
	State           string    `json:"state"`
	HasBPLCard      bool      `json:"hasBPLCard"`
	IsMinority      bool      `json:"isMinority"`
	HasDisability   bool      `json:"hasDisability"`
	IsStudent       bool      `json:"isStudent"`
	IsFarmer        bool      `json:"isFarmer"`
	EligibleSchemes []string  `json:"eligibleSchemes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromProfile(p *models.Profile) *ProfileResponse {
	schemes := p.EligibleSchemes
	if schemes == nil {
		schemes = []string{}
	}
	return &ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		Age:             p.Age,
		Gender:          p.Gender,
		Category:        p.Category,
		Occupation:      p.Occupation,
		Income:          p.Income,
		State:           p.State,
		HasBPLCard:      p.HasBPLCard,
		IsMinority:      p.IsMinority,
		HasDisability:   p.HasDisability,
		IsStudent:       p.IsStudent,
		IsFarmer:        p.IsFarmer,
		EligibleSchemes: schemes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
