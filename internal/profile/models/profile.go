package models

import (
	"strings"
	"time"

	"govportal/internal/eligibility"
	dErrors "govportal/pkg/domain-errors"
)

// Profile is a citizen's self-declared profile. EligibleSchemes is derived
// on every write.
//
// Invariants:
//   - UserID is unique across profiles
//   - CreatedAt is set on the first write and preserved afterwards
type Profile struct {
	ID              string
	UserID          string
	Name            string
	Age             int
	Gender          string
	Category        string
	Occupation      string
	Income          int64
	State           string
	HasBPLCard      bool
	IsMinority      bool
	HasDisability   bool
	IsStudent       bool
	IsFarmer        bool
	EligibleSchemes []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UpsertRequest is the citizen input for creating or replacing a profile.
type UpsertRequest struct {
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	Age           *int   `json:"age"`
	Gender        string `json:"gender"`
	Category      string `json:"category"`
	Occupation    string `json:"occupation"`
	Income        *int64 `json:"income"`
	State         string `json:"state"`
	HasBPLCard    bool   `json:"hasBPLCard"`
	IsMinority    bool   `json:"isMinority"`
	HasDisability bool   `json:"hasDisability"`
	IsStudent     bool   `json:"isStudent"`
	IsFarmer      bool   `json:"isFarmer"`
}

// Validate trims the input and checks userId, age and income.
func (r *UpsertRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.UserID = strings.TrimSpace(r.UserID)
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = strings.TrimSpace(r.Gender)
	r.Category = strings.TrimSpace(r.Category)
	r.Occupation = strings.TrimSpace(r.Occupation)
	r.State = strings.TrimSpace(r.State)
	if r.UserID == "" {
		return dErrors.New(dErrors.CodeValidation, "userId is required")
	}
	return r.Attributes().Validate()
}

// Attributes returns the facts the eligibility rules read.
func (r *UpsertRequest) Attributes() eligibility.Attributes {
	return eligibility.Attributes{
		Age:           r.Age,
		Income:        r.Income,
		Gender:        r.Gender,
		Category:      r.Category,
		HasBPLCard:    r.HasBPLCard,
		IsMinority:    r.IsMinority,
		HasDisability: r.HasDisability,
		IsStudent:     r.IsStudent,
		IsFarmer:      r.IsFarmer,
	}
}

// NewProfile builds a profile from a validated request. Identity, timestamps
// and schemes are filled in by the caller.
func NewProfile(r UpsertRequest) *Profile {
	p := &Profile{
		UserID:        r.UserID,
		Name:          r.Name,
		Gender:        r.Gender,
		Category:      r.Category,
		Occupation:    r.Occupation,
		State:         r.State,
		HasBPLCard:    r.HasBPLCard,
		IsMinority:    r.IsMinority,
		HasDisability: r.HasDisability,
		IsStudent:     r.IsStudent,
		IsFarmer:      r.IsFarmer,
	}
	if r.Age != nil {
		p.Age = *r.Age
	}
	if r.Income != nil {
		p.Income = *r.Income
	}
	return p
}
