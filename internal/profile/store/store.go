// Package store persists citizen profiles through the document store.
package store

import (
	"context"
	"fmt"
	"time"

	"govportal/internal/docstore"
	"govportal/internal/profile/models"
	"govportal/pkg/platform/sentinel"
)

const fieldUserID = "userId"

type profileDoc struct {
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

// Store reads and writes profiles in one collection.
type Store struct {
	docs       docstore.Store
	collection string
}

func New(docs docstore.Store, collection string) *Store {
	return &Store{docs: docs, collection: collection}
}

// FindByUserID returns the first profile owned by userID.
func (s *Store) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	docs, err := s.docs.Query(ctx, s.collection, fieldUserID, userID)
	if err != nil {
		return nil, fmt.Errorf("find profile by user: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("profile for user %s: %w", userID, sentinel.ErrNotFound)
	}
	return decode(docs[0])
}

// FindByID returns the profile stored under id.
func (s *Store) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	doc, err := s.docs.Get(ctx, s.collection, id)
	if err != nil {
		return nil, fmt.Errorf("find profile by id: %w", err)
	}
	return decode(doc)
}

// Save writes the whole profile, replacing any previous version.
func (s *Store) Save(ctx context.Context, p *models.Profile) error {
	doc, err := docstore.Encode(encode(p))
	if err != nil {
		return err
	}
	if err := s.docs.Replace(ctx, s.collection, p.ID, doc); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func encode(p *models.Profile) profileDoc {
	schemes := p.EligibleSchemes
	if schemes == nil {
		schemes = []string{}
	}
	return profileDoc{
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

func decode(doc docstore.Document) (*models.Profile, error) {
	var d profileDoc
	if err := docstore.Decode(doc, &d); err != nil {
		return nil, err
	}
	return &models.Profile{
		ID:              d.ID,
		UserID:          d.UserID,
		Name:            d.Name,
		Age:             d.Age,
		Gender:          d.Gender,
		Category:        d.Category,
		Occupation:      d.Occupation,
		Income:          d.Income,
		State:           d.State,
		HasBPLCard:      d.HasBPLCard,
		IsMinority:      d.IsMinority,
		HasDisability:   d.HasDisability,
		IsStudent:       d.IsStudent,
		IsFarmer:        d.IsFarmer,
		EligibleSchemes: d.EligibleSchemes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}
