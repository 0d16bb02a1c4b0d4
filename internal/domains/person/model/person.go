package model

import (
	"time"

	"github.com/google/uuid"
)

const EntityName = "person"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Person is a cast or crew member as stored.
type Person struct {
	CanonicalID     uuid.UUID `json:"canonical_id"`
	PublicID        *int64    `json:"public_id,omitempty"`
	Name            string    `json:"name"`
	Biography       *string   `json:"biography,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	KnownFor        []string  `json:"known_for"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *Person) PublicIdentifier() *int64 { return p.PublicID }

func (p *Person) DisplayName() string { return p.Name }

func (p *Person) Normalize() {
	if p.KnownFor == nil {
		p.KnownFor = []string{}
	}
	if p.Status == "" {
		p.Status = StatusPublished
	}
}

func (p *Person) IsVisible() bool {
	return p.Status == StatusPublished
}

type ListFilter struct {
	Search        string
	Offset        int
	Limit         int
	IncludeHidden bool
}
