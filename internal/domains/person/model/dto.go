package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/Krushna-ai/GDVG/internal/shared/utils"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type ListRequest struct {
	Page   int    `form:"page" json:"page"`
	Limit  int    `form:"limit" json:"limit"`
	Search string `form:"search" json:"search"`
}

func (r ListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(0), validation.Max(utils.MaxPage)),
		validation.Field(&r.Limit, validation.Min(0), validation.Max(MaxPageLimit)),
		validation.Field(&r.Search, validation.Length(0, 200)),
	)
}

func (r ListRequest) Filter() (ListFilter, int) {
	page, limit := utils.NormalizePage(r.Page, r.Limit, DefaultPageLimit, MaxPageLimit)
	return ListFilter{
		Search: r.Search,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}, page
}

type PersonResponse struct {
	ID              uuid.UUID `json:"id"`
	PublicID        *int64    `json:"public_id,omitempty"`
	URL             string    `json:"url,omitempty"`
	Name            string    `json:"name"`
	Biography       *string   `json:"biography,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	KnownFor        []string  `json:"known_for"`
	Status          Status    `json:"status,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *Person) ToResponse(url string, showStatus bool) PersonResponse {
	resp := PersonResponse{
		ID:              p.CanonicalID,
		PublicID:        p.PublicID,
		URL:             url,
		Name:            p.Name,
		Biography:       p.Biography,
		ProfileImageURL: p.ProfileImageURL,
		KnownFor:        p.KnownFor,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if showStatus {
		resp.Status = p.Status
	}
	return resp
}

type ListResponse struct {
	Items []PersonResponse `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
