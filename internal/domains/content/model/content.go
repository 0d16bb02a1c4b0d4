package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntityName labels content in metrics and logs.
const EntityName = "content"

type ContentType string

const (
	TypeDrama  ContentType = "drama"
	TypeMovie  ContentType = "movie"
	TypeSeries ContentType = "series"
	TypeAnime  ContentType = "anime"
)

var ContentTypes = []ContentType{TypeDrama, TypeMovie, TypeSeries, TypeAnime}

type Genre string

const (
	GenreRomance     Genre = "romance"
	GenreComedy      Genre = "comedy"
	GenreAction      Genre = "action"
	GenreThriller    Genre = "thriller"
	GenreHorror      Genre = "horror"
	GenreFantasy     Genre = "fantasy"
	GenreDrama       Genre = "drama"
	GenreMystery     Genre = "mystery"
	GenreSliceOfLife Genre = "slice_of_life"
	GenreHistorical  Genre = "historical"
	GenreCrime       Genre = "crime"
	GenreAdventure   Genre = "adventure"
)

var Genres = []Genre{
	GenreRomance, GenreComedy, GenreAction, GenreThriller,
	GenreHorror, GenreFantasy, GenreDrama, GenreMystery,
	GenreSliceOfLife, GenreHistorical, GenreCrime, GenreAdventure,
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Content is one catalog item as stored. Nullable columns are pointers and
// array columns are never nil once scanned.
type Content struct {
	CanonicalID        uuid.UUID       `json:"canonical_id"`
	PublicID           *int64          `json:"public_id,omitempty"`
	Slug               string          `json:"slug"`
	Title              string          `json:"title"`
	OriginalTitle      *string         `json:"original_title,omitempty"`
	ContentType        ContentType     `json:"content_type"`
	Genres             []Genre         `json:"genres"`
	Country            string          `json:"country"`
	Year               *int            `json:"year,omitempty"`
	Rating             decimal.Decimal `json:"rating"`
	Episodes           *int            `json:"episodes,omitempty"`
	Duration           *int            `json:"duration,omitempty"`
	Synopsis           string          `json:"synopsis"`
	PosterURL          string          `json:"poster_url"`
	BannerURL          *string         `json:"banner_url,omitempty"`
	StreamingPlatforms []string        `json:"streaming_platforms"`
	Tags               []string        `json:"tags"`
	Status             Status          `json:"status"`
	ViewCount          int64           `json:"view_count"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (c *Content) PublicIdentifier() *int64 { return c.PublicID }

func (c *Content) DisplayName() string { return c.Title }

// Normalize replaces nil slices left by NULL array columns.
func (c *Content) Normalize() {
	if c.Genres == nil {
		c.Genres = []Genre{}
	}
	if c.StreamingPlatforms == nil {
		c.StreamingPlatforms = []string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Status == "" {
		c.Status = StatusPublished
	}
}

// IsVisible reports whether anonymous viewers may see the record.
func (c *Content) IsVisible() bool {
	return c.Status == StatusPublished
}

// ListFilter is the repository side of a list or search request.
type ListFilter struct {
	Search        string
	ContentType   ContentType
	Country       string
	Genre         Genre
	Year          int
	Sort          string
	Offset        int
	Limit         int
	IncludeHidden bool
}

// FeaturedCategory selects one of the homepage rows.
type FeaturedCategory string

const (
	FeaturedTrending     FeaturedCategory = "trending"
	FeaturedNewReleases  FeaturedCategory = "new_releases"
	FeaturedTopRated     FeaturedCategory = "top_rated"
	DefaultFeaturedLimit                  = 20
	MaxFeaturedLimit                      = 50
)

var FeaturedCategories = []FeaturedCategory{FeaturedTrending, FeaturedNewReleases, FeaturedTopRated}

// CountryCount is one row of the countries listing.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// Stats are the catalog counts reported by diagnostics.
type Stats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Countries int `json:"countries"`
	Genres    int `json:"genres"`
}
