package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/Krushna-ai/GDVG/internal/shared/utils"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	SortNewest  = "newest"
	SortRating  = "rating"
	SortTitle   = "title"
	SortPopular = "popular"

	MaxTitleLength = 255
)

var sortOptions = []interface{}{SortNewest, SortRating, SortTitle, SortPopular}

func contentTypeValues() []interface{} {
	out := make([]interface{}, len(ContentTypes))
	for i, t := range ContentTypes {
		out[i] = string(t)
	}
	return out
}

func genreValues() []interface{} {
	out := make([]interface{}, len(Genres))
	for i, g := range Genres {
		out[i] = string(g)
	}
	return out
}

// ListRequest binds the query string of GET /content and /content/search.
type ListRequest struct {
	Page        int    `form:"page" json:"page"`
	Limit       int    `form:"limit" json:"limit"`
	Search      string `form:"search" json:"search"`
	Query       string `form:"query" json:"query"`
	ContentType string `form:"content_type" json:"content_type"`
	Country     string `form:"country" json:"country"`
	Genre       string `form:"genre" json:"genre"`
	Year        int    `form:"year" json:"year"`
	Sort        string `form:"sort" json:"sort"`
}

func (r ListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(0), validation.Max(utils.MaxPage)),
		validation.Field(&r.Limit, validation.Min(0), validation.Max(MaxPageLimit)),
		validation.Field(&r.Search, validation.Length(0, 200)),
		validation.Field(&r.Query, validation.Length(0, 200)),
		validation.Field(&r.ContentType, validation.In(contentTypeValues()...).Error("must be one of drama, movie, series, anime")),
		validation.Field(&r.Genre, validation.In(genreValues()...).Error("must be a known genre")),
		validation.Field(&r.Year, validation.Min(0), validation.Max(3000)),
		validation.Field(&r.Sort, validation.In(sortOptions...)),
	)
}

// Filter converts the request into a repository filter. Query takes over
// from Search when both are given.
func (r ListRequest) Filter() (ListFilter, int) {
	page, limit := utils.NormalizePage(r.Page, r.Limit, DefaultPageLimit, MaxPageLimit)

	search := r.Search
	if r.Query != "" {
		search = r.Query
	}
	sort := r.Sort
	if sort == "" {
		sort = SortNewest
	}

	return ListFilter{
		Search:      search,
		ContentType: ContentType(r.ContentType),
		Country:     r.Country,
		Genre:       Genre(r.Genre),
		Year:        r.Year,
		Sort:        sort,
		Offset:      (page - 1) * limit,
		Limit:       limit,
	}, page
}

// FeaturedRequest binds GET /content/featured.
type FeaturedRequest struct {
	Category string `form:"category" json:"category"`
	Limit    int    `form:"limit" json:"limit"`
}

func (r FeaturedRequest) Validate() error {
	cats := make([]interface{}, len(FeaturedCategories))
	for i, c := range FeaturedCategories {
		cats[i] = string(c)
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.Required, validation.In(cats...)),
		validation.Field(&r.Limit, validation.Min(0), validation.Max(MaxFeaturedLimit)),
	)
}

// CreateContentRequest is the admin payload for a new catalog item.
type CreateContentRequest struct {
	Title              string   `json:"title"`
	OriginalTitle      *string  `json:"original_title"`
	PosterURL          string   `json:"poster_url"`
	BannerURL          *string  `json:"banner_url"`
	Synopsis           string   `json:"synopsis"`
	Year               *int     `json:"year"`
	Country            string   `json:"country"`
	ContentType        string   `json:"content_type"`
	Genres             []string `json:"genres"`
	Rating             *float64 `json:"rating"`
	Episodes           *int     `json:"episodes"`
	Duration           *int     `json:"duration"`
	StreamingPlatforms []string `json:"streaming_platforms"`
	Tags               []string `json:"tags"`
	Status             string   `json:"status"`
}

func (r CreateContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.PosterURL, validation.Required, is.URL),
		validation.Field(&r.BannerURL, validation.NilOrNotEmpty, is.URL),
		validation.Field(&r.Synopsis, validation.Required),
		validation.Field(&r.Year, validation.Min(1900), validation.Max(3000)),
		validation.Field(&r.Country, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.ContentType, validation.Required, validation.In(contentTypeValues()...)),
		validation.Field(&r.Genres, validation.Each(validation.In(genreValues()...))),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&r.Episodes, validation.Min(0)),
		validation.Field(&r.Duration, validation.Min(0)),
		validation.Field(&r.Status, validation.In(string(StatusDraft), string(StatusPublished), string(StatusArchived))),
	)
}

// ToContent builds the entity to insert. Identifiers and the stored slug
// are assigned by the repository.
func (r CreateContentRequest) ToContent() *Content {
	c := &Content{
		Title:              r.Title,
		OriginalTitle:      r.OriginalTitle,
		PosterURL:          r.PosterURL,
		BannerURL:          r.BannerURL,
		Synopsis:           r.Synopsis,
		Year:               r.Year,
		Country:            r.Country,
		ContentType:        ContentType(r.ContentType),
		Episodes:           r.Episodes,
		Duration:           r.Duration,
		StreamingPlatforms: r.StreamingPlatforms,
		Tags:               r.Tags,
		Status:             Status(r.Status),
	}
	for _, g := range r.Genres {
		c.Genres = append(c.Genres, Genre(g))
	}
	if d := utils.ParseFloatToDecimal(r.Rating); d != nil {
		c.Rating = *d
	}
	c.Normalize()
	return c
}

// UpdateContentRequest patches an existing item; nil fields are left alone.
// Identifiers and the stored slug are never updated.
type UpdateContentRequest struct {
	Title              *string   `json:"title"`
	OriginalTitle      *string   `json:"original_title"`
	PosterURL          *string   `json:"poster_url"`
	BannerURL          *string   `json:"banner_url"`
	Synopsis           *string   `json:"synopsis"`
	Year               *int      `json:"year"`
	Country            *string   `json:"country"`
	ContentType        *string   `json:"content_type"`
	Genres             *[]string `json:"genres"`
	Rating             *float64  `json:"rating"`
	Episodes           *int      `json:"episodes"`
	Duration           *int      `json:"duration"`
	StreamingPlatforms *[]string `json:"streaming_platforms"`
	Tags               *[]string `json:"tags"`
	Status             *string   `json:"status"`
}

func (r UpdateContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.PosterURL, validation.NilOrNotEmpty, is.URL),
		validation.Field(&r.BannerURL, is.URL),
		validation.Field(&r.Year, validation.Min(1900), validation.Max(3000)),
		validation.Field(&r.Country, validation.NilOrNotEmpty),
		validation.Field(&r.ContentType, validation.NilOrNotEmpty, validation.In(contentTypeValues()...)),
		validation.Field(&r.Genres, validation.By(func(value interface{}) error {
			genres, _ := value.(*[]string)
			if genres == nil {
				return nil
			}
			return validation.Validate(*genres, validation.Each(validation.In(genreValues()...)))
		})),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&r.Episodes, validation.Min(0)),
		validation.Field(&r.Duration, validation.Min(0)),
		validation.Field(&r.Status, validation.NilOrNotEmpty, validation.In(string(StatusDraft), string(StatusPublished), string(StatusArchived))),
	)
}

// Apply copies the set fields onto c.
func (r UpdateContentRequest) Apply(c *Content) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.OriginalTitle != nil {
		c.OriginalTitle = r.OriginalTitle
	}
	if r.PosterURL != nil {
		c.PosterURL = *r.PosterURL
	}
	if r.BannerURL != nil {
		c.BannerURL = r.BannerURL
	}
	if r.Synopsis != nil {
		c.Synopsis = *r.Synopsis
	}
	if r.Year != nil {
		c.Year = r.Year
	}
	if r.Country != nil {
		c.Country = *r.Country
	}
	if r.ContentType != nil {
		c.ContentType = ContentType(*r.ContentType)
	}
	if r.Genres != nil {
		c.Genres = make([]Genre, 0, len(*r.Genres))
		for _, g := range *r.Genres {
			c.Genres = append(c.Genres, Genre(g))
		}
	}
	if d := utils.ParseFloatToDecimal(r.Rating); d != nil {
		c.Rating = *d
	}
	if r.Episodes != nil {
		c.Episodes = r.Episodes
	}
	if r.Duration != nil {
		c.Duration = r.Duration
	}
	if r.StreamingPlatforms != nil {
		c.StreamingPlatforms = *r.StreamingPlatforms
	}
	if r.Tags != nil {
		c.Tags = *r.Tags
	}
	if r.Status != nil {
		c.Status = Status(*r.Status)
	}
	c.Normalize()
}

// ContentResponse is the public shape of a catalog item. URL is empty for
// records that have no public ID yet.
type ContentResponse struct {
	ID                 uuid.UUID   `json:"id"`
	PublicID           *int64      `json:"public_id,omitempty"`
	URL                string      `json:"url,omitempty"`
	Slug               string      `json:"slug"`
	Title              string      `json:"title"`
	OriginalTitle      *string     `json:"original_title,omitempty"`
	ContentType        ContentType `json:"content_type"`
	Genres             []Genre     `json:"genres"`
	Country            string      `json:"country"`
	Year               *int        `json:"year,omitempty"`
	Rating             float64     `json:"rating"`
	Episodes           *int        `json:"episodes,omitempty"`
	Duration           *int        `json:"duration,omitempty"`
	Synopsis           string      `json:"synopsis"`
	PosterURL          string      `json:"poster_url"`
	BannerURL          *string     `json:"banner_url,omitempty"`
	StreamingPlatforms []string    `json:"streaming_platforms"`
	Tags               []string    `json:"tags"`
	Status             Status      `json:"status,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// ToResponse renders c. url is the canonical path, or "" when c cannot be
// linked. Status is only shown to admins.
func (c *Content) ToResponse(url string, showStatus bool) ContentResponse {
	resp := ContentResponse{
		ID:                 c.CanonicalID,
		PublicID:           c.PublicID,
		URL:                url,
		Slug:               c.Slug,
		Title:              c.Title,
		OriginalTitle:      c.OriginalTitle,
		ContentType:        c.ContentType,
		Genres:             c.Genres,
		Country:            c.Country,
		Year:               c.Year,
		Rating:             c.Rating.InexactFloat64(),
		Episodes:           c.Episodes,
		Duration:           c.Duration,
		Synopsis:           c.Synopsis,
		PosterURL:          c.PosterURL,
		BannerURL:          c.BannerURL,
		StreamingPlatforms: c.StreamingPlatforms,
		Tags:               c.Tags,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	if showStatus {
		resp.Status = c.Status
	}
	return resp
}

// ListResponse is one page of a listing.
type ListResponse struct {
	Items []ContentResponse `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
