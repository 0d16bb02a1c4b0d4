package model

import (
	"math"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krushna-ai/GDVG/internal/shared/utils"
)

func TestListRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ListRequest
		wantErr string
	}{
		{name: "empty is valid", req: ListRequest{}},
		{name: "all filters", req: ListRequest{Page: 2, Limit: 100, ContentType: "drama", Genre: "slice_of_life", Year: 2020, Sort: "popular"}},
		{name: "limit too large", req: ListRequest{Limit: 101}, wantErr: "limit"},
		{name: "page too large", req: ListRequest{Page: 1 << 62}, wantErr: "page"},
		{name: "unknown type", req: ListRequest{ContentType: "podcast"}, wantErr: "content_type"},
		{name: "unknown genre", req: ListRequest{Genre: "western"}, wantErr: "genre"},
		{name: "unknown sort", req: ListRequest{Sort: "random"}, wantErr: "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tt.wantErr)
		})
	}
}

func TestListRequestFilter(t *testing.T) {
	f, page := ListRequest{}.Filter()
	assert.Equal(t, 1, page)
	assert.Equal(t, ListFilter{Sort: SortNewest, Offset: 0, Limit: DefaultPageLimit}, f)

	f, page = ListRequest{Page: 3, Limit: 10, Search: "old", Query: "new", Genre: "crime"}.Filter()
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, f.Offset)
	assert.Equal(t, "new", f.Search)
	assert.Equal(t, GenreCrime, f.Genre)

	f, page = ListRequest{Page: math.MaxInt, Limit: MaxPageLimit}.Filter()
	assert.Equal(t, utils.MaxPage, page)
	assert.Equal(t, (utils.MaxPage-1)*MaxPageLimit, f.Offset)
	assert.Positive(t, f.Offset)
}

func TestFeaturedRequestValidate(t *testing.T) {
	assert.NoError(t, FeaturedRequest{Category: "top_rated", Limit: 10}.Validate())
	assert.Error(t, FeaturedRequest{}.Validate())
	assert.Error(t, FeaturedRequest{Category: "hot"}.Validate())
	assert.Error(t, FeaturedRequest{Category: "trending", Limit: MaxFeaturedLimit + 1}.Validate())
}

func validCreate() CreateContentRequest {
	rating := 8.54
	return CreateContentRequest{
		Title:       "Squid Game",
		PosterURL:   "https://img.example/squid.jpg",
		Synopsis:    "Hundreds of cash-strapped players accept an invitation.",
		Country:     "South Korea",
		ContentType: "drama",
		Genres:      []string{"thriller", "drama"},
		Rating:      &rating,
	}
}

func TestCreateContentRequestValidate(t *testing.T) {
	assert.NoError(t, validCreate().Validate())

	bad := validCreate()
	bad.Genres = []string{"thriller", "space_opera"}
	bad.PosterURL = "not a url"
	tooHigh := 11.0
	bad.Rating = &tooHigh

	var verrs validation.Errors
	require.ErrorAs(t, bad.Validate(), &verrs)
	assert.Contains(t, verrs, "genres")
	assert.Contains(t, verrs, "poster_url")
	assert.Contains(t, verrs, "rating")
}

func TestCreateContentRequestToContent(t *testing.T) {
	c := validCreate().ToContent()

	assert.Equal(t, TypeDrama, c.ContentType)
	assert.Equal(t, []Genre{GenreThriller, GenreDrama}, c.Genres)
	assert.True(t, decimal.RequireFromString("8.5").Equal(c.Rating))
	assert.Equal(t, StatusPublished, c.Status)
	assert.NotNil(t, c.Tags)
	assert.NotNil(t, c.StreamingPlatforms)
	assert.Nil(t, c.PublicID)
}

func TestUpdateContentRequest(t *testing.T) {
	title := "Squid Game 2"
	genres := []string{"action"}
	status := "archived"
	req := UpdateContentRequest{Title: &title, Genres: &genres, Status: &status}
	require.NoError(t, req.Validate())

	c := validCreate().ToContent()
	c.Slug = "squid-game"
	req.Apply(c)

	assert.Equal(t, "Squid Game 2", c.Title)
	assert.Equal(t, "squid-game", c.Slug)
	assert.Equal(t, []Genre{GenreAction}, c.Genres)
	assert.Equal(t, StatusArchived, c.Status)
	assert.Equal(t, "South Korea", c.Country)

	badGenres := []string{"nope"}
	assert.Error(t, UpdateContentRequest{Genres: &badGenres}.Validate())
	empty := ""
	assert.Error(t, UpdateContentRequest{Title: &empty}.Validate())
}

func TestToResponse(t *testing.T) {
	id := int64(736993)
	c := &Content{PublicID: &id, Title: "Breaking Bad", Rating: decimal.RequireFromString("9.5"), Status: StatusDraft}
	c.Normalize()

	resp := c.ToResponse("/series/736993/breaking-bad", false)
	assert.Equal(t, 9.5, resp.Rating)
	assert.Equal(t, "/series/736993/breaking-bad", resp.URL)
	assert.Empty(t, resp.Status)

	assert.Equal(t, StatusDraft, c.ToResponse("", true).Status)
	assert.False(t, c.IsVisible())
}
