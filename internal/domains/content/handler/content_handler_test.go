package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/lookup"
	"github.com/Krushna-ai/GDVG/internal/shared/middleware"
	"github.com/Krushna-ai/GDVG/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	scope    lookup.Scope
	featured model.FeaturedRequest
	fail     error
}

func (f *fakeService) List(_ context.Context, req model.ListRequest, scope lookup.Scope) (*model.ListResponse, error) {
	f.scope = scope
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &model.ListResponse{Items: []model.ContentResponse{{Title: "Breaking Bad"}}, Total: 41, Page: 1, Limit: 20}, nil
}

func (f *fakeService) Featured(_ context.Context, req model.FeaturedRequest) ([]model.ContentResponse, error) {
	f.featured = req
	return []model.ContentResponse{}, nil
}

func (f *fakeService) GetBySegment(_ context.Context, segment string, scope lookup.Scope) (*model.ContentResponse, error) {
	f.scope = scope
	if f.fail != nil {
		return nil, f.fail
	}
	if segment != "736993" {
		return nil, model.ErrContentNotFound
	}
	id := int64(736993)
	return &model.ContentResponse{PublicID: &id, Title: "Breaking Bad", URL: "/series/736993/breaking-bad"}, nil
}

func (f *fakeService) Countries(context.Context) ([]model.CountryCount, error) {
	return []model.CountryCount{{Country: "South Korea", Count: 3}}, nil
}

func (f *fakeService) Create(_ context.Context, req model.CreateContentRequest) (*model.ContentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &model.ContentResponse{Title: req.Title}, nil
}

func (f *fakeService) Update(_ context.Context, _ uuid.UUID, _ model.UpdateContentRequest) (*model.ContentResponse, error) {
	return nil, model.ErrDuplicateSlug
}

// asViewer installs a fixed viewer the way Authenticate would.
func asViewer(v middleware.Viewer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithViewer(c.Request.Context(), v))
		c.Next()
	}
}

func newRouter(svc *fakeService, viewer middleware.Viewer) *gin.Engine {
	h := NewContentHandler(svc)
	r := gin.New()
	r.Use(asViewer(viewer))
	r.GET("/api/content", h.List)
	r.GET("/api/content/featured", h.Featured)
	r.GET("/api/content/:segment", h.GetBySegment)
	r.GET("/api/trending", h.Trending)
	r.GET("/api/countries", h.Countries)
	r.GET("/api/genres", h.Genres)
	r.POST("/api/admin/content", h.Create)
	r.PUT("/api/admin/content/:id", h.Update)
	return r
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestGetBySegment(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc, middleware.Viewer{})

	w, env := do(r, http.MethodGet, "/api/content/736993", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "/series/736993/breaking-bad", env.Data.(map[string]interface{})["url"])
	assert.False(t, svc.scope.IncludeHidden)

	w, env = do(r, http.MethodGet, "/api/content/no-such-show", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONTENT_NOT_FOUND", env.Error.Code)
}

func TestGetBySegmentAdminScope(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc, middleware.Viewer{Admin: true, Username: "curator"})

	do(r, http.MethodGet, "/api/content/736993", "")
	assert.True(t, svc.scope.IncludeHidden)
}

func TestGetBySegmentStoreFailure(t *testing.T) {
	svc := &fakeService{fail: errors.New("pool closed")}
	r := newRouter(svc, middleware.Viewer{})

	w, env := do(r, http.MethodGet, "/api/content/736993", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, env.Error)
	assert.NotContains(t, env.Error.Message, "pool closed")
}

func TestList(t *testing.T) {
	r := newRouter(&fakeService{}, middleware.Viewer{})

	w, env := do(r, http.MethodGet, "/api/content?page=1&limit=20", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 3, env.Meta.TotalPages)

	w, env = do(r, http.MethodGet, "/api/content?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "limit")

	w, _ = do(r, http.MethodGet, "/api/content?page=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrendingAlias(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc, middleware.Viewer{})

	w, _ := do(r, http.MethodGet, "/api/trending?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.FeaturedRequest{Category: "trending", Limit: 5}, svc.featured)
}

func TestStaticListings(t *testing.T) {
	r := newRouter(&fakeService{}, middleware.Viewer{})

	w, env := do(r, http.MethodGet, "/api/genres", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data, len(model.Genres))

	w, _ = do(r, http.MethodGet, "/api/countries", "")
	assert.JSONEq(t, `{"success":true,"data":[{"country":"South Korea","count":3}]}`, w.Body.String())
}

func TestCreateAndUpdateErrors(t *testing.T) {
	r := newRouter(&fakeService{}, middleware.Viewer{Admin: true})

	w, _ := do(r, http.MethodPost, "/api/admin/content", `{"title":"Moving","poster_url":"https://img.example/m.jpg","synopsis":"s","country":"KR","content_type":"drama"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env := do(r, http.MethodPost, "/api/admin/content", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, _ = do(r, http.MethodPost, "/api/admin/content", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(r, http.MethodPut, "/api/admin/content/not-a-uuid", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(r, http.MethodPut, "/api/admin/content/"+uuid.NewString(), `{}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_SLUG", env.Error.Code)
}
