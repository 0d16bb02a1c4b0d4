package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Krushna-ai/GDVG/internal/domains/person/model"
	"github.com/Krushna-ai/GDVG/internal/lookup"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct{}

func (fakeService) List(_ context.Context, req model.ListRequest, _ lookup.Scope) (*model.ListResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &model.ListResponse{Items: []model.PersonResponse{}, Total: 0, Page: 1, Limit: 20}, nil
}

func (fakeService) GetBySegment(_ context.Context, segment string, _ lookup.Scope) (*model.PersonResponse, error) {
	if segment == "17419" {
		return &model.PersonResponse{Name: "Bryan Cranston", URL: "/people/17419/bryan-cranston"}, nil
	}
	return nil, model.ErrPersonNotFound
}

func TestPersonRoutes(t *testing.T) {
	h := NewPersonHandler(fakeService{})
	r := gin.New()
	r.GET("/api/people", h.List)
	r.GET("/api/people/:segment", h.GetBySegment)

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/api/people/17419", http.StatusOK, `"url":"/people/17419/bryan-cranston"`},
		{"/api/people/unknown-name", http.StatusNotFound, `"PERSON_NOT_FOUND"`},
		{"/api/people?limit=5", http.StatusOK, `"total_pages":0`},
		{"/api/people?limit=101", http.StatusBadRequest, `"VALIDATION_ERROR"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}
