package system

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentmodel "github.com/Krushna-ai/GDVG/internal/domains/content/model"
)

type fakePinger struct{ err error }

func (f fakePinger) HealthCheck(context.Context) error { return f.err }
func (f fakePinger) Ping(context.Context) error        { return f.err }

type fakeStats struct{ err error }

func (f fakeStats) Stats(context.Context) (*contentmodel.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &contentmodel.Stats{Total: 42}, nil
}

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/", h.Banner)
	r.GET("/api/health", h.Health)
	r.GET("/api/health/deep", h.DeepHealth)
	r.GET("/api/resolve/:segment", h.Resolve)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestBanner(t *testing.T) {
	w := get(newRouter(NewHandler(fakePinger{}, fakePinger{}, fakeStats{}, "test")), "/api/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Global Drama Verse Guide API"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	w := get(newRouter(NewHandler(fakePinger{err: errors.New("down")}, fakePinger{}, fakeStats{}, "1.2.3")), "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)
}

func TestDeepHealth(t *testing.T) {
	tests := []struct {
		name     string
		db       error
		cache    error
		content  error
		wantCode int
	}{
		{"all up", nil, nil, nil, http.StatusOK},
		{"database down", errors.New("refused"), nil, nil, http.StatusServiceUnavailable},
		{"cache down", nil, errors.New("timeout"), nil, http.StatusServiceUnavailable},
		{"content query fails", nil, nil, errors.New("no table"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(fakePinger{err: tt.db}, fakePinger{err: tt.cache}, fakeStats{err: tt.content}, "test")
			w := get(newRouter(h), "/api/health/deep")
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestDeepHealthReportsCount(t *testing.T) {
	w := get(newRouter(NewHandler(fakePinger{}, fakePinger{}, fakeStats{}, "test")), "/api/health/deep")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			ContentCount int `json:"content_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 42, body.Data.ContentCount)
}

func TestResolve(t *testing.T) {
	r := newRouter(NewHandler(fakePinger{}, fakePinger{}, fakeStats{}, "test"))

	tests := []struct {
		segment  string
		wantKind string
		wantKey  string
	}{
		{"1396", "public_id", "1396"},
		{"a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d", "canonical_id", "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"},
		{"squid-game_a1b2c3d4", "short_prefix", "a1b2c3d4"},
		{"squid-game", "legacy_title", "squid-game"},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			w := get(r, "/api/resolve/"+tt.segment)
			require.Equal(t, http.StatusOK, w.Code)

			var body struct {
				Data struct {
					Kind string `json:"kind"`
					Key  string `json:"key"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Data.Kind)
			assert.Equal(t, tt.wantKey, body.Data.Key)
		})
	}
}
