package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/discovery"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

type fakePipeline struct {
	req      discovery.ListRequest
	projects []domain.Project
	err      error
}

func (f *fakePipeline) ListProjects(_ context.Context, req discovery.ListRequest) ([]domain.Project, error) {
	f.req = req
	return f.projects, f.err
}

func listRouter(p *fakePipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(nil, nil, p, nil, nil)
	r.GET("/projects", h.list)
	return r
}

func TestListHandler(t *testing.T) {
	t.Run("decodes query parameters into the listing request", func(t *testing.T) {
		pipeline := &fakePipeline{projects: []domain.Project{{ID: 1}}}
		r := listRouter(pipeline)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/projects?sortby=MOST_VIEWED&search=origami&filter=dna&filter=scaffold&from=9&to=18", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.SortMostViewed, pipeline.req.Sort)
		assert.Equal(t, "origami", pipeline.req.Search)
		assert.Equal(t, []string{"dna", "scaffold"}, pipeline.req.Filters)
		assert.Equal(t, 9, pipeline.req.From)
		assert.Equal(t, 18, pipeline.req.To)
	})

	t.Run("malformed bounds fall back to the first page", func(t *testing.T) {
		pipeline := &fakePipeline{}
		r := listRouter(pipeline)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects?from=abc&to=", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, pipeline.req.From)
		assert.Equal(t, 9, pipeline.req.To)
	})

	t.Run("pipeline failure responds 500", func(t *testing.T) {
		r := listRouter(&fakePipeline{err: errors.New("fetch failed")})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
