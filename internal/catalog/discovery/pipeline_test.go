package discovery

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

type fakeFetcher struct {
	projects []domain.Project
	err      error
	sort     domain.SortKey
}

func (f *fakeFetcher) FetchProjects(_ context.Context, sort domain.SortKey) ([]domain.Project, error) {
	f.sort = sort
	return f.projects, f.err
}

type countingResolver struct {
	resolved int
}

func (r *countingResolver) ResolveList(_ context.Context, projects []domain.Project) {
	r.resolved += len(projects)
	for i := range projects {
		projects[i].CoverImage = "https://signed.example/" + projects[i].CoverImage
	}
}

func published(n int) []domain.Project {
	out := make([]domain.Project, n)
	for i := range out {
		out[i] = domain.Project{
			ID:         int64(i + 1),
			Name:       fmt.Sprintf("Project %d", i+1),
			CoverImage: fmt.Sprintf("covers/%d.png", i+1),
		}
	}
	return out
}

func TestListProjects(t *testing.T) {
	t.Run("page bound clamps to the result set when it is under one page", func(t *testing.T) {
		fetcher := &fakeFetcher{projects: published(12)}
		// 12 >= default page size: the slice bound still may not run past
		// the data, so a request for 20 yields all 12.
		p := NewPipeline(fetcher, &countingResolver{})

		got, err := p.ListProjects(context.Background(), ListRequest{From: 0, To: 20})
		require.NoError(t, err)
		assert.Len(t, got, 12)
	})

	t.Run("a request for fewer items is not expanded", func(t *testing.T) {
		p := NewPipeline(&fakeFetcher{projects: published(5)}, &countingResolver{})

		got, err := p.ListProjects(context.Background(), ListRequest{From: 0, To: 3})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("sort key is delegated to the fetcher", func(t *testing.T) {
		fetcher := &fakeFetcher{projects: published(2)}
		p := NewPipeline(fetcher, &countingResolver{})

		_, err := p.ListProjects(context.Background(), ListRequest{Sort: domain.SortMostViewed, To: 9})
		require.NoError(t, err)
		assert.Equal(t, domain.SortMostViewed, fetcher.sort)
	})

	t.Run("links are resolved on the returned page only", func(t *testing.T) {
		resolver := &countingResolver{}
		p := NewPipeline(&fakeFetcher{projects: published(30)}, resolver)

		got, err := p.ListProjects(context.Background(), ListRequest{From: 0, To: 9})
		require.NoError(t, err)
		assert.Len(t, got, 9)
		assert.Equal(t, 9, resolver.resolved)
		assert.Contains(t, got[0].CoverImage, "https://signed.example/")
	})

	t.Run("fetch failure surfaces to the caller", func(t *testing.T) {
		p := NewPipeline(&fakeFetcher{err: errors.New("connection refused")}, &countingResolver{})

		_, err := p.ListProjects(context.Background(), ListRequest{To: 9})
		assert.Error(t, err)
	})

	t.Run("ordering of the fetched set is preserved", func(t *testing.T) {
		p := NewPipeline(&fakeFetcher{projects: published(4)}, &countingResolver{})

		got, err := p.ListProjects(context.Background(), ListRequest{To: 9})
		require.NoError(t, err)
		for i, proj := range got {
			assert.Equal(t, int64(i+1), proj.ID)
		}
	})
}

func TestApplySearch(t *testing.T) {
	projects := []domain.Project{
		{Name: "Alpha Design", Keywords: []string{"gamma"}, Authors: []string{"Carol"}},
		{Name: "Beta Box", Keywords: []string{"alpha"}, Authors: []string{"Dan"}},
	}

	t.Run("every comma-separated term must match one of the fields", func(t *testing.T) {
		got := applySearch(projects, "alpha,beta")
		// "Alpha Design" misses the beta term even though alpha matches.
		require.Len(t, got, 1)
		assert.Equal(t, "Beta Box", got[0].Name)
	})

	t.Run("a term may match via keywords or authors", func(t *testing.T) {
		assert.Len(t, applySearch(projects, "gamma"), 1)
		assert.Len(t, applySearch(projects, "carol"), 1)
	})

	t.Run("matching is case-insensitive substring", func(t *testing.T) {
		got := applySearch(projects, "ALPHA")
		assert.Len(t, got, 2)
	})

	t.Run("blank search passes everything through", func(t *testing.T) {
		assert.Len(t, applySearch(projects, "  "), 2)
	})
}

func TestApplyFilters(t *testing.T) {
	projects := []domain.Project{
		{Name: "A", Keywords: []string{"origami", "scaffold"}},
		{Name: "B", Keywords: []string{"origami"}},
	}

	t.Run("filters are conjunctive across terms", func(t *testing.T) {
		got := applyFilters(projects, []string{"origami", "scaffold"})
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].Name)
	})

	t.Run("single filter matches case-insensitively", func(t *testing.T) {
		assert.Len(t, applyFilters(projects, []string{"Origami"}), 2)
	})

	t.Run("no filters pass everything through", func(t *testing.T) {
		assert.Len(t, applyFilters(projects, nil), 2)
	})
}

func TestWindow(t *testing.T) {
	t.Run("negative or inverted bounds yield an empty page", func(t *testing.T) {
		assert.Empty(t, window(published(5), -3, -1))
		assert.Empty(t, window(published(5), 4, 2))
	})

	t.Run("bounds inside the set slice exactly", func(t *testing.T) {
		got := window(published(10), 3, 6)
		require.Len(t, got, 3)
		assert.Equal(t, int64(4), got[0].ID)
	})
}
