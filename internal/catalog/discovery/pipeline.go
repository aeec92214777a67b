// Package discovery composes the project listing: fetch ordered candidates
// from storage, narrow with keyword filters and free-text search, window
// the result, and resolve image links for the returned page only.
package discovery

import (
	"context"
	"strings"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

// defaultPageSize is the gallery page the client requests by default; when
// the filtered set is smaller than one page, the upper bound is pulled in
// to the set length instead of running past it.
const defaultPageSize = 9

// ProjectFetcher returns published, non-deleted projects already ordered by
// the sort key (descending). The pipeline never re-sorts in memory.
type ProjectFetcher interface {
	FetchProjects(ctx context.Context, sort domain.SortKey) ([]domain.Project, error)
}

// LinkResolver resolves image links on the page being returned.
type LinkResolver interface {
	ResolveList(ctx context.Context, projects []domain.Project)
}

// ListRequest carries the listing parameters after the routing layer has
// decoded them. Malformed bounds arrive as zero values and degrade to a
// no-op rather than an error.
type ListRequest struct {
	Sort    domain.SortKey
	Search  string
	Filters []string
	From    int
	To      int
}

type Pipeline struct {
	fetcher  ProjectFetcher
	resolver LinkResolver
}

func NewPipeline(fetcher ProjectFetcher, resolver LinkResolver) *Pipeline {
	return &Pipeline{fetcher: fetcher, resolver: resolver}
}

// ListProjects runs the full listing sequence. Fetch failures surface to
// the caller; everything downstream of the fetch cannot fail.
func (p *Pipeline) ListProjects(ctx context.Context, req ListRequest) ([]domain.Project, error) {
	candidates, err := p.fetcher.FetchProjects(ctx, req.Sort)
	if err != nil {
		return nil, err
	}

	filtered := applyFilters(candidates, req.Filters)
	filtered = applySearch(filtered, req.Search)

	page := window(filtered, req.From, req.To)
	p.resolver.ResolveList(ctx, page)
	return page, nil
}

// applyFilters keeps projects whose keyword set contains every filter term
// as a case-insensitive substring. No filters passes everything through.
func applyFilters(projects []domain.Project, filters []string) []domain.Project {
	if len(filters) == 0 {
		return projects
	}

	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		keywords := joinedLower(p.Keywords)
		keep := true
		for _, f := range filters {
			if !strings.Contains(keywords, strings.ToLower(f)) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, p)
		}
	}
	return out
}

// applySearch splits the search string on commas into terms. Every term
// must match somewhere in name, keywords, or authors; within a term the
// three fields are alternatives.
func applySearch(projects []domain.Project, search string) []domain.Project {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return projects
	}

	terms := splitTerms(search)
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		name := strings.ToLower(p.Name)
		keywords := joinedLower(p.Keywords)
		authors := joinedLower(p.Authors)

		keep := true
		for _, term := range terms {
			if !strings.Contains(name, term) &&
				!strings.Contains(keywords, term) &&
				!strings.Contains(authors, term) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, p)
		}
	}
	return out
}

// window slices [from, to) out of the filtered set. When the set holds less
// than one default page, the upper bound is clamped to the set length; a
// request for fewer items is never expanded. Out-of-range bounds degrade to
// an empty or shortened page, never an error.
func window(projects []domain.Project, from, to int) []domain.Project {
	n := len(projects)
	if n < defaultPageSize && to > n {
		to = n
	}

	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from >= to {
		return []domain.Project{}
	}
	return projects[from:to]
}

func splitTerms(s string) []string {
	parts := strings.Split(s, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

func joinedLower(parts []string) string {
	return strings.ToLower(strings.Join(parts, ","))
}
