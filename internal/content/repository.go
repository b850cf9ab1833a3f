// Package content provides the chapter repository: the hierarchical chapter
// tree, slug lookup, search, heading extraction, and the admin CRUD surface.
//
// The backend is the system of record, but its chapter surface is still
// incomplete, so reads follow a documented substitution policy: attempt the
// backend first and fall back to the built-in dataset (DefaultChapters) on
// any failure. The fallback is a named branch — callers of GetChapters never
// observe a fetch failure.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/sakif/learnhub/internal/api"
	"github.com/sakif/learnhub/internal/model"
)

// Repository serves chapter data. Construct with New.
type Repository struct {
	client *api.Client
	logger *slog.Logger
}

func New(client *api.Client, logger *slog.Logger) *Repository {
	return &Repository{client: client, logger: logger}
}

// GetChapters returns the root-level ordered chapter list with nested
// children. Never fails: any fetch or decode error substitutes the built-in
// dataset.
func (r *Repository) GetChapters(ctx context.Context) []model.Chapter {
	chapters, err := r.fetchChapters(ctx)
	if err != nil {
		r.logger.Debug("chapter fetch failed, serving built-in dataset",
			slog.String("error", err.Error()),
		)
		return DefaultChapters()
	}
	return chapters
}

// fetchChapters is the backend branch of the substitution policy. An empty or
// structurally unusable response counts as a failure so the caller can fall
// back.
func (r *Repository) fetchChapters(ctx context.Context) ([]model.Chapter, error) {
	var chapters []model.Chapter
	if err := r.client.JSON(ctx, http.MethodGet, "/api/content/chapters", nil, &chapters); err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("content: backend returned no chapters")
	}
	for _, c := range chapters {
		if c.Slug == "" {
			return nil, fmt.Errorf("content: backend chapter %q has no slug", c.ID)
		}
	}
	sortTree(chapters)
	return chapters, nil
}

// GetChapter returns the first chapter matching slug in pre-order, or nil.
// Slugs are unique across the flattened tree, so "first" is also "only".
func (r *Repository) GetChapter(ctx context.Context, slug string) *model.Chapter {
	for _, chapter := range Flatten(r.GetChapters(ctx)) {
		if chapter.Slug == slug {
			c := chapter
			return &c
		}
	}
	return nil
}

// Flatten produces the pre-order traversal of a chapter forest: each node,
// then its children depth-first, sibling order preserved. The total count
// always equals the number of nodes in the tree.
func Flatten(chapters []model.Chapter) []model.Chapter {
	var result []model.Chapter
	for _, chapter := range chapters {
		result = append(result, chapter)
		if len(chapter.Children) > 0 {
			result = append(result, Flatten(chapter.Children)...)
		}
	}
	return result
}

// Search matches query case-insensitively against the title and description
// of every flattened chapter. Results come back in flattened order — there is
// no relevance ranking. An empty (or all-whitespace) query yields no results.
func (r *Repository) Search(ctx context.Context, query string) []model.SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []model.SearchResult
	for _, chapter := range Flatten(r.GetChapters(ctx)) {
		if !strings.Contains(strings.ToLower(chapter.Title), query) &&
			!strings.Contains(strings.ToLower(chapter.Description), query) {
			continue
		}
		results = append(results, model.SearchResult{
			ID:      chapter.ID,
			Title:   chapter.Title,
			Excerpt: chapter.Description,
			Type:    "chapter",
			URL:     "/learn/" + chapter.Slug,
		})
	}
	return results
}

// sortTree orders siblings by Order ascending at every level. The sort is
// stable, so equal Order values keep their insertion order.
func sortTree(chapters []model.Chapter) {
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Order < chapters[j].Order
	})
	for i := range chapters {
		sortTree(chapters[i].Children)
	}
}
