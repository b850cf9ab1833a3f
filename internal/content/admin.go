package content

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sakif/learnhub/internal/model"
)

// Admin CRUD surface against the backend-of-record. Unlike the read path,
// these calls do not mask failures — the content editor needs to see them.
// All of them require an authenticated session; the API client attaches the
// token header automatically.

// ChapterInput is the create/update payload for a chapter.
type ChapterInput struct {
	Title string `json:"title"`
	Order int    `json:"order,omitempty"`
}

// PageInput is the create/update payload for a page.
type PageInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order,omitempty"`
	Status  string `json:"status,omitempty"`
}

// ListChapters returns the backend's raw chapter list without the fallback
// policy applied — the editor works against what is actually stored.
func (r *Repository) ListChapters(ctx context.Context) ([]model.Chapter, error) {
	var chapters []model.Chapter
	if err := r.client.JSON(ctx, http.MethodGet, "/api/content/chapters", nil, &chapters); err != nil {
		return nil, fmt.Errorf("content: listing chapters: %w", err)
	}
	return chapters, nil
}

func (r *Repository) CreateChapter(ctx context.Context, input ChapterInput) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.client.JSON(ctx, http.MethodPost, "/api/content/chapters", input, &chapter); err != nil {
		return nil, fmt.Errorf("content: creating chapter: %w", err)
	}
	return &chapter, nil
}

func (r *Repository) UpdateChapter(ctx context.Context, id string, input ChapterInput) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.client.JSON(ctx, http.MethodPut, "/api/content/chapters/"+id, input, &chapter); err != nil {
		return nil, fmt.Errorf("content: updating chapter %s: %w", id, err)
	}
	return &chapter, nil
}

func (r *Repository) DeleteChapter(ctx context.Context, id string) error {
	if err := r.client.JSON(ctx, http.MethodDelete, "/api/content/chapters/"+id, nil, nil); err != nil {
		return fmt.Errorf("content: deleting chapter %s: %w", id, err)
	}
	return nil
}

func (r *Repository) ListPages(ctx context.Context, chapterID string) ([]model.Page, error) {
	var pages []model.Page
	path := "/api/content/chapters/" + chapterID + "/pages"
	if err := r.client.JSON(ctx, http.MethodGet, path, nil, &pages); err != nil {
		return nil, fmt.Errorf("content: listing pages of chapter %s: %w", chapterID, err)
	}
	return pages, nil
}

func (r *Repository) CreatePage(ctx context.Context, chapterID string, input PageInput) (*model.Page, error) {
	var page model.Page
	path := "/api/content/chapters/" + chapterID + "/pages"
	if err := r.client.JSON(ctx, http.MethodPost, path, input, &page); err != nil {
		return nil, fmt.Errorf("content: creating page in chapter %s: %w", chapterID, err)
	}
	return &page, nil
}

func (r *Repository) UpdatePage(ctx context.Context, pageID int, input PageInput) (*model.Page, error) {
	var page model.Page
	path := fmt.Sprintf("/api/content/pages/%d", pageID)
	if err := r.client.JSON(ctx, http.MethodPut, path, input, &page); err != nil {
		return nil, fmt.Errorf("content: updating page %d: %w", pageID, err)
	}
	return &page, nil
}

func (r *Repository) DeletePage(ctx context.Context, pageID int) error {
	path := fmt.Sprintf("/api/content/pages/%d", pageID)
	if err := r.client.JSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("content: deleting page %d: %w", pageID, err)
	}
	return nil
}
