// Package media is the client for the backend's media endpoints: image
// upload, listing, and deletion. All calls are admin-gated server-side; the
// API client supplies the session token.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/learnhub/internal/api"
	"github.com/sakif/learnhub/internal/model"
)

type Service struct {
	client *api.Client
	logger *slog.Logger
}

func New(client *api.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Upload sends one file as multipart form data and returns the stored item
// (the backend responds with {id, url}).
func (s *Service) Upload(ctx context.Context, filename string, r io.Reader) (*model.MediaItem, error) {
	var item model.MediaItem
	if err := s.client.Upload(ctx, "/api/media/upload", "file", filename, r, &item); err != nil {
		return nil, fmt.Errorf("media: uploading %q: %w", filename, err)
	}
	s.logger.Info("media uploaded",
		slog.Int("id", item.ID),
		slog.String("url", item.URL),
	)
	return &item, nil
}

// List returns all uploaded media, newest first (backend ordering).
func (s *Service) List(ctx context.Context) ([]model.MediaItem, error) {
	var items []model.MediaItem
	if err := s.client.JSON(ctx, http.MethodGet, "/api/media/", nil, &items); err != nil {
		return nil, fmt.Errorf("media: listing: %w", err)
	}
	return items, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.client.JSON(ctx, http.MethodDelete, "/api/media/"+strconv.Itoa(id), nil, nil); err != nil {
		return fmt.Errorf("media: deleting %d: %w", id, err)
	}
	return nil
}
