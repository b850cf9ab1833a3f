// Package preferences records per-user interaction state: liked, bookmarked,
// and completed chapters plus aggregate learning stats.
//
// Each user's preferences live in one JSON blob under the key
// "user_preferences_<userID>", so different users never collide. Every
// mutation is a full read-modify-write of that blob — no partial updates.
// This is safe only because there is a single active writer per user per
// device; concurrent writers are last-write-wins by the storage contract.
//
// Storage failures degrade, never propagate: reads fall back to the all-empty
// default and writes are dropped with a warning.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/sakif/learnhub/internal/model"
	"github.com/sakif/learnhub/internal/storage"
)

const keyPrefix = "user_preferences_"

// Service is the preferences store. Construct with New.
type Service struct {
	store  storage.Store
	logger *slog.Logger
}

func New(store storage.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func storageKey(userID string) string {
	return keyPrefix + userID
}

// Get returns the user's persisted preferences, or the all-empty default when
// nothing is stored yet (or the blob is unreadable). Never fails.
func (s *Service) Get(ctx context.Context, userID string) model.UserPreferences {
	raw, err := s.store.Get(ctx, storageKey(userID))
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("reading preferences failed, using defaults",
				slog.String("userID", userID),
				slog.String("error", err.Error()),
			)
		}
		return model.DefaultPreferences()
	}

	prefs := model.DefaultPreferences()
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.logger.Warn("persisted preferences are unreadable, using defaults",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return model.DefaultPreferences()
	}
	// A hand-edited or legacy blob may carry null sets; keep them appendable.
	if prefs.LikedChapters == nil {
		prefs.LikedChapters = []string{}
	}
	if prefs.BookmarkedChapters == nil {
		prefs.BookmarkedChapters = []string{}
	}
	if prefs.CompletedChapters == nil {
		prefs.CompletedChapters = []string{}
	}
	return prefs
}

// Patch is a partial preferences update: nil fields keep their current value.
type Patch struct {
	LikedChapters      []string
	BookmarkedChapters []string
	CompletedChapters  []string
	LearningStreak     *int
	TotalTimeSpent     *float64
}

// Update merges patch into the user's preferences and persists the result.
func (s *Service) Update(ctx context.Context, userID string, patch Patch) {
	prefs := s.Get(ctx, userID)
	if patch.LikedChapters != nil {
		prefs.LikedChapters = patch.LikedChapters
	}
	if patch.BookmarkedChapters != nil {
		prefs.BookmarkedChapters = patch.BookmarkedChapters
	}
	if patch.CompletedChapters != nil {
		prefs.CompletedChapters = patch.CompletedChapters
	}
	if patch.LearningStreak != nil {
		prefs.LearningStreak = *patch.LearningStreak
	}
	if patch.TotalTimeSpent != nil {
		prefs.TotalTimeSpent = *patch.TotalTimeSpent
	}
	s.write(ctx, userID, prefs)
}

// ToggleLike flips chapterID's membership in the liked set and reports the
// new state (true = now liked). Calling twice restores the original state.
func (s *Service) ToggleLike(ctx context.Context, userID, chapterID string) bool {
	prefs := s.Get(ctx, userID)
	prefs.LikedChapters, _ = toggle(prefs.LikedChapters, chapterID)
	liked := contains(prefs.LikedChapters, chapterID)
	s.write(ctx, userID, prefs)
	return liked
}

// ToggleBookmark is ToggleLike over the bookmarked set.
func (s *Service) ToggleBookmark(ctx context.Context, userID, chapterID string) bool {
	prefs := s.Get(ctx, userID)
	prefs.BookmarkedChapters, _ = toggle(prefs.BookmarkedChapters, chapterID)
	bookmarked := contains(prefs.BookmarkedChapters, chapterID)
	s.write(ctx, userID, prefs)
	return bookmarked
}

// MarkCompleted adds chapterID to the completed set. Idempotent: when the
// chapter is already completed nothing is written at all.
func (s *Service) MarkCompleted(ctx context.Context, userID, chapterID string) {
	prefs := s.Get(ctx, userID)
	if contains(prefs.CompletedChapters, chapterID) {
		return
	}
	prefs.CompletedChapters = append(prefs.CompletedChapters, chapterID)
	s.write(ctx, userID, prefs)
}

// write persists the full blob. Failures are logged and dropped.
func (s *Service) write(ctx context.Context, userID string, prefs model.UserPreferences) {
	blob, err := json.Marshal(prefs)
	if err == nil {
		err = s.store.Set(ctx, storageKey(userID), string(blob))
	}
	if err != nil {
		s.logger.Warn("persisting preferences failed, update dropped",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
	}
}

// toggle removes id when present, appends it when absent. The second return
// reports whether the id was present before.
func toggle(set []string, id string) ([]string, bool) {
	for i, v := range set {
		if v == id {
			return append(set[:i], set[i+1:]...), true
		}
	}
	return append(set, id), false
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
