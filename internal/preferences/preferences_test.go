package preferences

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/learnhub/internal/model"
	"github.com/sakif/learnhub/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// countingStore wraps a Store and counts writes, so tests can assert that
// idempotent operations really skip the write.
type countingStore struct {
	storage.Store
	sets int
}

func (c *countingStore) Set(ctx context.Context, key, value string) error {
	c.sets++
	return c.Store.Set(ctx, key, value)
}

// failingStore simulates unavailable persistence.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("storage offline")
}
func (failingStore) Set(context.Context, string, string) error {
	return errors.New("storage offline")
}
func (failingStore) Delete(context.Context, string) error {
	return errors.New("storage offline")
}

func newTestService(t *testing.T) (*Service, *countingStore) {
	t.Helper()
	store := &countingStore{Store: storage.NewMemory()}
	return New(store, testLogger()), store
}

func TestGet_DefaultsForNewUser(t *testing.T) {
	s, _ := newTestService(t)

	prefs := s.Get(context.Background(), "fresh@x.io")
	assert.Empty(t, prefs.LikedChapters)
	assert.Empty(t, prefs.BookmarkedChapters)
	assert.Empty(t, prefs.CompletedChapters)
	assert.Zero(t, prefs.LearningStreak)
	assert.Zero(t, prefs.TotalTimeSpent)
	// Non-nil sets, so callers can append and JSON round-trips as [].
	assert.NotNil(t, prefs.LikedChapters)
}

func TestToggleLike_IsAnInvolution(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	assert.True(t, s.ToggleLike(ctx, "u@x.io", "ch-1"))
	assert.Contains(t, s.Get(ctx, "u@x.io").LikedChapters, "ch-1")

	assert.False(t, s.ToggleLike(ctx, "u@x.io", "ch-1"))
	assert.NotContains(t, s.Get(ctx, "u@x.io").LikedChapters, "ch-1")
}

func TestToggleBookmark_IsAnInvolution(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	assert.True(t, s.ToggleBookmark(ctx, "u@x.io", "ch-2"))
	assert.False(t, s.ToggleBookmark(ctx, "u@x.io", "ch-2"))
	assert.Empty(t, s.Get(ctx, "u@x.io").BookmarkedChapters)
}

func TestToggle_SetsAreIndependent(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	s.ToggleLike(ctx, "u@x.io", "ch-1")
	s.ToggleBookmark(ctx, "u@x.io", "ch-2")
	s.MarkCompleted(ctx, "u@x.io", "ch-3")

	prefs := s.Get(ctx, "u@x.io")
	assert.Equal(t, []string{"ch-1"}, prefs.LikedChapters)
	assert.Equal(t, []string{"ch-2"}, prefs.BookmarkedChapters)
	assert.Equal(t, []string{"ch-3"}, prefs.CompletedChapters)
}

func TestMarkCompleted_Idempotent(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()

	s.MarkCompleted(ctx, "u@x.io", "ch-1")
	writesAfterFirst := store.sets

	s.MarkCompleted(ctx, "u@x.io", "ch-1")
	prefs := s.Get(ctx, "u@x.io")

	assert.Equal(t, []string{"ch-1"}, prefs.CompletedChapters)
	// The repeat call must not write at all.
	assert.Equal(t, writesAfterFirst, store.sets)
}

func TestUpdate_PartialMergeRoundTrip(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	s.Update(ctx, "u@x.io", Patch{LikedChapters: []string{"x"}})
	assert.Equal(t, []string{"x"}, s.Get(ctx, "u@x.io").LikedChapters)

	streak := 4
	minutes := 125.5
	s.Update(ctx, "u@x.io", Patch{LearningStreak: &streak, TotalTimeSpent: &minutes})

	prefs := s.Get(ctx, "u@x.io")
	assert.Equal(t, []string{"x"}, prefs.LikedChapters) // untouched by the second patch
	assert.Equal(t, 4, prefs.LearningStreak)
	assert.Equal(t, 125.5, prefs.TotalTimeSpent)
}

func TestUsers_AreIsolated(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	s.ToggleLike(ctx, "first@x.io", "ch-1")
	s.MarkCompleted(ctx, "first@x.io", "ch-2")

	other := s.Get(ctx, "second@x.io")
	assert.Empty(t, other.LikedChapters)
	assert.Empty(t, other.CompletedChapters)
}

func TestGet_CorruptBlobFallsBackToDefaults(t *testing.T) {
	mem := storage.NewMemory()
	s := New(mem, testLogger())
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "user_preferences_u@x.io", "{broken"))

	prefs := s.Get(ctx, "u@x.io")
	assert.Equal(t, model.DefaultPreferences(), prefs)
}

func TestGet_LegacyNullSetsBecomeEmpty(t *testing.T) {
	mem := storage.NewMemory()
	s := New(mem, testLogger())
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "user_preferences_u@x.io",
		`{"likedChapters":null,"bookmarkedChapters":null,"completedChapters":null,"learningStreak":2,"totalTimeSpent":30}`))

	prefs := s.Get(ctx, "u@x.io")
	assert.NotNil(t, prefs.LikedChapters)
	assert.NotNil(t, prefs.CompletedChapters)
	assert.Equal(t, 2, prefs.LearningStreak)
}

func TestStorageOffline_ReadsDefaultWritesDrop(t *testing.T) {
	s := New(failingStore{}, testLogger())
	ctx := context.Background()

	// Reads degrade to defaults, writes are silently dropped — no panics,
	// no errors surfacing to the caller.
	prefs := s.Get(ctx, "u@x.io")
	assert.Equal(t, model.DefaultPreferences(), prefs)

	assert.True(t, s.ToggleLike(ctx, "u@x.io", "ch-1"))
	s.MarkCompleted(ctx, "u@x.io", "ch-1")
	assert.Equal(t, model.DefaultPreferences(), s.Get(ctx, "u@x.io"))
}
