package model

// UserPreferences holds one user's interaction state against the chapter
// catalogue plus aggregate learning stats. One instance per user ID, created
// lazily with all sets empty on first access.
//
// The three chapter-ID slices are sets: no duplicates, membership order
// irrelevant. They are kept as slices (not map[string]bool) so the persisted
// JSON matches the wire/storage contract exactly.
type UserPreferences struct {
	LikedChapters      []string `json:"likedChapters"`
	BookmarkedChapters []string `json:"bookmarkedChapters"`
	CompletedChapters  []string `json:"completedChapters"`
	LearningStreak     int      `json:"learningStreak"`
	TotalTimeSpent     float64  `json:"totalTimeSpent"` // minutes
}

// DefaultPreferences returns the all-empty value handed out before a user has
// interacted with anything. Slices are non-nil so JSON round-trips as [] and
// callers can append without nil checks.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		LikedChapters:      []string{},
		BookmarkedChapters: []string{},
		CompletedChapters:  []string{},
	}
}
