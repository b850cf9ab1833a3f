package app

import (
	"context"

	"github.com/sakif/learnhub/internal/apperror"
	"github.com/sakif/learnhub/internal/content"
	"github.com/sakif/learnhub/internal/model"
	"github.com/sakif/learnhub/internal/permission"
)

// SidebarItem is one chapter in the navigation tree, annotated with the
// current user's interaction state.
type SidebarItem struct {
	Chapter    model.Chapter
	Completed  bool
	Bookmarked bool
	Children   []SidebarItem
}

// Sidebar builds the navigation tree. Anonymous visitors get the plain tree
// with all flags false.
func (a *App) Sidebar(ctx context.Context) []SidebarItem {
	prefs := model.DefaultPreferences()
	if user := a.Sessions.CurrentUser(ctx); user != nil {
		prefs = a.Prefs.Get(ctx, user.ID)
	}
	return annotate(a.Content.GetChapters(ctx), prefs)
}

func annotate(chapters []model.Chapter, prefs model.UserPreferences) []SidebarItem {
	items := make([]SidebarItem, 0, len(chapters))
	for _, chapter := range chapters {
		items = append(items, SidebarItem{
			Chapter:    chapter,
			Completed:  containsID(prefs.CompletedChapters, chapter.ID),
			Bookmarked: containsID(prefs.BookmarkedChapters, chapter.ID),
			Children:   annotate(chapter.Children, prefs),
		})
	}
	return items
}

// ProfileView is the profile dashboard: the identity, raw stats, and the
// user's chapter lists reconciled against the current tree.
type ProfileView struct {
	User        model.User
	Preferences model.UserPreferences
	Liked       []model.Chapter
	Bookmarked  []model.Chapter
	Completed   []model.Chapter
}

// Profile builds the profile dashboard for the current user. Preference
// entries whose chapter ID no longer exists in the tree are dropped from the
// lists (the raw ID sets stay untouched in Preferences).
func (a *App) Profile(ctx context.Context) (*ProfileView, error) {
	user := a.Sessions.CurrentUser(ctx)
	if user == nil {
		return nil, apperror.AuthFailed("sign in to view your profile")
	}

	prefs := a.Prefs.Get(ctx, user.ID)
	flat := content.Flatten(a.Content.GetChapters(ctx))
	byID := make(map[string]model.Chapter, len(flat))
	for _, chapter := range flat {
		byID[chapter.ID] = chapter
	}

	return &ProfileView{
		User:        *user,
		Preferences: prefs,
		Liked:       resolve(prefs.LikedChapters, byID),
		Bookmarked:  resolve(prefs.BookmarkedChapters, byID),
		Completed:   resolve(prefs.CompletedChapters, byID),
	}, nil
}

// LearnPageView is one chapter opened for reading: content, the derived
// table of contents, and the code-copy gate.
type LearnPageView struct {
	Chapter     model.Chapter
	Sections    []model.ContentSection
	CanCopyCode bool
	Completed   bool
}

// LearnPage assembles the learn page for a slug. Returns apperror.ErrNotFound
// for slugs absent from the flattened tree.
func (a *App) LearnPage(ctx context.Context, slug string) (*LearnPageView, error) {
	chapter := a.Content.GetChapter(ctx, slug)
	if chapter == nil {
		return nil, apperror.NotFound("chapter", slug)
	}

	completed := false
	if user := a.Sessions.CurrentUser(ctx); user != nil {
		completed = containsID(a.Prefs.Get(ctx, user.ID).CompletedChapters, chapter.ID)
	}

	return &LearnPageView{
		Chapter:     *chapter,
		Sections:    content.ExtractSections(chapter.Content),
		CanCopyCode: a.Perms.Has(ctx, model.CapCopyCode),
		Completed:   completed,
	}, nil
}

// AdminDashboardView is the content-editor landing view.
type AdminDashboardView struct {
	User         model.User
	Capabilities []model.Capability
	Chapters     []model.Chapter
}

// AdminDashboard builds the admin view. Requires the write capability;
// everyone else gets apperror.ErrForbidden.
func (a *App) AdminDashboard(ctx context.Context) (*AdminDashboardView, error) {
	user := a.Sessions.CurrentUser(ctx)
	if user == nil || !a.Perms.Has(ctx, model.CapWrite) {
		return nil, apperror.Forbidden("admin access required")
	}

	return &AdminDashboardView{
		User:         *user,
		Capabilities: permission.Capabilities(user.Role),
		Chapters:     a.Content.GetChapters(ctx),
	}, nil
}

func resolve(ids []string, byID map[string]model.Chapter) []model.Chapter {
	chapters := make([]model.Chapter, 0, len(ids))
	for _, id := range ids {
		if chapter, ok := byID[id]; ok {
			chapters = append(chapters, chapter)
		}
	}
	return chapters
}

func containsID(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
