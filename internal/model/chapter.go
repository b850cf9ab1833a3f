package model

import "time"

// Chapter is a node in the hierarchical chapter tree.
//
// OWNERSHIP:
// The tree is owned top-down through Children — the repository's root list is
// the single source of truth. ParentID is a non-owning back-reference kept for
// the wire contract; traversal and lookup never read it, and it can always be
// recomputed from the tree.
//
// Slug is unique across the flattened tree. Order determines sibling display
// order ascending, ties broken by insertion order.
type Chapter struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	ParentID    string    `json:"parentId,omitempty"`
	Children    []Chapter `json:"children,omitempty"`
	Content     string    `json:"content,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Page is a single content page inside a chapter, as served by the backend
// CRUD surface. Status is free-form on the wire ("draft", "published").
type Page struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
	Status  string `json:"status"`
}

// ContentSection is one heading extracted from a chapter's raw Markdown.
// Sections are derived and ephemeral — recomputed from the content on every
// request, never persisted.
type ContentSection struct {
	ID    string `json:"id"`    // "section-<ordinal>", 0-based in document order
	Title string `json:"title"` // heading text, trimmed
	Level int    `json:"level"` // 1..6, the number of leading '#'
	Slug  string `json:"slug"`  // lowercased title, punctuation stripped, spaces → hyphens
}

// SearchResult is one hit from a chapter search. URL points at the learn page
// for the matching chapter.
type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Type    string `json:"type"` // always "chapter" for now
	URL     string `json:"url"`
}

// MediaItem is an uploaded asset as returned by the media endpoints.
// UploadedAt is kept as the backend's raw timestamp string: the server emits
// a bare ISO-8601 value without a zone, which time.Time refuses to parse.
type MediaItem struct {
	ID         int    `json:"id"`
	Filename   string `json:"filename,omitempty"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploaded_at,omitempty"`
}
