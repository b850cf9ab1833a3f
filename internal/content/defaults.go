package content

import (
	"time"

	"github.com/sakif/learnhub/internal/model"
)

// defaultsStamp dates the built-in dataset. A fixed value keeps
// DefaultChapters pure — two calls return identical trees.
var defaultsStamp = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

// DefaultChapters is the built-in chapter dataset substituted when the
// backend cannot serve the tree. Slugs are unique across the whole forest and
// sibling Order values are already ascending.
func DefaultChapters() []model.Chapter {
	return []model.Chapter{
		{
			ID:          "1",
			Title:       "Introduction to Programming",
			Slug:        "introduction-programming",
			Description: "Learn the fundamentals of programming",
			Order:       1,
			Published:   true,
			CreatedAt:   defaultsStamp,
			UpdatedAt:   defaultsStamp,
			Children: []model.Chapter{
				{
					ID:        "1-1",
					Title:     "What is Programming?",
					Slug:      "what-is-programming",
					Order:     1,
					ParentID:  "1",
					Published: true,
					CreatedAt: defaultsStamp,
					UpdatedAt: defaultsStamp,
				},
				{
					ID:        "1-2",
					Title:     "Programming Languages",
					Slug:      "programming-languages",
					Order:     2,
					ParentID:  "1",
					Published: true,
					CreatedAt: defaultsStamp,
					UpdatedAt: defaultsStamp,
				},
			},
		},
		{
			ID:          "2",
			Title:       "JavaScript Fundamentals",
			Slug:        "javascript-fundamentals",
			Description: "Master JavaScript basics",
			Order:       2,
			Published:   true,
			CreatedAt:   defaultsStamp,
			UpdatedAt:   defaultsStamp,
			Children: []model.Chapter{
				{
					ID:        "2-1",
					Title:     "Variables and Data Types",
					Slug:      "variables-data-types",
					Order:     1,
					ParentID:  "2",
					Published: true,
					CreatedAt: defaultsStamp,
					UpdatedAt: defaultsStamp,
				},
				{
					ID:        "2-2",
					Title:     "Functions",
					Slug:      "functions",
					Order:     2,
					ParentID:  "2",
					Published: true,
					CreatedAt: defaultsStamp,
					UpdatedAt: defaultsStamp,
				},
			},
		},
	}
}
