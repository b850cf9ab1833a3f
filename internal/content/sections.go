package content

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/sakif/learnhub/internal/model"
)

// markdown is the shared parser for heading extraction. Goldmark parsers are
// stateless per Parse call, so one instance serves all callers.
var markdown = goldmark.New()

var (
	slugStrip  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
)

// ExtractSections scans a chapter's raw Markdown for #-marked headings
// (levels 1-6) and returns one ContentSection per heading in document order.
// Underlined (setext) headings are not sections. Section IDs
// are "section-<n>" with n the 0-based ordinal; slugs are the lowercased
// title with punctuation stripped and whitespace runs collapsed to single
// hyphens.
//
// The function is pure: it never mutates content, and calling it twice on the
// same input yields identical output.
func ExtractSections(content string) []model.ContentSection {
	source := []byte(content)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var sections []model.ContentSection
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !isATXHeading(heading, source) {
			return ast.WalkSkipChildren, nil
		}
		title := strings.TrimSpace(headingText(heading, source))
		sections = append(sections, model.ContentSection{
			ID:    "section-" + strconv.Itoa(len(sections)),
			Title: title,
			Level: heading.Level,
			Slug:  slugify(title),
		})
		// Headings have no nested headings; skip their inline children.
		return ast.WalkSkipChildren, nil
	})
	return sections
}

// isATXHeading reports whether a heading's first source line starts with a
// "#" marker. Goldmark also recognizes setext headings (text underlined with
// = or -), which do not count as sections.
func isATXHeading(heading *ast.Heading, source []byte) bool {
	lines := heading.Lines()
	if lines.Len() == 0 {
		return false
	}
	i := lines.At(0).Start
	for i > 0 && source[i-1] != '\n' {
		i--
	}
	for i < len(source) && source[i] == ' ' {
		i++
	}
	return i < len(source) && source[i] == '#'
}

// headingText concatenates the literal text of a heading's inline children,
// so "## Using `defer`" extracts as "Using defer".
func headingText(heading *ast.Heading, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.CodeSpan:
			for c := t.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					sb.Write(txt.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	return slug
}
