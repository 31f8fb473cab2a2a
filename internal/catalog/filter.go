package catalog

import (
	"strings"

	"github.com/phrazzld/hero-flashcards/internal/domain"
)

// Filter keeps the records worth quizzing on, in provider order, up to
// MaxCharacters. A record qualifies when it has a real thumbnail, a
// non-blank description and a name that matches a popular character.
func (t *Tables) Filter(records []Record) []Record {
	out := make([]Record, 0, min(len(records), t.maxCharacters))
	for _, r := range records {
		if len(out) == t.maxCharacters {
			break
		}
		if !hasRealThumbnail(r) || strings.TrimSpace(r.Description) == "" {
			continue
		}
		if !t.isPopular(r.Name) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Build converts filtered records to characters, attaching an image URL and
// trivia from the tables.
func (t *Tables) Build(records []Record) []domain.Character {
	chars := make([]domain.Character, 0, len(records))
	for _, r := range records {
		image, ok := ImageURL(r.Thumbnail.Path, r.Thumbnail.Extension)
		if !ok {
			image = t.DefaultImage(r.Name)
		}

		c := domain.Character{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			ImageURL:    image,
		}
		chars = append(chars, c.WithTrivia(t.Trivia(r.Name)))
	}
	return chars
}

// isPopular matches name against the allow-list case-insensitively, in
// either substring direction. Blank names never match.
func (t *Tables) isPopular(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return false
	}
	for _, p := range t.popular {
		if strings.Contains(lower, p) || strings.Contains(p, lower) {
			return true
		}
	}
	return false
}

func hasRealThumbnail(r Record) bool {
	return r.Thumbnail.Path != "" && !strings.Contains(r.Thumbnail.Path, placeholderMarker)
}
