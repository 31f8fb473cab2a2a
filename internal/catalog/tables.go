package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/phrazzld/hero-flashcards/internal/domain"
)

//go:embed trivia.toml
var triviaTOML []byte

type heroEntry struct {
	Name            string `toml:"name"`
	RealName        string `toml:"real_name"`
	Powers          string `toml:"powers"`
	FirstAppearance string `toml:"first_appearance"`
	Color           string `toml:"color"`
	Portrait        string `toml:"portrait"`
}

type fallbackEntry struct {
	ID              int64  `toml:"id"`
	Name            string `toml:"name"`
	Description     string `toml:"description"`
	Image           string `toml:"image"`
	RealName        string `toml:"real_name"`
	Powers          string `toml:"powers"`
	FirstAppearance string `toml:"first_appearance"`
}

type defaultsEntry struct {
	Powers          string `toml:"powers"`
	FirstAppearance string `toml:"first_appearance"`
	Color           string `toml:"color"`
}

type document struct {
	MaxCharacters int             `toml:"max_characters"`
	Popular       []string        `toml:"popular"`
	Defaults      defaultsEntry   `toml:"defaults"`
	Heroes        []heroEntry     `toml:"hero"`
	Fallback      []fallbackEntry `toml:"fallback"`
}

// Tables holds the decoded trivia document. It is immutable once built.
type Tables struct {
	maxCharacters int
	popular       []string
	defaults      defaultsEntry
	heroes        map[string]heroEntry
	fallback      []domain.Character
}

var defaultTables = sync.OnceValue(func() *Tables {
	t, err := Load(triviaTOML)
	if err != nil {
		// ALLOW-PANIC: the embedded document is part of the binary
		panic(fmt.Sprintf("catalog: embedded trivia: %v", err))
	}
	return t
})

// Default returns the tables decoded from the embedded trivia document.
func Default() *Tables {
	return defaultTables()
}

// Load decodes and validates a trivia document.
func Load(data []byte) (*Tables, error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTables, err)
	}

	if doc.MaxCharacters <= 0 {
		return nil, fmt.Errorf("%w: max_characters must be positive", ErrInvalidTables)
	}
	if len(doc.Popular) == 0 {
		return nil, fmt.Errorf("%w: popular list is empty", ErrInvalidTables)
	}

	t := &Tables{
		maxCharacters: doc.MaxCharacters,
		popular:       make([]string, 0, len(doc.Popular)),
		defaults:      doc.Defaults,
		heroes:        make(map[string]heroEntry, len(doc.Heroes)),
		fallback:      make([]domain.Character, 0, len(doc.Fallback)),
	}

	for _, name := range doc.Popular {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: blank name in popular list", ErrInvalidTables)
		}
		t.popular = append(t.popular, strings.ToLower(name))
	}

	for _, h := range doc.Heroes {
		if h.Name == "" {
			return nil, fmt.Errorf("%w: hero entry without name", ErrInvalidTables)
		}
		if _, dup := t.heroes[h.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate hero %q", ErrInvalidTables, h.Name)
		}
		t.heroes[h.Name] = h
	}

	seen := make(map[int64]struct{}, len(doc.Fallback))
	for _, f := range doc.Fallback {
		if _, dup := seen[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate fallback id %d", ErrInvalidTables, f.ID)
		}
		seen[f.ID] = struct{}{}

		c := domain.Character{
			ID:              f.ID,
			Name:            f.Name,
			Description:     f.Description,
			ImageURL:        f.Image,
			RealName:        f.RealName,
			Powers:          f.Powers,
			FirstAppearance: f.FirstAppearance,
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: fallback id %d: %w", ErrInvalidTables, f.ID, err)
		}
		t.fallback = append(t.fallback, c)
	}

	return t, nil
}

// MaxCharacters is the cap applied by Filter.
func (t *Tables) MaxCharacters() int {
	return t.maxCharacters
}

// Known reports whether name has an entry in the trivia tables.
func (t *Tables) Known(name string) bool {
	_, ok := t.heroes[name]
	return ok
}

// RealName returns the real name for a character, or name itself when unknown.
func (t *Tables) RealName(name string) string {
	if h, ok := t.heroes[name]; ok && h.RealName != "" {
		return h.RealName
	}
	return name
}

// Powers returns the powers summary for a character.
func (t *Tables) Powers(name string) string {
	if h, ok := t.heroes[name]; ok && h.Powers != "" {
		return h.Powers
	}
	return t.defaults.Powers
}

// FirstAppearance returns the first-appearance citation for a character.
func (t *Tables) FirstAppearance(name string) string {
	if h, ok := t.heroes[name]; ok && h.FirstAppearance != "" {
		return h.FirstAppearance
	}
	return t.defaults.FirstAppearance
}

// Trivia returns all three answers for a character, with defaults applied.
func (t *Tables) Trivia(name string) domain.Trivia {
	return domain.Trivia{
		RealName:        t.RealName(name),
		Powers:          t.Powers(name),
		FirstAppearance: t.FirstAppearance(name),
	}
}

// IsDefaultTrivia reports whether tr carries only the generic defaults for name.
func (t *Tables) IsDefaultTrivia(name string, tr domain.Trivia) bool {
	return tr.RealName == name &&
		tr.Powers == t.defaults.Powers &&
		tr.FirstAppearance == t.defaults.FirstAppearance
}

// Fallback returns a copy of the built-in offline deck.
func (t *Tables) Fallback() []domain.Character {
	out := make([]domain.Character, len(t.fallback))
	copy(out, t.fallback)
	return out
}
