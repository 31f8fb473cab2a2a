package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		guess     string
		canonical string
		correct   bool
		rule      Rule
	}{
		{"exact after normalization", "tony stark", "Tony Stark", true, RuleExact},
		{"short exact match", "ab", "AB", true, RuleExact},
		{"first name is contained", "peter", "Peter Parker", true, RuleGuessInAnswer},
		{"too short for containment", "xq", "Peter Parker", false, RuleNoMatch},
		{"verbose guess contains answer", "I think it's Peter Parker", "Peter Parker", true, RuleAnswerInGuess},
		{"reordered words", "parker peter", "Peter Parker", true, RuleWordOverlap},
		{"partial power list", "spider sense strength", "Spider-sense, wall-crawling, super strength", true, RuleWordOverlap},
		{"issue without year", "Amazing Fantasy 15", "Amazing Fantasy #15 (1962)", true, RuleGuessInAnswer},
		{"wrong person", "Steve", "Tony Stark", false, RuleNoMatch},
		{"wrong comic", "Tales of Suspense", "Amazing Fantasy #15 (1962)", false, RuleNoMatch},
		{"half the words", "peter banner", "Peter Parker", false, RuleNoMatch},
		{"empty guess", "", "Peter Parker", false, RuleEmptyGuess},
		{"punctuation-only guess", "?!", "Peter Parker", false, RuleEmptyGuess},
		{"empty against empty", "", "", false, RuleEmptyGuess},
		{"guess against empty answer", "thor", "", false, RuleNoMatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.correct, Grade(tc.guess, tc.canonical))

			result := NewDefaultGrader().Explain(tc.guess, tc.canonical)
			assert.Equal(t, tc.correct, result.Correct)
			assert.Equal(t, tc.rule, result.Rule)
		})
	}
}

func TestGradeWordOverlapThreshold(t *testing.T) {
	t.Parallel()

	// 3 matching pairs over 5 guess words is exactly 0.6.
	atThreshold := NewDefaultGrader().Explain("blue green red cyan magenta", "red green blue")
	assert.True(t, atThreshold.Correct)
	assert.Equal(t, RuleWordOverlap, atThreshold.Rule)
	assert.InDelta(t, 0.6, atThreshold.Score, 1e-9)

	// 3 matching pairs over 6 guess words is 0.5.
	below := NewDefaultGrader().Explain("blue green red cyan magenta pink", "red green blue")
	assert.False(t, below.Correct)
	assert.InDelta(t, 0.5, below.Score, 1e-9)
}

func TestGradeCountsRepeatedWordMatches(t *testing.T) {
	t.Parallel()

	// "e" is contained in both "peter" and "parker", so it scores 2 of 2.
	result := NewDefaultGrader().Explain("e", "Peter Parker")
	assert.True(t, result.Correct)
	assert.Equal(t, RuleWordOverlap, result.Rule)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
}

func TestGradeReflexive(t *testing.T) {
	t.Parallel()

	answers := []string{
		"Peter Parker",
		"T'Challa",
		"Logan / James Howlett",
		"Amazing Fantasy #15 (1962)",
		"X",
		"Vision",
	}

	for _, a := range answers {
		assert.True(t, Grade(a, a), "Grade(%q, %q) should be true", a, a)
	}
}

func TestGradeEmptyGuessAlwaysWrong(t *testing.T) {
	t.Parallel()

	for _, canonical := range []string{"", "Thor", "Peter Parker", "   "} {
		assert.False(t, Grade("", canonical), "canonical %q", canonical)
	}
}

func TestNicknameFallback(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()
	params.NicknameFallback = true
	lenient := NewGrader(params)

	assert.False(t, Grade("spiderman", "Peter Parker"), "default grader ignores nicknames")

	result := lenient.Explain("spiderman", "Peter Parker")
	assert.True(t, result.Correct)
	assert.Equal(t, RuleNickname, result.Rule)

	assert.True(t, lenient.Grade("hawkeye", "Clint Barton"))

	// Keys that cannot equal a normalized answer stay unreachable.
	assert.False(t, lenient.Grade("wolverine", "Logan / James Howlett"))
	assert.False(t, lenient.Grade("black panther", "T'Challa"))
}

func TestNicknames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"clint", "barton", "hawkeye"}, Nicknames("Clint Barton"))
	assert.Empty(t, Nicknames("Vision"))

	got := Nicknames("Bruce Banner")
	got[0] = "mutated"
	assert.Equal(t, "bruce", Nicknames("Bruce Banner")[0], "returned slice must be a copy")
}

func TestNewGraderNilParams(t *testing.T) {
	t.Parallel()

	g := NewGrader(nil)
	assert.Equal(t, NewDefaultParams(), g.params)
}
