package grading

import (
	"strings"
	"unicode/utf8"
)

// Rule names the step of the grading cascade that produced a verdict.
type Rule string

// Grading rules in evaluation order.
const (
	RuleEmptyGuess    Rule = "empty_guess"
	RuleExact         Rule = "exact"
	RuleGuessInAnswer Rule = "guess_in_answer"
	RuleAnswerInGuess Rule = "answer_in_guess"
	RuleWordOverlap   Rule = "word_overlap"
	RuleNickname      Rule = "nickname"
	RuleNoMatch       Rule = "no_match"
)

// Result explains a grading decision.
type Result struct {
	Correct bool    `json:"correct"`
	Rule    Rule    `json:"rule"`
	Score   float64 `json:"score"`
}

// Grader judges guesses against canonical answers.
type Grader struct {
	params *Params
}

// NewGrader creates a Grader with custom parameters. A nil params value uses
// the defaults.
func NewGrader(params *Params) *Grader {
	if params == nil {
		params = NewDefaultParams()
	}
	return &Grader{params: params}
}

// NewDefaultGrader creates a Grader with default parameters.
func NewDefaultGrader() *Grader {
	return NewGrader(nil)
}

var defaultGrader = NewDefaultGrader()

// Grade reports whether guess answers canonical using the default parameters.
func Grade(guess, canonical string) bool {
	return defaultGrader.Grade(guess, canonical)
}

// Grade reports whether guess answers canonical.
func (g *Grader) Grade(guess, canonical string) bool {
	return g.Explain(guess, canonical).Correct
}

// Explain grades guess against canonical and reports which rule decided.
// Score is only meaningful for word-overlap verdicts.
func (g *Grader) Explain(guess, canonical string) Result {
	user := Normalize(guess)
	correct := Normalize(canonical)

	if user == "" {
		return Result{Rule: RuleEmptyGuess}
	}

	if user == correct {
		return Result{Correct: true, Rule: RuleExact, Score: 1}
	}

	if utf8.RuneCountInString(user) > g.params.MinContainmentLength && strings.Contains(correct, user) {
		return Result{Correct: true, Rule: RuleGuessInAnswer, Score: 1}
	}

	if utf8.RuneCountInString(correct) > g.params.MinContainmentLength && strings.Contains(user, correct) {
		return Result{Correct: true, Rule: RuleAnswerInGuess, Score: 1}
	}

	userWords := strings.Fields(user)
	correctWords := strings.Fields(correct)
	if len(userWords) == 0 || len(correctWords) == 0 {
		return Result{Rule: RuleNoMatch}
	}

	score := overlapScore(userWords, correctWords)
	if score >= g.params.OverlapThreshold {
		return Result{Correct: true, Rule: RuleWordOverlap, Score: score}
	}

	if g.params.NicknameFallback && matchesNickname(user, correct) {
		return Result{Correct: true, Rule: RuleNickname, Score: score}
	}

	return Result{Rule: RuleNoMatch, Score: score}
}

// overlapScore counts matching (user, correct) word pairs over the longer
// word list. A word that matches several counterparts is counted for each.
func overlapScore(userWords, correctWords []string) float64 {
	matches := 0
	for _, u := range userWords {
		for _, c := range correctWords {
			if u == c || strings.Contains(u, c) || strings.Contains(c, u) {
				matches++
			}
		}
	}

	return float64(matches) / float64(max(len(userWords), len(correctWords)))
}
