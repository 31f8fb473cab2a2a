package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/hero-flashcards/internal/catalog"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/domain/grading"
	"github.com/phrazzld/hero-flashcards/internal/domain/session"
)

const indent = "  "

// renderer writes quiz screens to out.
type renderer struct {
	out    io.Writer
	colors palette
	width  int
}

func (r renderer) line(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r renderer) wrapped(text string) {
	for _, l := range wrapText(text, r.width-len(indent)) {
		r.line("%s%s", indent, l)
	}
}

// card renders the displayed character and its active question.
func (r renderer) card(snap session.Snapshot) {
	if snap.Current == nil {
		return
	}
	c := *snap.Current

	order := "canonical"
	if snap.Shuffled {
		order = "shuffled"
	}

	r.line("")
	r.line("%s %s",
		r.colors.title.Sprint(c.Name),
		r.colors.muted.Sprintf("(%d/%d, %s order)", snap.Position+1, snap.Total, order))
	if c.Description != "" {
		r.wrapped(c.Description)
	}
	if snap.Question != nil {
		r.line("%s%s %s",
			indent,
			r.colors.label.Sprintf("Q%d/%d", snap.QuestionIndex+1, domain.QuestionsPerCharacter),
			r.colors.prompt.Sprint(snap.Question.Prompt))
	}
	r.line("%s%s", indent, r.colors.muted.Sprintf("streak %d, best %d, mastered %d",
		snap.Streak.Current, snap.Streak.Longest, len(snap.Mastered)))
}

// verdict renders the outcome of a guess.
func (r renderer) verdict(v session.Verdict) {
	if v.Correct {
		r.line("%s%s", indent, r.colors.good.Sprint("Correct!"))
		return
	}
	r.line("%s%s %s", indent, r.colors.bad.Sprint("Not quite."),
		"The answer was "+r.colors.title.Sprint(v.Question.Answer)+".")
}

// grade renders a stateless grading decision.
func (r renderer) grade(res grading.Result) {
	if res.Correct {
		r.line("%s %s", r.colors.good.Sprint("correct"), r.colors.muted.Sprintf("(rule: %s, score %.2f)", res.Rule, res.Score))
		return
	}
	r.line("%s %s", r.colors.bad.Sprint("incorrect"), r.colors.muted.Sprintf("(rule: %s, score %.2f)", res.Rule, res.Score))
}

// deck renders a character listing.
func (r renderer) deck(chars []domain.Character, source catalog.Source) {
	r.line("%s %s", r.colors.title.Sprintf("%d characters", len(chars)), r.colors.muted.Sprintf("(source: %s)", source))
	for _, c := range chars {
		r.line("%s %s", r.colors.label.Sprintf("%4d", c.ID), c.Name)
		if c.Description != "" {
			for _, l := range wrapText(c.Description, r.width-6) {
				r.line("      %s", r.colors.muted.Sprint(l))
			}
		}
	}
}

func (r renderer) help() {
	r.line(strings.Join([]string{
		"Type a guess, or one of:",
		indent + ":next      next character",
		indent + ":prev      previous character",
		indent + ":nq        next question",
		indent + ":pq        previous question",
		indent + ":shuffle   shuffle the remaining characters",
		indent + ":reset     back to canonical order",
		indent + ":mastered  remove this character from the deck",
		indent + ":help      show this help",
		indent + ":quit      end the session",
	}, "\n"))
}
