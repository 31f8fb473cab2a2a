package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/domain/session"
	"github.com/phrazzld/hero-flashcards/internal/service"
)

var navigationCommands = map[string]service.Navigation{
	":next":    service.NavAdvance,
	":prev":    service.NavRetreat,
	":nq":      service.NavNextQuestion,
	":pq":      service.NavPreviousQuestion,
	":shuffle": service.NavShuffle,
	":reset":   service.NavResetOrder,
}

// player runs one interactive session.
type player struct {
	sessions service.SessionService
	in       io.Reader
	r        renderer
}

func (p *player) run(ctx context.Context) error {
	started, err := p.sessions.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	id := started.Snapshot.ID
	defer func() { _ = p.sessions.End(ctx, id) }()

	p.r.line("%s %s",
		p.r.colors.title.Sprintf("%d characters loaded", started.Snapshot.Total),
		p.r.colors.muted.Sprintf("(source: %s). Type :help for commands.", started.Source))

	snap := started.Snapshot
	redraw := true
	scanner := bufio.NewScanner(p.in)

	for {
		if snap.Status != session.StatusActive {
			p.r.line("")
			p.r.line("%s %s",
				p.r.colors.good.Sprint("Every character mastered!"),
				p.r.colors.muted.Sprintf("Best streak: %d.", snap.Streak.Longest))
			return nil
		}
		if redraw {
			p.r.card(snap)
		}
		redraw = true

		fmt.Fprint(p.r.out, p.r.colors.prompt.Sprint("> "))
		if !scanner.Scan() {
			p.r.line("")
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "":
			redraw = false

		case input == ":quit" || input == ":q":
			return nil

		case input == ":help":
			p.r.help()
			redraw = false

		case input == ":mastered":
			m, err := p.sessions.MarkMastered(ctx, id, snap.Current.ID)
			if err != nil {
				return err
			}
			p.r.line("%s%s", indent, p.r.colors.good.Sprintf("%s mastered.", m.Character.Name))
			snap = m.Snapshot

		case strings.HasPrefix(input, ":"):
			nav, ok := navigationCommands[input]
			if !ok {
				p.r.line("%s%s", indent, p.r.colors.bad.Sprintf("unknown command %q, try :help", input))
				redraw = false
				continue
			}
			snap, err = p.sessions.Navigate(ctx, id, nav)
			if err != nil {
				return err
			}

		default:
			next, err := p.guess(ctx, id, input)
			if err != nil {
				return err
			}
			snap = next
			redraw = false
		}
	}
}

// guess grades input, shows the verdict and clears the feedback so the
// next line can be graded.
func (p *player) guess(ctx context.Context, id uuid.UUID, input string) (session.Snapshot, error) {
	answered, err := p.sessions.Submit(ctx, id, input)
	if err != nil {
		return session.Snapshot{}, err
	}

	p.r.verdict(answered.Verdict)
	return p.sessions.DismissFeedback(ctx, id)
}
