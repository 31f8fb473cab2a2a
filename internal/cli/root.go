package cli

import (
	"context"
	"fmt"

	"github.com/phrazzld/hero-flashcards/internal/domain/grading"
	"github.com/phrazzld/hero-flashcards/internal/service"
	"github.com/spf13/cobra"
)

// Services are the collaborators the commands need.
type Services struct {
	Catalog  service.CatalogService
	Sessions service.SessionService
}

// ServicesFactory builds Services on first use, so commands that need none
// (grade) never touch configuration.
type ServicesFactory func(ctx context.Context) (*Services, error)

// NewRootCommand creates the quiz command tree.
func NewRootCommand(build ServicesFactory) *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "quiz",
		Short: "Comic character flashcards in the terminal",
		Long: `Quiz plays comic character flashcard sessions in the terminal.
Each character carries three questions: real name, powers and first appearance.
Guesses are graded leniently: partial names and reordered words count.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")

	newRenderer := func(cmd *cobra.Command) renderer {
		out := cmd.OutOrStdout()
		isTerm, width := terminalInfo(out)
		return renderer{out: out, colors: newPalette(isTerm && !noColor), width: width}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "play",
			Short: "Play an interactive session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := build(cmd.Context())
				if err != nil {
					return err
				}
				p := &player{sessions: svc.Sessions, in: cmd.InOrStdin(), r: newRenderer(cmd)}
				return p.run(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "grade GUESS ANSWER",
			Short: "Grade a guess against an answer and show the deciding rule",
			Example: `  quiz grade peter "Peter Parker"
  quiz grade "stark tony" "Tony Stark"`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				newRenderer(cmd).grade(grading.NewDefaultGrader().Explain(args[0], args[1]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "characters",
			Short: "List the characters a new session would use",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := build(cmd.Context())
				if err != nil {
					return err
				}
				deck := svc.Catalog.LoadDeck(cmd.Context())
				if len(deck.Characters) == 0 {
					return fmt.Errorf("no characters available")
				}
				newRenderer(cmd).deck(deck.Characters, deck.Source)
				return nil
			},
		},
	)

	return root
}
