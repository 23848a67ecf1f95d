package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/dictcheck/internal/check"
	"github.com/Paintersrp/dictcheck/internal/selection"
	"github.com/Paintersrp/dictcheck/internal/state"
	"github.com/Paintersrp/dictcheck/pkg/shared/factory"
	"github.com/Paintersrp/dictcheck/pkg/shared/flags"
)

func NewCmdCheck(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check [text...]",
		Aliases: []string{"include", "ci"},
		Short:   "Check whether the selection appears in the reference document.",
		Long: heredoc.Doc(`
			Check Inclusion trims the selection, wraps it in the configured prefix
			and suffix, and looks for the first line of the reference document that
			contains the result. A match is shown as a notice. When nothing matches
			and a fallback hotkey is set, that hotkey is triggered instead.

			The selection comes from the arguments, from a piped stdin, or from the
			clipboard when stdin is a terminal.
		`),
		Example: heredoc.Doc(`
			dictcheck check cat
			echo " cat " | dictcheck check --stdin
			dictcheck check --clipboard --print
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, err := flags.HandleSelectionSource(cmd, args, f.In)
			if err != nil {
				return err
			}

			s, err := f.State()
			if err != nil {
				return err
			}

			printLine, _ := cmd.Flags().GetBool("print")
			return run(cmd, s, editor, printLine)
		},
	}

	flags.AddSelectionSource(cmd)
	cmd.Flags().BoolP("print", "p", false, "Also print the matching line to stdout.")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, editor selection.Editor, printLine bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outcome, err := s.Checker().Run(ctx, s.Config.Settings, editor)
	// Let the fallback hotkey finish releasing before the process exits.
	s.Simulator.Wait()
	if err != nil {
		s.Logger.Info("check inclusion stopped", "err", err)
		if notified(err) {
			// The notice already told the user; only the exit status remains.
			cmd.SilenceErrors = true
		}
		return err
	}

	s.Logger.Debug("check inclusion finished",
		"query", outcome.Query,
		"found", outcome.Result.Found,
		"triggered", outcome.Triggered,
	)

	if printLine && outcome.Result.Found {
		fmt.Fprintln(cmd.OutOrStdout(), outcome.Result.Line)
	}
	return nil
}

func notified(err error) bool {
	var missing *check.MissingConfigurationError
	var notFound *check.ReferenceFileNotFoundError
	return errors.Is(err, check.ErrEmptySelection) ||
		errors.As(err, &missing) ||
		errors.As(err, &notFound)
}
