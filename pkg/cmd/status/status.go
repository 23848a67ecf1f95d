package status

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/dictcheck/internal/hotkey"
	"github.com/Paintersrp/dictcheck/internal/state"
	"github.com/Paintersrp/dictcheck/pkg/shared/factory"
)

func NewCmdStatus(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the reference document and lookup settings in use.",
		Long: heredoc.Doc(`
			Reads the reference document once and reports whether it was found,
			how many lines and list entries it has, and how lookups will be
			wrapped and escalated.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.State()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return run(ctx, cmd.OutOrStdout(), s)
		},
	}

	return cmd
}

func run(ctx context.Context, out io.Writer, s *state.State) error {
	cfg := s.Config
	ref := s.ReferenceStatus(ctx)

	fallback := "none"
	if hk := hotkey.Parse(cfg.NotFoundHotkey); !hk.IsZero() {
		fallback = fmt.Sprintf("%s via %s dispatch", hk, cfg.DispatchMode)
	}

	rows := [][2]string{
		{"Config", s.ConfigPath},
		{"Reference", ref.String()},
		{"Search", quote(cfg.PrefixSymbol) + " + selection + " + quote(cfg.SuffixSymbol)},
		{"Fallback", fallback},
		{"Notice", cfg.NoticeDuration.String()},
	}
	if ref.Found && ref.Stats.Headings > 0 {
		rows = append(rows, [2]string{"Sections", strconv.Itoa(ref.Stats.Headings)})
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(out, "%-10s %s\n", row[0]+":", row[1]); err != nil {
			return err
		}
	}

	return ref.Err
}

func quote(s string) string {
	if s == "" || strings.TrimSpace(s) != s {
		return strconv.Quote(s)
	}
	return s
}
