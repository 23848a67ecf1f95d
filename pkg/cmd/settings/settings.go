package settings

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	panel "github.com/Paintersrp/dictcheck/internal/tui/settings"
	"github.com/Paintersrp/dictcheck/pkg/shared/factory"
)

func NewCmdSettings(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"s"},
		Short:   "Settings panel for Check Inclusion.",
		Long: heredoc.Doc(`
			Opens the settings panel. Every change is saved as soon as it is made.
			On the hotkey row, press c and then the desired key combination to
			record it.
		`),
		Example: heredoc.Doc(`
			dictcheck settings
			dictcheck settings set prefix "["
			dictcheck settings pick
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.State()
			if err != nil {
				return err
			}
			return panel.Run(s.Config, s)
		},
	}

	cmd.AddCommand(
		NewCmdSet(f),
		NewCmdShow(f),
		NewCmdPick(f),
	)

	return cmd
}
