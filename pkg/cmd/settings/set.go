package settings

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/dictcheck/internal/config"
	"github.com/Paintersrp/dictcheck/pkg/shared/factory"
)

func NewCmdSet(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <field> [value]",
		Short: "Change one setting.",
		Long: heredoc.Docf(`
			Sets a field and saves the config immediately. Leaving out the value
			clears the field. Text values are stored exactly as given, including
			surrounding spaces.

			Fields: %s
		`, strings.Join(config.Fields, ", ")),
		Example: heredoc.Doc(`
			dictcheck settings set file_path words/dictionary.md
			dictcheck settings set prefix "["
			dictcheck settings set hotkey "Ctrl+Shift+X"
			dictcheck settings set notice_duration 3s
		`),
		Args: cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.Fields, cobra.ShellCompDirectiveNoFileComp
			}
			if field, ok := config.CanonicalField(args[0]); ok && field == config.FieldDispatchMode {
				return config.DispatchModeNames, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.State()
			if err != nil {
				return err
			}

			value := ""
			if len(args) > 1 {
				value = args[1]
			}

			if err := s.Config.Set(args[0], value); err != nil {
				return err
			}
			s.SettingsChanged()

			field, _ := config.CanonicalField(args[0])
			current, _ := s.Config.Get(field)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated and Saved: %s = %q\n", field, current)
			return nil
		},
	}

	return cmd
}
