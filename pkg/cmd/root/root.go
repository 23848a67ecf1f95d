package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/dictcheck/internal/constants"
	"github.com/Paintersrp/dictcheck/pkg/cmd/check"
	"github.com/Paintersrp/dictcheck/pkg/cmd/settings"
	"github.com/Paintersrp/dictcheck/pkg/cmd/status"
	"github.com/Paintersrp/dictcheck/pkg/cmd/trigger"
	"github.com/Paintersrp/dictcheck/pkg/shared/factory"
)

func NewCmdRoot(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Check whether selected text is already in your dictionary note.",
		Long: heredoc.Doc(`
			Looks up a selection in a reference document from your note vault and
			shows the first line that contains it. When the selection is missing,
			a fallback hotkey hands it to whatever tool you bind to that shortcut.

			Start with:
			  dictcheck settings set vaultdir ~/notes
			  dictcheck settings pick
			  dictcheck check "word"
		`),
		Version:       constants.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetIn(f.In)
	cmd.SetOut(f.Out)
	cmd.SetErr(f.ErrOut)

	cmd.PersistentFlags().
		StringVar(
			&f.Options.ConfigPath,
			"config",
			"",
			"Config file to use instead of ~/.dictcheck/cfg.yaml.",
		)
	cmd.PersistentFlags().
		BoolVarP(
			&f.Options.Verbose,
			"verbose",
			"v",
			false,
			"Log debug output to stderr.",
		)
	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(
		check.NewCmdCheck(f),
		settings.NewCmdSettings(f),
		trigger.NewCmdTrigger(f),
		status.NewCmdStatus(f),
	)

	return cmd
}
