package trigger

import (
	"context"
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/dictcheck/internal/hotkey"
	"github.com/Paintersrp/dictcheck/pkg/shared/arg"
	"github.com/Paintersrp/dictcheck/pkg/shared/factory"
)

func NewCmdTrigger(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trigger [hotkey]",
		Short: "Trigger the fallback hotkey without running a lookup.",
		Long: heredoc.Doc(`
			Sends the hotkey the same way a failed lookup does. Without an argument
			the configured fallback hotkey is used. Useful for checking that the
			bound command or the receiving application reacts.
		`),
		Example: heredoc.Doc(`
			dictcheck trigger
			dictcheck trigger "Ctrl+Shift+X"
			dictcheck trigger --selection bird
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.State()
			if err != nil {
				return err
			}

			descriptor := arg.HandleDescriptor(args, s.Config.NotFoundHotkey)
			if descriptor == "" {
				return errors.New("no hotkey given and no fallback hotkey configured")
			}

			text, _ := cmd.Flags().GetString("selection")

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = hotkey.WithValues(ctx, hotkey.Values{
				Selection: text,
				File:      s.Config.FilePath,
				Vault:     s.Config.VaultDir,
			})

			err = s.Simulator.Trigger(ctx, descriptor)
			s.Simulator.Wait()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Triggered %s\n", hotkey.Parse(descriptor))
			return nil
		},
	}

	cmd.Flags().String("selection", "", "Value substituted for {selection} in bound commands.")

	return cmd
}
