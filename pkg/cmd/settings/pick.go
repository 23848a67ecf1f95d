package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/dictcheck/internal/config"
	"github.com/Paintersrp/dictcheck/internal/fzf"
	"github.com/Paintersrp/dictcheck/internal/pathutil"
	"github.com/Paintersrp/dictcheck/pkg/shared/factory"
)

var findFile fzf.FindFunc = fuzzyfinder.Find

func NewCmdPick(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick [query]",
		Short: "Choose the reference document from the vault with a fuzzy finder.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.State()
			if err != nil {
				return err
			}

			vault := pathutil.ExpandHome(s.Config.VaultDir)
			if vault == "" {
				return errors.New("vault directory is not configured, set it with: dictcheck settings set vaultdir <dir>")
			}

			finder := fzf.NewFuzzyFinder(vault, "Select the reference document.").WithFind(findFile)
			rel, err := finder.RunWithQuery(strings.Join(args, " "))
			if err != nil {
				return err
			}

			if err := s.Config.Set(config.FieldFilePath, rel); err != nil {
				return err
			}
			s.SettingsChanged()

			fmt.Fprintf(cmd.OutOrStdout(), "Reference document set to %s\n", rel)
			return nil
		},
	}

	return cmd
}
