package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/dictcheck/internal/config"
	"github.com/Paintersrp/dictcheck/pkg/shared/factory"
)

func NewCmdShow(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [field]",
		Short: "Print the current settings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.State()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				value, err := s.Config.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, value)
				return nil
			}

			asYAML, _ := cmd.Flags().GetBool("yaml")
			if asYAML {
				data, err := yaml.Marshal(s.Config)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			for _, field := range config.Fields {
				value, _ := s.Config.Get(field)
				fmt.Fprintf(out, "%-17s %s\n", field+":", display(value))
			}
			return nil
		},
	}

	cmd.Flags().Bool("yaml", false, "Print the full config file, bindings and storage included.")

	return cmd
}

func display(value string) string {
	if value == "" || strings.TrimSpace(value) != value {
		return strconv.Quote(value)
	}
	return value
}
