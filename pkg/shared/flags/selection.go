package flags

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/dictcheck/internal/selection"
	"github.com/Paintersrp/dictcheck/pkg/shared/arg"
)

func AddSelectionSource(cmd *cobra.Command) {
	cmd.Flags().Bool("stdin", false, "Read the selection from standard input.")
	cmd.Flags().BoolP("clipboard", "c", false, "Use the clipboard as the selection and write the trimmed text back.")
	cmd.MarkFlagsMutuallyExclusive("stdin", "clipboard")
}

// HandleSelectionSource picks where the selection comes from. Arguments win;
// without them a piped stdin is read, and an interactive one falls back to
// the clipboard.
func HandleSelectionSource(cmd *cobra.Command, args []string, in io.Reader) (selection.Editor, error) {
	useStdin, _ := cmd.Flags().GetBool("stdin")
	useClipboard, _ := cmd.Flags().GetBool("clipboard")

	if len(args) > 0 && (useStdin || useClipboard) {
		return nil, errors.New("selection text and --stdin/--clipboard cannot be combined")
	}

	switch {
	case len(args) > 0:
		return selection.NewStatic(arg.HandleText(args)), nil
	case useStdin:
		return selection.NewReader(in), nil
	case useClipboard:
		return selection.NewClipboard(), nil
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return selection.NewClipboard(), nil
	}
	return selection.NewReader(in), nil
}
