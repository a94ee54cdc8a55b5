package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomc271/jcamp/internal/jdx"
)

// NewWriteCommand creates the write command: decode a file and
// re-encode it in the plain AFFN (X++(Y..Y)) form. Compressed input
// is normalized to uncompressed output.
func NewWriteCommand(opts *RootOptions) *cobra.Command {
	var (
		out   string
		width int
	)
	cmd := &cobra.Command{
		Use:   "write <file>",
		Short: "Re-encode a JCAMP-DX file in uncompressed form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := DecodeFile(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "write failed", err)
			}
			logWarnings(args[0], rec)

			text, err := jdx.Write(rec, width)
			if err != nil {
				return WrapExitError(ExitFailure, "write failed", err)
			}

			if out == "" || out == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
				return WrapExitError(ExitCommandError, "write failed", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&width, "width", opts.Config.LineWidth, "wrap column for data lines")
	return cmd
}
