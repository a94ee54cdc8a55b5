package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tomc271/jcamp/internal/spectrum"
)

// RecordSummary is the serializable view of a decoded record emitted
// by the dump command.
type RecordSummary struct {
	Title    string          `json:"title" yaml:"title"`
	DataType string          `json:"data_type" yaml:"data_type"`
	XUnits   string          `json:"xunits,omitempty" yaml:"xunits,omitempty"`
	YUnits   string          `json:"yunits,omitempty" yaml:"yunits,omitempty"`
	Points   int             `json:"points" yaml:"points"`
	FirstX   float64         `json:"firstx,omitempty" yaml:"firstx,omitempty"`
	LastX    float64         `json:"lastx,omitempty" yaml:"lastx,omitempty"`
	Warnings []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Children []RecordSummary `json:"children,omitempty" yaml:"children,omitempty"`
}

// String renders the summary for text output.
func (s RecordSummary) String() string {
	var b strings.Builder
	writeSummary(&b, s, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeSummary(b *strings.Builder, s RecordSummary, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%stitle:     %s\n", indent, s.Title)
	fmt.Fprintf(b, "%sdata type: %s\n", indent, s.DataType)
	if s.XUnits != "" || s.YUnits != "" {
		fmt.Fprintf(b, "%sunits:     %s / %s\n", indent, s.XUnits, s.YUnits)
	}
	fmt.Fprintf(b, "%spoints:    %d (x: %g .. %g)\n", indent, s.Points, s.FirstX, s.LastX)
	for _, w := range s.Warnings {
		fmt.Fprintf(b, "%swarning:   %s\n", indent, w)
	}
	for i, c := range s.Children {
		fmt.Fprintf(b, "%schild %d:\n", indent, i+1)
		writeSummary(b, c, depth+1)
	}
}

// Summarize builds the dump view of a record, recursing into LINK
// children.
func Summarize(rec *spectrum.Record) RecordSummary {
	s := RecordSummary{
		Title:    rec.Title(),
		DataType: rec.DataType(),
		Points:   len(rec.Y),
	}
	s.XUnits, _ = rec.Str("xunits")
	s.YUnits, _ = rec.Str("yunits")
	if len(rec.X) > 0 {
		s.FirstX = rec.X[0]
		s.LastX = rec.X[len(rec.X)-1]
	}
	for _, w := range rec.Warnings {
		s.Warnings = append(s.Warnings, w.String())
	}
	for _, c := range rec.Children {
		s.Children = append(s.Children, Summarize(c))
	}
	return s
}

// logWarnings reports a record's advisory diagnostics, recursing into
// children.
func logWarnings(origin string, rec *spectrum.Record) {
	for _, w := range rec.Warnings {
		log.Warn().
			Str("origin", origin).
			Str("code", string(w.Code)).
			Msg(w.Message)
	}
	for _, c := range rec.Children {
		logWarnings(origin, c)
	}
}

// NewDumpCommand creates the dump command: decode a file and print
// its header/series summary.
func NewDumpCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Decode a JCAMP-DX file and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := DecodeFile(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "dump failed", err)
			}
			logWarnings(args[0], rec)

			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return f.Emit(Summarize(rec))
		},
	}
	return cmd
}
