package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomc271/jcamp/internal/xsec"
)

// ConvertSummary is the serializable view of a cross-section
// conversion.
type ConvertSummary struct {
	Title        string    `json:"title" yaml:"title"`
	Quantitative bool      `json:"quantitative" yaml:"quantitative"`
	Points       int       `json:"points" yaml:"points"`
	MinXsec      float64   `json:"min_xsec,omitempty" yaml:"min_xsec,omitempty"`
	MaxXsec      float64   `json:"max_xsec,omitempty" yaml:"max_xsec,omitempty"`
	Wavelengths  []float64 `json:"wavelengths,omitempty" yaml:"wavelengths,omitempty"`
	Xsec         []float64 `json:"xsec,omitempty" yaml:"xsec,omitempty"`
}

// String renders the summary for text output.
func (s ConvertSummary) String() string {
	var b strings.Builder
	b.WriteString("title:        " + s.Title + "\n")
	if !s.Quantitative {
		b.WriteString("quantitative: false (missing path length or partial pressure)")
		return b.String()
	}
	b.WriteString("quantitative: true\n")
	fmt.Fprintf(&b, "points:       %d\n", s.Points)
	fmt.Fprintf(&b, "xsec range:   %.6e .. %.6e m^2", s.MinXsec, s.MaxXsec)
	return b.String()
}

// NewConvertCommand creates the convert command: decode a file and
// derive its absorption cross-section.
func NewConvertCommand(opts *RootOptions) *cobra.Command {
	var (
		skipNonquant bool
		full         bool
	)
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a spectrum to absorption cross-section (m^2)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := DecodeFile(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "convert failed", err)
			}
			logWarnings(args[0], rec)

			res, err := xsec.Convert(rec, xsec.Options{SkipNonquant: skipNonquant})
			if err != nil {
				return WrapExitError(ExitFailure, "convert failed", err)
			}

			s := ConvertSummary{
				Title:        rec.Title(),
				Quantitative: res.Quantitative,
				Points:       len(res.Xsec),
			}
			if len(res.Xsec) > 0 {
				s.MinXsec, s.MaxXsec = rangeOf(res.Xsec)
			}
			if full {
				s.Wavelengths = res.Wavelengths
				s.Xsec = res.Xsec
			}

			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return f.Emit(s)
		},
	}
	cmd.Flags().BoolVar(&skipNonquant, "skip-nonquant", opts.Config.SkipNonquant,
		"fail soft instead of guessing missing quantitative metadata")
	cmd.Flags().BoolVar(&full, "full", false, "include the full derived series in the output")
	return cmd
}

// rangeOf returns the min and max of a series, ignoring NaN gaps.
func rangeOf(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
