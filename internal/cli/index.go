package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tomc271/jcamp/internal/catalog"
)

// IndexSummary reports the outcome of an index run.
type IndexSummary struct {
	Scanned int `json:"scanned" yaml:"scanned"`
	Indexed int `json:"indexed" yaml:"indexed"`
	Failed  int `json:"failed" yaml:"failed"`
}

// String renders the summary for text output.
func (s IndexSummary) String() string {
	return fmt.Sprintf("scanned %d files, indexed %d, failed %d", s.Scanned, s.Indexed, s.Failed)
}

// jdxExtensions are the file suffixes scanned by the index command.
var jdxExtensions = []string{".jdx", ".dx", ".jcm"}

// NewIndexCommand creates the index command: walk a directory, decode
// every JCAMP-DX file found and upsert its header summary into the
// catalog. Files that fail to decode are logged and skipped; the run
// continues.
func NewIndexCommand(opts *RootOptions) *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "index <dir>",
		Short: "Index a directory of JCAMP-DX files into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.Open(catalogPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "index failed", err)
			}
			defer store.Close()

			var summary IndexSummary
			walkErr := filepath.WalkDir(args[0], func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !hasJDXExtension(path) {
					return nil
				}
				summary.Scanned++

				rec, err := DecodeFile(path)
				if err != nil {
					summary.Failed++
					log.Error().Str("origin", path).Err(err).Msg("skipping undecodable file")
					return nil
				}
				logWarnings(path, rec)

				entry := catalog.EntryFromRecord(path, rec)
				if err := store.Upsert(cmd.Context(), entry); err != nil {
					return err
				}
				summary.Indexed++
				return nil
			})
			if walkErr != nil {
				return WrapExitError(ExitCommandError, "index failed", walkErr)
			}

			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return f.Emit(summary)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", opts.Config.CatalogPath, "catalog database path")
	return cmd
}

func hasJDXExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range jdxExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
