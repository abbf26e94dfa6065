package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	internalErrors "github.com/khalidmahamud/voter-info-web/internal/errors"
	"github.com/khalidmahamud/voter-info-web/internal/export"
)

type exportOptions struct {
	queryFlags
	format string
	output string
}

func newExportCmd(root *rootOptions) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export [query]",
		Short: "Export matching voters as CSV or JSON",
		Long: `Export every voter matching the query and filters.

The file is named voter_data_<timestamp>.<format> unless --output is
given. Use --output - to write to standard output.

Examples:
  voter_directory export --ward 2 --gender female
  voter_directory export "karim" --format json --output karim.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd, root, strings.Join(args, " "), opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", export.FormatCSV, "Export format: csv, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, '-' for standard output")

	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, root *rootOptions, text string, opts exportOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	dir, cleanup, err := root.setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	ward, err := dir.Ward(opts.ward)
	if err != nil {
		return err
	}
	records, err := ward.Matching(opts.query(text))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return internalErrors.ErrNoRecords
	}

	if opts.output == "-" {
		return export.Write(cmd.OutOrStdout(), format, records)
	}

	path := opts.output
	if path == "" {
		path = export.Filename(export.DefaultPrefix, format, time.Now())
	}
	if err := writeFile(path, func(f *os.File) error {
		return export.Write(f, format, records)
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d voters to %s\n", len(records), path)
	return nil
}

// writeFile creates path and its directories and hands the file to write.
func writeFile(path string, write func(f *os.File) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(filepath.Clean(path)) // #nosec G304 -- path comes from the command line
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return write(f)
}
