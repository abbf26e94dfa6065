package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khalidmahamud/voter-info-web/services"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	queryFlags
	page   int
	limit  int
	format string // "text", "json"
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the voter list",
		Long: `Search the voter list by name, parents' names, voter number or address.

Without a query the filtered voter list is printed in dataset order.

Examples:
  voter_directory search "abdul karim"
  voter_directory search করিম --ward ৩ --gender male
  voter_directory search --occupation Farmer --sort dob --desc
  voter_directory search 5502 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, root, strings.Join(args, " "), opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&opts.page, "page", 1, "Result page")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 10, "Results per page")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, root *rootOptions, text string, opts searchOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q, use text or json", opts.format)
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

	query := opts.query(text)
	query.Page = opts.page
	query.PageSize = opts.limit
	result, err := ward.Search(query)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printHits(cmd.OutOrStdout(), result)
}

func printHits(w io.Writer, result services.SearchResult) error {
	if result.Total == 0 {
		_, err := fmt.Fprintln(w, "No voters found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WARD\tSERIAL\tNAME\tVOTER NO\tFATHER\tMOTHER\tOCCUPATION\tDOB\tSCORE")
	for _, h := range result.Hits {
		r := h.Record
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.3f\n",
			r.WardNo, r.SerialNo, r.Name, r.VoterNo, r.FatherName, r.MotherName, r.Occupation, r.DateOfBirth, h.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nShowing %d of %d (page %d, %d ms)\n", len(result.Hits), result.Total, result.Page, result.Took)
	return err
}
