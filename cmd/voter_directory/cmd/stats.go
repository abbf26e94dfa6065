package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khalidmahamud/voter-info-web/model"
	"github.com/khalidmahamud/voter-info-web/services"
)

type statsOptions struct {
	ward   string
	top    int
	format string
}

func newStatsCmd(root *rootOptions) *cobra.Command {
	var opts statsOptions

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show voter statistics",
		Long: `Show voter totals, the most common occupations and the age
distribution of a ward, or of every ward.

Examples:
  voter_directory stats
  voter_directory stats --ward 2 --top 5
  voter_directory stats --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ward, "ward", model.AllWards, "Ward number, or 'all' for every ward")
	cmd.Flags().IntVar(&opts.top, "top", 10, "Number of occupations to list (0 lists all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runStats(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts statsOptions) error {
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

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Ward  model.WardSummary `json:"ward"`
			Stats model.Stats       `json:"stats"`
		}{ward.Summary(), ward.Stats()})
	}
	return printStats(cmd.OutOrStdout(), ward, opts.top)
}

func printStats(w io.Writer, ward services.WardAccessor, top int) error {
	summary := ward.Summary()
	st := ward.Stats()

	title := summary.WardName
	if summary.WardNo > 0 {
		title = fmt.Sprintf("Ward %d %s", summary.WardNo, summary.WardName)
	}
	fmt.Fprintf(w, "%s\n\n", title)
	fmt.Fprintf(w, "Total voters: %d\nFemale: %d\nMale: %d\n", st.Total, st.Female, st.Male)
	if st.MinBirthYear > 0 {
		fmt.Fprintf(w, "Birth years: %d to %d\n", st.MinBirthYear, st.MaxBirthYear)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nAGE\tVOTERS")
	for _, b := range st.AgeDistribution {
		fmt.Fprintf(tw, "%s\t%d\n", b.Label, b.Count)
	}

	occupations := st.Occupations
	if top > 0 && len(occupations) > top {
		occupations = occupations[:top]
	}
	fmt.Fprintln(tw, "\nOCCUPATION\tVOTERS")
	for _, o := range occupations {
		name := o.Occupation
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(tw, "%s\t%d\n", name, o.Count)
	}
	return tw.Flush()
}
