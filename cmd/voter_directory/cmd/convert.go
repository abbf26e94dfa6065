package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khalidmahamud/voter-info-web/internal/dataset"
)

type convertOptions struct {
	to     string
	output string
}

func newConvertNumeralsCmd(root *rootOptions) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert-numerals",
		Short: "Rewrite the digits of a dataset file",
		Long: `Rewrite every digit in the voter records of the dataset to Bengali
or ASCII digits and save the result. Ward numbers stay numeric.

Examples:
  voter_directory convert-numerals --data raw.json --output data/voters.json
  voter_directory convert-numerals --to arabic --output ascii.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvertNumerals(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.to, "to", "bengali", "Target digits: bengali, arabic")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runConvertNumerals(cmd *cobra.Command, root *rootOptions, opts convertOptions) error {
	var toBengali bool
	switch opts.to {
	case "bengali":
		toBengali = true
	case "arabic":
	default:
		return fmt.Errorf("unknown target %q, use bengali or arabic", opts.to)
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	ds, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		return err
	}
	converted := dataset.ConvertNumerals(ds, toBengali)
	if err := dataset.Save(opts.output, converted); err != nil {
		return err
	}

	total := 0
	for i := range converted.Wards {
		total += converted.Wards[i].Total()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d voters in %d wards to %s digits: %s\n",
		total, len(converted.Wards), opts.to, opts.output)
	return nil
}
