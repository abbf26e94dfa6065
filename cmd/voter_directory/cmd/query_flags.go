package cmd

import (
	"github.com/spf13/cobra"

	"github.com/khalidmahamud/voter-info-web/model"
	"github.com/khalidmahamud/voter-info-web/services"
)

// queryFlags holds the ward, filter and sort flags shared by search and export.
type queryFlags struct {
	ward        string
	gender      string
	occupations []string
	address     string
	yearFrom    int
	yearTo      int
	sortBy      string
	desc        bool
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.ward, "ward", model.AllWards, "Ward number, or 'all' for every ward")
	cmd.Flags().StringVar(&q.gender, "gender", "", "Filter by gender: all, female, male")
	cmd.Flags().StringSliceVar(&q.occupations, "occupation", nil, "Filter by occupation (repeatable)")
	cmd.Flags().StringVar(&q.address, "address", "", "Filter by address substring")
	cmd.Flags().IntVar(&q.yearFrom, "born-from", 0, "Earliest birth year (inclusive)")
	cmd.Flags().IntVar(&q.yearTo, "born-to", 0, "Latest birth year (inclusive)")
	cmd.Flags().StringVar(&q.sortBy, "sort", "", "Sort by column: serial, name, voter_no, father_name, mother_name, occupation, dob, address")
	cmd.Flags().BoolVar(&q.desc, "desc", false, "Sort descending")
}

func (q *queryFlags) query(text string) services.SearchQuery {
	return services.SearchQuery{
		QueryString: text,
		Filters: services.Filters{
			Gender:        q.gender,
			Occupations:   q.occupations,
			Address:       q.address,
			BirthYearFrom: q.yearFrom,
			BirthYearTo:   q.yearTo,
		},
		SortBy: q.sortBy,
		Desc:   q.desc,
	}
}
