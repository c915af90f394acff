package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/engine"
	"github.com/rshade/carbonwise/internal/greenops"
)

// countryOutput is a supported country with the grid years on record.
type countryOutput struct {
	engine.Country
	GridYears []int `json:"grid_years"`
}

func newCountriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List supported countries and their grid data years",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.engine(cmd.Context())
			if err != nil {
				return a.fail(cmd, err)
			}

			supported := engine.SupportedCountries()
			out := make([]countryOutput, 0, len(supported))
			for _, c := range supported {
				out = append(out, countryOutput{Country: c, GridYears: eng.Grid().Years(c.ISO3)})
			}
			return a.render(cmd, out, func(w io.Writer) error {
				tw := newTable(w)
				_, _ = fmt.Fprintln(tw, "CODE\tISO3\tNAME\tGRID YEARS")
				for _, c := range out {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Code, c.ISO3, c.Name, yearRange(c.GridYears))
				}
				return tw.Flush()
			})
		},
	}
}

func yearRange(years []int) string {
	switch len(years) {
	case 0:
		return "-"
	case 1:
		return fmt.Sprint(years[0])
	default:
		return fmt.Sprintf("%d-%d", years[0], years[len(years)-1])
	}
}

func newMethodologyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "methodology",
		Short: "Describe the emission models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.engine(cmd.Context())
			if err != nil {
				return a.fail(cmd, err)
			}

			m := eng.Methodology()
			return a.render(cmd, m, func(w io.Writer) error {
				return renderBox(w, m.Platform, []string{
					"Operational:    " + m.OperationalModel,
					"Manufacturing:  " + m.ManufacturingModel,
					"Grid series:    " + m.GridSeries,
					"Lifetime:       " + greenops.FormatFloat(m.LifetimeKm, 0) + " km",
					"Ranking basis:  " + m.RankingBasis,
					"Financial:      " + m.FinancialFactors,
				})
			})
		},
	}
}

func newGridCmd(a *app) *cobra.Command {
	var countries []string

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "List stored grid carbon intensity by country and year",
		Long: `List the grid intensity table in g CO2/kWh: the raw generation series and
the series corrected for transmission losses. Missing cells print as "-".`,
		Example: `  carbonwise grid
  carbonwise grid --countries US,DE,NO -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.engine(cmd.Context())
			if err != nil {
				return a.fail(cmd, err)
			}

			records := eng.Grid().Records(countries...)
			if records == nil {
				records = []engine.GridRecord{}
			}
			return a.render(cmd, records, func(w io.Writer) error {
				return renderGrid(w, records, a.precision())
			})
		},
	}

	cmd.Flags().StringSliceVar(&countries, "countries", nil, "comma-separated country codes (default: every country on record)")
	return cmd
}

func renderGrid(w io.Writer, records []engine.GridRecord, p int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No grid data for the given countries.")
		return err
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "COUNTRY\tNAME\tYEAR\tRAW g/kWh\tCORRECTED g/kWh")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			r.Country, dash(r.Name), r.Year, optionalFloat(r.Raw, p), optionalFloat(r.Corrected, p))
	}
	return tw.Flush()
}
