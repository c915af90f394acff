package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/greenops"
)

func newScoreCmd(a *app) *cobra.Command {
	var total float64

	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Rate a lifecycle g/km figure from 0 to 100",
		Example: `  carbonwise score --total-g-per-km 112.4`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := greenops.Score(total)
			if err != nil {
				return a.fail(cmd, err)
			}
			return a.render(cmd, res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Carbon score: %s (%s)\n",
					greenops.FormatFloat(res.Score, 1), colorize(w, string(res.Category), categoryColor(res.Category)))
				return err
			})
		},
	}

	cmd.Flags().Float64Var(&total, "total-g-per-km", 0, "lifecycle CO2e in g/km (required)")
	_ = cmd.MarkFlagRequired("total-g-per-km")
	return cmd
}

func newAnnualCmd(a *app) *cobra.Command {
	var total, annualKm float64

	cmd := &cobra.Command{
		Use:     "annual",
		Short:   "Yearly footprint for a lifecycle g/km figure",
		Example: `  carbonwise annual --total-g-per-km 167.3 --annual-km 15000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := greenops.AnnualImpact(total, annualKm)
			if err != nil {
				return a.fail(cmd, err)
			}
			return a.render(cmd, res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Annual footprint: %s kg (%s t)\n",
					greenops.FormatFloat(res.AnnualKg, 1), greenops.FormatFloat(res.AnnualTonnes, 3))
				return err
			})
		},
	}

	cmd.Flags().Float64Var(&total, "total-g-per-km", 0, "lifecycle CO2e in g/km (required)")
	cmd.Flags().Float64Var(&annualKm, "annual-km", 0, "distance driven per year in km (required)")
	_ = cmd.MarkFlagRequired("total-g-per-km")
	_ = cmd.MarkFlagRequired("annual-km")
	return cmd
}
