package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/engine"
	"github.com/rshade/carbonwise/internal/greenops"
)

// lifecycleOutput is a lifecycle result with its derived ratings.
type lifecycleOutput struct {
	engine.LifecycleResult
	Manufacturing engine.ManufacturingBreakdown `json:"manufacturing"`
	CarbonScore   greenops.ScoreResult          `json:"carbon_score"`
	Equivalencies greenops.EquivalencyOutput    `json:"lifetime_equivalencies"`
}

func newLifecycleCmd(a *app) *cobra.Command {
	var vf vehicleFlags
	var gf gridFlags

	cmd := &cobra.Command{
		Use:   "lifecycle",
		Short: "Lifecycle CO2e per km of one vehicle",
		Long: `Compute manufacturing plus operational CO2e per km for one vehicle.
Electric vehicles use the grid of --country in --grid-year; when that year is
missing the latest available year is used and reported.`,
		Example: `  carbonwise lifecycle --brand Toyota --model Camry --year 2023
  carbonwise lifecycle --brand Tesla --model "Model Y" --year 2023 --country NO --grid-year 2022`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := a.engine(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}
			v, err := eng.LookupVehicle(vf.Brand, vf.Model, vf.Year)
			if err != nil {
				return a.fail(cmd, err)
			}

			res, err := eng.Lifecycle(ctx, v, gf.Country, gf.Year)
			if err != nil {
				return a.fail(cmd, err)
			}
			breakdown, err := eng.Manufacturing().Breakdown(v)
			if err != nil {
				return a.fail(cmd, err)
			}
			score, err := greenops.Score(res.TotalGPerKm)
			if err != nil {
				return a.fail(cmd, err)
			}

			out := lifecycleOutput{
				LifecycleResult: res,
				Manufacturing:   breakdown,
				CarbonScore:     score,
				Equivalencies:   greenops.ForDistance(ctx, res.TotalGPerKm, engine.LifetimeKm),
			}
			return a.render(cmd, out, func(w io.Writer) error {
				return renderLifecycle(w, out, gf.Country, a.precision())
			})
		},
	}

	vf.register(cmd)
	gf.register(cmd)
	return cmd
}

func renderLifecycle(w io.Writer, out lifecycleOutput, country string, p int) error {
	res := out.LifecycleResult
	lines := []string{
		fmt.Sprintf("Powertrain:     %s", res.Powertrain),
		fmt.Sprintf("Operational:    %s (%s)", gkm(res.OperationalGPerKm, p), res.OperationalSource),
		fmt.Sprintf("Manufacturing:  %s", gkm(res.ManufacturingGPerKm, p)),
		fmt.Sprintf("Total:          %s", gkm(res.TotalGPerKm, p)),
		"",
		fmt.Sprintf("Glider:         %s", kg(out.Manufacturing.GliderKg, p)),
		fmt.Sprintf("Battery:        %s %s", kg(out.Manufacturing.BatteryKg, p), out.Manufacturing.Chemistry),
		fmt.Sprintf("Fluids:         %s", kg(out.Manufacturing.FluidsKg, p)),
		"",
		fmt.Sprintf("Carbon score:   %s (%s)",
			greenops.FormatFloat(out.CarbonScore.Score, 1),
			colorize(w, string(out.CarbonScore.Category), categoryColor(out.CarbonScore.Category))),
	}
	if res.OperationalSource == engine.SourceGrid {
		grid := fmt.Sprintf("Grid:           %s %d", engine.NormalizeCountry(country), res.GridYear)
		if res.UsedFallbackYear {
			grid += colorize(w, " (latest available year)", colorWarning())
		}
		lines = append(lines, grid)
	}
	if !out.Equivalencies.IsEmpty {
		lines = append(lines, "", "Over "+greenops.FormatNumber(engine.LifetimeKm)+" km: "+out.Equivalencies.DisplayText)
	}

	title := fmt.Sprintf("%s %s (%d)", res.Brand, res.Model, res.Year)
	return renderBox(w, title, lines)
}
