package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/engine"
	"github.com/rshade/carbonwise/internal/vehicle"
)

func newCompareCmd(a *app) *cobra.Command {
	var refs []string
	var gf gridFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare lifecycle emissions of several vehicles",
		Long: `Compare several vehicles in one grid context. Vehicles that cannot be
found or calculated are listed as failures and do not stop the others.`,
		Example: `  carbonwise compare --vehicle "Tesla/Model 3/2023" --vehicle "Toyota/Camry Hybrid/2023"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := a.engine(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			var found []vehicle.Vehicle
			var missing []engine.CompareFailure
			for _, ref := range refs {
				vf, parseErr := parseVehicleRef(ref)
				if parseErr != nil {
					return a.fail(cmd, parseErr)
				}
				v, lookupErr := eng.LookupVehicle(vf.Brand, vf.Model, vf.Year)
				if lookupErr != nil {
					missing = append(missing, engine.CompareFailure{
						Vehicle: vehicle.Key{Brand: vf.Brand, Model: vf.Model, Year: vf.Year},
						Reason:  lookupErr.Error(),
					})
					continue
				}
				found = append(found, v)
			}

			res, err := eng.Compare(ctx, found, gf.Country, gf.Year)
			if err != nil {
				return a.fail(cmd, err)
			}
			res.Failures = append(missing, res.Failures...)

			return a.render(cmd, res, func(w io.Writer) error {
				return renderCompare(w, res, a.precision())
			})
		},
	}

	cmd.Flags().StringArrayVar(&refs, "vehicle", nil, "vehicle as brand/model/year (repeatable, required)")
	_ = cmd.MarkFlagRequired("vehicle")
	gf.register(cmd)
	return cmd
}

func renderCompare(w io.Writer, res engine.CompareResult, p int) error {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "VEHICLE\tTYPE\tOPERATIONAL\tMANUFACTURING\tTOTAL")
	for _, r := range res.Results {
		_, _ = fmt.Fprintf(tw, "%s %s (%d)\t%s\t%s\t%s\t%s\n",
			r.Brand, r.Model, r.Year, r.Powertrain,
			gkm(r.OperationalGPerKm, p), gkm(r.ManufacturingGPerKm, p), gkm(r.TotalGPerKm, p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(res.Failures) > 0 {
		var b strings.Builder
		b.WriteString("\nSkipped:\n")
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "  %s %s (%d): %s\n", f.Vehicle.Brand, f.Vehicle.Model, f.Vehicle.Year, f.Reason)
		}
		_, err := io.WriteString(w, colorize(w, b.String(), colorWarning()))
		return err
	}
	return nil
}

func newGridSensitivityCmd(a *app) *cobra.Command {
	var vf vehicleFlags
	var countries []string
	var gridYear int

	cmd := &cobra.Command{
		Use:   "grid-sensitivity",
		Short: "Lifecycle emissions of one vehicle across country grids",
		Long: `Compute one vehicle's lifecycle emissions on each listed country's grid,
cleanest first. Countries without grid data are omitted.`,
		Example: `  carbonwise grid-sensitivity --brand Tesla --model "Model 3" --year 2023 --countries US,DE,FR,NO`,
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

			if len(countries) == 0 {
				for _, c := range engine.SupportedCountries() {
					countries = append(countries, c.Code)
				}
			}

			points, err := eng.GridSensitivity(ctx, v, countries, gridYear)
			if err != nil {
				return a.fail(cmd, err)
			}
			return a.render(cmd, points, func(w io.Writer) error {
				return renderSensitivity(w, v, points, a.precision())
			})
		},
	}

	vf.register(cmd)
	cmd.Flags().StringSliceVar(&countries, "countries", nil, "comma-separated country codes (default: all supported)")
	cmd.Flags().IntVar(&gridYear, "grid-year", defaultGridYear(), "grid intensity year")
	return cmd
}

func renderSensitivity(w io.Writer, v vehicle.Vehicle, points []engine.SensitivityPoint, p int) error {
	if len(points) == 0 {
		_, err := fmt.Fprintf(w, "No grid data available for %s.\n", v.Label())
		return err
	}

	_, _ = fmt.Fprintf(w, "%s\n\n", v.Label())
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "COUNTRY\tGRID YEAR\tOPERATIONAL\tTOTAL")
	for _, pt := range points {
		year := "-"
		if pt.GridYear != 0 {
			year = fmt.Sprint(pt.GridYear)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", pt.Country, year, gkm(pt.OperationalGPerKm, p), gkm(pt.TotalGPerKm, p))
	}
	return tw.Flush()
}
