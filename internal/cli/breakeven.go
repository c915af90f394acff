package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/engine"
	"github.com/rshade/carbonwise/internal/greenops"
)

func newBreakEvenCmd(a *app) *cobra.Command {
	var evRef, otherRef string
	var gf gridFlags

	cmd := &cobra.Command{
		Use:   "break-even",
		Short: "Distance after which an EV overtakes a combustion vehicle",
		Long: `Compute the distance at which an electric vehicle's extra manufacturing
footprint is repaid by its lower operational emissions. When the EV is not
operationally cleaner on the chosen grid there is no break-even point.`,
		Example: `  carbonwise break-even --ev "Hyundai/Ioniq 5/2023" --other "Toyota/Camry/2023" --country DE`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := a.engine(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			evFlags, err := parseVehicleRef(evRef)
			if err != nil {
				return a.fail(cmd, err)
			}
			otherFlags, err := parseVehicleRef(otherRef)
			if err != nil {
				return a.fail(cmd, err)
			}
			ev, err := eng.LookupVehicle(evFlags.Brand, evFlags.Model, evFlags.Year)
			if err != nil {
				return a.fail(cmd, err)
			}
			other, err := eng.LookupVehicle(otherFlags.Brand, otherFlags.Model, otherFlags.Year)
			if err != nil {
				return a.fail(cmd, err)
			}

			res, err := eng.BreakEven(ctx, ev, other, gf.Country, gf.Year)
			if err != nil {
				return a.fail(cmd, err)
			}
			return a.render(cmd, res, func(w io.Writer) error {
				return renderBreakEven(w, ev.Label(), other.Label(), res, a.precision())
			})
		},
	}

	cmd.Flags().StringVar(&evRef, "ev", "", "electric vehicle as brand/model/year (required)")
	cmd.Flags().StringVar(&otherRef, "other", "", "ICE, HEV or PHEV as brand/model/year (required)")
	_ = cmd.MarkFlagRequired("ev")
	_ = cmd.MarkFlagRequired("other")
	gf.register(cmd)
	return cmd
}

func renderBreakEven(w io.Writer, evLabel, otherLabel string, res engine.BreakEvenResult, p int) error {
	lines := []string{
		fmt.Sprintf("%s: %s total (%s manufacturing)", evLabel, gkm(res.Clean.TotalGPerKm, p), kg(res.Clean.ManufacturingKg, p)),
		fmt.Sprintf("%s: %s total (%s manufacturing)", otherLabel, gkm(res.Dirty.TotalGPerKm, p), kg(res.Dirty.ManufacturingKg, p)),
		"",
		fmt.Sprintf("Extra manufacturing:    %s", kg(res.ManufacturingDeltaG/1000, p)),
		fmt.Sprintf("Operational advantage:  %s", gkm(res.OperationalAdvantageGPerKm, p)),
		"",
	}
	if res.HasBreakEven() {
		lines = append(lines, colorize(w,
			fmt.Sprintf("Break-even after %s km", greenops.FormatFloat(*res.BreakEvenKm, 0)), colorGood()))
		if *res.BreakEvenKm > engine.LifetimeKm {
			lines = append(lines, colorize(w, "Beyond the assumed vehicle lifetime", colorWarning()))
		}
	} else {
		lines = append(lines, colorize(w, res.Message, colorBad()))
	}
	return renderBox(w, "Break-even", lines)
}
