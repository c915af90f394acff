package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/engine"
	"github.com/rshade/carbonwise/internal/vehicle"
)

// greenwashingOutput is a greenwashing assessment of one vehicle.
type greenwashingOutput struct {
	Vehicle vehicle.Key `json:"vehicle"`
	engine.GreenwashingResult
}

func newGreenwashingCmd(a *app) *cobra.Command {
	var vf vehicleFlags
	var gf gridFlags

	cmd := &cobra.Command{
		Use:   "greenwashing",
		Short: "Flag lifecycle figures that contradict green marketing",
		Example: `  carbonwise greenwashing --brand Volkswagen --model ID.4 --year 2023 --country PL`,
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

			metrics := engine.GreenwashingMetrics{}
			if res, lcErr := eng.Lifecycle(ctx, v, gf.Country, gf.Year); lcErr == nil {
				metrics = engine.MetricsFrom(res)
			} else {
				logger.Debug().Ctx(ctx).Err(lcErr).Msg("lifecycle unavailable, assessing without metrics")
			}

			out := greenwashingOutput{
				Vehicle:            v.Key(),
				GreenwashingResult: engine.AssessGreenwashing(metrics, engine.VehicleMeta{Type: v.Type, Brand: v.Brand, Model: v.Model}),
			}
			return a.render(cmd, out, func(w io.Writer) error {
				return renderGreenwashing(w, v, out.GreenwashingResult)
			})
		},
	}

	vf.register(cmd)
	gf.register(cmd)
	return cmd
}

func renderGreenwashing(w io.Writer, v vehicle.Vehicle, res engine.GreenwashingResult) error {
	lines := []string{
		fmt.Sprintf("Risk level:     %s", colorize(w, string(res.RiskLevel), riskColor(res.RiskLevel))),
		fmt.Sprintf("Transparency:   %d/100", res.TransparencyScore),
	}
	if len(res.Findings) > 0 {
		lines = append(lines, "")
	}
	for _, f := range res.Findings {
		lines = append(lines, fmt.Sprintf("[%s] %s", f.Severity, f.Message))
	}
	return renderBox(w, "Greenwashing check: "+v.Label(), lines)
}
