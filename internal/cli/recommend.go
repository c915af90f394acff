package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/config"
	"github.com/rshade/carbonwise/internal/engine"
	"github.com/rshade/carbonwise/internal/greenops"
	"github.com/rshade/carbonwise/internal/vehicle"
)

// RecommendParams holds the recommend command flags.
type RecommendParams struct {
	DailyKm    float64
	Years      float64
	Powertrain string
	MaxPrice   float64
	BodyType   string
	TopN       int
	Grid       gridFlags
}

// Request converts the flags to an engine request. hasMaxPrice reports
// whether --max-price was given.
func (p RecommendParams) Request(hasMaxPrice bool) (engine.RecommendRequest, error) {
	if p.DailyKm <= 0 {
		return engine.RecommendRequest{}, errors.New("--daily-km must be greater than 0")
	}
	if p.Years <= 0 {
		return engine.RecommendRequest{}, errors.New("--years must be greater than 0")
	}

	req := engine.RecommendRequest{
		DailyKm: p.DailyKm,
		Years:   p.Years,
		Country: p.Grid.Country,
		Year:    p.Grid.Year,
		TopN:    p.TopN,
		Filters: engine.RecommendFilters{BodyType: p.BodyType},
	}
	if p.Powertrain != "" {
		pt, ok := vehicle.ParsePowertrain(p.Powertrain)
		if !ok {
			return engine.RecommendRequest{}, fmt.Errorf("unknown powertrain %q", p.Powertrain)
		}
		req.Filters.Powertrain = pt
	}
	if hasMaxPrice {
		price := p.MaxPrice
		req.Filters.MaxPrice = &price
	}
	return req, nil
}

func newRecommendCmd(a *app) *cobra.Command {
	var params RecommendParams

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the lowest-emission vehicles for a driving profile",
		Long: `Rank catalog vehicles by lifecycle CO2e per km and estimate the footprint
of driving --daily-km every day for --years. The result includes the best
vehicle of each powertrain before repeating a powertrain.`,
		Example: `  carbonwise recommend --daily-km 40 --years 8
  carbonwise recommend --daily-km 25 --years 5 --powertrain EV --max-price 42000 --country FR`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := params.Request(cmd.Flags().Changed("max-price"))
			if err != nil {
				return a.fail(cmd, err)
			}
			eng, err := a.engine(cmd.Context())
			if err != nil {
				return a.fail(cmd, err)
			}

			report := eng.RecommendReport(cmd.Context(), req)
			return a.render(cmd, report, func(w io.Writer) error {
				return renderRecommendations(w, report, req, a.precision())
			})
		},
	}

	cmd.Flags().Float64Var(&params.DailyKm, "daily-km", 0, "distance driven per day in km (required)")
	cmd.Flags().Float64Var(&params.Years, "years", 0, "ownership period in years (required)")
	cmd.Flags().StringVar(&params.Powertrain, "powertrain", "", "only this powertrain (ICE, HEV, PHEV, EV, FCV)")
	cmd.Flags().Float64Var(&params.MaxPrice, "max-price", 0, "maximum price; vehicles without a price are excluded")
	cmd.Flags().StringVar(&params.BodyType, "body-type", "", "body type substring, e.g. suv")
	cmd.Flags().IntVar(&params.TopN, "top-n", config.GetGlobalConfig().Defaults.TopN, "number of vehicles to return")
	_ = cmd.MarkFlagRequired("daily-km")
	_ = cmd.MarkFlagRequired("years")
	params.Grid.register(cmd)
	return cmd
}

func renderRecommendations(w io.Writer, report engine.RecommendReport, req engine.RecommendRequest, precision int) error {
	if len(report.Recommendations) == 0 {
		_, err := fmt.Fprintln(w, "No vehicles match the given filters.")
		return err
	}

	_, _ = fmt.Fprintf(w, "%s km/day for %s years\n\n",
		greenops.FormatFloat(req.DailyKm, 1), greenops.FormatFloat(req.Years, 1))

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "#\tVEHICLE\tTYPE\tTOTAL\tYOUR FOOTPRINT")
	for _, r := range report.Recommendations {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s t\n",
			r.Rank, r.Vehicle, r.Powertrain, gkm(r.TotalGPerKm, precision), greenops.FormatFloat(r.PersonalizedTotalTonnes, 2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.Truncated {
		note := fmt.Sprintf("\nOnly the first %s of %s matching vehicles were ranked.\n",
			greenops.FormatNumber(int64(report.Considered)), greenops.FormatNumber(int64(report.Candidates)))
		_, err := io.WriteString(w, colorize(w, note, colorWarning()))
		return err
	}
	return nil
}
