package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/greenops"
	"github.com/rshade/carbonwise/internal/vehicle"
)

func newVehiclesCmd(a *app) *cobra.Command {
	var rawFilters []string

	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List catalog vehicles",
		Long: `List vehicles in the catalog. Each --filter key=value keeps vehicles whose
field contains value, ignoring case. Vehicles without the field are dropped.`,
		Example: `  carbonwise vehicles --filter brand=toyota --filter type=HEV`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters, err := parseFilters(rawFilters)
			if err != nil {
				return a.fail(cmd, err)
			}
			eng, err := a.engine(cmd.Context())
			if err != nil {
				return a.fail(cmd, err)
			}

			vehicles := eng.Catalog().Find(filters)
			return a.render(cmd, vehicles, func(w io.Writer) error {
				return renderVehicles(w, vehicles)
			})
		},
	}

	cmd.Flags().StringArrayVar(&rawFilters, "filter", nil, "field filter key=value (repeatable)")
	return cmd
}

func renderVehicles(w io.Writer, vehicles []vehicle.Vehicle) error {
	if len(vehicles) == 0 {
		_, err := fmt.Fprintln(w, "No vehicles match.")
		return err
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "BRAND\tMODEL\tYEAR\tTYPE\tFUEL\tCO2 g/km\tWh/km\tPRICE\tBODY")
	for _, v := range vehicles {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.Brand, v.Model, v.Year, v.Type, dash(v.FuelType),
			optionalFloat(v.CO2GPerKm, 1), optionalFloat(v.ElectricWhPerKm, 1),
			optionalFloat(v.Price, 0), dash(v.BodyType))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s vehicles\n", greenops.FormatNumber(int64(len(vehicles))))
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
