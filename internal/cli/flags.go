package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/config"
)

// vehicleFlags selects one catalog vehicle.
type vehicleFlags struct {
	Brand string
	Model string
	Year  int
}

func (f *vehicleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Brand, "brand", "", "vehicle brand (required)")
	cmd.Flags().StringVar(&f.Model, "model", "", "vehicle model (required)")
	cmd.Flags().IntVar(&f.Year, "year", 0, "vehicle model year (required)")
	_ = cmd.MarkFlagRequired("brand")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("year")
}

// gridFlags selects the electricity grid context.
type gridFlags struct {
	Country string
	Year    int
}

func (f *gridFlags) register(cmd *cobra.Command) {
	defaults := config.GetGlobalConfig().Defaults
	cmd.Flags().StringVar(&f.Country, "country", defaults.Country, "grid country code (ISO-2 or ISO-3)")
	cmd.Flags().IntVar(&f.Year, "grid-year", defaults.GridYear, "grid intensity year")
}

// parseVehicleRef parses "brand/model/year". The model may itself
// contain slashes.
func parseVehicleRef(ref string) (vehicleFlags, error) {
	first := strings.Index(ref, "/")
	last := strings.LastIndex(ref, "/")
	if first < 0 || first == last {
		return vehicleFlags{}, fmt.Errorf("invalid vehicle %q: expected brand/model/year", ref)
	}

	year, err := strconv.Atoi(strings.TrimSpace(ref[last+1:]))
	if err != nil {
		return vehicleFlags{}, fmt.Errorf("invalid vehicle %q: year must be a number", ref)
	}

	v := vehicleFlags{
		Brand: strings.TrimSpace(ref[:first]),
		Model: strings.TrimSpace(ref[first+1 : last]),
		Year:  year,
	}
	if v.Brand == "" || v.Model == "" {
		return vehicleFlags{}, fmt.Errorf("invalid vehicle %q: brand and model are required", ref)
	}
	return v, nil
}

// parseFilters parses key=value filters.
func parseFilters(raw []string) (map[string]string, error) {
	filters := make(map[string]string, len(raw))
	for _, f := range raw {
		key, value, ok := strings.Cut(f, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", f)
		}
		filters[key] = strings.TrimSpace(value)
	}
	return filters, nil
}

func defaultGridYear() int {
	return config.GetGlobalConfig().Defaults.GridYear
}
