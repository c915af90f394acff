package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/rshade/carbonwise/internal/logging"
	"github.com/rshade/carbonwise/internal/reference"
)

// Country pairs a two-letter code with a display name and its ISO-3 code.
type Country struct {
	Code string `json:"code"`
	ISO3 string `json:"iso3"`
	Name string `json:"name"`
}

// supportedCountries is the curated list offered to users. UK is accepted
// as an alias of GB.
//
//nolint:gochecknoglobals // Constant lookup table.
var supportedCountries = []Country{
	{"US", "USA", "United States"},
	{"DE", "DEU", "Germany"},
	{"FR", "FRA", "France"},
	{"UK", "GBR", "United Kingdom"},
	{"CN", "CHN", "China"},
	{"JP", "JPN", "Japan"},
	{"IN", "IND", "India"},
	{"CA", "CAN", "Canada"},
	{"AU", "AUS", "Australia"},
	{"BR", "BRA", "Brazil"},
	{"IT", "ITA", "Italy"},
	{"ES", "ESP", "Spain"},
	{"MX", "MEX", "Mexico"},
	{"KR", "KOR", "South Korea"},
	{"NL", "NLD", "Netherlands"},
	{"CH", "CHE", "Switzerland"},
	{"PL", "POL", "Poland"},
	{"BE", "BEL", "Belgium"},
	{"SE", "SWE", "Sweden"},
	{"NO", "NOR", "Norway"},
	{"AT", "AUT", "Austria"},
	{"DK", "DNK", "Denmark"},
	{"FI", "FIN", "Finland"},
	{"PT", "PRT", "Portugal"},
	{"GR", "GRC", "Greece"},
	{"CZ", "CZE", "Czech Republic"},
	{"NZ", "NZL", "New Zealand"},
	{"IE", "IRL", "Ireland"},
	{"SG", "SGP", "Singapore"},
	{"TH", "THA", "Thailand"},
	{"ZA", "ZAF", "South Africa"},
	{"AR", "ARG", "Argentina"},
	{"CL", "CHL", "Chile"},
}

//nolint:gochecknoglobals // Derived from supportedCountries at init.
var iso2To3 = func() map[string]string {
	m := make(map[string]string, len(supportedCountries)+1)
	for _, c := range supportedCountries {
		m[c.Code] = c.ISO3
	}
	m["GB"] = "GBR"
	return m
}()

// SupportedCountries returns the curated country list.
func SupportedCountries() []Country {
	out := make([]Country, len(supportedCountries))
	copy(out, supportedCountries)
	return out
}

// NormalizeCountry uppercases code and maps known two-letter codes to
// ISO-3. Unknown codes are returned uppercased and otherwise unchanged.
func NormalizeCountry(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if iso3, ok := iso2To3[code]; ok {
		return iso3
	}
	return code
}

// GridIntensity is a resolved grid value together with how it was found.
type GridIntensity struct {
	Country       string  `json:"country"`
	RequestedYear int     `json:"requested_year"`
	Year          int     `json:"year"`
	GPerKWh       float64 `json:"g_per_kwh"`
	Corrected     bool    `json:"corrected"`
	// UsedFallbackYear is set when RequestedYear had no row and the latest
	// year on record was used instead.
	UsedFallbackYear bool `json:"used_fallback_year"`
}

// GridResolver looks up grid carbon intensity by country and year.
type GridResolver struct {
	table reference.GridTable
}

// NewGridResolver returns a resolver over table.
func NewGridResolver(table reference.GridTable) *GridResolver {
	return &GridResolver{table: table}
}

// Resolve returns the grid intensity for country in year. A year with no
// row falls back to the latest year on record for that country. An
// unknown country or an empty cell yields ErrNotFound.
func (r *GridResolver) Resolve(ctx context.Context, country string, year int, useCorrected bool) (GridIntensity, error) {
	iso := NormalizeCountry(country)

	byYear, ok := r.table[iso]
	if !ok || len(byYear) == 0 {
		return GridIntensity{}, newCalcError(ErrNotFound, "Grid intensity not found for %s", iso)
	}

	out := GridIntensity{Country: iso, RequestedYear: year, Year: year, Corrected: useCorrected}

	entry, ok := byYear[year]
	if !ok {
		years := r.table.Years(iso)
		out.Year = years[len(years)-1]
		out.UsedFallbackYear = true
		entry = byYear[out.Year]

		logging.FromContext(ctx).Debug().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "resolve_grid").
			Str("country", iso).
			Int("requested_year", year).
			Int("fallback_year", out.Year).
			Msg("grid year missing, using latest available year")
	}

	value := entry.Raw
	if useCorrected {
		value = entry.Corrected
	}
	if value == nil {
		return GridIntensity{}, newCalcError(ErrNotFound,
			"Grid intensity not found for %s in %d", iso, out.Year)
	}

	out.GPerKWh = *value
	return out, nil
}

// Years returns the years on record for country, ascending.
func (r *GridResolver) Years(country string) []int {
	return r.table.Years(NormalizeCountry(country))
}

// GridRecord is one row of the grid table as stored, before any fallback.
type GridRecord struct {
	Country   string   `json:"country"`
	Name      string   `json:"name,omitempty"`
	Year      int      `json:"year"`
	Raw       *float64 `json:"raw"`
	Corrected *float64 `json:"corrected"`
}

// Records lists the stored grid rows ordered by country then year. With no
// countries every country in the table is listed; unknown countries are
// skipped.
func (r *GridResolver) Records(countries ...string) []GridRecord {
	isos := r.table.Countries()
	if len(countries) > 0 {
		isos = isos[:0:0]
		seen := make(map[string]bool, len(countries))
		for _, c := range countries {
			iso := NormalizeCountry(c)
			if _, ok := r.table[iso]; ok && !seen[iso] {
				seen[iso] = true
				isos = append(isos, iso)
			}
		}
		sort.Strings(isos)
	}

	var out []GridRecord
	for _, iso := range isos {
		name := countryName(iso)
		for _, year := range r.table.Years(iso) {
			entry := r.table[iso][year]
			out = append(out, GridRecord{
				Country:   iso,
				Name:      name,
				Year:      year,
				Raw:       entry.Raw,
				Corrected: entry.Corrected,
			})
		}
	}
	return out
}

func countryName(iso3 string) string {
	for _, c := range supportedCountries {
		if c.ISO3 == iso3 {
			return c.Name
		}
	}
	return ""
}
