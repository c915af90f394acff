package vehicle

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// ErrVehicleNotFound is returned by First when no record matches.
var ErrVehicleNotFound = errors.New("vehicle not found")

// Catalog is an immutable, ordered collection of vehicle records.
type Catalog struct {
	vehicles []Vehicle
}

// NewCatalog copies records into a catalog. The caller's slice is not
// retained.
func NewCatalog(records []Vehicle) *Catalog {
	vs := make([]Vehicle, len(records))
	copy(vs, records)
	return &Catalog{vehicles: vs}
}

// ParseCSV reads a vehicle catalog in CSV form. The header row must use
// the same names as the JSON tags (brand, model, Year, type, ...).
func ParseCSV(r io.Reader) (*Catalog, error) {
	var records []Vehicle
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("parsing vehicle CSV: %w", err)
	}
	return NewCatalog(records), nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.vehicles)
}

// All returns a copy of every record in catalog order.
func (c *Catalog) All() []Vehicle {
	return c.Find(nil)
}

// Find returns every record matching all filters. A filter matches when
// the expected value, stringified, is a case-insensitive substring of the
// record's field value. Records without the filtered field never match.
// An empty filter set returns the whole catalog.
func (c *Catalog) Find(filters map[string]string) []Vehicle {
	out := make([]Vehicle, 0, len(c.vehicles))
	for _, v := range c.vehicles {
		if matches(v, filters) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first record matching filters.
func (c *Catalog) First(filters map[string]string) (Vehicle, error) {
	for _, v := range c.vehicles {
		if matches(v, filters) {
			return v, nil
		}
	}
	return Vehicle{}, ErrVehicleNotFound
}

// Lookup finds a vehicle by brand, model and model year.
func (c *Catalog) Lookup(brand, model string, year int) (Vehicle, error) {
	v, err := c.First(map[string]string{
		"brand": brand,
		"model": model,
		"Year":  fmt.Sprint(year),
	})
	if err != nil {
		return Vehicle{}, fmt.Errorf("%w: %s %s %d", err, brand, model, year)
	}
	return v, nil
}

func matches(v Vehicle, filters map[string]string) bool {
	for key, want := range filters {
		got, ok := v.Field(key)
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
			return false
		}
	}
	return true
}
