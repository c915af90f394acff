// Package vehicle defines the vehicle record and the read-only catalog
// used to look records up by field filters.
package vehicle

import (
	"fmt"
	"strconv"
	"strings"
)

// Powertrain is the propulsion technology class of a vehicle.
type Powertrain string

// Known powertrains. Any other label is carried through unchanged and
// rejected by the models that cannot handle it.
const (
	ICE  Powertrain = "ICE"
	EV   Powertrain = "EV"
	HEV  Powertrain = "HEV"
	PHEV Powertrain = "PHEV"
	FCV  Powertrain = "FCV"
)

// Powertrains lists the known powertrains in display order.
func Powertrains() []Powertrain {
	return []Powertrain{ICE, EV, HEV, PHEV, FCV}
}

// ParsePowertrain normalizes a label and reports whether it is known.
func ParsePowertrain(label string) (Powertrain, bool) {
	p := Powertrain(strings.ToUpper(strings.TrimSpace(label)))
	return p, p.Known()
}

// Known reports whether p is one of the five recognized powertrains.
func (p Powertrain) Known() bool {
	switch p {
	case ICE, EV, HEV, PHEV, FCV:
		return true
	default:
		return false
	}
}

// IsCombustion reports whether p burns fuel on board (ICE, HEV, PHEV).
func (p Powertrain) IsCombustion() bool {
	switch p {
	case ICE, HEV, PHEV:
		return true
	default:
		return false
	}
}

func (p Powertrain) String() string { return string(p) }

// Vehicle is one catalog record. Identity is (Brand, Model, Year, Type).
type Vehicle struct {
	Brand           string     `json:"brand"                        csv:"brand"`
	Model           string     `json:"model"                        csv:"model"`
	Year            int        `json:"Year"                         csv:"Year"`
	Type            Powertrain `json:"type"                         csv:"type"`
	FuelType        string     `json:"fuel_type,omitempty"          csv:"fuel_type"`
	CO2GPerKm       *float64   `json:"co2_wltp_gpkm,omitempty"      csv:"co2_wltp_gpkm,omitempty"`
	ElectricWhPerKm *float64   `json:"electric_wh_per_km,omitempty" csv:"electric_wh_per_km,omitempty"`
	Price           *float64   `json:"price,omitempty"              csv:"price,omitempty"`
	BodyType        string     `json:"body_type,omitempty"          csv:"body_type"`
}

// Key uniquely identifies a vehicle record.
type Key struct {
	Brand string     `json:"brand"`
	Model string     `json:"model"`
	Year  int        `json:"year"`
	Type  Powertrain `json:"powertrain"`
}

// Key returns the identity tuple of v.
func (v Vehicle) Key() Key {
	return Key{Brand: v.Brand, Model: v.Model, Year: v.Year, Type: v.Type}
}

// Label returns "Brand Model (Year)".
func (v Vehicle) Label() string {
	return fmt.Sprintf("%s %s (%d)", v.Brand, v.Model, v.Year)
}

// HasConsumption reports whether the electric consumption field is set.
func (v Vehicle) HasConsumption() bool {
	return v.ElectricWhPerKm != nil
}

// Field returns the stringified value of a named field. The second result
// is false when the field is unknown or unset on this record. Names match
// case-insensitively against the JSON field names.
func (v Vehicle) Field(name string) (string, bool) {
	switch strings.ToLower(name) {
	case "brand":
		return v.Brand, true
	case "model":
		return v.Model, true
	case "year":
		return strconv.Itoa(v.Year), true
	case "type", "powertrain":
		return string(v.Type), true
	case "fuel_type":
		return v.FuelType, v.FuelType != ""
	case "body_type":
		return v.BodyType, v.BodyType != ""
	case "co2_wltp_gpkm":
		return formatOptional(v.CO2GPerKm)
	case "electric_wh_per_km":
		return formatOptional(v.ElectricWhPerKm)
	case "price":
		return formatOptional(v.Price)
	default:
		return "", false
	}
}

func formatOptional(f *float64) (string, bool) {
	if f == nil {
		return "", false
	}
	return strconv.FormatFloat(*f, 'f', -1, 64), true
}
