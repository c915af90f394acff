package reference

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rshade/carbonwise/internal/vehicle"
)

// File names inside a reference data directory.
const (
	VehiclesJSONFile   = "vehicles.json"
	VehiclesCSVFile    = "vehicles.csv"
	GridFile           = "grid.json"
	WellToWheelFile    = "greet_wtw.json"
	GliderFile         = "manufacturing/glider.json"
	BatteryWeightsFile = "manufacturing/battery_weights.json"
	FluidsFile         = "manufacturing/fluids_weights.json"
	EmissionFactorFile = "manufacturing/emission_factors.json"
)

// The GREET2 exports nest every value under a vehicle-weight scenario;
// only the conventional-weight scenario is used.
const conventionalScenario = "conventional"

//go:embed data
var sampleData embed.FS

// LoadSample loads the small dataset compiled into the binary.
func LoadSample() (*Tables, error) {
	sub, err := fs.Sub(sampleData, "data")
	if err != nil {
		return nil, fmt.Errorf("opening embedded data: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir loads reference tables from a directory on disk.
func LoadDir(dir string) (*Tables, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS loads reference tables from fsys. The vehicle catalog is read from
// vehicles.json when present, otherwise vehicles.csv.
func LoadFS(fsys fs.FS) (*Tables, error) {
	catalog, err := loadCatalog(fsys)
	if err != nil {
		return nil, err
	}

	t := &Tables{Vehicles: catalog}

	if err = readJSON(fsys, GridFile, &t.Grid); err != nil {
		return nil, err
	}
	if err = readJSON(fsys, WellToWheelFile, &t.WellToWheel); err != nil {
		return nil, err
	}
	if t.Manufacturing, err = loadManufacturing(fsys); err != nil {
		return nil, err
	}

	return t, nil
}

func loadCatalog(fsys fs.FS) (*vehicle.Catalog, error) {
	var records []vehicle.Vehicle
	err := readJSON(fsys, VehiclesJSONFile, &records)
	if err == nil {
		return vehicle.NewCatalog(records), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	f, openErr := fsys.Open(VehiclesCSVFile)
	if openErr != nil {
		return nil, fmt.Errorf("no vehicle catalog found (%s or %s): %w",
			VehiclesJSONFile, VehiclesCSVFile, openErr)
	}
	defer func() { _ = f.Close() }()

	return vehicle.ParseCSV(f)
}

func loadManufacturing(fsys fs.FS) (ManufacturingTables, error) {
	var (
		glider  map[string]map[string]float64
		battery map[string]map[string]map[string]float64
		fluids  map[string]float64
		factors map[string]map[string]float64
	)

	if err := readJSON(fsys, GliderFile, &glider); err != nil {
		return ManufacturingTables{}, err
	}
	if err := readJSON(fsys, BatteryWeightsFile, &battery); err != nil {
		return ManufacturingTables{}, err
	}
	if err := readJSON(fsys, FluidsFile, &fluids); err != nil {
		return ManufacturingTables{}, err
	}
	if err := readJSON(fsys, EmissionFactorFile, &factors); err != nil {
		return ManufacturingTables{}, err
	}

	m := ManufacturingTables{
		GliderKg:       make(map[string]float64, len(glider)),
		BatteryLb:      make(map[string]map[string]float64, len(battery)),
		FluidsG:        fluids,
		BatteryFactors: factors["battery"],
	}
	for class, scenarios := range glider {
		if v, ok := scenarios[conventionalScenario]; ok {
			m.GliderKg[class] = v
		}
	}
	for class, scenarios := range battery {
		if chems, ok := scenarios[conventionalScenario]; ok {
			m.BatteryLb[class] = chems
		}
	}

	return m, nil
}

func readJSON(fsys fs.FS, name string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
