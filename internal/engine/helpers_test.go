package engine

import (
	"github.com/rshade/carbonwise/internal/reference"
	"github.com/rshade/carbonwise/internal/vehicle"
)

func fp(f float64) *float64 { return &f }

// fixture vehicles; lifecycle totals on the USA 2023 grid (400 g/kWh):
// Model 3 96.77, Ioniq 5 108.77, Camry 167.32, Prius 190.13, RAV4 Prime 204.47, Golf 246.96.
var (
	camry = vehicle.Vehicle{
		Brand: "Toyota", Model: "Camry", Year: 2023, Type: vehicle.ICE, FuelType: "Gasoline",
		CO2GPerKm: fp(150), Price: fp(28000), BodyType: "Sedan",
	}
	golf = vehicle.Vehicle{
		Brand: "Volkswagen", Model: "Golf TDI", Year: 2023, Type: vehicle.ICE, FuelType: "Diesel",
		CO2GPerKm: fp(120), BodyType: "Hatchback",
	}
	prius = vehicle.Vehicle{
		Brand: "Toyota", Model: "Prius", Year: 2023, Type: vehicle.HEV, FuelType: "Gasoline",
		CO2GPerKm: fp(100), Price: fp(30000), BodyType: "Hatchback",
	}
	rav4 = vehicle.Vehicle{
		Brand: "Toyota", Model: "RAV4 Prime", Year: 2023, Type: vehicle.PHEV, FuelType: "Gasoline",
		CO2GPerKm: fp(50), Price: fp(43000), BodyType: "SUV",
	}
	model3 = vehicle.Vehicle{
		Brand: "Tesla", Model: "Model 3", Year: 2023, Type: vehicle.EV, FuelType: "Electric",
		ElectricWhPerKm: fp(150), Price: fp(40000), BodyType: "Sedan",
	}
	ioniq5 = vehicle.Vehicle{
		Brand: "Hyundai", Model: "Ioniq 5", Year: 2023, Type: vehicle.EV, FuelType: "Electric",
		ElectricWhPerKm: fp(180), Price: fp(45000), BodyType: "SUV",
	}
	leaf = vehicle.Vehicle{
		Brand: "Nissan", Model: "Leaf", Year: 2023, Type: vehicle.EV, FuelType: "Electric",
		Price: fp(28000), BodyType: "Hatchback",
	}
	mirai = vehicle.Vehicle{
		Brand: "Toyota", Model: "Mirai", Year: 2023, Type: vehicle.FCV, FuelType: "Hydrogen",
		Price: fp(50000), BodyType: "Sedan",
	}
)

func testVehicles() []vehicle.Vehicle {
	return []vehicle.Vehicle{camry, golf, prius, rav4, model3, ioniq5, leaf, mirai}
}

// testTables has no gasoline_ice well-to-wheel entry so gasoline ICE
// vehicles fall back to their lab-test rate.
func testTables() *reference.Tables {
	return &reference.Tables{
		Vehicles: vehicle.NewCatalog(testVehicles()),
		Grid: reference.GridTable{
			"USA": {
				2022: {Raw: fp(390), Corrected: fp(410)},
				2023: {Raw: fp(380), Corrected: fp(400)},
			},
			"FRA": {2023: {Raw: fp(50), Corrected: fp(60)}},
			"POL": {2023: {Raw: fp(650), Corrected: fp(700)}},
			"IND": {2023: {Raw: fp(700), Corrected: nil}},
		},
		Manufacturing: reference.ManufacturingTables{
			GliderKg: map[string]float64{
				ClassICEV: 4700, ClassHEV: 4600, ClassPHEV: 4700, ClassEV: 4800,
			},
			BatteryLb: map[string]map[string]float64{
				ClassHEV:  {ChemNiMH: 100},
				ClassPHEV: {ChemLiIon: 300},
				ClassEV:   {ChemLiIon: 1000},
			},
			FluidsG: map[string]float64{
				ClassICEV: 126550, ClassHEV: 120000, ClassPHEV: 110000,
			},
			BatteryFactors: map[string]float64{ChemNiMH: 7, ChemLiIon: 12},
		},
		WellToWheel: map[string]float64{
			FuelClassDieselICE: 229.64,
			FuelClassHEV:       172.05,
			FuelClassPHEVCS:    181.34,
		},
	}
}

func testEngine(opts ...Option) *Engine {
	return New(testTables(), opts...)
}
