// Package cli implements the carbonwise command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/carbonwise/internal/config"
	"github.com/rshade/carbonwise/internal/engine"
	"github.com/rshade/carbonwise/internal/logging"
	"github.com/rshade/carbonwise/internal/reference"
)

// ErrReported marks an error that has already been written to the
// command output and must not be printed again.
var ErrReported = errors.New("error already reported")

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// app carries state shared by every subcommand of one invocation.
type app struct {
	output  string
	dataDir string

	loadOnce sync.Once
	eng      *engine.Engine
	loadErr  error
}

// engine loads the reference tables on first use. --data-dir wins over
// data.dir; with neither the embedded sample tables are used.
func (a *app) engine(ctx context.Context) (*engine.Engine, error) {
	a.loadOnce.Do(func() {
		cfg := config.GetGlobalConfig()

		dir := a.dataDir
		if dir == "" {
			dir = cfg.Data.Dir
		}

		var tables *reference.Tables
		if dir == "" {
			tables, a.loadErr = reference.LoadSample()
		} else {
			tables, a.loadErr = reference.LoadDir(dir)
		}
		if a.loadErr != nil {
			a.loadErr = fmt.Errorf("loading reference data: %w", a.loadErr)
			return
		}

		var opts []engine.Option
		if !cfg.Defaults.UseCorrectedGrid {
			opts = append(opts, engine.WithRawGrid())
		}
		a.eng = engine.New(tables, opts...)

		logger.Debug().
			Ctx(ctx).
			Str("data_dir", dir).
			Int("vehicles", tables.Vehicles.Len()).
			Msg("reference data loaded")
	})
	return a.eng, a.loadErr
}

// NewRootCmd creates the root Cobra command for the carbonwise CLI.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{}
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "carbonwise",
		Short:         "Vehicle lifecycle emissions calculator",
		Long:          "CarbonWise: compare vehicles by manufacturing plus operational CO2e per km",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(a.output); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory with reference data (default: embedded sample)")
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", config.GetDefaultOutputFormat(), "output format (table, json)")

	cmd.AddCommand(
		newVehiclesCmd(a),
		newLifecycleCmd(a),
		newCompareCmd(a),
		newBreakEvenCmd(a),
		newGreenwashingCmd(a),
		newRecommendCmd(a),
		newGridSensitivityCmd(a),
		newScoreCmd(a),
		newAnnualCmd(a),
		newCountriesCmd(a),
		newGridCmd(a),
		newMethodologyCmd(a),
	)

	return cmd
}

func validateOutput(format string) error {
	switch format {
	case config.FormatTable, config.FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be %s or %s", format, config.FormatTable, config.FormatJSON)
	}
}

const rootCmdExample = `  # Lifecycle emissions of one vehicle on the German grid
  carbonwise lifecycle --brand Tesla --model "Model 3" --year 2023 --country DE

  # Distance after which an EV pays back its manufacturing footprint
  carbonwise break-even --ev "Tesla/Model 3/2023" --other "Toyota/Camry/2023"

  # Three cleanest vehicles for 40 km a day over 8 years, as JSON
  carbonwise recommend --daily-km 40 --years 8 --output json

  # Stored grid intensity for a few countries
  carbonwise grid --countries US,FR,PL

  # How one EV fares across grids
  carbonwise grid-sensitivity --brand Hyundai --model "Ioniq 5" --year 2023 --countries US,FR,PL`
