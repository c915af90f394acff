package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/carbonwise/internal/config"
	"github.com/rshade/carbonwise/internal/engine"
	"github.com/rshade/carbonwise/internal/greenops"
)

// Rendering constants.
const (
	defaultBoxWidth = 56
	minBoxWidth     = 30
	boxPaddingWidth = 4
	tabPadding      = 2
)

func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }
func boxTitleColor() lipgloss.Color  { return lipgloss.Color("39") }
func colorGood() lipgloss.Color      { return lipgloss.Color("42") }
func colorWarning() lipgloss.Color   { return lipgloss.Color("214") }
func colorBad() lipgloss.Color       { return lipgloss.Color("196") }

// isWriterTerminal reports whether w is a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// getTerminalWidth returns the width of w, or 0 when it is not a terminal.
func getTerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (a *app) jsonOutput() bool {
	return a.output == config.FormatJSON
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fail reports err. In JSON mode the error is written to stdout as
// {"error": reason} and the returned error wraps ErrReported.
func (a *app) fail(cmd *cobra.Command, err error) error {
	logger.Debug().Ctx(cmd.Context()).Err(err).Str("command", cmd.Name()).Msg("command failed")

	if !a.jsonOutput() {
		return err
	}

	var calcErr *engine.CalcError
	body := any(map[string]string{engine.ErrorKey: err.Error()})
	if errors.As(err, &calcErr) {
		body = calcErr
	}
	if writeErr := writeJSON(cmd.OutOrStdout(), body); writeErr != nil {
		return writeErr
	}
	return fmt.Errorf("%w: %w", ErrReported, err)
}

// render writes v as JSON, or calls table in table mode.
func (a *app) render(cmd *cobra.Command, v any, table func(w io.Writer) error) error {
	if a.jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	return table(cmd.OutOrStdout())
}

// newTable returns a tab-aligned writer; callers must Flush.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
}

// renderBox writes title and lines in a bordered box on a terminal and as
// plain text otherwise.
func renderBox(w io.Writer, title string, lines []string) error {
	if !isWriterTerminal(w) {
		var b strings.Builder
		b.WriteString(title + "\n")
		b.WriteString(strings.Repeat("=", len(title)) + "\n")
		for _, l := range lines {
			b.WriteString(l + "\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	boxWidth := defaultBoxWidth
	if width := getTerminalWidth(w); width > 0 && width-boxPaddingWidth < boxWidth {
		boxWidth = max(minBoxWidth, width-boxPaddingWidth)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor())
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1).
		Width(boxWidth)

	var content strings.Builder
	content.WriteString(titleStyle.Render(title))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", boxWidth-boxPaddingWidth))
	content.WriteString("\n")
	content.WriteString(strings.Join(lines, "\n"))

	_, err := fmt.Fprintln(w, borderStyle.Render(content.String()))
	return err
}

// colorize styles s with color on a terminal.
func colorize(w io.Writer, s string, color lipgloss.Color) string {
	if !isWriterTerminal(w) {
		return s
	}
	return lipgloss.NewStyle().Foreground(color).Render(s)
}

func categoryColor(c greenops.Category) lipgloss.Color {
	switch c {
	case greenops.CategoryExcellent, greenops.CategoryGood:
		return colorGood()
	case greenops.CategoryModerate:
		return colorWarning()
	default:
		return colorBad()
	}
}

func riskColor(r engine.RiskLevel) lipgloss.Color {
	switch r {
	case engine.RiskLow:
		return colorGood()
	case engine.RiskMedium:
		return colorWarning()
	default:
		return colorBad()
	}
}

// precision returns the configured number of decimals for table output.
func (a *app) precision() int {
	return config.GetGlobalConfig().Output.Precision
}

// gkm formats a g/km figure.
func gkm(v float64, precision int) string {
	return greenops.FormatFloat(v, precision) + " g/km"
}

// kg formats a mass in kilograms.
func kg(v float64, precision int) string {
	return greenops.FormatFloat(v, precision) + " kg"
}

func optionalFloat(f *float64, precision int) string {
	if f == nil {
		return "-"
	}
	return greenops.FormatFloat(*f, precision)
}
