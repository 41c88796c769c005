package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/shiftgrid/internal/engine"
	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/rules"
)

// Fixed columns before the day columns in the rendered grid.
var gridFixedHeaders = []string{"#", "", "Name", "D", "E", "N", "OFF", "Work"}

var (
	gridBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	gridHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Align(lipgloss.Center)
	gridCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	gridDayStyle    = lipgloss.NewStyle().Align(lipgloss.Center)
	gridTitleStyle  = lipgloss.NewStyle().Bold(true)

	shiftStyles = map[grid.ShiftCode]lipgloss.Style{
		grid.Day:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		grid.Evening: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		grid.Night:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		grid.Off:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the schedule",
	Long: `Show the saved schedule with per-row shift counts and workdays.

Rows are numbered from 0; use the number with name, set, select and the
other row commands. A ● marks selected rows.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Show(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		printShow(result)
		return nil
	},
}

func printShow(result *engine.ShowResult) {
	fmt.Fprintln(stdout, gridTitleStyle.Render(fmt.Sprintf("%s (%d days)", result.Label, result.DaysInMonth)))
	fmt.Fprintln(stdout, dimColor.Sprint(rulesSummary(result.Rules)))
	fmt.Fprintln(stdout, renderGrid(result))
	if !result.Saved {
		PrintEmptyState("Nothing saved yet. Run 'shiftgrid init' to start a schedule.")
	}
}

// renderGrid draws the schedule as a bordered table.
func renderGrid(result *engine.ShowResult) string {
	headers := append([]string(nil), gridFixedHeaders...)
	for d := 1; d <= result.DaysInMonth; d++ {
		headers = append(headers, strconv.Itoa(d))
	}

	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		mark := ""
		if row.Selected {
			mark = "●"
		}
		line := []string{
			strconv.Itoa(row.Index),
			mark,
			row.Name,
			strconv.Itoa(row.Counts.D),
			strconv.Itoa(row.Counts.E),
			strconv.Itoa(row.Counts.N),
			strconv.Itoa(row.Counts.Off),
			strconv.Itoa(row.WorkDays),
		}
		for _, code := range row.Days {
			line = append(line, string(code))
		}
		rows = append(rows, line)
	}

	fixed := len(gridFixedHeaders)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(gridBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return gridHeaderStyle
			}
			if c < fixed {
				return gridCellStyle
			}
			style := gridDayStyle
			if r < len(result.Rows) && c-fixed < len(result.Rows[r].Days) {
				if s, ok := shiftStyles[result.Rows[r].Days[c-fixed]]; ok {
					style = s.Inherit(gridDayStyle)
				}
			}
			return style
		})
	return t.Render()
}

// rulesSummary renders the rules on one line.
func rulesSummary(wr rules.WorkRules) string {
	var b strings.Builder
	if wr.DailyLimits.Enabled {
		b.WriteString("limits")
		for _, code := range grid.Codes {
			fmt.Fprintf(&b, " %s≤%d", code.Label(), wr.DailyLimits.Caps.Of(code))
		}
	} else {
		b.WriteString("limits off")
	}
	fmt.Fprintf(&b, " · workdays: %s", wr.CalculationMethod.Describe())
	if n := len(wr.ConflictRules); n > 0 {
		fmt.Fprintf(&b, " · %s", PrintCount(n, "conflict rule", "conflict rules"))
	}
	return b.String()
}
