package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/shiftgrid/internal/engine"
)

var (
	initRows int
	initYes  bool
	wipeYes  bool
)

var initCmd = &cobra.Command{
	Use:   "init [YYYY-MM]",
	Short: "Start a new schedule",
	Long: `Start an empty schedule for a month (default: the current month).

The saved work rules are kept. If the saved schedule has names or shifts,
init asks for --yes before discarding them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.InitRequest{Rows: initRows, Force: initYes}
		if len(args) == 1 {
			req.Period = args[0]
		}

		result, err := eng.Init(cmd.Context(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Started %s with %s", result.Label, PrintCount(len(result.Rows), "row", "rows")))
		fmt.Fprintln(stdout)
		PrintInfo("Next steps:")
		fmt.Fprintln(stdout, "  1. Name employees:   shiftgrid name 0 Kim")
		fmt.Fprintln(stdout, "  2. Assign shifts:    shiftgrid set 0 1-5 D")
		fmt.Fprintln(stdout, "  3. Review:           shiftgrid show")
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <row> <days> <code>",
	Short: "Assign a shift to one or more days",
	Long: `Assign a shift code to days of a row.

<days> is a day, a list or a range: 5, 1,3,5 or 10-14.
<code> is D, E, N, / (or OFF); - clears the cell.

Every day is checked against the daily limits and then the conflict
rules. If any day is refused nothing is changed.`,
	Example: `  shiftgrid set 0 1-5 D
  shiftgrid set 2 6,7 /
  shiftgrid set 1 12 -`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := parseRows(args[:1])
		if err != nil {
			return err
		}
		days, err := parseDays(args[1])
		if err != nil {
			return err
		}

		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.SetCell(cmd.Context(), &engine.SetCellRequest{
			Row:  rows[0],
			Days: days,
			Code: args[2],
		})
		if err != nil {
			var rejected *engine.RejectedError
			if errors.As(err, &rejected) && jsonOutput {
				_ = outputJSON(rejected.Verdict)
			}
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		name := result.Name
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("row %d", result.Row)
		}
		PrintSuccess(fmt.Sprintf("%s: %s on %s", name, result.Code.Label(), PrintCount(len(result.Days), "day", "days")))
		PrintLabelValue("Counts", fmt.Sprintf("D %d  E %d  N %d  OFF %d", result.Counts.D, result.Counts.E, result.Counts.N, result.Counts.Off))
		PrintLabelValue("Workdays", fmt.Sprintf("%d", result.WorkDays))
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit the schedule against the work rules",
	Long: `Report every day where the schedule breaks a daily limit or a conflict
rule. Edits are checked as they are made, but imports and rule changes
can leave breaches behind. Exits with an error when any are found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Check(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
		} else if len(result.Violations) == 0 {
			PrintSuccess("No rule violations")
		} else {
			PrintSection("Rule Violations")
			items := make([]string, 0, len(result.Violations))
			for _, v := range result.Violations {
				items = append(items, v.Describe())
			}
			PrintList(items, 1)
		}

		if n := len(result.Violations); n > 0 {
			return fmt.Errorf("%s found", PrintCount(n, "violation", "violations"))
		}
		return nil
	},
}

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the saved schedule and work rules",
	Long: `Delete the saved schedule and work rules, returning to defaults.

Saved exports are kept. Needs --yes when anything is saved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Wipe(cmd.Context(), &engine.WipeRequest{Force: wipeYes})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if result.HadData {
			PrintSuccess("Saved schedule and work rules deleted")
		} else {
			PrintInfo("Nothing saved")
		}
		return nil
	},
}

func init() {
	initCmd.Flags().IntVarP(&initRows, "rows", "r", 1, "Number of blank rows to start with")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Discard the saved schedule without asking")
	wipeCmd.Flags().BoolVarP(&wipeYes, "yes", "y", false, "Delete without asking")
}
