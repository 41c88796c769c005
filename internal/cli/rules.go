package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/shiftgrid/internal/engine"
	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/rules"
	"github.com/danieljhkim/shiftgrid/internal/workday"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show or change the work rules",
	Long: `Show the work rules consulted on every edit.

Daily limits cap how many employees may hold each shift on one day.
Conflict rules pair two employees who may not hold the same working
shift (D, E or N) on the same day. The workday method decides how the
WorkDays column is counted.

Changing a rule does not re-check the schedule; run 'shiftgrid check'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Rules(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result.Rules)
		}

		printRules(result.Rules)
		return nil
	},
}

var rulesLimitCmd = &cobra.Command{
	Use:   "limit <code> <max>",
	Short: "Set the daily limit of a shift",
	Example: `  shiftgrid rules limit N 2
  shiftgrid rules limit OFF 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", engine.ErrValidation, args[1])
		}
		return runRulesUpdate(cmd, &engine.RulesRequest{Limits: map[string]int{args[0]: n}})
	},
}

var rulesLimitsCmd = &cobra.Command{
	Use:       "limits <on|off>",
	Short:     "Turn daily limits on or off",
	Long:      `Turn enforcement of the daily limits on or off. The limits are kept.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var enabled bool
		switch strings.ToLower(args[0]) {
		case "on", "true", "yes":
			enabled = true
		case "off", "false", "no":
			enabled = false
		default:
			return fmt.Errorf("%w: want on or off, got %q", engine.ErrValidation, args[0])
		}
		return runRulesUpdate(cmd, &engine.RulesRequest{LimitsEnabled: &enabled})
	},
}

var rulesMethodCmd = &cobra.Command{
	Use:   "method <sum|exclude_off>",
	Short: "Choose how workdays are counted",
	Long: `Choose how the WorkDays column is counted:

  sum          D + E + N
  exclude_off  days in the month minus OFF (blank days count as worked)`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(workday.SumWorked), string(workday.TotalMinusOff)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRulesUpdate(cmd, &engine.RulesRequest{Method: args[0]})
	},
}

var rulesConflictCmd = &cobra.Command{
	Use:   "conflict",
	Short: "Manage conflict rules",
}

var rulesConflictAddCmd = &cobra.Command{
	Use:   "add <name> <name>",
	Short: "Forbid two employees from sharing a shift",
	Long: `Add a conflict rule. Names match the row names exactly after trimming.
Each name may appear in only one rule.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRulesUpdate(cmd, &engine.RulesRequest{AddConflict: args})
	},
}

var rulesConflictRmCmd = &cobra.Command{
	Use:     "rm <name> <name>",
	Aliases: []string{"remove"},
	Short:   "Remove a conflict rule",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRulesUpdate(cmd, &engine.RulesRequest{RemoveConflict: args})
	},
}

var rulesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.ResetRules(cmd.Context())
		if err != nil {
			return err
		}
		return printRulesResult(result)
	},
}

func runRulesUpdate(cmd *cobra.Command, req *engine.RulesRequest) error {
	eng, _, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.UpdateRules(cmd.Context(), req)
	if err != nil {
		return err
	}
	return printRulesResult(result)
}

func printRulesResult(result *engine.RulesResult) error {
	if jsonOutput {
		return outputJSON(result)
	}
	for _, change := range result.Changed {
		PrintSuccess(change)
	}
	return nil
}

func printRules(wr rules.WorkRules) {
	PrintSection("Daily Limits")
	state, stateColor := "on", successColor
	if !wr.DailyLimits.Enabled {
		state, stateColor = "off", warningColor
	}
	PrintLabelValueWithColor("Enforced", state, stateColor)
	for _, code := range grid.Codes {
		PrintLabelValue(code.Label(), strconv.Itoa(wr.DailyLimits.Caps.Of(code)))
	}

	PrintSection("Workdays")
	PrintLabelValue("Method", fmt.Sprintf("%s (%s)", wr.CalculationMethod, wr.CalculationMethod.Describe()))

	PrintSection("Conflict Rules")
	if len(wr.ConflictRules) == 0 {
		PrintEmptyState("No conflict rules")
		return
	}
	rows := make([][]string, 0, len(wr.ConflictRules))
	for _, r := range wr.ConflictRules {
		rows = append(rows, []string{r.A, r.B})
	}
	PrintTable([]string{"EMPLOYEE", "EMPLOYEE"}, rows)
}

func init() {
	rulesConflictCmd.AddCommand(rulesConflictAddCmd)
	rulesConflictCmd.AddCommand(rulesConflictRmCmd)

	rulesCmd.AddCommand(rulesLimitCmd)
	rulesCmd.AddCommand(rulesLimitsCmd)
	rulesCmd.AddCommand(rulesMethodCmd)
	rulesCmd.AddCommand(rulesConflictCmd)
	rulesCmd.AddCommand(rulesResetCmd)
}
