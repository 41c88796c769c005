package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/shiftgrid/internal/engine"
)

var (
	selectAll   bool
	deselectAll bool
	deleteYes   bool
)

var addCmd = &cobra.Command{
	Use:   "add [name...]",
	Short: "Add employee rows",
	Long: `Append one row per name, or a single blank row when no name is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.AddRow(cmd.Context(), &engine.AddRowRequest{Names: args})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Added %s", PrintCount(len(result.Indexes), "row", "rows")))
		for i, idx := range result.Indexes {
			label := "(blank)"
			if i < len(args) && strings.TrimSpace(args[i]) != "" {
				label = strings.TrimSpace(args[i])
			}
			PrintLabelValue(fmt.Sprintf("Row %d", idx), label)
		}
		return nil
	},
}

var nameCmd = &cobra.Command{
	Use:   "name <row> <name>",
	Short: "Rename a row",
	Long: `Set the employee name of a row. Conflict rules match names exactly
(after trimming), so renaming can bring a row into or out of a rule.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := parseRows(args[:1])
		if err != nil {
			return err
		}

		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.RenameRequest{Row: rows[0], Name: args[1]}
		if err := eng.Rename(cmd.Context(), req); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]interface{}{"row": req.Row, "name": strings.TrimSpace(req.Name)})
		}

		PrintSuccess(fmt.Sprintf("Row %d is now %q", req.Row, strings.TrimSpace(req.Name)))
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select [row...]",
	Short: "Select rows for delete or reset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelect(cmd, args, true, selectAll)
	},
}

var deselectCmd = &cobra.Command{
	Use:   "deselect [row...]",
	Short: "Clear the selection of rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelect(cmd, args, false, deselectAll)
	},
}

func runSelect(cmd *cobra.Command, args []string, selected, all bool) error {
	if !all && len(args) == 0 {
		return fmt.Errorf("%w: give row numbers or --all", engine.ErrValidation)
	}
	rows, err := parseRows(args)
	if err != nil {
		return err
	}

	eng, _, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Select(cmd.Context(), &engine.SelectRequest{Rows: rows, All: all, Selected: selected})
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	PrintSuccess(fmt.Sprintf("%d of %s selected", result.Selected, PrintCount(result.Total, "row", "rows")))
	return nil
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the selected rows",
	Long: `Delete the selected rows. Deleting every row needs --yes; the schedule
then keeps a single blank row.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.DeleteSelected(cmd.Context(), &engine.DeleteRequest{Force: deleteYes})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Deleted %s", PrintCount(result.Removed, "row", "rows")))
		if result.Refilled {
			PrintInfo("Added a blank row so the schedule is not empty")
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear name and shifts of the selected rows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.ResetSelected(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Cleared %s", PrintCount(result.Reset, "row", "rows")))
		return nil
	},
}

func init() {
	selectCmd.Flags().BoolVarP(&selectAll, "all", "a", false, "Select every row")
	deselectCmd.Flags().BoolVarP(&deselectAll, "all", "a", false, "Deselect every row")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete every row without asking")
}
