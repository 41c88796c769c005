package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/shiftgrid/internal/engine"
	"github.com/danieljhkim/shiftgrid/internal/fsops"
	"github.com/danieljhkim/shiftgrid/internal/source"
)

var (
	exportFormat string
	exportOut    string

	importFromExports string
	importYes         bool
	importDryRun      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the schedule to .xlsx or .csv",
	Long: `Export the schedule as a table: a header row
[Name, D, E, N, OFF, WorkDays, 1, 2, ..., <days in month>] followed by one
row per employee.

By default the file is saved to the exports directory as
<YYYY-MM>_schedule_<YYYYMMDD>.<ext>. Use --out to write elsewhere, or
--out - to write the bytes to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.ExportRequest{Format: exportFormat, Save: exportOut == ""}
		result, err := eng.Export(cmd.Context(), req)
		if err != nil {
			return err
		}

		switch exportOut {
		case "":
		case "-":
			_, err := stdout.Write(result.Data)
			return err
		default:
			path := exportOut
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, result.FileName)
			}
			if err := fsops.NewRealFS().AtomicWrite(path, result.Data, 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			result.Path = path
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Exported %s", PrintCount(result.RowCount, "row", "rows")))
		PrintLabelValue("File", result.Path)
		if result.Checksum != "" {
			PrintLabelValue("SHA-256", result.Checksum)
		}
		return nil
	},
}

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List saved exports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.ListExports(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection(fmt.Sprintf("Exports in %s", result.Dir))
		if len(result.Files) == 0 {
			PrintEmptyState("No exports yet. Run 'shiftgrid export'.")
			return nil
		}
		PrintList(result.Files, 1)
		return nil
	},
}

var exportsRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		if err := eng.RemoveExport(cmd.Context(), args[0]); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]string{"removed": args[0]})
		}
		PrintSuccess(fmt.Sprintf("Removed %s", args[0]))
		return nil
	},
}

var exportsVerifyCmd = &cobra.Command{
	Use:   "verify <name> <sha256>",
	Short: "Check a saved export against its checksum",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		if err := eng.VerifyExport(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]interface{}{"name": args[0], "verified": true})
		}
		PrintSuccess(fmt.Sprintf("%s is unchanged", args[0]))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the schedule with rows from .xlsx or .csv",
	Long: `Import a schedule exported by shiftgrid (or laid out the same way).

The file must have at least 6 + <days in month> columns for the saved
month. Rows are matched by the first column (name) and the day columns;
cells that are not D, E, N or / are ignored with a warning. Blank rows are
skipped.

With no file argument, shiftgrid asks for a path; an empty answer or
Ctrl-C cancels. The import replaces the whole schedule, so a schedule
with names or shifts needs --yes. Use --dry-run to see what would change.
Imported rows are not checked against the work rules; breaches are
reported so they can be fixed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}

		var picker source.Picker
		switch {
		case len(args) == 1 && importFromExports != "":
			return fmt.Errorf("%w: give a file or --from-exports, not both", engine.ErrValidation)
		case len(args) == 1:
			picker = eng.PathPicker(args[0])
		case importFromExports != "":
			if picker, err = eng.ExportPicker(importFromExports); err != nil {
				return err
			}
		default:
			picker = eng.PromptPicker(os.Stdin, os.Stderr)
		}

		ctx, cancel := commandContext()
		defer cancel()

		result, err := eng.Import(ctx, &engine.ImportRequest{
			Picker: picker,
			Force:  importYes,
			DryRun: importDryRun,
		})
		if result == nil {
			return err
		}

		if jsonOutput {
			if jerr := outputJSON(result); jerr != nil {
				return jerr
			}
			return err
		}

		printImport(result)
		if err != nil && errors.Is(err, engine.ErrConfirmRequired) && result.Plan != nil {
			printPlan(result)
		}
		return err
	},
}

func printImport(result *engine.ImportResult) {
	if !result.Success {
		PrintSection(fmt.Sprintf("Import of %s failed", result.FileName))
		return
	}

	switch {
	case importDryRun:
		PrintSection(fmt.Sprintf("Dry Run: Import %s", result.FileName))
	case result.Applied:
		PrintSuccess(fmt.Sprintf("Imported %s from %s", PrintCount(result.RowCount, "row", "rows"), result.FileName))
	}

	if result.Skipped > 0 {
		PrintLabelValue("Skipped", PrintCount(result.Skipped, "blank row", "blank rows"))
	}
	if n := len(result.Warnings); n > 0 {
		PrintWarning(fmt.Sprintf("%s ignored", PrintCount(n, "invalid cell", "invalid cells")))
		items := make([]string, 0, n)
		for _, w := range result.Warnings {
			items = append(items, w.String())
		}
		PrintList(items, 1)
	}

	if importDryRun {
		printPlan(result)
		fmt.Fprintln(stdout)
		PrintWarning("Run without --dry-run to import")
		return
	}
	printViolations(result)
}

func printPlan(result *engine.ImportResult) {
	if result.Plan == nil {
		return
	}
	rows := make([][]string, 0, len(result.Plan.Operations))
	for _, op := range result.Plan.Operations {
		name := op.Name
		if name == "" {
			name = "(unnamed)"
		}
		rows = append(rows, []string{op.Type, name, fmt.Sprintf("%d", op.Assigned)})
	}
	fmt.Fprintln(stdout)
	PrintTable([]string{"CHANGE", "EMPLOYEE", "DAYS"}, rows)
	printViolations(result)
}

func printViolations(result *engine.ImportResult) {
	if result.Plan == nil || len(result.Plan.Violations) == 0 {
		return
	}
	fmt.Fprintln(stdout)
	PrintWarning(fmt.Sprintf("The imported schedule breaks the work rules in %s:",
		PrintCount(len(result.Plan.Violations), "place", "places")))
	items := make([]string, 0, len(result.Plan.Violations))
	for _, v := range result.Plan.Violations {
		items = append(items, v.Describe())
	}
	PrintList(items, 1)
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "File format: xlsx or csv (default from config)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to this file or directory instead of the exports directory")

	exportsCmd.AddCommand(exportsRmCmd)
	exportsCmd.AddCommand(exportsVerifyCmd)

	importCmd.Flags().StringVar(&importFromExports, "from-exports", "", "Import a file from the exports directory")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Replace the current schedule without asking")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would change without importing")
}
