package engine

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/shiftgrid/internal/grid"
	"github.com/danieljhkim/shiftgrid/internal/persist"
	"github.com/danieljhkim/shiftgrid/internal/rules"
	"github.com/danieljhkim/shiftgrid/internal/source"
	"github.com/danieljhkim/shiftgrid/internal/tabular"
)

// memPicker answers with a fixed file or error.
type memPicker struct {
	file *source.File
	err  error
}

func (p *memPicker) Pick(ctx context.Context) (*source.File, error) {
	return p.file, p.err
}

// csvFile builds a CSV for an October schedule. Each entry maps a name to
// day -> token.
func csvFile(t *testing.T, name string, rows ...map[string]map[int]string) *memPicker {
	t.Helper()
	table := tabular.Table{Rows: [][]string{tabular.Header(31)}}
	for _, r := range rows {
		for empName, days := range r {
			line := make([]string, tabular.Width(31))
			line[tabular.ColName] = empName
			for d, tok := range days {
				line[tabular.DayColumn(d)] = tok
			}
			table.Rows = append(table.Rows, line)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, tabular.CSV{}.Encode(&buf, table))
	return &memPicker{file: &source.File{Name: name, Data: buf.Bytes()}}
}

func TestExport_Save(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()
	seed(t, eng, "Kim", "Lee")

	res, err := eng.Export(ctx, &ExportRequest{Format: "csv", Save: true})
	require.NoError(t, err)
	assert.Equal(t, "2026-10_schedule_20261019.csv", res.FileName)
	assert.Equal(t, tabular.FormatCSV, res.Format)
	assert.Equal(t, 2, res.RowCount)
	assert.NotEmpty(t, res.Checksum)
	assert.FileExists(t, res.Path)

	list, err := eng.ListExports(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{res.FileName}, list.Files)

	t.Run("default format", func(t *testing.T) {
		res, err := eng.Export(ctx, &ExportRequest{})
		require.NoError(t, err)
		assert.Equal(t, tabular.FormatXLSX, res.Format)
		assert.Empty(t, res.Path)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := eng.Export(ctx, &ExportRequest{Format: "ods"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestExportImport_RoundTrip(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()
	seed(t, eng, "Kim", "Lee")

	_, err := eng.SetCell(ctx, &SetCellRequest{Row: 0, Days: []int{1, 2}, Code: "D"})
	require.NoError(t, err)
	_, err = eng.SetCell(ctx, &SetCellRequest{Row: 1, Days: []int{1}, Code: "/"})
	require.NoError(t, err)

	for _, format := range []string{"csv", "xlsx"} {
		t.Run(format, func(t *testing.T) {
			before, err := eng.Show(ctx)
			require.NoError(t, err)

			exp, err := eng.Export(ctx, &ExportRequest{Format: format, Save: true})
			require.NoError(t, err)
			picker, err := eng.ExportPicker(exp.FileName)
			require.NoError(t, err)

			res, err := eng.Import(ctx, &ImportRequest{Picker: picker, Force: true})
			require.NoError(t, err)
			assert.True(t, res.Applied)
			assert.Equal(t, 2, res.RowCount)

			after, err := eng.Show(ctx)
			require.NoError(t, err)
			require.Len(t, after.Rows, 2)
			for i := range before.Rows {
				assert.Equal(t, before.Rows[i].Name, after.Rows[i].Name)
				assert.Equal(t, before.Rows[i].Days, after.Rows[i].Days)
			}
		})
	}
}

func TestImport_IntoBlankSchedule(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	picker := csvFile(t, "october.csv",
		map[string]map[int]string{"Kim": {1: "D", 2: "e"}},
		map[string]map[int]string{"Lee": {1: "X", 3: "N"}},
	)
	res, err := eng.Import(ctx, &ImportRequest{Picker: picker})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.Applied)
	assert.Equal(t, "october.csv", res.FileName)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 3, res.Warnings[0].Line)
	assert.Equal(t, "X", res.Warnings[0].Value)

	show, err := eng.Show(ctx)
	require.NoError(t, err)
	require.Len(t, show.Rows, 2)
	assert.Equal(t, "Kim", show.Rows[0].Name)
	assert.Equal(t, grid.Evening, show.Rows[0].Days[1])
	assert.Equal(t, grid.Unset, show.Rows[1].Days[0])
	assert.Equal(t, grid.Night, show.Rows[1].Days[2])
}

func TestImport_ConfirmAndDryRun(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()
	seed(t, eng, "Kim", "Park")

	picker := csvFile(t, "new.csv", map[string]map[int]string{"Kim": {4: "N"}})

	t.Run("dry run changes nothing", func(t *testing.T) {
		res, err := eng.Import(ctx, &ImportRequest{Picker: picker, DryRun: true})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.False(t, res.Applied)
		require.NotNil(t, res.Plan)
		assert.True(t, res.Plan.DataLoss)
	})

	t.Run("replacing content needs force", func(t *testing.T) {
		res, err := eng.Import(ctx, &ImportRequest{Picker: picker})
		require.ErrorIs(t, err, ErrConfirmRequired)
		require.NotNil(t, res)
		assert.False(t, res.Applied)

		show, err := eng.Show(ctx)
		require.NoError(t, err)
		assert.Len(t, show.Rows, 2)
	})

	t.Run("force replaces", func(t *testing.T) {
		res, err := eng.Import(ctx, &ImportRequest{Picker: picker, Force: true})
		require.NoError(t, err)
		assert.True(t, res.Applied)

		show, err := eng.Show(ctx)
		require.NoError(t, err)
		require.Len(t, show.Rows, 1)
		assert.Equal(t, grid.Night, show.Rows[0].Days[3])
	})
}

func TestImport_FailureKeepsSchedule(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()
	seed(t, eng, "Kim")

	tests := []struct {
		name    string
		picker  source.Picker
		wantErr error
	}{
		{
			name:    "too few columns",
			picker:  &memPicker{file: &source.File{Name: "short.csv", Data: []byte("Name,D,E\nKim,1,0\n")}},
			wantErr: tabular.ErrSchema,
		},
		{
			name:    "no usable rows",
			picker:  csvFile(t, "blank.csv", map[string]map[int]string{"": {1: "?"}}),
			wantErr: tabular.ErrNoValidRows,
		},
		{
			name:    "not a workbook",
			picker:  &memPicker{file: &source.File{Name: "junk.xlsx", Data: []byte("plain text")}},
			wantErr: tabular.ErrDecode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := eng.Import(ctx, &ImportRequest{Picker: tt.picker, Force: true})
			require.ErrorIs(t, err, tt.wantErr)
			require.NotNil(t, res)
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)

			show, err := eng.Show(ctx)
			require.NoError(t, err)
			require.Len(t, show.Rows, 1)
			assert.Equal(t, "Kim", show.Rows[0].Name)
		})
	}
}

func TestImport_Refused(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	t.Run("cancelled", func(t *testing.T) {
		res, err := eng.Import(ctx, &ImportRequest{Picker: &memPicker{err: source.ErrNoSelection}})
		assert.ErrorIs(t, err, source.ErrCancelled)
		assert.Nil(t, res)
	})

	t.Run("wrong extension", func(t *testing.T) {
		picker := &memPicker{file: &source.File{Name: "notes.txt", Data: []byte("x")}}
		_, err := eng.Import(ctx, &ImportRequest{Picker: picker})
		assert.ErrorIs(t, err, source.ErrFileType)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := eng.Import(ctx, &ImportRequest{Picker: eng.PathPicker("/nonexistent/sched.csv")})
		assert.ErrorIs(t, err, source.ErrSourceUnavailable)
	})

	t.Run("no picker", func(t *testing.T) {
		_, err := eng.Import(ctx, &ImportRequest{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown export", func(t *testing.T) {
		_, err := eng.ExportPicker("missing.csv")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestImport_ReportsViolationsWithoutRejecting(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	picker := csvFile(t, "busy.csv",
		map[string]map[int]string{"Kim": {1: "D"}},
		map[string]map[int]string{"Lee": {1: "D"}},
	)
	res, err := eng.Import(ctx, &ImportRequest{Picker: picker})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	require.Len(t, res.Plan.Violations, 1)
	assert.Equal(t, rules.ReasonLimitExceeded, res.Plan.Violations[0].Reason)

	check, err := eng.Check(ctx)
	require.NoError(t, err)
	assert.Len(t, check.Violations, 1)
}

func TestExports_VerifyAndRemove(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()
	seed(t, eng, "Kim")

	exp, err := eng.Export(ctx, &ExportRequest{Format: "csv", Save: true})
	require.NoError(t, err)

	require.NoError(t, eng.VerifyExport(ctx, exp.FileName, exp.Checksum))
	assert.ErrorIs(t, eng.VerifyExport(ctx, exp.FileName, "0000"), persist.ErrChecksumMismatch)

	require.NoError(t, eng.RemoveExport(ctx, exp.FileName))
	assert.ErrorIs(t, eng.RemoveExport(ctx, exp.FileName), ErrNotFound)
	assert.ErrorIs(t, eng.VerifyExport(ctx, exp.FileName, exp.Checksum), ErrNotFound)

	list, err := eng.ListExports(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Files)
}

func TestImport_PromptPicker(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()
	seed(t, eng, "Kim")

	exp, err := eng.Export(ctx, &ExportRequest{Format: "xlsx", Save: true})
	require.NoError(t, err)

	t.Run("path typed", func(t *testing.T) {
		var prompt bytes.Buffer
		picker := eng.PromptPicker(strings.NewReader(exp.Path+"\n"), &prompt)

		res, err := eng.Import(ctx, &ImportRequest{Picker: picker, DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, exp.FileName, res.FileName)
		assert.Contains(t, prompt.String(), "File to import")
	})

	t.Run("empty answer cancels", func(t *testing.T) {
		picker := eng.PromptPicker(strings.NewReader("\n"), io.Discard)

		_, err := eng.Import(ctx, &ImportRequest{Picker: picker})
		assert.ErrorIs(t, err, source.ErrCancelled)
	})
}
