package merger

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// shiftReport описывает журнал в шаблоне отчёта: дата в N2, смена в T2,
// печь в B6, заголовок в строке 9. Date принимает строку или time.Time.
type shiftReport struct {
	Date    interface{}
	Shift   string
	Furnace string
	Header  []string
	Rows    [][]interface{}
}

func writeReport(t *testing.T, dir, name string, r shiftReport) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetCellValue(sheet, "A1", "FURNACE SHIFT LOG"))
	if r.Date != nil {
		require.NoError(t, f.SetCellValue(sheet, "N2", r.Date))
	}
	require.NoError(t, f.SetCellValue(sheet, "T2", r.Shift))
	require.NoError(t, f.SetCellValue(sheet, "B6", r.Furnace))

	header := r.Header
	if header == nil {
		header = []string{"TIME", "TEMP", "PRESSURE"}
	}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 9)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for ri, row := range r.Rows {
		for ci, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(ci+1, 10+ri)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeGarbage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))
	return path
}

func readRows(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func dataRows(n int) [][]interface{} {
	rows := make([][]interface{}, n)
	for i := range rows {
		rows[i] = []interface{}{fmt.Sprintf("%02d:00", 8+i), 1200 + i, 3}
	}
	return rows
}
