// Package report renders benchmark results into xlsx workbooks.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Row - одна строка отчёта бенчмарка
type Row struct {
	RunID      string
	Nodes      int
	Arcs       int
	Algorithm  string
	Flow       int64
	Cost       int64
	DurationMs float64
}

const sheetName = "Benchmark"

// WriteBenchmark пишет xlsx отчёт по результатам бенчмарка
func WriteBenchmark(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // отчёт уже сохранён

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Run", "Nodes", "Arcs", "Algorithm", "Flow", "Cost", "Duration (ms)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(sheetName, 1, 1, style) //nolint:errcheck // оформление не критично
	}

	for r, row := range rows {
		values := []any{row.RunID, row.Nodes, row.Arcs, row.Algorithm, row.Flow, row.Cost, row.DurationMs}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", r, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 38); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "G", 16); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
