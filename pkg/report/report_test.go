package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBenchmark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.xlsx")

	rows := []Row{
		{RunID: "run-1", Nodes: 128, Arcs: 960, Algorithm: "cost-scaling", Flow: 42, Cost: 84, DurationMs: 1.5},
		{RunID: "run-1", Nodes: 128, Arcs: 960, Algorithm: "edmonds-karp-fifo", Flow: 42, Cost: 84, DurationMs: 3.25},
	}

	require.NoError(t, WriteBenchmark(path, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Run", header)

	algo, err := f.GetCellValue(sheetName, "D3")
	require.NoError(t, err)
	assert.Equal(t, "edmonds-karp-fifo", algo)

	flow, err := f.GetCellValue(sheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "42", flow)
}

func TestWriteBenchmark_EmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteBenchmark(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup

	assert.Equal(t, []string{sheetName}, f.GetSheetList())
}
