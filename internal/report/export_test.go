package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/testutil"
)

func sampleEntries() []*domain.WorkTimeEntry {
	return []*domain.WorkTimeEntry{
		testutil.NewTestEntry(testutil.WithInterval(testutil.At(0, 8, 0), testutil.At(0, 11, 0))),
		testutil.NewTestEntry(testutil.WithInterval(testutil.At(0, 11, 30), testutil.At(0, 14, 0))),
		testutil.NewTestEntry(
			testutil.WithKind(domain.KindWorkPiece),
			testutil.WithInterval(testutil.At(1, 17, 0), testutil.At(1, 18, 15)),
		),
	}
}

func TestDailyTotals(t *testing.T) {
	totals := DailyTotals(sampleEntries())
	require.Len(t, totals, 2)
	assert.Equal(t, DayTotal{Day: "2025-03-10", Kind: domain.KindAuxiliary, Entries: 2, LaborMin: 240}, totals[0])
	assert.Equal(t, DayTotal{Day: "2025-03-11", Kind: domain.KindWorkPiece, Entries: 1, LaborMin: 45}, totals[1])
}

func TestWriteEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, sampleEntries()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{EntriesSheet, DailySheet}, f.GetSheetList())

	rows, err := f.GetRows(EntriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Day", rows[0][0])
	assert.Equal(t, "2025-03-10 11:30", rows[2][8])
	assert.Equal(t, "60", rows[2][10])

	daily, err := f.GetRows(DailySheet)
	require.NoError(t, err)
	require.Len(t, daily, 3)
	assert.Equal(t, []string{"2025-03-10", "auxiliary", "2", "240", "4"}, daily[1])
}

func TestWriteEntries_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DailySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
