package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryabkov82/furnace-merger/internal/grid"
)

func TestFromGrid(t *testing.T) {
	g := grid.Grid{
		{"SHIFT LOG", "", "", "", ""},
		{"", "TIME", "TEMP", "", "TEMP"},
		{"", "08:00", "1200", "", "1190"},
		{"", "", "", "", ""},
		{"", "09:00", "", "x", "1185"},
	}

	tbl := FromGrid(g, 1)

	assert.Equal(t, []string{"Unnamed: 0", "TIME", "TEMP", "Unnamed: 3", "TEMP.1"}, tbl.Columns)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, "08:00", tbl.Value(0, "TIME"))
	assert.Equal(t, "1190", tbl.Value(0, "TEMP.1"))
	assert.True(t, tbl.IsEmptyRow(1))
	assert.Equal(t, "x", tbl.Value(2, "Unnamed: 3"))
	assert.Equal(t, "", tbl.Value(2, "TEMP"))
}

func TestFromGridOutOfRange(t *testing.T) {
	tbl := FromGrid(grid.Grid{{"a"}}, 3)
	assert.Empty(t, tbl.Columns)
	assert.Zero(t, tbl.Len())
}

func TestHeaderNamesDuplicates(t *testing.T) {
	assert.Equal(t,
		[]string{"A", "A.1", "B", "A.2", "Unnamed: 4", "Unnamed"},
		headerNames([]string{"A", "A", "B", " A ", "  ", "Unnamed"}),
	)
}

func TestSetAndColumn(t *testing.T) {
	tbl := &Table{Columns: []string{"TIME"}, Rows: []Row{{"TIME": "1"}, {}}}

	tbl.Set(0, "Date", "01-02-2024")
	tbl.Set(1, "TIME", "")

	assert.Equal(t, []string{"TIME", "Date"}, tbl.Columns)
	assert.Equal(t, []string{"01-02-2024", ""}, tbl.Column("Date"))
	assert.Equal(t, [][]string{{"1", "01-02-2024"}, {"", ""}}, tbl.Records())
}

func TestConcat(t *testing.T) {
	a := &Table{Columns: []string{"TIME", "T1"}, Rows: []Row{{"TIME": "1", "T1": "a"}}}
	b := &Table{Columns: []string{"T2", "TIME"}, Rows: []Row{{"TIME": "2", "T2": "b"}, {"TIME": "3"}}}

	out := Concat(a, nil, b)

	assert.Equal(t, []string{"TIME", "T1", "T2"}, out.Columns)
	assert.Equal(t, []string{"1", "2", "3"}, out.Column("TIME"))
	assert.Equal(t, [][]string{{"1", "a", ""}, {"2", "", "b"}, {"3", "", ""}}, out.Records())
}

func TestDropColumns(t *testing.T) {
	tbl := &Table{
		Columns: []string{"TIME", "Unnamed: 1", "EMPTY", "TEMP"},
		Rows: []Row{
			{"TIME": "1", "Unnamed: 1": "junk", "TEMP": "5"},
			{"TIME": "2"},
		},
	}

	dropped := tbl.DropColumns(func(name string, values []string) bool {
		return IsPlaceholder(name) || AllEmpty(values)
	})

	assert.Equal(t, []string{"Unnamed: 1", "EMPTY"}, dropped)
	assert.Equal(t, []string{"TIME", "TEMP"}, tbl.Columns)
	_, ok := tbl.Rows[0]["Unnamed: 1"]
	assert.False(t, ok)
}

func blankAt(n int, blank ...int) *Table {
	tbl := New("ID", "V")
	for i := 0; i < n; i++ {
		tbl.Rows = append(tbl.Rows, Row{"ID": fmt.Sprint(i), "V": "x"})
	}
	for _, i := range blank {
		tbl.Rows[i] = Row{}
	}
	return tbl
}

func TestDropBlankBlocks(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		blank   []int
		wantIDs []string
	}{
		{
			name:    "no blanks",
			rows:    3,
			wantIDs: []string{"0", "1", "2"},
		},
		{
			name:    "single block",
			rows:    8,
			blank:   []int{2},
			wantIDs: []string{"0", "1", "6", "7"},
		},
		{
			name:    "blank inside a block is not rescanned",
			rows:    10,
			blank:   []int{3, 5},
			wantIDs: []string{"0", "1", "2", "7", "8", "9"},
		},
		{
			name:    "adjacent blocks",
			rows:    10,
			blank:   []int{3, 7},
			wantIDs: []string{"0", "1", "2"},
		},
		{
			name:    "clipped at the end",
			rows:    5,
			blank:   []int{3},
			wantIDs: []string{"0", "1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := blankAt(tt.rows, tt.blank...)
			removed := tbl.DropBlankBlocks(4)

			ids := make([]string, 0)
			for _, row := range tbl.Rows {
				ids = append(ids, row["ID"])
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.rows-len(tt.wantIDs), removed)
		})
	}
}

func TestMoveToFront(t *testing.T) {
	tbl := New("X", "Date", "Y", "Shift", "Furnace", "Z")
	tbl.MoveToFront("Date", "Shift", "Furnace")
	assert.Equal(t, []string{"Date", "Shift", "Furnace", "X", "Y", "Z"}, tbl.Columns)

	tbl = New("Z", "A")
	tbl.MoveToFront("Date", "Shift", "Furnace")
	assert.Equal(t, []string{"Date", "Shift", "Furnace", "Z", "A"}, tbl.Columns)
}
