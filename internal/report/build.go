package report

import (
	"strings"

	"github.com/ryabkov82/furnace-merger/internal/furnace"
	"github.com/ryabkov82/furnace-merger/internal/grid"
	"github.com/ryabkov82/furnace-merger/internal/table"
)

// Колонки, которые добавляются к каждому отчёту.
const (
	ColDate    = "Date"
	ColShift   = "Shift"
	ColFurnace = "Furnace"
)

// Build собирает таблицу отчёта из сетки листа: строка с TIME становится
// заголовком, строкам с заполненным временем проставляются дата, смена и
// печь, после чего номера печей восстанавливаются автоматом.
func Build(g grid.Grid, schema MetadataSchema) (*table.Table, Metadata, error) {
	headerRow, ok := FindHeaderRow(g)
	if !ok {
		return nil, Metadata{}, ErrHeaderNotFound
	}

	t := table.FromGrid(g, headerRow)
	md := schema.Extract(g)

	Stamp(t, md)
	RelabelFurnaces(t, md.Seed())

	return t, md, nil
}

// timeColumn ищет колонку TIME среди имён заголовка.
func timeColumn(t *table.Table) (string, bool) {
	for _, c := range t.Columns {
		if strings.ToUpper(c) == HeaderToken {
			return c, true
		}
	}
	return "", false
}

// Stamp проставляет метаданные строкам с непустым временем. Если колонки
// TIME нет, метаданные получают все строки.
func Stamp(t *table.Table, md Metadata) {
	for _, c := range []string{ColDate, ColShift, ColFurnace} {
		t.AddColumn(c)
	}

	timeCol, hasTime := timeColumn(t)
	label := md.FurnaceLabel()
	for i := range t.Rows {
		if hasTime && table.IsEmpty(t.Value(i, timeCol)) {
			continue
		}
		t.Set(i, ColDate, md.Date)
		t.Set(i, ColShift, md.Shift)
		t.Set(i, ColFurnace, label)
	}
}

// RelabelFurnaces переписывает колонку Furnace по автомату границ печей.
func RelabelFurnaces(t *table.Table, seed int) {
	labels, _ := furnace.Relabel(t.Column(ColFurnace), seed)
	for i, l := range labels {
		t.Set(i, ColFurnace, l)
	}
}
