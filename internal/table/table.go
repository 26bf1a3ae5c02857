// Package table реализует таблицу с именованными колонками и операции
// над ней, которые нужны для объединения сменных отчётов.
package table

import (
	"fmt"
	"strings"

	"github.com/ryabkov82/furnace-merger/internal/grid"
)

// PlaceholderPrefix задаёт префикс имени, которое получает колонка с пустым
// заголовком.
const PlaceholderPrefix = "Unnamed"

// Row хранит значения строки по имени колонки. Отсутствующий ключ равен
// пустому значению.
type Row map[string]string

// Table хранит упорядоченный набор колонок и строк.
type Table struct {
	Columns []string
	Rows    []Row
}

func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// FromGrid строит таблицу, используя строку headerRow сетки как заголовок.
// Все строки ниже заголовка становятся строками данных.
func FromGrid(g grid.Grid, headerRow int) *Table {
	if headerRow < 0 || headerRow >= len(g) {
		return New()
	}

	t := New(headerNames(g[headerRow])...)
	for _, cells := range g[headerRow+1:] {
		row := make(Row, len(t.Columns))
		for i, name := range t.Columns {
			if i < len(cells) && cells[i] != "" {
				row[name] = cells[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// headerNames даёт пустым ячейкам имя "Unnamed: N", а повторы
// нумерует суффиксом ".1", ".2".
func headerNames(cells []string) []string {
	names := make([]string, len(cells))
	seen := make(map[string]int, len(cells))
	for i, c := range cells {
		name := strings.TrimSpace(c)
		if name == "" {
			name = fmt.Sprintf("%s: %d", PlaceholderPrefix, i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) HasColumn(name string) bool {
	return t.columnIndex(name) >= 0
}

func (t *Table) columnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AddColumn добавляет пустую колонку в конец, если её ещё нет.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Value возвращает значение ячейки (пустое для отсутствующей).
func (t *Table) Value(row int, column string) string {
	return t.Rows[row][column]
}

// Set записывает значение ячейки, добавляя колонку при необходимости.
func (t *Table) Set(row int, column, value string) {
	t.AddColumn(column)
	if value == "" {
		delete(t.Rows[row], column)
		return
	}
	t.Rows[row][column] = value
}

// Column возвращает значения колонки по порядку строк.
func (t *Table) Column(name string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values
}

// Records возвращает строки в виде срезов в порядке Columns.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			rec[j] = row[c]
		}
		out[i] = rec
	}
	return out
}

// IsEmpty сообщает, что в ячейке нет значения.
func IsEmpty(v string) bool { return v == "" }

// IsBlank сообщает, что значение пустое или состоит из пробелов.
func IsBlank(v string) bool { return strings.TrimSpace(v) == "" }

// IsPlaceholder сообщает, что имя колонки сгенерировано для пустого
// заголовка.
func IsPlaceholder(name string) bool {
	return strings.HasPrefix(name, PlaceholderPrefix)
}
