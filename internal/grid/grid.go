// Package grid читает первый лист книги в прямоугольную сетку сырых
// значений, без интерпретации заголовков и типов.
package grid

import "strings"

// Grid хранит строки листа сверху вниз, в каждой строке ячейки слева направо.
// Все строки одинаковой длины.
type Grid [][]string

// Cell возвращает значение ячейки по 0-based координатам.
// Координаты вне сетки дают пустую строку.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// Head возвращает первые n строк сетки.
func (g Grid) Head(n int) Grid {
	if n >= len(g) {
		return g
	}
	if n < 0 {
		n = 0
	}
	return g[:n]
}

// Width возвращает число колонок.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// normalize выравнивает строки по самой длинной и отрезает хвостовые
// полностью пустые строки.
func normalize(rows [][]string) Grid {
	last := -1
	width := 0
	for i, row := range rows {
		for j := len(row) - 1; j >= 0; j-- {
			if strings.TrimSpace(row[j]) != "" {
				last = i
				if j+1 > width {
					width = j + 1
				}
				break
			}
		}
	}

	g := make(Grid, last+1)
	for i := range g {
		row := make([]string, width)
		copy(row, rows[i])
		g[i] = row
	}
	return g
}
