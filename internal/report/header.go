// Package report разбирает один сменный журнал печи: находит строку
// заголовка, читает метаданные из фиксированных ячеек и собирает
// таблицу с колонками Date, Shift и Furnace.
package report

import (
	"errors"
	"strings"

	"github.com/ryabkov82/furnace-merger/internal/grid"
)

// HeaderToken задаёт текст ячейки, по которому узнаётся строка заголовка.
const HeaderToken = "TIME"

var ErrHeaderNotFound = errors.New("строка заголовка с TIME не найдена")

// FindHeaderRow возвращает индекс первой строки, в которой есть ячейка
// с текстом TIME в любом регистре.
func FindHeaderRow(g grid.Grid) (int, bool) {
	for i, row := range g {
		for _, cell := range row {
			if strings.ToUpper(cell) == HeaderToken {
				return i, true
			}
		}
	}
	return -1, false
}
