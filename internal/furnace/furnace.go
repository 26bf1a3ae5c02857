// Package furnace восстанавливает номера печей в колонке Furnace.
//
// В исходном отчёте номер печи у строк не меняется, хотя в листе идут
// журналы нескольких печей подряд. Граница между печами видна только по
// чередованию пустых и непустых ячеек колонки: две непустые, пустая,
// непустая и снова пустая закрывают блок, и следующая печь получает
// номер на единицу больше (после 9 идёт 1).
package furnace

import (
	"strconv"
	"strings"
)

// MaxNumber задаёт номер последней печи, после неё счёт начинается с 1.
const MaxNumber = 9

// State хранит состояние автомата между строками.
type State struct {
	// Counter: позиция в шаблоне блока, 0..3.
	Counter int
	// Number: текущий номер печи, 1..MaxNumber.
	Number int
}

// NewState начинает разбор файла с печи seed. Номер вне 1..MaxNumber
// заменяется на 1.
func NewState(seed int) State {
	if seed < 1 || seed > MaxNumber {
		seed = 1
	}
	return State{Number: seed}
}

// Step применяет к состоянию очередную строку.
func (s State) Step(blank bool) State {
	switch s.Counter {
	case 0:
		if !blank {
			s.Counter = 1
		}
	case 1:
		if blank {
			s.Counter = 2
		}
	case 2:
		if blank {
			s.Counter = 1
		} else {
			s.Counter = 3
		}
	case 3:
		if blank {
			s.Number++
			if s.Number > MaxNumber {
				s.Number = 1
			}
		}
		s.Counter = 0
	}
	return s
}

// Label возвращает метку текущей печи, например "F3".
func (s State) Label() string { return Label(s.Number) }

func Label(n int) string { return "F" + strconv.Itoa(n) }

// Relabel прогоняет автомат по значениям колонки и возвращает новую
// колонку: непустые ячейки получают метку текущей печи, пустые остаются
// как есть. Второе значение содержит состояние после последней строки.
func Relabel(values []string, seed int) ([]string, State) {
	out := make([]string, len(values))
	s := NewState(seed)
	for i, v := range values {
		blank := strings.TrimSpace(v) == ""
		s = s.Step(blank)
		if blank {
			out[i] = v
			continue
		}
		out[i] = s.Label()
	}
	return out, s
}
