package table

// Concat склеивает таблицы по порядку. Колонки образуют объединение колонок
// всех таблиц в порядке первого появления.
func Concat(tables ...*Table) *Table {
	out := New()
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			out.AddColumn(c)
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out
}

// DropColumns удаляет колонки, для которых drop вернул true.
func (t *Table) DropColumns(drop func(name string, values []string) bool) []string {
	var (
		kept    = t.Columns[:0:0]
		dropped []string
	)
	for _, c := range t.Columns {
		if drop(c, t.Column(c)) {
			dropped = append(dropped, c)
			continue
		}
		kept = append(kept, c)
	}
	for _, c := range dropped {
		for _, row := range t.Rows {
			delete(row, c)
		}
	}
	t.Columns = kept
	return dropped
}

// AllEmpty сообщает, что все значения пустые.
func AllEmpty(values []string) bool {
	for _, v := range values {
		if !IsEmpty(v) {
			return false
		}
	}
	return true
}

// IsEmptyRow сообщает, что во всех колонках строки i нет значений.
func (t *Table) IsEmptyRow(i int) bool {
	for _, c := range t.Columns {
		if !IsEmpty(t.Rows[i][c]) {
			return false
		}
	}
	return true
}

// DropBlankBlocks удаляет каждую полностью пустую строку вместе со
// следующими window-1 строками. Сканирование продолжается сразу после
// удалённого блока. Возвращает число удалённых строк.
func (t *Table) DropBlankBlocks(window int) int {
	if window < 1 {
		window = 1
	}

	marked := make([]bool, len(t.Rows))
	for i := 0; i < len(t.Rows); {
		if !t.IsEmptyRow(i) {
			i++
			continue
		}
		end := min(i+window, len(t.Rows))
		for j := i; j < end; j++ {
			marked[j] = true
		}
		i = end
	}

	kept := make([]Row, 0, len(t.Rows))
	for i, row := range t.Rows {
		if !marked[i] {
			kept = append(kept, row)
		}
	}
	removed := len(t.Rows) - len(kept)
	t.Rows = kept
	return removed
}

// MoveToFront ставит перечисленные колонки первыми в заданном порядке,
// остальные сохраняют взаимный порядок. Отсутствующие колонки
// добавляются пустыми.
func (t *Table) MoveToFront(names ...string) {
	front := make(map[string]bool, len(names))
	cols := make([]string, 0, len(t.Columns)+len(names))
	for _, n := range names {
		if front[n] {
			continue
		}
		front[n] = true
		cols = append(cols, n)
	}
	for _, c := range t.Columns {
		if !front[c] {
			cols = append(cols, c)
		}
	}
	t.Columns = cols
}
