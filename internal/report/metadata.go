package report

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/ryabkov82/furnace-merger/internal/grid"
)

// DateLayout задаёт формат даты в итоговой таблице.
const DateLayout = "02-01-2006"

// Field описывает ячейку шаблона отчёта и правило разбора её значения.
type Field struct {
	Row, Col int
	Parse    func(raw string) string
}

func (f Field) read(g grid.Grid) string {
	raw := g.Cell(f.Row, f.Col)
	if f.Parse == nil {
		return strings.TrimSpace(raw)
	}
	return f.Parse(raw)
}

// MetadataSchema описывает, где в шаблоне отчёта лежат метаданные.
type MetadataSchema struct {
	// Rows: сколько верхних строк листа просматривать.
	Rows    int
	Date    Field
	Shift   Field
	Furnace Field
}

// DefaultSchema возвращает шаблон сменного журнала: дата в N2, смена в T2,
// печь в B6.
func DefaultSchema() MetadataSchema {
	return MetadataSchema{
		Rows:    10,
		Date:    Field{Row: 1, Col: 13, Parse: ParseDate},
		Shift:   Field{Row: 1, Col: 19, Parse: ParseShift},
		Furnace: Field{Row: 5, Col: 1, Parse: ParseFurnace},
	}
}

// Metadata содержит дату, смену и номер печи одного отчёта.
type Metadata struct {
	Date  string
	Shift string
	// Furnace: цифры номера печи из шапки, пусто если их нет.
	Furnace string
}

// FurnaceLabel возвращает метку печи из шапки ("F3") или пустую строку.
func (m Metadata) FurnaceLabel() string {
	if m.Furnace == "" {
		return ""
	}
	return "F" + m.Furnace
}

// Seed возвращает номер печи, с которого начинается разметка. Без номера в шапке
// разметка начинается с 1.
func (m Metadata) Seed() int {
	n, err := strconv.Atoi(m.Furnace)
	if err != nil {
		return 1
	}
	return n
}

// Extract читает метаданные. Ни одно поле не приводит к ошибке:
// нераспознанное значение остаётся как есть или становится пустым.
func (s MetadataSchema) Extract(g grid.Grid) Metadata {
	top := g
	if s.Rows > 0 {
		top = g.Head(s.Rows)
	}
	return Metadata{
		Date:    s.Date.read(top),
		Shift:   s.Shift.read(top),
		Furnace: s.Furnace.read(top),
	}
}

// dayFirstLayouts перебираются до общего разбора, чтобы 03/04/2024
// читалось как 3 апреля.
var dayFirstLayouts = []string{
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2-1-06",
	"2/1/06",
	"2.1.06",
	"2-1-2006 15:04",
	"2/1/2006 15:04",
	"2.1.2006 15:04",
	"2-1-2006 15:04:05",
	"2/1/2006 15:04:05",
	"2.1.2006 15:04:05",
	"2-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseDate убирает префикс "DATE:" и приводит дату к DD-MM-YYYY.
// Если дату разобрать не удалось, возвращается очищенная строка.
func ParseDate(raw string) string {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "DATE:", ""))
	if t, ok := parseDayFirst(s); ok {
		return t.Format(DateLayout)
	}
	return s
}

func parseDayFirst(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseShift возвращает первую букву A, B или C из ячейки смены.
func ParseShift(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if i := strings.IndexAny(s, "ABC"); i >= 0 {
		return s[i : i+1]
	}
	return ""
}

var digitsRe = regexp.MustCompile(`[0-9]+`)

// ParseFurnace возвращает первую группу цифр из ячейки печи.
func ParseFurnace(raw string) string {
	return digitsRe.FindString(strings.TrimSpace(raw))
}
