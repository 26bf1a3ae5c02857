package grid

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat возвращается для файлов с неизвестным расширением.
var ErrUnsupportedFormat = errors.New("неподдерживаемый формат файла")

// LoadError означает, что файл не удалось прочитать как книгу.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("ошибка чтения файла %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader превращает путь к файлу в сетку.
type Loader interface {
	Load(path string) (Grid, error)
}

// FileLoader читает .xlsx/.xlsm через excelize и .xls через extrame/xls.
// Формат выбирается по расширению.
type FileLoader struct {
	// XLSCharset: кодировка строк в старых .xls книгах.
	XLSCharset string
}

func NewFileLoader(xlsCharset string) *FileLoader {
	if xlsCharset == "" {
		xlsCharset = "utf-8"
	}
	return &FileLoader{XLSCharset: xlsCharset}
}

func (l *FileLoader) Load(path string) (Grid, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	case ".xls":
		rows, err = readXLS(path, l.XLSCharset)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return normalize(rows), nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	// Ячейки с датой отдаются в ISO, а не во встроенном формате книги
	// (формат 14 показывает mm-dd-yy).
	for i, row := range rows {
		for j, v := range row {
			if i >= len(raw) || j >= len(raw[i]) || raw[i][j] == v {
				continue
			}
			if d, ok := dateCell(f, sheet, j+1, i+1, raw[i][j], date1904); ok {
				rows[i][j] = d
			}
		}
	}
	return rows, nil
}

func dateCell(f *excelize.File, sheet string, col, row int, raw string, date1904 bool) (string, bool) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", false
	}
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return "", false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return "", false
	}
	if !isDateFormat(style.NumFmt) && (style.CustomNumFmt == nil || !isDateLayout(*style.CustomNumFmt)) {
		return "", false
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return "", false
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02"), true
	}
	return t.Format("2006-01-02 15:04:05"), true
}

// isDateFormat сообщает, что встроенный формат показывает дату.
// Форматы только времени (18-21, 45-47) сюда не входят.
func isDateFormat(fmtID int) bool {
	switch fmtID {
	case 14, 15, 16, 17, 22, 27, 30, 36, 50, 57:
		return true
	}
	return false
}

// isDateLayout узнаёт пользовательский формат даты по кодам y и d вне
// кавычек и квадратных скобок.
func isDateLayout(layout string) bool {
	var (
		quoted  bool
		bracket bool
	)
	for _, r := range strings.ToLower(layout) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		case r == 'y' || r == 'd':
			return true
		}
	}
	return false
}

func readXLS(path, charset string) (rows [][]string, err error) {
	// extrame/xls паникует на битых файлах
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("повреждённый xls: %v", r)
		}
	}()

	wb, err := xls.Open(path, charset)
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, nil
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}

	rows = make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cols := make([]string, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cols[j] = row.Col(j)
		}
		rows = append(rows, cols)
	}
	return rows, nil
}
