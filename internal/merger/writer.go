package merger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/furnace-merger/internal/config"
	"github.com/ryabkov82/furnace-merger/internal/table"
)

const (
	minColWidth = 8
	maxColWidth = 60
)

// TableWriter сохраняет объединённую таблицу.
type TableWriter interface {
	WriteTable(t *table.Table) ([]string, int64, error)
}

type BaseWriter struct {
	Headers      []string
	MaxColWidths map[int]int
}

// Init сбрасывает заголовки и накопленные ширины перед записью новой таблицы.
func (bw *BaseWriter) Init() {
	bw.MaxColWidths = make(map[int]int)
	bw.Headers = make([]string, 0)
}

// AnalyzeSample берёт ширину колонки по самому длинному значению в рунах
// среди заголовка и первых sampleRows строк (0 значит все строки).
func (bw *BaseWriter) AnalyzeSample(records [][]string, sampleRows int) {
	for i, h := range bw.Headers {
		bw.MaxColWidths[i] = utf8.RuneCountInString(h)
	}
	for n, rec := range records {
		if sampleRows > 0 && n >= sampleRows {
			break
		}
		for i, v := range rec {
			if w := utf8.RuneCountInString(v); w > bw.MaxColWidths[i] {
				bw.MaxColWidths[i] = w
			}
		}
	}
}

func (bw *BaseWriter) colWidth(i int) float64 {
	w := bw.MaxColWidths[i] + 2
	return float64(min(max(w, minColWidth), maxColWidth))
}

// StreamWriter пишет таблицу через excelize.StreamWriter и при
// превышении MaxRowPerFile делит результат на части.
type StreamWriter struct {
	BaseWriter
	HeaderStyle  int
	Cfg          *config.Config
	StreamWriter *excelize.StreamWriter
	RowCounter   int64
	OutFile      *excelize.File
	PartCounter  int
	Split        bool
	OutputFiles  []string
}

func NewStreamWriter(cfg *config.Config) TableWriter {
	sw := &StreamWriter{Cfg: cfg}
	sw.BaseWriter.Init()
	return sw
}

func (sw *StreamWriter) WriteTable(t *table.Table) ([]string, int64, error) {
	sw.PartCounter = 1
	sw.OutputFiles = nil

	// Удаляем старые файлы перед началом
	if err := removeExistingPartFiles(sw.Cfg); err != nil {
		return nil, 0, err
	}

	records := t.Records()
	sw.Headers = append([]string{}, t.Columns...)
	sw.AnalyzeSample(records, sw.Cfg.SampleRows)
	sw.Split = sw.Cfg.MaxRowPerFile > 0 && int64(len(records)) > sw.Cfg.MaxRowPerFile

	if err := sw.newOutput(); err != nil {
		return nil, 0, err
	}

	var total int64
	for _, rec := range records {
		if sw.Cfg.MaxRowPerFile > 0 && sw.RowCounter > sw.Cfg.MaxRowPerFile {
			if err := sw.newOutput(); err != nil {
				return nil, 0, err
			}
		}

		row := make([]interface{}, len(rec))
		for i, v := range rec {
			row[i] = cellValue(v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, int(sw.RowCounter)+1)
		if err := sw.StreamWriter.SetRow(cell, row); err != nil {
			return nil, 0, fmt.Errorf("ошибка записи строки: %v", err)
		}
		sw.RowCounter++
		total++
	}

	if err := sw.finish(); err != nil {
		return nil, 0, err
	}
	return sw.OutputFiles, total, nil
}

// newOutput закрывает текущий файл и начинает следующий с заголовком.
// RowCounter считает строки листа вместе с заголовком.
func (sw *StreamWriter) newOutput() error {
	if sw.OutFile != nil {
		if err := sw.finish(); err != nil {
			return err
		}
		sw.PartCounter++
	}

	sw.OutFile = excelize.NewFile()
	if err := sw.OutFile.SetSheetName(sw.OutFile.GetSheetName(0), sw.Cfg.SheetName); err != nil {
		return fmt.Errorf("ошибка создания листа: %v", err)
	}

	var err error
	sw.HeaderStyle, err = sw.OutFile.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("ошибка создания стиля: %v", err)
	}

	sw.StreamWriter, err = sw.OutFile.NewStreamWriter(sw.Cfg.SheetName)
	if err != nil {
		return fmt.Errorf("ошибка создания StreamWriter: %v", err)
	}

	// Ширина колонок задаётся до первой строки
	for i := range sw.Headers {
		if err := sw.StreamWriter.SetColWidth(i+1, i+1, sw.colWidth(i)); err != nil {
			return fmt.Errorf("ошибка установки ширины колонки: %v", err)
		}
	}

	headerRow := make([]interface{}, len(sw.Headers))
	for i, h := range sw.Headers {
		headerRow[i] = excelize.Cell{Value: h, StyleID: sw.HeaderStyle}
	}
	if err := sw.StreamWriter.SetRow("A1", headerRow); err != nil {
		return fmt.Errorf("ошибка записи заголовков: %v", err)
	}
	sw.RowCounter = 1
	return nil
}

func (sw *StreamWriter) finish() error {
	if err := sw.StreamWriter.Flush(); err != nil {
		return fmt.Errorf("ошибка финального flush: %v", err)
	}
	fileName := sw.Cfg.OutputPath
	if sw.Split {
		fileName = fmt.Sprintf("%s%d.xlsx", partPrefix(sw.Cfg.OutputPath), sw.PartCounter)
	}
	if dir := filepath.Dir(fileName); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ошибка создания папки %s: %v", dir, err)
		}
	}
	if err := sw.OutFile.SaveAs(fileName); err != nil {
		return fmt.Errorf("ошибка сохранения файла: %v", err)
	}
	_ = sw.OutFile.Close()
	sw.OutFile = nil
	sw.OutputFiles = append(sw.OutputFiles, fileName)
	return nil
}

// cellValue пишет числа числами, остальное строками.
func cellValue(v string) interface{} {
	if v == "" {
		return nil
	}
	if looksNumeric(v) {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return v
}

// looksNumeric отсекает значения, которые ParseFloat принял бы, но
// которые в отчёте являются текстом: "Inf", "1e5", "007".
func looksNumeric(v string) bool {
	s := strings.TrimPrefix(v, "-")
	if s == "" || strings.Trim(s, "0123456789.") != "" {
		return false
	}
	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		return false
	}
	return true
}

func partPrefix(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_part"
}

func removeExistingPartFiles(cfg *config.Config) error {
	pattern := partPrefix(cfg.OutputPath) + "*.xlsx"
	files, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("ошибка поиска файлов по шаблону: %v", err)
	}

	for _, file := range files {
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("ошибка удаления файла %s: %v", file, err)
		}
	}
	return nil
}
