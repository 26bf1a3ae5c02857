// Package merger объединяет сменные журналы печей в одну таблицу.
package merger

import (
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/ryabkov82/furnace-merger/internal/grid"
	"github.com/ryabkov82/furnace-merger/internal/report"
	"github.com/ryabkov82/furnace-merger/internal/table"
)

// BlankBlockSize задаёт, сколько строк занимает артефакт шаблона, начиная
// с полностью пустой строки.
const BlankBlockSize = 4

// ErrNoValidData означает, что ни один файл пакета не дал таблицы.
var ErrNoValidData = errors.New("в загруженных файлах нет данных для объединения")

// ReportMerger описывает то, что нужно внешнему слою от движка.
type ReportMerger interface {
	MergeReports(paths []string) (*table.Table, error)
}

var _ ReportMerger = (*Engine)(nil)

// Failure описывает файл, пропущенный при объединении.
type Failure struct {
	Path string
	Err  error
}

// Engine хранит только настройки, каждый вызов MergeReports работает
// со своим состоянием.
type Engine struct {
	loader  grid.Loader
	schema  report.MetadataSchema
	logger  *slog.Logger
	meter   metric.MeterProvider
	metrics *metrics
}

type Option func(*Engine)

func WithLoader(l grid.Loader) Option { return func(e *Engine) { e.loader = l } }

func WithSchema(s report.MetadataSchema) Option { return func(e *Engine) { e.schema = s } }

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

func WithMeterProvider(mp metric.MeterProvider) Option { return func(e *Engine) { e.meter = mp } }

func New(opts ...Option) *Engine {
	e := &Engine{
		loader: grid.NewFileLoader(""),
		schema: report.DefaultSchema(),
		logger: slog.Default(),
		meter:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.metrics = newMetrics(e.meter, e.logger)
	return e
}

// Partition разбирает файлы по порядку и делит их на удачные таблицы
// и пропущенные файлы.
func (e *Engine) Partition(paths []string) ([]*table.Table, []Failure) {
	var (
		tables   []*table.Table
		failures []Failure
	)
	for _, path := range paths {
		t, err := e.processFile(path)
		if err != nil {
			failures = append(failures, Failure{Path: path, Err: err})
			e.metrics.fileSkipped(err)
			continue
		}
		tables = append(tables, t)
		e.metrics.fileMerged()
	}
	return tables, failures
}

func (e *Engine) processFile(path string) (*table.Table, error) {
	g, err := e.loader.Load(path)
	if err != nil {
		return nil, err
	}

	t, md, err := report.Build(g, e.schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	e.logger.Debug("отчёт разобран",
		slog.String("path", path),
		slog.Int("rows", t.Len()),
		slog.String("date", md.Date),
		slog.String("shift", md.Shift),
		slog.String("furnace", md.FurnaceLabel()),
	)
	return t, nil
}

// MergeReports объединяет отчёты. Испорченные файлы и файлы без
// заголовка пропускаются; ошибка возвращается, только если не подошёл
// ни один файл.
func (e *Engine) MergeReports(paths []string) (*table.Table, error) {
	merged, _, err := e.Run(paths)
	return merged, err
}

// Run делает то же, что MergeReports, и дополнительно возвращает
// пропущенные файлы.
func (e *Engine) Run(paths []string) (*table.Table, []Failure, error) {
	tables, failures := e.Partition(paths)
	for _, f := range failures {
		e.logger.Warn("файл пропущен", slog.String("path", f.Path), slog.Any("error", f.Err))
	}
	if len(tables) == 0 {
		return nil, failures, ErrNoValidData
	}

	merged, removed := Merge(tables...)
	e.metrics.rowsWritten(int64(merged.Len()))
	e.metrics.blankRowsRemoved(int64(removed))

	e.logger.Info("отчёты объединены",
		slog.Int("files", len(tables)),
		slog.Int("skipped", len(failures)),
		slog.Int("rows", merged.Len()),
		slog.Int("artifact_rows_removed", removed),
	)
	return merged, failures, nil
}

// Merge склеивает таблицы, убирает служебные и пустые колонки, блоки
// пустых строк шаблона и ставит Date, Shift, Furnace первыми. Второе
// значение равно числу удалённых строк.
func Merge(tables ...*table.Table) (*table.Table, int) {
	merged := table.Concat(tables...)

	merged.DropColumns(func(name string, values []string) bool {
		if table.IsPlaceholder(name) {
			return true
		}
		return !isMetadataColumn(name) && table.AllEmpty(values)
	})

	removed := merged.DropBlankBlocks(BlankBlockSize)
	merged.MoveToFront(report.ColDate, report.ColShift, report.ColFurnace)
	return merged, removed
}

func isMetadataColumn(name string) bool {
	switch name {
	case report.ColDate, report.ColShift, report.ColFurnace:
		return true
	}
	return false
}
