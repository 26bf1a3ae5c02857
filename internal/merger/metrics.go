package merger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ryabkov82/furnace-merger/internal/grid"
	"github.com/ryabkov82/furnace-merger/internal/report"
)

const meterName = "github.com/ryabkov82/furnace-merger/internal/merger"

type metrics struct {
	files       metric.Int64Counter
	rows        metric.Int64Counter
	blankRemove metric.Int64Counter
}

// newMetrics регистрирует счётчики. Ошибки регистрации пишутся в лог
// один раз и не мешают объединению: такой счётчик остаётся nil.
func newMetrics(mp metric.MeterProvider, logger *slog.Logger) *metrics {
	meter := mp.Meter(meterName)
	m := &metrics{}

	var errs []error
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return nil
		}
		return c
	}
	m.files = counter("furnace_merger.files", "Обработанные файлы отчётов")
	m.rows = counter("furnace_merger.rows", "Строки в объединённой таблице")
	m.blankRemove = counter("furnace_merger.artifact_rows_removed", "Удалённые строки пустых блоков шаблона")

	if err := errors.Join(errs...); err != nil {
		logger.Warn("метрики не зарегистрированы", "error", err)
	}
	return m
}

func (m *metrics) fileMerged() {
	if m.files != nil {
		m.files.Add(context.Background(), 1, metric.WithAttributes(attribute.String("result", "merged")))
	}
}

func (m *metrics) fileSkipped(err error) {
	if m.files == nil {
		return
	}
	m.files.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("result", "skipped"),
		attribute.String("reason", skipReason(err)),
	))
}

func (m *metrics) rowsWritten(n int64) {
	if m.rows != nil {
		m.rows.Add(context.Background(), n)
	}
}

func (m *metrics) blankRowsRemoved(n int64) {
	if m.blankRemove != nil {
		m.blankRemove.Add(context.Background(), n)
	}
}

func skipReason(err error) string {
	var loadErr *grid.LoadError
	switch {
	case errors.As(err, &loadErr):
		return "load"
	case errors.Is(err, report.ErrHeaderNotFound):
		return "no_header"
	default:
		return "other"
	}
}
