package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ryabkov82/furnace-merger/internal/config"
	"github.com/ryabkov82/furnace-merger/internal/grid"
	"github.com/ryabkov82/furnace-merger/internal/merger"
)

type Skipped struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type Output struct {
	Success      bool      `json:"success"`
	OutputFiles  []string  `json:"output_files,omitempty"`
	SkippedFiles []Skipped `json:"skipped_files,omitempty"`
	Error        string    `json:"error,omitempty"`
	Duration     string    `json:"duration"`
	RowCount     int64     `json:"row_count,omitempty"`
}

func main() {
	out := run(os.Args[1:], os.Stderr)
	emitJSON(os.Stdout, out)
	if !out.Success {
		os.Exit(1)
	}
}

func run(args []string, logOut io.Writer) Output {
	start := time.Now()
	fail := func(format string, err error, skipped []Skipped) Output {
		return Output{
			Success:      false,
			SkippedFiles: skipped,
			Error:        fmt.Sprintf(format, err),
			Duration:     time.Since(start).String(),
		}
	}

	cfg, err := config.ParseArgs(args)
	if err != nil {
		return fail("Ошибка конфигурации: %v", err, nil)
	}
	logger := cfg.NewLogger(logOut)

	inputs, err := merger.CollectInputs(cfg)
	if err != nil {
		return fail("Ошибка поиска файлов: %v", err, nil)
	}

	engine := merger.New(
		merger.WithLoader(grid.NewFileLoader(cfg.XLSCharset)),
		merger.WithLogger(logger),
	)
	merged, failures, err := engine.Run(inputs)

	skipped := make([]Skipped, 0, len(failures))
	for _, f := range failures {
		skipped = append(skipped, Skipped{Path: f.Path, Error: f.Err.Error()})
	}
	if err != nil {
		return fail("Ошибка объединения: %v", err, skipped)
	}

	outputFiles, rowCount, err := merger.NewStreamWriter(cfg).WriteTable(merged)
	if err != nil {
		return fail("Ошибка сохранения: %v", err, skipped)
	}

	return Output{
		Success:      true,
		OutputFiles:  outputFiles,
		SkippedFiles: skipped,
		RowCount:     rowCount,
		Duration:     time.Since(start).String(),
	}
}

func emitJSON(w io.Writer, out Output) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Ошибка вывода JSON: %v", err)
	}
}
