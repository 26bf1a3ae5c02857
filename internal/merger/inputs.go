package merger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ryabkov82/furnace-merger/internal/config"
)

// CollectInputs возвращает файлы из аргументов, затем книги из папки
// cfg.InputDir в лексикографическом порядке.
func CollectInputs(cfg *config.Config) ([]string, error) {
	inputFiles := append([]string{}, cfg.Inputs...)
	if cfg.InputDir == "" {
		return inputFiles, nil
	}

	var found []string
	err := filepath.Walk(cfg.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isWorkbook(path) || isLockFile(path) {
			return nil
		}
		if isOutput(path, cfg.OutputPath) {
			return nil
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при обходе папки: %w", err)
	}

	sort.Strings(found)
	return append(inputFiles, found...), nil
}

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// isLockFile отсекает файлы блокировки Excel вида ~$report.xlsx.
func isLockFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "~$")
}

// isOutput узнаёт результирующий файл и его части от прошлых запусков.
func isOutput(path, outputPath string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	out, err := filepath.Abs(outputPath)
	if err != nil {
		return false
	}
	return abs == out || strings.HasPrefix(abs, partPrefix(out))
}
