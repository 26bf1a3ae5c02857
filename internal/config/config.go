package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix задаёт префикс переменных окружения с настройками по умолчанию.
const EnvPrefix = "FURNACE"

type Config struct {
	InputDir      string   // папка с журналами, обходится рекурсивно
	Inputs        []string // файлы, переданные аргументами
	OutputPath    string
	SheetName     string
	SampleRows    int   // сколько строк анализировать для ширины колонок
	MaxRowPerFile int64 // максимальное количество строк в объединенном файле
	XLSCharset    string
	LogLevel      string
	LogFormat     string
}

// defaults читаются из окружения до разбора флагов, флаги их перекрывают.
type defaults struct {
	Dir        string `envconfig:"DIR"`
	Out        string `envconfig:"OUT" default:"./Merged_Furnaces.xlsx"`
	SheetName  string `envconfig:"SHEET_NAME" default:"merged"`
	Sample     int    `envconfig:"SAMPLE" default:"1000"`
	MaxRow     int64  `envconfig:"MAX_ROW" default:"0"`
	XLSCharset string `envconfig:"XLS_CHARSET" default:"utf-8"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"text"`
}

func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:])
}

func ParseArgs(args []string) (*Config, error) {
	var env defaults
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("ошибка чтения переменных окружения: %w", err)
	}

	cfg := &Config{}

	fs := flag.NewFlagSet("furnace-merger", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.InputDir, "dir", env.Dir, "папка с журналами печей (.xls, .xlsx)")
	fs.StringVar(&cfg.OutputPath, "out", env.Out, "результирующий файл")
	fs.StringVar(&cfg.SheetName, "sheet", env.SheetName, "имя листа в результирующем файле")
	fs.IntVar(&cfg.SampleRows, "sample", env.Sample, "количество анализируемых строк")
	fs.Int64Var(&cfg.MaxRowPerFile, "max-row", env.MaxRow, "максимальное количество строк в объединенном файле, 0 без ограничения")
	fs.StringVar(&cfg.XLSCharset, "xls-charset", env.XLSCharset, "кодировка строк в .xls файлах")
	fs.StringVar(&cfg.LogLevel, "log-level", env.LogLevel, "уровень логирования: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", env.LogFormat, "формат логов: text или json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Inputs = fs.Args()

	if cfg.InputDir == "" && len(cfg.Inputs) == 0 {
		return nil, fmt.Errorf("необходимо указать папку через -dir или файлы аргументами")
	}
	if cfg.SheetName == "" {
		return nil, fmt.Errorf("имя листа не может быть пустым")
	}
	if cfg.MaxRowPerFile < 0 {
		return nil, fmt.Errorf("-max-row не может быть отрицательным: %d", cfg.MaxRowPerFile)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("неизвестный формат логов: %q", cfg.LogFormat)
	}

	// Нормализация путей
	if cfg.InputDir != "" {
		cfg.InputDir = filepath.Clean(cfg.InputDir)
	}
	for i, p := range cfg.Inputs {
		cfg.Inputs[i] = filepath.Clean(p)
	}
	cfg.OutputPath = filepath.Clean(cfg.OutputPath)

	return cfg, nil
}

// NewLogger строит логгер по настройкам.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("неизвестный уровень логирования: %q", s)
	}
	return level, nil
}
