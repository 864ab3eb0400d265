package internal

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the JSON logger. When a log file is configured, records
// go to both the console writer and a size-rotated file; the returned func
// closes it.
func newLogger(cfg ApplicationConfig, console io.Writer) (*slog.Logger, func()) {
	if console == nil {
		console = os.Stdout
	}
	out := console
	closeFn := func() {}
	if cfg.LogFile.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile.Path,
			MaxSize:    cfg.LogFile.MaxSizeMB,
			MaxBackups: cfg.LogFile.MaxBackups,
			MaxAge:     cfg.LogFile.MaxAgeDays,
			Compress:   cfg.LogFile.Compress,
		}
		out = io.MultiWriter(console, rotator)
		closeFn = func() { _ = rotator.Close() }
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	return logger, closeFn
}
