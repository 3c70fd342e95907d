// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("updated", slog.String("file", path))
//
// The zero [Logger] discards everything, so a component can hold an optional
// Logger field and log through it unconditionally.
//
// # Configuration
//
// Loggers are configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with some options overridden and
// [Logger.With] one that adds attributes to every message.
//
// # Levels
//
// In addition to the four [log/slog] levels the package defines [LevelTrace],
// below [LevelDebug], for per-token and per-node detail.
//
// # Output Formats
//
// [FormatText] (default) writes one line per record; unless disabled with
// [WithPretty] it is colorized when the output is a terminal. [FormatJSON]
// writes one JSON object per record.
//
// # Package Logger
//
// The package-level functions ([Info], [DebugContext], ...) write to a default
// logger on [os.Stderr] that [Config] reconfigures. Context-unaware variants
// use [DefaultContextProvider].
package log
