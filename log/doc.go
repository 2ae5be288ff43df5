// Package log provides leveled logging on [log/slog] with a configurable
// default logger.
//
// Loggers are configured at creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
//	logger.Log(ctx, log.LevelInfo, "profile updated", slog.String("profile", "dev"))
//
// The package-level functions write through a default logger that sends
// text to standard error, keeping standard output free for command
// results. [Config] reconfigures it, typically once from command-line
// flags.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Messages below the configured level are
// discarded.
//
// # Output
//
// [FormatText] writes logfmt-style lines and [FormatJSON] writes one JSON
// object per line. With [WithPretty] enabled, both are styled for
// terminals using lipgloss, and the JSON format becomes an indented
// multi-line block. Styling is dropped automatically when the output is
// not a terminal.
//
// Timestamps use a named layout from the [time] package (such as
// "RFC3339" or "Kitchen") or a custom layout given to [WithTimeLayout].
// The layout "none" omits them.
package log
