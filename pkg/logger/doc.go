// Package logger builds *slog.Logger values from functional options and
// provides attribute helpers with stable key names.
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatJSON),
//	    logger.WithLevel(logger.ParseLevel("debug")),
//	)
//	log.Debug("rule failed", logger.Field("email"), logger.Rule("regexp"))
//
// The default logger writes text at info level to stderr.
package logger
