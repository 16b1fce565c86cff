// Package logger builds log/slog loggers and attribute helpers used by the
// form handler.
//
//	log := logger.New(
//		logger.WithConfig(config.Global()),
//		logger.WithAttr(logger.Component("signup-form")),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.Debug("field validated", logger.Field("email"), logger.RuleType("email"))
//
// Discard returns a logger that drops everything; handlers use it unless a
// logger is configured.
package logger
