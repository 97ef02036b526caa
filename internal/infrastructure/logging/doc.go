// Package logging provides structured logging for the controller
// daemon, built on the standard library's log/slog.
//
// The package wraps slog.Logger with application defaults: a service
// identifier on every entry, a version field, configurable JSON or text
// output, and level filtering driven by the logging section of the
// configuration file.
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("learn complete", "name", "tv_power", "type", "NEC")
//
// Components receive derived loggers via With so every entry they emit
// is tagged with its origin:
//
//	engineLog := logger.With("component", "engine")
//
// Before configuration is available, Default returns a JSON logger on
// stderr suitable for reporting startup failures.
package logging
