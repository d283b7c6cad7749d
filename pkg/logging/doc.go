// Package logging builds the structured loggers used across libraryd.
//
// It wraps log/slog so every component logs the same way:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//	logger.Info("server started", "address", ":4280")
//
// Components accept a *slog.Logger in their constructor or options. A nil
// logger is replaced with Nop(). Use Component to tag a logger with the name
// of the subsystem emitting the records.
package logging
