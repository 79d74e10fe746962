// Package log provides slog loggers that keep report content out of logs.
//
// Briefing reports carry free text about people: suspect names, charges,
// officer notes. Debug logs are often pasted into bug reports, so the
// SecureHandler masks attributes that carry such text, along with values
// that look like credentials.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("briefing rendered",
//	    "suspects", "Micah Bell",   // logged as ***REDACTED***
//	    "fields", 6,
//	)
package log
