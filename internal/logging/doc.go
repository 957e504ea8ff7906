// Package logging provides structured logging with per-module log levels.
//
// Records fan out to up to three places: stdout (text or JSON) when it is
// attached, the systemd journal when journald is reachable, and an in-memory
// ring buffer that backs GET /api/logs and the "config --diagnostics" output.
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"config":  "debug",
//			"devices": "warn",
//		},
//	})
//
// and obtain module loggers anywhere:
//
//	logger := logging.GetLogger("devices")
//	logger.Info("Enumerated devices", "count", len(list))
//
// Loggers obtained before Initialize start at info and are re-levelled in
// place when Initialize runs.
//
// Journal entries are tagged with SyslogIdentifier:
//
//	journalctl -t audiobridge MODULE=config
package logging
