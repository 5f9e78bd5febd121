// Package logging provides a tiny abstraction over slog so the memory tool
// backends can emit structured diagnostics without forcing a logger choice
// on callers. Implement Logger with your own adapter, wrap an existing
// *slog.Logger via NewSlogAdapter, or leave the default NoOpLogger in place
// to disable logging entirely.
package logging
