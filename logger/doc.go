// Package logger provides structured logging for cortex, backed by zerolog.
//
// A Logger is an explicit dependency: construct one in main and hand it to
// the components that log. The package-level functions delegate to a global
// instance for call sites (middleware, panics) that have no injection path.
package logger
