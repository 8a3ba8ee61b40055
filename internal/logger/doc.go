// Package logger provides structured logging for docsync using zap.
// A logger travels in context.Context so that the sync steps, the git
// runner and the diagnostics all narrate the same run with the same fields.
package logger
