// Package log provides the structured logger shared by the MyPL tools.
//
// Loggers are immutable: WithField, WithName, WithRequestID and friends return
// configured copies, so a component can derive its own logger once and use it
// without further locking.
//
//	logger := log.GetDefault().WithField("component", "checker")
//	logger.Debug("checking program", log.Fields{"statements": 12})
//
//	timer := logger.StartTimer("check")
//	defer timer.Stop()
//
// Four output formats are available: FormatJSON, FormatText, FormatConsole
// and FormatLogfmt.
package log
