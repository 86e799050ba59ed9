// Package tlog provides the logging infrastructure for taprun.
//
// Use the package-level functions for convenience:
//
//	tlog.Info("running %s", testset.File)
//	tlog.Error("child setup failed: %v", err)
//	tlog.Success("%d passed, 0 failed", passed)
//
// Or derive a scoped logger with a prefix or fields:
//
//	logger := tlog.Default().WithField("testset", name)
//	logger.Info("starting")
//
// Supported levels: Debug, Info, Warn, Error, Silent. Set the level with
// SetLevel; ParseLevel maps a level name (such as the config file's
// log_level) to a Level.
package tlog
