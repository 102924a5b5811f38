// Package logger builds the *slog.Logger used across toastkit and provides
// attribute helpers that keep key names consistent between packages.
//
// A logger is created with New and tuned with Option functions:
//
//	log := logger.New(
//	    logger.WithDevelopment("toastdemo"),
//	    logger.WithAttr(logger.Component("overlay")),
//	)
//	log.LogAttrs(ctx, slog.LevelDebug, "entry shown",
//	    logger.EntryID(id),
//	    logger.Slot("notification"),
//	)
//
// The defaults are JSON output at INFO level on stdout. WithDevelopment
// switches to text output at DEBUG level.
//
// Helpers such as Error return an empty slog.Attr when given a nil value, so
// they can be passed unconditionally:
//
//	log.Info("delivery finished", logger.Error(err))
package logger
