package logger

import (
	"go.uber.org/zap"
)

// Log is the process-wide structured logger.
var Log *zap.Logger

// SLog is the sugared variant for printf-style call sites.
var SLog *zap.SugaredLogger

// Init builds the logger for the given environment. Development gets the
// human-readable console encoder, everything else the production JSON encoder.
func Init(environment string) error {
	var err error
	if environment == "development" {
		Log, err = zap.NewDevelopment()
	} else {
		Log, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	SLog = Log.Sugar()
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
