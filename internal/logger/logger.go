package logger

import (
	"os"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger

// Init builds the process-wide logger. Development encoding when
// GIN_MODE is not release, production JSON otherwise.
func Init() {
	var base *zap.Logger
	var err error
	if os.Getenv("GIN_MODE") == "release" {
		base, err = zap.NewProduction()
	} else {
		base, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	log = base.Sugar()
}

// L returns the sugared logger, initializing a default one if Init was
// never called (tests).
func L() *zap.SugaredLogger {
	if log == nil {
		Init()
	}
	return log
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
