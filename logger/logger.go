package logger

import (
	"go.uber.org/zap"
)

// Log is the application logger. It is a no-op logger until Init is called,
// so packages can log safely from tests.
var Log = zap.NewNop()

func Init(env string) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		Log.Error("Failed to build logger, keeping previous one", zap.Error(err))
		return
	}
	Log = l
}

func Sync() {
	_ = Log.Sync()
}
