package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"studyplan/cmd/sp/root"
)

func main() {
	logger := newLogger()
	zap.ReplaceGlobals(logger)
	defer func() {
		_ = logger.Sync()
	}()

	root.Execute()
}

// newLogger builds a console logger on stderr. Quiet by default so log lines
// do not mix with command output; STUDYPLAN_DEBUG turns everything on.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if os.Getenv("STUDYPLAN_DEBUG") != "" {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
