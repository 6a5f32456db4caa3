package config

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogWriter is the writer used for application and database logs.
var LogWriter io.Writer = os.Stdout

var logFilePath = filepath.Join("logs", "portal-api.log")

// LogFilePath returns the path to the backend log file.
func LogFilePath() string {
	return logFilePath
}

// InitLogging tees the standard logger and slog into a rotated log file and stdout.
func InitLogging(s *Settings) (io.Closer, *slog.Logger) {
	if s != nil && strings.TrimSpace(s.LogFile) != "" {
		logFilePath = s.LogFile
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create logs directory: %v", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}

	LogWriter = io.MultiWriter(os.Stdout, rotator)
	log.SetOutput(LogWriter)

	level := slog.LevelInfo
	if s != nil && !s.IsProduction() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(LogWriter, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return rotator, logger
}
