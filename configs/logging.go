package config

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging sends the standard logger to stdout and, when LOG_FILE is
// set, to a size-rotated file as well. The returned closer flushes the file.
func SetupLogging() io.Closer {
	path := Config("LOG_FILE")
	if path == "" {
		log.SetOutput(os.Stdout)
		return io.NopCloser(nil)
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	log.Printf("✅ Logging to %s", path)
	return rotator
}
