// Package logging points the standard logger and gin's writers at stdout,
// optionally teed into a size-rotated file.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/axellelanca/shortlinks/internal/config"
)

// Setup configures the log outputs and returns the writer in use together
// with a closer for the rotated file (a no-op when no file is configured).
func Setup(cfg *config.Config) (io.Writer, func() error, error) {
	if cfg.Log.File == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return nil, nil, err
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   true,
	}

	w := io.MultiWriter(os.Stdout, rotated)
	log.SetOutput(w)
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = w

	return w, rotated.Close, nil
}
