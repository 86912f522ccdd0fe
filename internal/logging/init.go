// Package logging wires logrus loggers with rotated file output.
//
// Two loggers are maintained: the standard logrus logger for system
// messages (text format) and a JSON access logger for the per-request
// line. Both double-write to stdout and a lumberjack-rotated file under
// <dir>/<type>/<type>.log.
package logging

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Log types, used as directory and file names.
const (
	LogTypeSystem = "system"
	LogTypeAccess = "access"
)

var initOnce sync.Once

var accessLogger *logrus.Logger

// Options configures logger initialization.
type Options struct {
	Level string // logrus level name, unknown values fall back to info
	Dir   string // base directory for rotated files
}

// InitLogger configures the system logger and creates the access logger.
// The access logger is created once; later calls only reconfigure the
// system logger.
func InitLogger(opts Options) error {
	if err := initSystemLogger(opts); err != nil {
		return err
	}

	var initErr error
	initOnce.Do(func() {
		accessLogger, initErr = newJSONLogger(LogTypeAccess, opts)
	})
	return initErr
}

// GetSystemLogger returns the text-formatted system logger.
func GetSystemLogger() *logrus.Logger {
	return logrus.StandardLogger()
}

// GetAccessLogger returns the JSON access logger.
// Falls back to the system logger before InitLogger runs.
func GetAccessLogger() *logrus.Logger {
	if accessLogger == nil {
		return GetSystemLogger()
	}
	return accessLogger
}

func initSystemLogger(opts Options) error {
	writer, err := getWriter(LogTypeSystem, opts.Dir)
	if err != nil {
		return err
	}
	logrus.SetOutput(writer)

	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})

	logrus.SetLevel(parseLevel(opts.Level))
	return nil
}

func newJSONLogger(logType string, opts Options) (*logrus.Logger, error) {
	logger := logrus.New()
	writer, err := getWriter(logType, opts.Dir)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(writer)

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.DateTime,
		PrettyPrint:     false,
	})

	logger.SetLevel(parseLevel(opts.Level))
	return logger, nil
}

func parseLevel(name string) logrus.Level {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
