package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// getWriter returns a writer that double-writes to stdout and a rotated
// file under <baseDir>/<logType>/<logType>.log.
func getWriter(logType, baseDir string) (io.Writer, error) {
	fileWriter, err := getFileWriter(logType, baseDir)
	if err != nil {
		return nil, err
	}
	return io.MultiWriter(os.Stdout, fileWriter), nil
}

func getFileWriter(logType, baseDir string) (io.Writer, error) {
	// One directory per log type
	path := filepath.Join(baseDir, logType)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.MkdirAll(path, 0750); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	filename := logType + ".log"

	// lumberjack handles rotation and archival
	writer := &lumberjack.Logger{
		Filename: filepath.Join(path, filename),
		// megabytes
		MaxSize:    128,
		MaxBackups: 10,
		// days
		MaxAge:    14,
		LocalTime: true,
	}
	return writer, nil
}
