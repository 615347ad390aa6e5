package logger

import (
	"io"
	"log"
	"os"
)

// Loggers start out discarding so packages can log before Init runs
var (
	Info    = log.New(io.Discard, "", 0)
	Warn    = log.New(io.Discard, "", 0)
	Debug   = log.New(io.Discard, "", 0)
	Verbose = log.New(io.Discard, "", 0)
	Error   = log.New(io.Discard, "", 0)
	Always  = log.New(io.Discard, "", 0) // Always logs to file regardless of log level

	// Current log level for filtering
	currentLogLevel string
	logFile         *os.File
)

func Init() error {
	return InitWithLevel("info")
}

func InitWithLevel(logLevel string) error {
	return InitWithConfig(logLevel, "paritycalc.log")
}

func InitWithConfig(logLevel, logFilePath string) error {
	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	Close()
	logFile = f
	InitWithWriter(logLevel, f, io.MultiWriter(os.Stderr, f))
	return nil
}

// InitWithWriter points every level at w; errors go to errWriter
func InitWithWriter(logLevel string, w, errWriter io.Writer) {
	currentLogLevel = logLevel

	Info = log.New(getWriter("info", w, io.Discard), "INFO: ", log.Ldate|log.Ltime)
	Warn = log.New(getWriter("warn", w, io.Discard), "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(getWriter("debug", w, io.Discard), "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Verbose = log.New(getWriter("verbose", w, io.Discard), "VERBOSE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(errWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Always = log.New(w, "ALWAYS: ", log.Ldate|log.Ltime)
}

// InitDiscard silences all output
func InitDiscard() {
	InitWithWriter("error", io.Discard, io.Discard)
}

// Close releases the log file opened by InitWithConfig
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// getWriter returns the appropriate writer based on log level
func getWriter(level string, activeWriter, disabledWriter io.Writer) io.Writer {
	if shouldLog(level) {
		return activeWriter
	}
	return disabledWriter
}

// shouldLog determines if a log level should be active
func shouldLog(level string) bool {
	levels := map[string]int{
		"error":   0,
		"warn":    1,
		"info":    2,
		"debug":   3,
		"verbose": 4,
	}

	currentLevel, exists := levels[currentLogLevel]
	if !exists {
		currentLevel = 2 // default to info
	}

	requiredLevel, exists := levels[level]
	if !exists {
		return false
	}

	return currentLevel >= requiredLevel
}
