package logging

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// DebugEnabled returns true if debug mode is enabled via TM_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TM_DEBUG") != ""
}

// debugLogger returns the package logger, lowered to debug level if needed.
func debugLogger() *log.Logger {
	l := Logger()
	if l.GetLevel() > log.DebugLevel {
		l = l.With()
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		debugLogger().Debug(fmt.Sprintf(format, args...))
	}
}

// Debugln logs its arguments joined by spaces only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		msg := fmt.Sprintln(args...)
		debugLogger().Debug(msg[:len(msg)-1])
	}
}
