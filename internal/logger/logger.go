package logger

import (
	"log"
	"os"
)

// Logger is an alias used across the process for dependency injection.
type Logger = log.Logger

// New returns a standard logger with a consistent component prefix.
func New(component string) *Logger {
	return log.New(os.Stdout, "["+component+"] ", log.LstdFlags|log.Lmicroseconds)
}
