// Package logger provides lightweight, per-subsystem leveled logging for
// the emulator core. It exists so that CPU/PPU/mapper tracing can be
// switched on for debugging a specific ROM without paying a cost when
// disabled: each subsystem call (LogCPU/LogPPU/LogMapper/LogBus) is a level
// check plus a disabled bool check, and LogInfo/LogError/LogDebug a level
// check, before any formatting happens.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"
)

// LogLevel represents different logging levels.
type LogLevel int

const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// Logger handles all logging for the emulator.
type Logger struct {
	level         LogLevel
	writer        io.Writer
	cpuEnabled    bool
	ppuEnabled    bool
	mapperEnabled bool
	busEnabled    bool
}

var globalLogger = &Logger{level: LogLevelOff, writer: os.Stdout}

// Initialize sets up the global logger. Passing an empty filename logs
// to stdout.
func Initialize(level LogLevel, filename string) error {
	var writer io.Writer = os.Stdout

	if filename != "" {
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		writer = file
	}

	globalLogger = &Logger{
		level:      level,
		writer:     writer,
		cpuEnabled: true,
	}

	return nil
}

// SetCPULogging enables or disables CPU instruction logging.
func SetCPULogging(enabled bool) { globalLogger.cpuEnabled = enabled }

// SetPPULogging enables or disables PPU logging.
func SetPPULogging(enabled bool) { globalLogger.ppuEnabled = enabled }

// SetMapperLogging enables or disables mapper logging.
func SetMapperLogging(enabled bool) { globalLogger.mapperEnabled = enabled }

// SetBusLogging enables or disables bus/DMA logging.
func SetBusLogging(enabled bool) { globalLogger.busEnabled = enabled }

func (l *Logger) logf(tag string, format string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "[%s] %s: %s\n", timestamp, tag, message)
}

// LogCPU logs CPU instruction execution.
func LogCPU(format string, args ...interface{}) {
	if globalLogger.cpuEnabled && globalLogger.level >= LogLevelDebug {
		globalLogger.logf("CPU", format, args...)
	}
}

// LogPPU logs PPU operations.
func LogPPU(format string, args ...interface{}) {
	if globalLogger.ppuEnabled && globalLogger.level >= LogLevelTrace {
		globalLogger.logf("PPU", format, args...)
	}
}

// LogMapper logs mapper operations.
func LogMapper(format string, args ...interface{}) {
	if globalLogger.mapperEnabled && globalLogger.level >= LogLevelDebug {
		globalLogger.logf("MAPPER", format, args...)
	}
}

// LogBus logs bus and DMA operations.
func LogBus(format string, args ...interface{}) {
	if globalLogger.busEnabled && globalLogger.level >= LogLevelDebug {
		globalLogger.logf("BUS", format, args...)
	}
}

// LogInfo logs general information.
func LogInfo(format string, args ...interface{}) {
	if globalLogger.level >= LogLevelInfo {
		globalLogger.logf("INFO", format, args...)
	}
}

// LogError logs errors.
func LogError(format string, args ...interface{}) {
	if globalLogger.level >= LogLevelError {
		globalLogger.logf("ERROR", format, args...)
	}
}

// LogDebug logs debug information.
func LogDebug(format string, args ...interface{}) {
	if globalLogger.level >= LogLevelDebug {
		globalLogger.logf("DEBUG", format, args...)
	}
}

// LevelFromString converts a string to a LogLevel, defaulting to Info.
func LevelFromString(level string) LogLevel {
	switch level {
	case "off":
		return LogLevelOff
	case "error":
		return LogLevelError
	case "warn":
		return LogLevelWarn
	case "info":
		return LogLevelInfo
	case "debug":
		return LogLevelDebug
	case "trace":
		return LogLevelTrace
	default:
		return LogLevelInfo
	}
}

// Close closes the logger's underlying file, if any.
func Close() {
	if file, ok := globalLogger.writer.(*os.File); ok && file != os.Stdout && file != os.Stderr {
		file.Close()
	}
}
