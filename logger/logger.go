// Package logger provides structured logging for tinydb: leveled output
// (TRACE, DEBUG, INFO, WARN, ERROR) with caller file/function/line
// attached automatically, plus subsystem-scoped TRACE filtering so a
// caller can turn on the wire codec's trace output without also seeing
// the catalog's.
//
// Output format:
//   YYYY/MM/DD HH:MM:SS.ssssss [PID:GID] [LEVEL] function.file:line: message
package logger

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// LogLevel is the severity of a single log message; only messages at or
// above the current minimum level are written.
type LogLevel int32

const (
	TRACE LogLevel = iota // per-subsystem, off by default: see EnableTrace
	DEBUG                 // cache hits/misses, adapter resolution, codec sizes
	INFO                  // schema registration, level changes
	WARN                  // recovered/handled conditions
	ERROR                 // propagated failures
)

var levelNames = map[LogLevel]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var (
	currentLevel atomic.Int32

	// traceSubsystems gates TraceIf independently of currentLevel: TRACE
	// must be the active level AND the named subsystem must be enabled.
	// This module's subsystems: "bson" (codec dispose),
	// "mapping" (adapter resolution), "catalog" (cache hit/miss, profile
	// builds), "emit" (DDL/entity-source rendering).
	traceSubsystems   = make(map[string]bool)
	traceSubsystemsMu sync.RWMutex

	processID = os.Getpid()
	stdlog    = log.New(os.Stdout, "", 0)
)

func init() {
	currentLevel.Store(int32(INFO))
}

// SetLogLevel sets the minimum level by name ("trace".."error", case
// insensitive).
func SetLogLevel(level string) error {
	l, ok := map[string]LogLevel{"TRACE": TRACE, "DEBUG": DEBUG, "INFO": INFO, "WARN": WARN, "ERROR": ERROR}[strings.ToUpper(level)]
	if !ok {
		return fmt.Errorf("invalid log level: %s", level)
	}
	currentLevel.Store(int32(l))
	Info("log level changed to %s", levelNames[l])
	return nil
}

// GetLogLevel returns the current minimum level's name.
func GetLogLevel() string {
	return levelNames[LogLevel(currentLevel.Load())]
}

// EnableTrace turns on TRACE-level output for the named subsystems.
func EnableTrace(subsystems ...string) {
	traceSubsystemsMu.Lock()
	defer traceSubsystemsMu.Unlock()
	for _, s := range subsystems {
		traceSubsystems[s] = true
	}
}

// DisableTrace turns off TRACE-level output for the named subsystems.
func DisableTrace(subsystems ...string) {
	traceSubsystemsMu.Lock()
	defer traceSubsystemsMu.Unlock()
	for _, s := range subsystems {
		delete(traceSubsystems, s)
	}
}

// ClearTrace disables every subsystem's TRACE output.
func ClearTrace() {
	traceSubsystemsMu.Lock()
	defer traceSubsystemsMu.Unlock()
	traceSubsystems = make(map[string]bool)
}

// GetTraceSubsystems returns the currently enabled subsystem names.
func GetTraceSubsystems() []string {
	traceSubsystemsMu.RLock()
	defer traceSubsystemsMu.RUnlock()
	out := make([]string, 0, len(traceSubsystems))
	for s := range traceSubsystems {
		out = append(out, s)
	}
	return out
}

func isTraceEnabled(subsystem string) bool {
	traceSubsystemsMu.RLock()
	defer traceSubsystemsMu.RUnlock()
	return traceSubsystems[subsystem]
}

// callSite resolves the function name and short filename of the frame skip
// levels above formatMessage (callSite's own caller), for inclusion in the
// formatted line; the logging entry points pass the skip that lands on
// their own caller.
func callSite(skip int) (funcName, file string, line int) {
	pc, f, l, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown", "unknown", 0
	}
	file = f
	if idx := strings.LastIndex(file, "/"); idx != -1 {
		file = file[idx+1:]
	}
	file = strings.TrimSuffix(file, ".go")

	funcName = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		full := fn.Name()
		if idx := strings.LastIndex(full, "."); idx != -1 {
			funcName = full[idx+1:]
		}
	}
	return funcName, file, l
}

func formatMessage(level LogLevel, skip int, format string, args ...interface{}) string {
	funcName, file, line := callSite(skip)
	timestamp := time.Now().Format("2006/01/02 15:04:05.000000")
	return fmt.Sprintf("%s [%d:%d] [%s] %s.%s:%d: %s",
		timestamp, processID, goroutineID(), levelNames[level], funcName, file, line, fmt.Sprintf(format, args...))
}

// goroutineID extracts the calling goroutine's numeric id from its stack
// trace header, the only place the runtime exposes it.
func goroutineID() int {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id int
	fmt.Sscanf(strings.Fields(string(buf[:n]))[1], "%d", &id)
	return id
}

func logMessage(level LogLevel, skip int, format string, args ...interface{}) {
	if level < LogLevel(currentLevel.Load()) {
		return
	}
	stdlog.Println(formatMessage(level, skip, format, args...))
}

// TraceIf logs a trace message only when both TRACE is the active level
// and subsystem has been enabled via EnableTrace.
func TraceIf(subsystem string, format string, args ...interface{}) {
	if LogLevel(currentLevel.Load()) > TRACE || !isTraceEnabled(subsystem) {
		return
	}
	logMessage(TRACE, 3, "[%s] %s", subsystem, fmt.Sprintf(format, args...))
}

func Trace(format string, args ...interface{}) { logMessage(TRACE, 3, format, args...) }
func Debug(format string, args ...interface{}) { logMessage(DEBUG, 3, format, args...) }
func Info(format string, args ...interface{})  { logMessage(INFO, 3, format, args...) }
func Warn(format string, args ...interface{})  { logMessage(WARN, 3, format, args...) }
func Error(format string, args ...interface{}) { logMessage(ERROR, 3, format, args...) }

// Fatal logs at ERROR and exits the process.
func Fatal(format string, args ...interface{}) {
	stdlog.Println(formatMessage(ERROR, 2, format, args...))
	os.Exit(1)
}

// Panic logs at ERROR and panics.
func Panic(format string, args ...interface{}) {
	stdlog.Println(formatMessage(ERROR, 2, format, args...))
	panic(fmt.Sprintf(format, args...))
}

// Configure applies TINYDB_LOG_LEVEL and TINYDB_TRACE_SUBSYSTEMS (a
// comma-separated list) from the environment, for callers that don't go
// through config.Load.
func Configure() {
	if level := os.Getenv("TINYDB_LOG_LEVEL"); level != "" {
		SetLogLevel(level)
	}
	if trace := os.Getenv("TINYDB_TRACE_SUBSYSTEMS"); trace != "" {
		subsystems := strings.Split(trace, ",")
		for i, s := range subsystems {
			subsystems[i] = strings.TrimSpace(s)
		}
		EnableTrace(subsystems...)
	}
}
