package logger

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Event types.
const (
	TypeBuiltin     = "builtin"
	TypeLaunch      = "launch"
	TypeLaunchError = "launch_error"
	TypeExhausted   = "exhausted"
)

// Entry keys common to every event.
const (
	KeyTimestamp = "timestamp_micros"
	KeySessionID = "session_id"
	KeyType      = "type"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *structpb.Struct) error

// Logger captures the commands run in a shell session.
type Logger struct {
	Record LogRecorder

	// Now returns the current time, it defaults to time.Now.
	Now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *structpb.Struct) error {
			entry, err := protojson.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that drops every event.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*structpb.Struct) error { return nil },
	}
}

func (l *Logger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Logger) record(sessionID, eventType string, fields map[string]interface{}) error {
	values := map[string]interface{}{
		KeyTimestamp: float64(l.now().UnixNano() / int64(time.Microsecond)),
		KeySessionID: sessionID,
		KeyType:      eventType,
	}
	for k, v := range fields {
		values[k] = v
	}

	le, err := structpb.NewStruct(values)
	if err != nil {
		return err
	}
	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every entry.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Builtin records a builtin invocation.
func (l *SessionLogger) Builtin(argv []string) error {
	return l.record(l.sessionID, TypeBuiltin, map[string]interface{}{
		"command": toList(argv),
	})
}

// Launch records a child process that ran to completion.
func (l *SessionLogger) Launch(argv []string, pid int, exited bool, exitCode int, signal string) error {
	return l.record(l.sessionID, TypeLaunch, map[string]interface{}{
		"command":   toList(argv),
		"pid":       float64(pid),
		"exited":    exited,
		"exit_code": float64(exitCode),
		"signal":    signal,
	})
}

// LaunchError records a command that couldn't be started.
func (l *SessionLogger) LaunchError(argv []string, err error) error {
	return l.record(l.sessionID, TypeLaunchError, map[string]interface{}{
		"command": toList(argv),
		"error":   err.Error(),
	})
}

// Exhausted records a line or token list that outgrew its limit.
func (l *SessionLogger) Exhausted(stage string) error {
	return l.record(l.sessionID, TypeExhausted, map[string]interface{}{
		"stage": stage,
	})
}

func toList(argv []string) []interface{} {
	out := make([]interface{}, len(argv))
	for i, arg := range argv {
		out[i] = arg
	}
	return out
}
