// Package xlog provides the standardized, structured logging helper shared
// by every package in this module. It generalizes the per-package logger
// pattern used throughout the codebase to carry a package/function field
// pair on every entry, plus caller information once WithCaller is called.
package xlog

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger attaches a fixed set of fields (package, function, optional
// correlation id) to every logrus entry it emits.
type Logger struct {
	pkg      string
	function string
	fields   logrus.Fields
}

// New creates a Logger scoped to pkg/function.
func New(pkg, function string) *Logger {
	return &Logger{
		pkg:      pkg,
		function: function,
		fields: logrus.Fields{
			"package":  pkg,
			"function": function,
		},
	}
}

// WithCaller adds the caller's file:line to the logger's fields.
func (l *Logger) WithCaller() *Logger {
	if pc, file, line, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			name := fn.Name()
			if i := strings.LastIndex(name, "/"); i >= 0 {
				name = name[i+1:]
			}
			l.fields["caller"] = fmt.Sprintf("%s:%d", file, line)
			l.fields["caller_func"] = name
		}
	}
	return l
}

// WithField returns a copy of the logger with an additional field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	next := l.clone()
	next.fields[key] = value
	return next
}

// WithFields returns a copy of the logger with additional fields merged in.
func (l *Logger) WithFields(fields logrus.Fields) *Logger {
	next := l.clone()
	for k, v := range fields {
		next.fields[k] = v
	}
	return next
}

// WithError attaches error details without ever including the error's
// decrypted or partially-decrypted payload; callers must pass only
// classification fields (code, operation), never raw plaintext.
func (l *Logger) WithError(err error, code, operation string) *Logger {
	return l.WithFields(logrus.Fields{
		"error":     err.Error(),
		"code":      code,
		"operation": operation,
	})
}

func (l *Logger) clone() *Logger {
	fields := make(logrus.Fields, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}
	return &Logger{pkg: l.pkg, function: l.function, fields: fields}
}

func (l *Logger) Debug(msg string) { logrus.WithFields(l.fields).Debug(msg) }
func (l *Logger) Info(msg string)  { logrus.WithFields(l.fields).Info(msg) }
func (l *Logger) Warn(msg string)  { logrus.WithFields(l.fields).Warn(msg) }
func (l *Logger) Error(msg string) { logrus.WithFields(l.fields).Error(msg) }

// BytesPreview renders a bounded, non-sensitive preview of a byte slice for
// debug logging: length plus the first few bytes in hex. Never used on
// decrypted plaintext or key material.
func BytesPreview(data []byte, name string) logrus.Fields {
	preview := "nil"
	if len(data) > 0 {
		n := 8
		if len(data) < n {
			n = len(data)
		}
		preview = fmt.Sprintf("%x", data[:n])
		if len(data) > n {
			preview += "..."
		}
	}
	return logrus.Fields{
		name + "_preview": preview,
		name + "_size":    len(data),
	}
}
