// logging.go: optional structured logging for cache lifecycle events
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

import "github.com/rs/zerolog"

// Logger is the optional debug/monitoring logging interface a CacheConfig
// may supply. A nil Logger is valid and silences all cache logging.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// zerologLogger adapts zerolog.Logger to the Logger interface. fields are
// interpreted as alternating key/value pairs, matching the variadic
// convention the rest of the interface already commits to.
type zerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog.Logger for use as a cache
// Logger.
func NewZerologLogger(log zerolog.Logger) Logger {
	return &zerologLogger{log: log}
}

func (z *zerologLogger) Debug(msg string, fields ...interface{}) {
	z.event(z.log.Debug(), msg, fields)
}

func (z *zerologLogger) Info(msg string, fields ...interface{}) {
	z.event(z.log.Info(), msg, fields)
}

func (z *zerologLogger) Warn(msg string, fields ...interface{}) {
	z.event(z.log.Warn(), msg, fields)
}

func (z *zerologLogger) Error(msg string, fields ...interface{}) {
	z.event(z.log.Error(), msg, fields)
}

func (z *zerologLogger) event(e *zerolog.Event, msg string, fields []interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, fields[i+1])
	}
	e.Msg(msg)
}
