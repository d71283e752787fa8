// logging_test.go: tests for the Logger interface and zerolog adapter
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Info("cache constructed", "lines", 64, "ways", 4)

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("log line is not valid JSON: %v (%s)", err, buf.String())
	}
	if decoded["message"] != "cache constructed" {
		t.Fatalf("message = %v, want 'cache constructed'", decoded["message"])
	}
	if decoded["lines"] != float64(64) || decoded["ways"] != float64(4) {
		t.Fatalf("fields not propagated: %+v", decoded)
	}
}

func TestZerologLogger_OddFieldCountDropsTrailingKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Warn("partial fields", "onlykey")

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if _, present := decoded["onlykey"]; present {
		t.Fatalf("a dangling key with no value must not be emitted as a field")
	}
}

func TestNewCache_NilLoggerIsSilent(t *testing.T) {
	c, err := NewCache[uint64](CacheConfig{Lines: 2, Ways: 2, FillPorts: 1})
	if err != nil {
		t.Fatal(err)
	}
	// Must not panic with a nil logger.
	c.Tick([]FillRequest[uint64]{{En: true, Valid: true, Addr: 1, Data: 1}}, nil)
}
