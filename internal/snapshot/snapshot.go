// snapshot.go: binary persistence for a set-associative cache's state
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

// Package snapshot encodes and decodes a cache's per-line state to a
// versioned binary file, committed atomically, so cmd/cachesim can save and
// restore a simulation session. The wire format is grounded on the
// teacher's own binary cache format: a fixed magic/version header followed
// by fixed-width records, written with atomic.WriteFile rather than a
// direct os.WriteFile so a crash mid-write never leaves a corrupt file in
// the original's place.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

const (
	magic      = "SCSN"
	formatVers = 1
	headerSize = 32
)

// Errors returned while decoding a snapshot file.
var (
	ErrInvalidMagic    = errors.New("snapshot: invalid magic header")
	ErrVersionMismatch = errors.New("snapshot: format version mismatch")
	ErrFileTooSmall    = errors.New("snapshot: file smaller than header size")
	ErrShapeMismatch   = errors.New("snapshot: lines/ways do not match target cache shape")
	ErrTruncated       = errors.New("snapshot: file truncated mid-record")
)

// Header describes the cache shape a snapshot was taken from. It is returned
// by Decode/Load together with the fully decoded lines; cmd/cachesim inspect
// prints it alongside a count of valid entries.
type Header struct {
	PolicyKind uint16
	AddrWidth  uint32
	Lines      uint32
	Ways       uint32
}

// Line is one line's encoded state: the replacement policy's opaque
// registered-state bytes, and one (valid, tag, data) record per way.
type Line struct {
	PolicyState []byte
	Ways        []WayEntry
}

// WayEntry is one way's stored entry.
type WayEntry struct {
	Valid bool
	Tag   uint64
	Data  []byte
}

// Encode serializes header and lines into the versioned binary format.
func Encode(h Header, lines []Line) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	var hdr [headerSize]byte
	copy(hdr[0:4], magic)
	binary.LittleEndian.PutUint16(hdr[4:6], formatVers)
	binary.LittleEndian.PutUint16(hdr[6:8], h.PolicyKind)
	binary.LittleEndian.PutUint32(hdr[8:12], h.AddrWidth)
	binary.LittleEndian.PutUint32(hdr[12:16], h.Lines)
	binary.LittleEndian.PutUint32(hdr[16:20], h.Ways)
	buf.Write(hdr[:])

	var scratch [8]byte
	for _, line := range lines {
		binary.LittleEndian.PutUint32(scratch[:4], uint32(len(line.PolicyState)))
		buf.Write(scratch[:4])
		buf.Write(line.PolicyState)

		for _, w := range line.Ways {
			if w.Valid {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
			binary.LittleEndian.PutUint64(scratch[:8], w.Tag)
			buf.Write(scratch[:8])
			binary.LittleEndian.PutUint32(scratch[:4], uint32(len(w.Data)))
			buf.Write(scratch[:4])
			buf.Write(w.Data)
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

// Decode parses the versioned binary format produced by Encode.
func Decode(data []byte) (Header, []Line, error) {
	if len(data) < headerSize {
		return Header{}, nil, ErrFileTooSmall
	}
	if string(data[0:4]) != magic {
		return Header{}, nil, ErrInvalidMagic
	}
	if binary.LittleEndian.Uint16(data[4:6]) != formatVers {
		return Header{}, nil, ErrVersionMismatch
	}

	h := Header{
		PolicyKind: binary.LittleEndian.Uint16(data[6:8]),
		AddrWidth:  binary.LittleEndian.Uint32(data[8:12]),
		Lines:      binary.LittleEndian.Uint32(data[12:16]),
		Ways:       binary.LittleEndian.Uint32(data[16:20]),
	}

	pos := headerSize
	lines := make([]Line, 0, h.Lines)
	for l := uint32(0); l < h.Lines; l++ {
		if pos+4 > len(data) {
			return Header{}, nil, ErrTruncated
		}
		stateLen := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
		pos += 4
		if pos+stateLen > len(data) {
			return Header{}, nil, ErrTruncated
		}
		state := append([]byte(nil), data[pos:pos+stateLen]...)
		pos += stateLen

		ways := make([]WayEntry, 0, h.Ways)
		for w := uint32(0); w < h.Ways; w++ {
			if pos+1+8+4 > len(data) {
				return Header{}, nil, ErrTruncated
			}
			valid := data[pos] == 1
			pos++
			tag := binary.LittleEndian.Uint64(data[pos : pos+8])
			pos += 8
			dataLen := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
			pos += 4
			if pos+dataLen > len(data) {
				return Header{}, nil, ErrTruncated
			}
			entryData := append([]byte(nil), data[pos:pos+dataLen]...)
			pos += dataLen

			ways = append(ways, WayEntry{Valid: valid, Tag: tag, Data: entryData})
		}
		lines = append(lines, Line{PolicyState: state, Ways: ways})
	}

	return h, lines, nil
}

// Save encodes header and lines and commits them to path atomically: a
// reader never observes a partially-written file, matching the original
// cache format's own save path.
func Save(path string, h Header, lines []Line) error {
	encoded := Encode(h, lines)
	if err := atomic.WriteFile(path, bytes.NewReader(encoded)); err != nil {
		return fmt.Errorf("snapshot: writing %s: %w", path, err)
	}
	return nil
}

// Load reads and decodes a snapshot file written by Save.
func Load(path string) (Header, []Line, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-supplied, same trust level as the CLI invoking it
	if err != nil {
		return Header{}, nil, fmt.Errorf("snapshot: reading %s: %w", path, err)
	}
	return Decode(data)
}

// ValidateShape checks a decoded Header against the lines/ways of the cache
// it is about to be restored into.
func ValidateShape(h Header, lines, ways int) error {
	if int(h.Lines) != lines || int(h.Ways) != ways {
		return ErrShapeMismatch
	}
	return nil
}
