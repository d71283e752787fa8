// convert.go: bridges setcache.Cache state to the wire Header/Line types
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package snapshot

import "github.com/agilira/setcache"

// Codec encodes and decodes a cache's data payload to bytes, since the core
// Cache[D] type is generic and this package's wire format is not.
type Codec[D any] struct {
	Encode func(D) []byte
	Decode func([]byte) (D, error)
}

// FromCache captures a cache's current state as Header/Line values ready
// for Encode/Save.
func FromCache[D any](c *setcache.Cache[D], codec Codec[D]) (Header, []Line) {
	cfg := c.Config()
	exported := c.ExportLines()

	lines := make([]Line, len(exported))
	for i, ls := range exported {
		ways := make([]WayEntry, len(ls.Entries))
		for w, e := range ls.Entries {
			var data []byte
			if e.Valid {
				data = codec.Encode(e.Data)
			}
			ways[w] = WayEntry{Valid: e.Valid, Tag: e.Tag, Data: data}
		}
		lines[i] = Line{PolicyState: ls.PolicyState, Ways: ways}
	}

	h := Header{
		PolicyKind: uint16(cfg.Policy),
		AddrWidth:  uint32(cfg.AddrWidth),
		Lines:      uint32(cfg.Lines),
		Ways:       uint32(cfg.Ways),
	}
	return h, lines
}

// ToCache restores a cache from decoded Header/Line values, failing if the
// snapshot's shape does not match c.
func ToCache[D any](c *setcache.Cache[D], h Header, lines []Line, codec Codec[D]) error {
	cfg := c.Config()
	if err := ValidateShape(h, cfg.Lines, cfg.Ways); err != nil {
		return err
	}

	lineStates := make([]setcache.LineState[D], len(lines))
	for i, l := range lines {
		entries := make([]setcache.Entry[D], len(l.Ways))
		for w, we := range l.Ways {
			var d D
			if we.Valid {
				decoded, err := codec.Decode(we.Data)
				if err != nil {
					return err
				}
				d = decoded
			}
			entries[w] = setcache.Entry[D]{Valid: we.Valid, Tag: we.Tag, Data: d}
		}
		lineStates[i] = setcache.LineState[D]{Entries: entries, PolicyState: l.PolicyState}
	}
	return c.ImportLines(lineStates)
}
