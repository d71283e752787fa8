// snapshot.go: save/restore helpers wiring internal/snapshot to the CLI's
// concrete uint64 data type
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"encoding/binary"

	"github.com/agilira/setcache"
	"github.com/agilira/setcache/internal/snapshot"
)

// wordCodec encodes the CLI's uint64 data word as 8 little-endian bytes.
var wordCodec = snapshot.Codec[uint64]{
	Encode: func(v uint64) []byte {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, v)
		return b
	},
	Decode: func(b []byte) (uint64, error) {
		if len(b) < 8 {
			return 0, snapshot.ErrTruncated
		}
		return binary.LittleEndian.Uint64(b), nil
	},
}

func saveSnapshot(path string, cache *setcache.Cache[uint64]) error {
	h, lines := snapshot.FromCache(cache, wordCodec)
	return snapshot.Save(path, h, lines)
}

func loadSnapshotInto(path string, cache *setcache.Cache[uint64]) error {
	h, lines, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	return snapshot.ToCache(cache, h, lines, wordCodec)
}
