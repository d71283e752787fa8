// layout.go: address decomposition for set-associative indexing
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

// AddressLayout derives the tag/line/way bit widths for a cache shape, per
// spec.md §3: addr = [tag | line], line_bits = ceil(log2(lines)), tag_bits =
// addr_width - line_bits, way_bits = ceil(log2(ways)).
type AddressLayout struct {
	AddrWidth int
	Lines     int
	Ways      int

	lineBits int
	wayBits  int
	lineMask uint64
}

// NewAddressLayout validates and derives a layout, or returns a
// construction-time error per spec.md §7.
func NewAddressLayout(addrWidth, lines, ways int) (AddressLayout, error) {
	if ways <= 0 {
		return AddressLayout{}, errWaysNotPositive
	}
	if lines <= 0 {
		return AddressLayout{}, errLinesNotPositive
	}

	lineBits := ceilLog2(lines)
	if addrWidth < lineBits {
		return AddressLayout{}, errAddrWidthTooSmall
	}

	var lineMask uint64
	if lineBits > 0 {
		lineMask = (uint64(1) << uint(lineBits)) - 1
	}

	return AddressLayout{
		AddrWidth: addrWidth,
		Lines:     lines,
		Ways:      ways,
		lineBits:  lineBits,
		wayBits:   ceilLog2(ways),
		lineMask:  lineMask,
	}, nil
}

// LineBits returns ceil(log2(lines)).
func (l AddressLayout) LineBits() int { return l.lineBits }

// TagBits returns addr_width - line_bits.
func (l AddressLayout) TagBits() int { return l.AddrWidth - l.lineBits }

// WayBits returns ceil(log2(ways)).
func (l AddressLayout) WayBits() int { return l.wayBits }

// Decompose splits an address into its tag and line index, per spec.md §3.
func (l AddressLayout) Decompose(addr uint64) (tag uint64, line int) {
	line = int(addr & l.lineMask)
	tag = addr >> uint(l.lineBits)
	return tag, line
}

// Compose reconstructs an address from a tag and line index, used to report
// the address of an evicted or invalidated entry (spec.md §4.5.4).
func (l AddressLayout) Compose(tag uint64, line int) uint64 {
	return (tag << uint(l.lineBits)) | (uint64(line) & l.lineMask)
}

// ceilLog2 returns the number of bits needed to index n distinct values:
// ceil(log2(n)), with ceilLog2(1) == 0.
func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	bits := 0
	v := n - 1
	for v > 0 {
		bits++
		v >>= 1
	}
	return bits
}
