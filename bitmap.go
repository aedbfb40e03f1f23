// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

import (
	"errors"
	"sort"
)

// Type-bitmap codec for NSEC/NSEC3/CSYNC (spec §4.2, RFC 4034 §4.1.2):
// a sequence of (window:u8, length:u8, bits[length]) triples, windows
// strictly increasing, length in [1,32], MSB-first bit order within
// each octet.

var (
	errBitmapWindowOrder = errors.New("dns: bitmap windows must strictly increase")
	errBitmapLength      = errors.New("dns: bitmap window length out of range")
	errBitmapTruncated   = errors.New("dns: truncated type bitmap")
)

// ToBitmap encodes a set of RR types into the RFC 4034 window-block
// bitmap form: it deduplicates, groups by window, and trims trailing
// zero octets per window.
func ToBitmap(types []Type) []byte {
	byWindow := make(map[byte][]byte)
	for _, t := range dedupTypes(types) {
		win := byte(t >> 8)
		idx := byte(t) / 8
		bit := byte(7 - t%8)
		bm := byWindow[win]
		if int(idx)+1 > len(bm) {
			grown := make([]byte, idx+1)
			copy(grown, bm)
			bm = grown
		}
		bm[idx] |= 1 << bit
		byWindow[win] = bm
	}

	windows := make([]byte, 0, len(byWindow))
	for w := range byWindow {
		windows = append(windows, w)
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i] < windows[j] })

	var out []byte
	for _, w := range windows {
		bm := trimTrailingZero(byWindow[w])
		if len(bm) == 0 {
			continue
		}
		out = append(out, w, byte(len(bm)))
		out = append(out, bm...)
	}
	return out
}

func trimTrailingZero(bm []byte) []byte {
	i := len(bm)
	for i > 0 && bm[i-1] == 0 {
		i--
	}
	return bm[:i]
}

func dedupTypes(types []Type) []Type {
	seen := make(map[Type]bool, len(types))
	out := make([]Type, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// FromBitmap decodes the window-block form back into a sorted,
// deduplicated list of RR types.
func FromBitmap(b []byte) ([]Type, error) {
	var (
		types    []Type
		lastWin  = -1
		haveLast bool
	)
	for len(b) > 0 {
		if len(b) < 2 {
			return nil, errBitmapTruncated
		}
		win, length := int(b[0]), int(b[1])
		if haveLast && win <= lastWin {
			return nil, errBitmapWindowOrder
		}
		if length < 1 || length > 32 {
			return nil, errBitmapLength
		}
		if len(b) < 2+length {
			return nil, errBitmapTruncated
		}
		bm := b[2 : 2+length]
		for i, octet := range bm {
			for bit := 0; bit < 8; bit++ {
				if octet&(1<<(7-bit)) == 0 {
					continue
				}
				types = append(types, Type(win*256+i*8+bit))
			}
		}
		lastWin, haveLast = win, true
		b = b[2+length:]
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types, nil
}

// HasType reports whether the window-block bitmap b asserts the
// presence of type t, without fully decoding the bitmap.
func HasType(b []byte, t Type) bool {
	win := byte(t >> 8)
	idx := int(byte(t) / 8)
	bit := byte(7 - t%8)

	for len(b) > 0 {
		if len(b) < 2 {
			return false
		}
		w, length := b[0], int(b[1])
		if len(b) < 2+length {
			return false
		}
		if w == win {
			if idx >= length {
				return false
			}
			return b[2+idx]&(1<<bit) != 0
		}
		b = b[2+length:]
	}
	return false
}
