// Package lzstring implements the dictionary-coded decompression scheme
// used by the obfuscator family this module reverses: a stream of UTF-16
// code units, each offset by 32, packing an LZW-style dictionary code
// stream 15 bits at a time.
//
// This is not a general-purpose compression format. The bit discipline
// (single-bit reads MSB-first out of a 15-bit sliding word, multi-bit
// reads accumulated LSB-first) and the dictionary growth schedule are
// both specific to this one encoder, so the codec is hand-written rather
// than delegated to a general DEFLATE/BZip2/Brotli-style library.
package lzstring

// bitReader walks the 15-bit data words packed into the UTF-16 stream,
// one bit at a time from the MSB down, reloading from the next code
// unit whenever the current word is exhausted.
type bitReader struct {
	src      []uint16
	bits     uint32 // current 15-bit word, data bits only
	position uint32 // mask of the next bit to test within bits
	cursor   int    // index of the next code unit to load into bits
	starved  bool   // true once the stream ran out mid-read
}

const dataBits = 15
const resetPosition = 1 << (dataBits - 1) // 16384

func newBitReader(s []uint16) (*bitReader, bool) {
	if len(s) == 0 {
		return nil, false
	}
	return &bitReader{
		src:      s,
		bits:     uint32(s[0]) - 32,
		position: resetPosition,
		cursor:   1,
	}, true
}

func (r *bitReader) readBit() uint32 {
	var bit uint32
	if r.bits&r.position != 0 {
		bit = 1
	}
	r.position >>= 1
	if r.position == 0 {
		r.position = resetPosition
		if r.cursor >= len(r.src) {
			r.starved = true
			return bit
		}
		r.bits = uint32(r.src[r.cursor]) - 32
		r.cursor++
	}
	return bit
}

// readBits reads an unsigned n-bit value, accumulated LSB-first: the
// first bit read contributes weight 2^0, the next 2^1, and so on.
func (r *bitReader) readBits(n uint) uint32 {
	var result uint32
	for power := uint(0); power < n; power++ {
		if r.starved {
			return 0
		}
		result |= r.readBit() << power
	}
	return result
}

// Decompress reverses the compressed-string encoding described in the
// package comment. It never errors: malformed or truncated input yields
// the empty string, matching the reference decoder's fail-closed
// behavior.
func Decompress(s string) string {
	if s == "" {
		return ""
	}
	r, ok := newBitReader(utf16Units(s))
	if !ok {
		return ""
	}

	// Bootstrap: a plain 2-bit code selects the width of the very first
	// literal. This step is exempt from the dictionary growth and
	// enlargeIn bookkeeping that governs the main loop.
	switch r.readBits(2) {
	case 0:
		return bootstrap(r, 8)
	case 1:
		return bootstrap(r, 16)
	default:
		return ""
	}
}

func bootstrap(r *bitReader, width uint) string {
	lit := r.readBits(width)
	if r.starved {
		return ""
	}
	entry := []rune{rune(lit)}

	const seedDictSize = 4 // indices 0,1,2 are sentinels; 3 is this literal
	dictionary := make([][]rune, seedDictSize, 64)
	dictionary[3] = entry

	dictSize := seedDictSize
	enlargeIn := 4
	numBits := uint(3)

	w := entry
	result := append([]rune{}, entry...)

	for {
		code := int(r.readBits(numBits))
		if code == 2 {
			// A complete terminator ends the stream even when its last
			// bit was the last bit of the input.
			return string(result)
		}
		if r.starved {
			return ""
		}

		if code == 0 || code == 1 {
			litWidth := uint(8)
			if code == 1 {
				litWidth = 16
			}
			lit := r.readBits(litWidth)
			if r.starved {
				return ""
			}
			// A literal gets a dictionary entry of its own and is then
			// looked up through it like any other code.
			dictionary = append(dictionary, []rune{rune(lit)})
			dictSize++
			code = dictSize - 1
			enlargeIn--
			if enlargeIn == 0 {
				enlargeIn = 1 << numBits
				numBits++
			}
		}

		var entry []rune
		switch {
		case code < dictSize:
			entry = dictionary[code]
		case code == dictSize:
			entry = append(append([]rune{}, w...), w[0])
		default:
			return ""
		}

		result = append(result, entry...)

		dictionary = append(dictionary, append(append([]rune{}, w...), entry[0]))
		dictSize++
		w = entry

		enlargeIn--
		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
}

func utf16Units(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r <= 0xFFFF {
			units = append(units, uint16(r))
			continue
		}
		r -= 0x10000
		units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
	}
	return units
}
