package compression

import (
	"encoding/binary"
	"math/bits"
)

// Decode expands inBits bits of in and returns the decoded bytes. The
// input buffer is never modified: cross-endian word flipping and the
// little-endian sentinel shift are applied on load.
//
// A first byte of 0xFF marks the raw fallback form, in which case the
// payload bytes are copied out unchanged. Otherwise bit 6 of the first
// byte identifies the producer's endianness; when it differs from this
// machine's, each complete 64-bit word of the stream is byte-reversed as
// it is loaded. A zero-length stream decodes to zero bytes.
func (c *Codec) Decode(in []byte, inBits int) ([]byte, error) {
	if c == dnaCodec {
		out := make([]byte, inBits>>1)
		uncompressDNA(in, inBits>>1, out)
		return out, nil
	}
	if c.state < stateCodedBuilt {
		return nil, ErrNoCodec
	}
	if inBits <= 0 || len(in) == 0 {
		return nil, nil
	}

	if in[0] == 0xff {
		olen := (inBits >> 3) - 1
		out := make([]byte, olen)
		copy(out, in[1:])
		return out, nil
	}

	inBig := in[0]&0x40 != 0
	flip := inBig != c.isBig
	shiftFirst := !inBig && inBits >= 64

	// word returns the w'th complete 64-bit word of the stream with the
	// producer-side transforms applied: the little-endian sentinel shift
	// on word 0, then byte reversal when producer and decoder disagree.
	word := func(w int) uint64 {
		v := binary.NativeEndian.Uint64(in[8*w:])
		if w == 0 && shiftFirst {
			v >>= 2
		}
		if flip {
			v = bits.ReverseBytes64(v)
		}
		return v
	}

	ilen := inBits
	pIdx := 0
	var icode uint64
	if ilen < 64 {
		// Short stream: the tail bytes were written high byte first.
		for k := 0; k < ilen; k += 8 {
			icode |= uint64(in[k>>3]) << uint(56-k)
		}
	} else {
		icode = word(0)
		pIdx = 1
	}

	icode <<= 2 // drop the endian sentinel
	ilen -= 2
	rem := 62
	if rem > ilen {
		rem = ilen
	}
	var ncode uint64
	nem := 0

	// get consumes n bits from icode and refills it from the staging
	// word ncode, which in turn loads whole words while at least 64 bits
	// remain and assembles the byte-aligned tail high-justified after
	// that. The tail bytes follow the last complete word and are in
	// stream order, so they are read straight from the input.
	get := func(n int) {
		ilen -= n
		icode <<= uint(n)
		rem -= n
		for rem < 16 {
			z := 64 - rem
			icode |= ncode >> uint(rem)
			if nem > z {
				nem -= z
				ncode <<= uint(z)
				rem = 64
				break
			}
			rem += nem
			if rem >= ilen {
				break
			} else if ilen-rem < 64 {
				nem = ilen - rem
				ncode = 0
				q := 8 * pIdx
				for k := 0; k < nem; k += 8 {
					ncode |= uint64(in[q]) << uint(56-k)
					q++
				}
			} else {
				ncode = word(pIdx)
				pIdx++
				nem = 64
			}
		}
	}

	out := make([]byte, 0, ilen)
	for ilen > 0 {
		s := c.lookup[icode>>48]
		get(int(c.codeLens[s]))
		b := s
		if int(s) == c.escCode {
			b = uint8(icode >> 56)
			get(8)
		}
		out = append(out, b)
	}
	return out, nil
}
