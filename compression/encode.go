package compression

import "encoding/binary"

// Encode compresses in with the codec and returns the encoded bytes and
// the number of significant bits. Bits are packed into 64-bit words
// stored in the codec's native byte order; the first two bits of the
// stream are the endian sentinel (01 on big-endian producers, 00 on
// little-endian ones). Bytes without a code are emitted as the escape
// code followed by an 8-bit literal, or fail with ErrUnknownSymbol when
// the codec has no escape.
//
// If at any point the Huffman stream would exceed 8*len(in) bits, the
// output is abandoned and replaced by the byte 0xFF followed by the raw
// input, for 8*(len(in)+1) bits total. The sentinel guarantees the first
// byte of a Huffman stream is never 0xFF, so the two forms cannot be
// confused.
func (c *Codec) Encode(in []byte) ([]byte, int, error) {
	if c == dnaCodec {
		out := make([]byte, (len(in)+3)/4)
		return out, compressDNA(in, out), nil
	}
	if c.state < stateCodedBuilt {
		return nil, 0, ErrNoCodec
	}

	ilen := len(in)
	ibits := ilen << 3
	esc := c.escCode
	out := make([]byte, ilen+8)

	tbits := 2
	rem := 62
	pos := 0
	var ocode uint64
	if c.isBig {
		ocode = 0x4000000000000000
	}

	// Append the low n bits of cv to the accumulator, flushing one full
	// native-order word whenever the 64 bits fill up.
	emit := func(n int, cv uint64) {
		rem -= n
		if rem <= 0 {
			ocode |= cv >> uint(-rem)
			binary.NativeEndian.PutUint64(out[pos:], ocode)
			pos += 8
			if rem < 0 {
				rem += 64
				ocode = cv << uint(rem)
			} else {
				rem = 64
				ocode = 0
			}
		} else {
			ocode |= cv << uint(rem)
		}
	}

	k := 0
	for ; k < ilen; k++ {
		x := in[k]
		n := int(c.codeLens[x])
		if n == 0 {
			if esc < 0 {
				return nil, 0, ErrUnknownSymbol
			}
			n = int(c.codeLens[esc])
			tbits += 8 + n
			if tbits > ibits {
				break
			}
			emit(n, uint64(c.codeBits[esc]))
			emit(8, uint64(x))
		} else {
			tbits += n
			if tbits > ibits {
				break
			}
			emit(n, uint64(c.codeBits[x]))
		}
	}

	if k < ilen {
		// Huffman would inflate: raw fallback.
		out[0] = 0xff
		copy(out[1:], in)
		return out[:ilen+1], ibits + 8, nil
	}

	// Byte-align the final partial word, most significant byte first.
	nb := (71 - rem) >> 3
	for i := 0; i < nb; i++ {
		out[pos] = byte(ocode >> uint(56-8*i))
		pos++
	}

	// On little-endian the first word is post-shifted over the sentinel.
	// This also forces the low two bits of the stream's first byte to
	// zero, which keeps it distinct from the 0xFF fallback marker.
	if tbits >= 64 && !c.isBig {
		w := binary.NativeEndian.Uint64(out[:8])
		binary.NativeEndian.PutUint64(out[:8], w<<2)
	}

	return out[:(tbits+7)>>3], tbits, nil
}
