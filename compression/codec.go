// Package compression implements the length-limited Huffman codec used by
// VGP formats to compress short per-record byte fields, plus a fixed 2-bit
// codec for DNA sequences.
//
// A Codec starts empty, accumulates byte frequencies with Add, and is
// frozen with Build, which computes a canonical prefix code whose longest
// code is HuffCutoff bits. Built codecs encode and decode opaque byte
// buffers and serialize to an endian-portable blob. Encoded streams carry
// a two-bit endian sentinel and fall back to raw bytes (prefixed with
// 0xFF) whenever Huffman coding would inflate the input, so Encode never
// produces more than 8*(len(in)+1) bits.
//
// The DNACodec singleton packs the bases {a,c,g,t} at two bits per base
// and needs no training. It is recognized by identity, not by contents.
//
// A Codec is safe to share between goroutines once built or deserialized;
// Add and Build mutate it and must be serialized by the caller.
package compression

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HuffCutoff is the maximum Huffman code length in bits. It cannot be
// larger than 16: decoding indexes a 16-bit prefix lookup table.
const HuffCutoff = 12

var (
	ErrHasCodec      = errors.New("compression: codec already built")
	ErrNoHistogram   = errors.New("compression: codec has no byte distribution data")
	ErrNoCodec       = errors.New("compression: codec has not been built")
	ErrUnknownSymbol = errors.New("compression: byte has no code and no escape")
	ErrCorruptBlob   = errors.New("compression: corrupted codec blob")
)

// codecState tracks the codec lifecycle. Once a codec is past
// stateFilled the histogram is frozen and further Add calls fail.
type codecState int

const (
	stateEmpty       codecState = iota // just created, histogram zeroed
	stateFilled                        // histogram accumulating, no code yet
	stateCodedBuilt                    // code built, histogram retained
	stateCodedLoaded                   // code deserialized, no histogram
)

// Codec is a length-limited Huffman codec over the byte alphabet. The
// zero value is not usable; call New or Deserialize.
type Codec struct {
	isBig    bool // endianness of the machine that owns this codec
	state    codecState
	codeBits [256]uint16  // right-aligned code words
	codeLens [256]uint8   // code length in bits, 0 if the byte has no code
	lookup   [65536]uint8 // 16-bit prefix -> symbol, decode only
	escCode  int          // escape symbol for coded-but-unseen bytes, -1 if none
	hist     [256]uint64  // byte distribution the code was built from
}

// hostBig reports whether this machine stores words big-endian.
var hostBig = func() bool {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 0x0100)
	return probe[0] == 0x01
}()

// New returns an empty codec with a zeroed histogram.
func New() *Codec {
	return &Codec{isBig: hostBig, escCode: -1}
}

// Destroy releases the codec. Retained for parity with the C API; it is
// a no-op in Go and safe to call on the DNA singleton.
func (c *Codec) Destroy() {}

// Add accumulates the byte frequencies of data into the codec histogram.
// Empty input is legal and leaves the counts unchanged. Add fails with
// ErrHasCodec once the codec has been built or loaded.
func (c *Codec) Add(data []byte) error {
	if c.state >= stateCodedBuilt {
		return ErrHasCodec
	}
	for _, b := range data {
		c.hist[b]++
	}
	c.state = stateFilled
	return nil
}

// EscCode returns the escape symbol, or -1 if the codec has none.
func (c *Codec) EscCode() int { return c.escCode }

// Print writes the histogram (when the codec still has one) and the code
// table to w. The escape code row is marked with ***. Write errors are
// ignored; Print fails only when the codec has no code yet.
func (c *Codec) Print(w io.Writer) error {
	if c == dnaCodec {
		fmt.Fprintf(w, "    DNA codec\n")
		return nil
	}
	if c.state < stateCodedBuilt {
		return ErrNoCodec
	}
	hasHist := c.state == stateCodedBuilt

	if hasHist {
		var count uint64
		for _, h := range c.hist {
			count += h
		}
		fmt.Fprintf(w, "\nHistogram:\n")
		for i := 0; i < 256; i++ {
			if c.hist[i] == 0 {
				continue
			}
			pct := 100 * float64(c.hist[i]) / float64(count)
			if i >= 32 && i < 127 {
				fmt.Fprintf(w, "      %c: %12d %5.1f%%\n", i, c.hist[i], pct)
			} else {
				fmt.Fprintf(w, "    %3d: %12d %5.1f%%\n", i, c.hist[i], pct)
			}
		}
	}

	var totalBits, ucompBits uint64
	fmt.Fprintf(w, "\nCode Table:\n")
	for i := 0; i < 256; i++ {
		clen := int(c.codeLens[i])
		if clen == 0 {
			continue
		}
		if i >= 32 && i < 127 {
			fmt.Fprintf(w, "   %c: %2d %s", i, clen, codeString(c.codeBits[i], clen))
		} else {
			fmt.Fprintf(w, " %3d: %2d %s", i, clen, codeString(c.codeBits[i], clen))
		}
		if i == c.escCode {
			fmt.Fprintf(w, " ***\n")
		} else {
			fmt.Fprintf(w, "\n")
			if hasHist {
				totalBits += uint64(clen) * c.hist[i]
				ucompBits += c.hist[i] << 3
			}
		}
	}
	if hasHist && ucompBits > 0 {
		fmt.Fprintf(w, "\nTotal Bytes = %d (%.2f%%)\n",
			(totalBits-1)/8+1, 100*float64(totalBits)/float64(ucompBits))
	}
	return nil
}

// codeString renders the low n bits of code most significant bit first.
func codeString(code uint16, n int) string {
	b := make([]byte, n)
	for k := 0; k < n; k++ {
		if code&(1<<uint(n-1-k)) != 0 {
			b[k] = '1'
		} else {
			b[k] = '0'
		}
	}
	return string(b)
}
