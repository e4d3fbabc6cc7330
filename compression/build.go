package compression

import (
	"sort"
	"sync"
)

// Code construction. Build computes length-limited code lengths with the
// coin-collector form of the Larmore & Hirschberg package-merge algorithm
// (JACM 37, 3 (1990)), assigns canonical codes from the lengths, and
// fills the 16-bit prefix lookup table used by Decode.

// buildWork holds the row buffers for the coin-collector passes. Rows
// alternate between the two count arenas; the matrix records, per row,
// whether each entry was a singleton or a package of two. Sized for the
// worst case of 256 coded symbols (256 singletons plus up to 255
// packages per row).
type buildWork struct {
	matrix [HuffCutoff][512]uint8
	cnt    [2][512]uint64
	base   [256]uint64
}

var buildPool = sync.Pool{
	New: func() any { return new(buildWork) },
}

// Build freezes the histogram and computes the codec tables. Every byte
// with a positive count receives a code of at most HuffCutoff bits,
// except when the coded set has a single symbol (one distinct byte and
// partial false): that byte gets length 0 and cannot be encoded. When
// partial is true the lowest-indexed zero-count byte (if any) is added as
// an escape symbol with weight zero, so bytes unseen during training can
// still be encoded as escape + 8-bit literal.
//
// Build fails with ErrHasCodec if the codec was already built and with
// ErrNoHistogram if Add was never called.
func (c *Codec) Build(partial bool) error {
	if c.state >= stateCodedBuilt {
		return ErrHasCodec
	}
	if c.state == stateEmpty {
		return ErrNoHistogram
	}

	var (
		code [256]int
		leng [256]int
		bits [256]uint16
	)

	// Collect the coded set: every byte that occurs, plus the first
	// zero-count byte as the escape when partial is requested.
	ecode := 0
	if partial {
		ecode = -1
	}
	ncode := 0
	for i := 0; i < 256; i++ {
		if c.hist[i] > 0 {
			code[ncode] = i
			ncode++
		} else if ecode < 0 {
			ecode = i
			code[ncode] = i
			ncode++
		}
	}

	// Sort by weight ascending. The stable sort keeps equal weights in
	// symbol order and the weight-zero escape at the front, which makes
	// the length assignment deterministic.
	hist := &c.hist
	sort.SliceStable(code[:ncode], func(a, b int) bool {
		return hist[code[a]] < hist[code[b]]
	})

	w := buildPool.Get().(*buildWork)

	// Coin filter: row HuffCutoff is the singletons in weight order;
	// each earlier row merges the next unused singleton against the sum
	// of the next two entries of the prior row, whichever is cheaper.
	for n := 0; n < ncode; n++ {
		w.base[n] = hist[code[n]]
		w.cnt[0][n] = w.base[n]
		leng[n] = 0
	}
	cur := 0
	llen := ncode - 1
	for L := HuffCutoff - 1; L > 0; L-- {
		lcnt := &w.cnt[cur]
		ccnt := &w.cnt[1-cur]
		j, k, n := 0, 0, 0
		for ; j < ncode || k < llen; n++ {
			if k >= llen || (j < ncode && w.base[j] <= lcnt[k]+lcnt[k+1]) {
				ccnt[n] = w.base[j]
				w.matrix[L][n] = 1
				j++
			} else {
				ccnt[n] = lcnt[k] + lcnt[k+1]
				w.matrix[L][n] = 0
				k += 2
			}
		}
		llen = n - 1
		cur = 1 - cur
	}

	// Back-trace: each singleton choice within the active span deepens
	// the corresponding symbol by one; the span halves over the packages.
	span := 2 * (ncode - 1)
	for L := 1; L < HuffCutoff; L++ {
		j := 0
		for n := 0; n < span; n++ {
			if w.matrix[L][n] != 0 {
				leng[j]++
				j++
			}
		}
		span = 2 * (span - j)
	}
	for n := 0; n < span; n++ {
		leng[n]++
	}

	buildPool.Put(w)

	// Canonical code assignment from the sorted lengths. The first
	// (longest) code is all ones; each successive code strips trailing
	// zero padding, decrements, and pads back out to its length.
	llen = leng[0]
	lbits := uint16(1)<<uint(llen) - 1
	bits[0] = lbits
	for n := 1; n < ncode; n++ {
		for lbits&0x1 == 0 {
			lbits >>= 1
			llen--
		}
		lbits--
		for llen < leng[n] {
			lbits = lbits<<1 | 0x1
			llen++
		}
		bits[n] = lbits
	}

	for i := 0; i < 256; i++ {
		c.codeLens[i] = 0
		c.codeBits[i] = 0
	}
	for i := 0; i < ncode; i++ {
		c.codeLens[code[i]] = uint8(leng[i])
		c.codeBits[code[i]] = bits[i]
	}

	if partial {
		c.escCode = ecode
	} else {
		c.escCode = -1
	}
	c.state = stateCodedBuilt

	c.buildLookup()
	return nil
}

// buildLookup fills the decode table: every 16-bit value whose high bits
// match a code word maps to that code's symbol, so decoding is a single
// indexed load on the next 16 bits of the stream.
func (c *Codec) buildLookup() {
	for i := 0; i < 256; i++ {
		l := int(c.codeLens[i])
		if l == 0 {
			continue
		}
		base := int(c.codeBits[i]) << uint(16-l)
		powr := 1 << uint(16-l)
		for j := 0; j < powr; j++ {
			c.lookup[base+j] = uint8(i)
		}
	}
}
