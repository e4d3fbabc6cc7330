package compression

// The DNA codec packs nucleotides at two bits per base with the fixed
// mapping a->0 c->1 g->2 t->3, case-insensitive; any other byte maps to
// base 0. It needs no training and no blob: the singleton is shared
// process-wide, immutable, and distinguished from built codecs by
// identity.

var dnaCodec = &Codec{isBig: hostBig, state: stateCodedLoaded, escCode: -1}

// DNACodec returns the process-wide 2-bit DNA codec.
func DNACodec() *Codec { return dnaCodec }

var dnaNumber = [256]byte{
	'c': 1, 'g': 2, 't': 3,
	'C': 1, 'G': 2, 'T': 3,
}

var dnaBase = [4]byte{'a', 'c', 'g', 't'}

// compressDNA packs four bases per byte into t, earliest base in the
// top two bits. A trailing group of 1-3 bases occupies the high bits of
// the final byte, zero padded. Returns the exact bit count 2*len(s).
func compressDNA(s, t []byte) int {
	j := 0
	i := 0
	n := len(s) - 3
	for ; i < n; i += 4 {
		t[j] = dnaNumber[s[i]]<<6 | dnaNumber[s[i+1]]<<4 | dnaNumber[s[i+2]]<<2 | dnaNumber[s[i+3]]
		j++
	}
	switch i - n {
	case 0:
		t[j] = dnaNumber[s[i]]<<6 | dnaNumber[s[i+1]]<<4 | dnaNumber[s[i+2]]<<2
	case 1:
		t[j] = dnaNumber[s[i]]<<6 | dnaNumber[s[i+1]]<<4
	case 2:
		t[j] = dnaNumber[s[i]] << 6
	}
	return len(s) << 1
}

// uncompressDNA unpacks n bases from s into t. The bit stream is length
// defined, not self delimiting: n comes from the caller.
func uncompressDNA(s []byte, n int, t []byte) {
	si := 0
	i := 0
	m := n - 3
	for ; i < m; i += 4 {
		b := s[si]
		si++
		t[i] = dnaBase[b>>6&0x3]
		t[i+1] = dnaBase[b>>4&0x3]
		t[i+2] = dnaBase[b>>2&0x3]
		t[i+3] = dnaBase[b&0x3]
	}
	switch i - m {
	case 0:
		b := s[si]
		t[i] = dnaBase[b>>6&0x3]
		t[i+1] = dnaBase[b>>4&0x3]
		t[i+2] = dnaBase[b>>2&0x3]
	case 1:
		b := s[si]
		t[i] = dnaBase[b>>6&0x3]
		t[i+1] = dnaBase[b>>4&0x3]
	case 2:
		b := s[si]
		t[i] = dnaBase[b>>6&0x3]
	}
}
