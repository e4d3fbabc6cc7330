package compression

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundtrip(t *testing.T, c *Codec, in []byte) ([]byte, int) {
	t.Helper()
	enc, nbits, err := c.Encode(in)
	require.NoError(t, err)
	require.LessOrEqual(t, nbits, 8*(len(in)+1), "expansion bound")
	require.Equal(t, (nbits+7)/8, len(enc))

	dec, err := c.Decode(enc, nbits)
	require.NoError(t, err)
	require.Equal(t, in, append([]byte{}, dec...), "round trip")
	return enc, nbits
}

func TestEncodeDecodeGeometric(t *testing.T) {
	c := geometricCodec(t, true)

	in := []byte("llkllkjllkllkjithlhlkl")
	enc, nbits := roundtrip(t, c, in)

	// 11 l's, 5 k's, 2 j's, one i, 2 h's, the sentinel, and the novel
	// 't' as escape + literal.
	want := 2 + 11*1 + 5*2 + 2*3 + 1*4 + 2*5 + (12 + 8)
	assert.Equal(t, want, nbits)
	assert.NotEqual(t, byte(0xff), enc[0])
}

func TestEncodeEscapeOnly(t *testing.T) {
	// Every byte of the input is absent from the histogram. Escapes cost
	// 20 bits a piece here, so the second one already passes the
	// 8-bits-per-byte budget and the encoder falls back to raw.
	c := geometricCodec(t, true)

	in := []byte("mnopq")
	enc, nbits := roundtrip(t, c, in)
	assert.Equal(t, byte(0xff), enc[0])
	assert.Equal(t, 8*(len(in)+1), nbits)
}

func TestEncodeSingleEscapeFits(t *testing.T) {
	// One novel byte among enough coded ones stays within budget and
	// takes the escape + literal path rather than the raw fallback.
	c := geometricCodec(t, true)

	in := []byte("lllllllllllllllllllmlll")
	enc, nbits := roundtrip(t, c, in)
	assert.NotEqual(t, byte(0xff), enc[0])
	assert.Equal(t, 2+22*1+(12+8), nbits)
}

func TestEncodeRawFallback(t *testing.T) {
	// Training mass concentrated on one byte leaves every other byte on
	// the expensive escape path; a short foreign input must come back raw.
	c := New()
	require.NoError(t, c.Add(bytes.Repeat([]byte("x"), 1000)))
	require.NoError(t, c.Build(true))

	in := []byte("abcde")
	enc, nbits := roundtrip(t, c, in)
	assert.Equal(t, byte(0xff), enc[0])
	assert.Equal(t, 8*(len(in)+1), nbits)
	assert.Equal(t, in, enc[1:])
}

func TestEncodeUnknownSymbol(t *testing.T) {
	c := New()
	require.NoError(t, c.Add([]byte("aabbb")))
	require.NoError(t, c.Build(false))
	require.Equal(t, -1, c.EscCode())

	_, _, err := c.Encode([]byte("abz"))
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestEncodeEmptyInput(t *testing.T) {
	c := geometricCodec(t, true)

	enc, nbits, err := c.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, nbits, "just the endian sentinel")
	assert.Len(t, enc, 1)

	dec, err := c.Decode(enc, nbits)
	require.NoError(t, err)
	assert.Empty(t, dec)
}

func TestDecodeZeroBits(t *testing.T) {
	c := geometricCodec(t, true)
	dec, err := c.Decode(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, dec)
}

func TestDecodeBeforeBuild(t *testing.T) {
	c := New()
	_, _, err := c.Encode([]byte("a"))
	assert.ErrorIs(t, err, ErrNoCodec)
	_, err = c.Decode([]byte{0x00}, 2)
	assert.ErrorIs(t, err, ErrNoCodec)
}

func TestEncodeDecodeLongStream(t *testing.T) {
	// Multi-word stream: exercises full-word flushes on encode and the
	// staged word refills plus byte-aligned tail assembly on decode.
	c := geometricCodec(t, true)

	in := []byte(strings.Repeat("l", 100) + "kjihgfed" + "t" + strings.Repeat("lk", 20))
	enc, nbits := roundtrip(t, c, in)
	assert.NotEqual(t, byte(0xff), enc[0])
	assert.Greater(t, nbits, 128)
}

func TestEncodeDecodeWordBoundary(t *testing.T) {
	// Streams landing on and around the 64-bit word boundary.
	c := geometricCodec(t, true)
	for extra := 0; extra < 16; extra++ {
		in := []byte(strings.Repeat("l", 58+extra) + "kk")
		roundtrip(t, c, in)
	}
}

func TestDecodeDeserialized(t *testing.T) {
	c := geometricCodec(t, true)
	blob := make([]byte, MaxSerialSize())
	n, err := c.Serialize(blob)
	require.NoError(t, err)

	d, err := Deserialize(blob[:n])
	require.NoError(t, err)

	in := []byte("llkllkjllkllkjithlhlkl")
	enc, nbits, err := c.Encode(in)
	require.NoError(t, err)
	dec, err := d.Decode(enc, nbits)
	require.NoError(t, err)
	assert.Equal(t, in, dec)

	// And the loaded codec encodes identically.
	enc2, nbits2, err := d.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, nbits, nbits2)
	assert.Equal(t, enc, enc2)
}

func BenchmarkEncode(b *testing.B) {
	c := New()
	c.Add([]byte("abcdefghijkl"))
	for i := 0; i < 1024; i++ {
		c.Add([]byte("jkllkjkllkll"))
	}
	c.Build(true)

	in := bytes.Repeat([]byte("llkjllkllkjl"), 64)
	b.SetBytes(int64(len(in)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Encode(in)
	}
}

func BenchmarkDecode(b *testing.B) {
	c := New()
	c.Add([]byte("abcdefghijkl"))
	for i := 0; i < 1024; i++ {
		c.Add([]byte("jkllkjkllkll"))
	}
	c.Build(true)

	in := bytes.Repeat([]byte("llkjllkllkjl"), 64)
	enc, nbits, err := c.Encode(in)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(in)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Decode(enc, nbits)
	}
}
