package compression

import "encoding/binary"

// Serialized codec blob, byte oriented with no alignment padding:
//
//	offset 0 : 1 byte  producer endianness (0 little, 1 big)
//	offset 1 : 4 bytes escape code, signed, producer byte order
//	then for each of the 256 symbols:
//	           1 byte  code length (0 if the symbol has no code)
//	           2 bytes code word, producer byte order, only if length > 0
//
// Multi-byte fields are written in the producer's native order and the
// reader reconciles using the leading endianness byte, so blobs travel
// between machines of either endianness.

// MaxSerialSize returns the largest possible serialized codec in bytes.
func MaxSerialSize() int {
	return 1 + 4 + 256*(1+2)
}

// Serialize writes the codec into out and returns the number of bytes
// written. out must have room for MaxSerialSize bytes. The histogram is
// not part of the blob. The DNA singleton serializes to zero bytes; it
// is recognized by identity, not by contents.
func (c *Codec) Serialize(out []byte) (int, error) {
	if c == dnaCodec {
		return 0, nil
	}
	if c.state < stateCodedBuilt {
		return 0, ErrNoCodec
	}

	o := 0
	if c.isBig {
		out[o] = 1
	} else {
		out[o] = 0
	}
	o++
	binary.NativeEndian.PutUint32(out[o:], uint32(int32(c.escCode)))
	o += 4
	for i := 0; i < 256; i++ {
		out[o] = c.codeLens[i]
		o++
		if c.codeLens[i] > 0 {
			binary.NativeEndian.PutUint16(out[o:], c.codeBits[i])
			o += 2
		}
	}
	return o, nil
}

// Deserialize reconstructs a codec from a blob produced by Serialize,
// possibly on a machine of the opposite endianness. The result has no
// histogram and can encode, decode and serialize but not Add or Build.
// Truncated blobs, code lengths above HuffCutoff, and escape codes with
// no code word fail with ErrCorruptBlob.
func Deserialize(blob []byte) (*Codec, error) {
	if len(blob) < 5 {
		return nil, ErrCorruptBlob
	}

	c := &Codec{isBig: hostBig, state: stateCodedLoaded}

	var bo binary.ByteOrder = binary.LittleEndian
	if blob[0] != 0 {
		bo = binary.BigEndian
	}
	c.escCode = int(int32(bo.Uint32(blob[1:5])))

	o := 5
	for i := 0; i < 256; i++ {
		if o >= len(blob) {
			return nil, ErrCorruptBlob
		}
		l := blob[o]
		o++
		if l > HuffCutoff {
			return nil, ErrCorruptBlob
		}
		c.codeLens[i] = l
		if l > 0 {
			if o+2 > len(blob) {
				return nil, ErrCorruptBlob
			}
			c.codeBits[i] = bo.Uint16(blob[o:])
			o += 2
		}
	}

	if c.escCode < -1 || c.escCode > 255 {
		return nil, ErrCorruptBlob
	}
	if c.escCode >= 0 && c.codeLens[c.escCode] == 0 {
		return nil, ErrCorruptBlob
	}

	c.buildLookup()
	return c, nil
}
