package serialize

import (
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/kocubinski/byteview"
)

// EncodeZSTD writes values as a zstd-compressed stream of
// length-prefixed records: a use case named in spec.md §1 (batches of
// short byte sequences written to a WAL or SSTable block). Each record is a
// little-endian uint32 length followed by that many content bytes; no
// per-value framing beyond that length prefix is added.
func EncodeZSTD(w io.Writer, values []byteview.Value) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	defer enc.Close()

	var lengthBuf [4]byte
	for i := range values {
		b := values[i].Bytes()
		binary.LittleEndian.PutUint32(lengthBuf[:], uint32(len(b)))
		if _, err := enc.Write(lengthBuf[:]); err != nil {
			return err
		}
		if _, err := enc.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// DecodeZSTD reads a stream produced by EncodeZSTD back into a slice of
// freshly constructed Values.
func DecodeZSTD(r io.Reader) ([]byteview.Value, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []byteview.Value
	var lengthBuf [4]byte
	for {
		if _, err := io.ReadFull(dec, lengthBuf[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		n := binary.LittleEndian.Uint32(lengthBuf[:])
		buf := make([]byte, n)
		if _, err := io.ReadFull(dec, buf); err != nil {
			return nil, err
		}
		v, err := byteview.FromBytes(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
