package bfast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/g3dformat/g3d/endian"
	"github.com/g3dformat/g3d/errs"
)

func TestHeader_RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	h := Header{
		Magic:     Magic,
		DataStart: 128,
		DataEnd:   4096,
		NumArrays: 5,
	}

	data := h.Bytes(engine)
	require.Len(t, data, HeaderSize)

	parsed, err := ParseHeader(data, engine)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestParseHeader_Rejection(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	t.Run("Too short", func(t *testing.T) {
		_, err := ParseHeader(make([]byte, HeaderSize-1), engine)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Bad magic", func(t *testing.T) {
		h := Header{Magic: 0xDEAD, NumArrays: 1}
		_, err := ParseHeader(h.Bytes(engine), engine)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})
}

func TestBytesRead_RoundTrip(t *testing.T) {
	buffers := []Buffer{
		{Name: "meta", Data: []byte(`{"generator":"test"}`)},
		{Name: "descriptors", Data: bytes.Repeat([]byte{1, 2, 3, 4}, 16)},
		{Name: "g3d:vertex:coordinate:0:float32:3", Data: []byte{9, 8, 7, 6, 5, 4, 3, 2, 1, 0, 0, 0}},
		{Name: "g3d:vertex:coordinate:0:float32:3:index", Data: nil},
	}

	data := Bytes(buffers)
	require.Len(t, data, Size(buffers))

	parsed, err := Read(data)
	require.NoError(t, err)
	require.Len(t, parsed, len(buffers))

	for i := range buffers {
		require.Equal(t, buffers[i].Name, parsed[i].Name, "array %d", i)
		require.Equal(t, len(buffers[i].Data), len(parsed[i].Data), "array %d", i)
		if len(buffers[i].Data) > 0 {
			require.Equal(t, buffers[i].Data, parsed[i].Data, "array %d", i)
		}
	}
}

func TestBytes_Alignment(t *testing.T) {
	buffers := []Buffer{
		{Name: "a", Data: []byte{1}},
		{Name: "b", Data: []byte{2}},
	}

	data := Bytes(buffers)
	engine := endian.GetLittleEndianEngine()

	header, err := ParseHeader(data, engine)
	require.NoError(t, err)
	require.Zero(t, header.DataStart%Alignment, "data start must be aligned")
	require.Equal(t, uint64(3), header.NumArrays)

	// Every payload array begin must sit on an alignment boundary.
	for i := 1; i < int(header.NumArrays); i++ {
		offset := HeaderSize + i*RangeSize
		begin := engine.Uint64(data[offset : offset+8])
		require.Zero(t, begin%Alignment, "array %d begin", i)
	}
}

func TestWrite(t *testing.T) {
	buffers := []Buffer{
		{Name: "meta", Data: []byte("{}")},
		{Name: "payload", Data: bytes.Repeat([]byte{0xCC}, 100)},
	}

	var out bytes.Buffer
	n, err := Write(&out, buffers)

	require.NoError(t, err)
	require.Equal(t, int64(out.Len()), n)
	require.Equal(t, Bytes(buffers), out.Bytes(), "Write and Bytes must produce identical streams")
}

func TestRead_ZeroCopy(t *testing.T) {
	buffers := []Buffer{{Name: "x", Data: []byte{10, 20, 30}}}
	data := Bytes(buffers)

	parsed, err := Read(data)
	require.NoError(t, err)
	require.Len(t, parsed, 1)

	// Mutating the parsed buffer must show through to the source stream.
	parsed[0].Data[0] = 99
	again, err := Read(data)
	require.NoError(t, err)
	require.Equal(t, byte(99), again[0].Data[0])
}

func TestRead_Rejection(t *testing.T) {
	t.Run("Truncated data section", func(t *testing.T) {
		data := Bytes([]Buffer{{Name: "x", Data: bytes.Repeat([]byte{1}, 32)}})
		_, err := Read(data[:len(data)-8])
		require.ErrorIs(t, err, errs.ErrInvalidArrayRange)
	})

	t.Run("Zero arrays", func(t *testing.T) {
		engine := endian.GetLittleEndianEngine()
		h := Header{Magic: Magic, DataStart: HeaderSize, DataEnd: HeaderSize, NumArrays: 0}
		_, err := Read(h.Bytes(engine))
		require.ErrorIs(t, err, errs.ErrInvalidArrayRange)
	})

	t.Run("Non-monotone ranges", func(t *testing.T) {
		data := Bytes([]Buffer{
			{Name: "a", Data: []byte{1, 2, 3}},
			{Name: "b", Data: []byte{4, 5, 6}},
		})

		engine := endian.GetLittleEndianEngine()
		// Corrupt array 2's begin to point before array 1's end.
		offset := HeaderSize + 2*RangeSize
		engine.PutUint64(data[offset:offset+8], 0)

		_, err := Read(data)
		require.ErrorIs(t, err, errs.ErrInvalidArrayRange)
	})

	t.Run("Name count mismatch", func(t *testing.T) {
		data := Bytes([]Buffer{{Name: "only", Data: []byte{1}}})

		engine := endian.GetLittleEndianEngine()
		// Shrink the name table range to cut off the trailing NUL.
		nameEndOffset := HeaderSize + 8
		nameEnd := engine.Uint64(data[nameEndOffset : nameEndOffset+8])
		engine.PutUint64(data[nameEndOffset:nameEndOffset+8], nameEnd-1)

		_, err := Read(data)
		require.ErrorIs(t, err, errs.ErrNameCountMismatch)
	})
}

func TestEmptyContainer(t *testing.T) {
	// A container with no payload arrays still carries its name table.
	data := Bytes(nil)

	parsed, err := Read(data)
	require.NoError(t, err)
	require.Empty(t, parsed)
}
