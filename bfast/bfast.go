package bfast

import (
	"fmt"
	"io"
	"strings"

	"github.com/g3dformat/g3d/endian"
	"github.com/g3dformat/g3d/errs"
	"github.com/g3dformat/g3d/internal/pool"
)

const (
	// Magic identifies a BFAST container. Stored as a little-endian uint64
	// in the first eight bytes of the stream.
	Magic uint64 = 0xBFA5

	// HeaderSize is the fixed size of the container header.
	HeaderSize = 32

	// RangeSize is the size of one array range record (begin and end offsets).
	RangeSize = 16

	// Alignment is the byte boundary every array begin is rounded up to.
	// Gaps between arrays are zero padding.
	Alignment = 64
)

// Header is the fixed 32-byte record at the start of every container.
type Header struct {
	// Magic is the container magic number. Always bfast.Magic.
	Magic uint64 // byte offset 0-7
	// DataStart is the absolute byte offset of the first array (the name
	// table), aligned to Alignment.
	DataStart uint64 // byte offset 8-15
	// DataEnd is the absolute byte offset one past the last array.
	DataEnd uint64 // byte offset 16-23
	// NumArrays is the total array count, the name table included.
	NumArrays uint64 // byte offset 24-31
}

// Buffer is one named byte array of a container.
//
// Buffers returned by Read alias the input stream; callers must keep the
// stream alive and unmodified for as long as they hold the buffers.
type Buffer struct {
	Name string
	Data []byte
}

// Range is the begin/end offset pair of one array, relative to the start of
// the stream.
type Range struct {
	Begin uint64
	End   uint64
}

// Bytes serializes the header using the specified endian engine.
func (h *Header) Bytes(engine endian.EndianEngine) []byte {
	var b [HeaderSize]byte
	engine.PutUint64(b[0:8], h.Magic)
	engine.PutUint64(b[8:16], h.DataStart)
	engine.PutUint64(b[16:24], h.DataEnd)
	engine.PutUint64(b[24:32], h.NumArrays)

	return b[:]
}

// ParseHeader parses and validates a container header.
//
// Returns:
//   - Header: Parsed header
//   - error: errs.ErrInvalidHeaderSize if data is shorter than 32 bytes, or
//     errs.ErrInvalidMagicNumber if the magic does not match
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{
		Magic:     engine.Uint64(data[0:8]),
		DataStart: engine.Uint64(data[8:16]),
		DataEnd:   engine.Uint64(data[16:24]),
		NumArrays: engine.Uint64(data[24:32]),
	}

	if h.Magic != Magic {
		return Header{}, errs.ErrInvalidMagicNumber
	}

	return h, nil
}

// alignUp rounds offset up to the next Alignment boundary.
func alignUp(offset int) int {
	return (offset + Alignment - 1) &^ (Alignment - 1)
}

// layout computes the on-stream placement of the name table and the payload
// arrays. The returned ranges cover all NumArrays arrays in order, name
// table first.
func layout(buffers []Buffer) (Header, []Range, []byte) {
	var names strings.Builder
	for i := range buffers {
		names.WriteString(buffers[i].Name)
		names.WriteByte(0)
	}
	nameTable := []byte(names.String())

	numArrays := len(buffers) + 1
	ranges := make([]Range, 0, numArrays)

	offset := alignUp(HeaderSize + numArrays*RangeSize)
	header := Header{
		Magic:     Magic,
		DataStart: uint64(offset),
		NumArrays: uint64(numArrays),
	}

	ranges = append(ranges, Range{Begin: uint64(offset), End: uint64(offset + len(nameTable))})
	offset += len(nameTable)

	for i := range buffers {
		offset = alignUp(offset)
		ranges = append(ranges, Range{Begin: uint64(offset), End: uint64(offset + len(buffers[i].Data))})
		offset += len(buffers[i].Data)
	}

	header.DataEnd = uint64(offset)

	return header, ranges, nameTable
}

// Size returns the exact serialized size of a container holding buffers.
func Size(buffers []Buffer) int {
	header, _, _ := layout(buffers)
	return int(header.DataEnd)
}

// Bytes serializes buffers into a little-endian BFAST container.
//
// The name table array is synthesized from the buffer names; callers deal
// only in payload arrays.
func Bytes(buffers []Buffer) []byte {
	engine := endian.GetLittleEndianEngine()
	header, ranges, nameTable := layout(buffers)

	data := make([]byte, header.DataEnd)
	marshal(data, engine, header, ranges, nameTable, buffers)

	return data
}

// Write serializes buffers into w, assembling the container in a pooled
// buffer to avoid a per-call allocation.
//
// Returns:
//   - int64: Number of bytes written
//   - error: Any error reported by w
func Write(w io.Writer, buffers []Buffer) (int64, error) {
	engine := endian.GetLittleEndianEngine()
	header, ranges, nameTable := layout(buffers)

	bb := pool.GetMeshBuffer()
	defer pool.PutMeshBuffer(bb)

	data := bb.ExtendOrGrow(int(header.DataEnd))
	marshal(data, engine, header, ranges, nameTable, buffers)

	return bb.WriteTo(w)
}

// marshal writes the container into data, which must be exactly
// header.DataEnd bytes of zeroed memory.
func marshal(data []byte, engine endian.EndianEngine, header Header, ranges []Range, nameTable []byte, buffers []Buffer) {
	copy(data[0:HeaderSize], header.Bytes(engine))

	offset := HeaderSize
	for _, r := range ranges {
		engine.PutUint64(data[offset:offset+8], r.Begin)
		engine.PutUint64(data[offset+8:offset+16], r.End)
		offset += RangeSize
	}

	copy(data[ranges[0].Begin:ranges[0].End], nameTable)
	for i := range buffers {
		r := ranges[i+1]
		copy(data[r.Begin:r.End], buffers[i].Data)
	}
}

// Read parses a BFAST container and returns its payload arrays in order.
//
// The returned buffers alias data; no copies are made. The synthesized name
// table array is consumed for names and not returned as a payload buffer.
//
// Returns:
//   - []Buffer: Payload arrays with their names, in container order
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidMagicNumber,
//     errs.ErrInvalidArrayRange for truncated or non-monotone ranges, or
//     errs.ErrNameCountMismatch if the name table disagrees with the count
func Read(data []byte) ([]Buffer, error) {
	engine := endian.GetLittleEndianEngine()

	header, err := ParseHeader(data, engine)
	if err != nil {
		return nil, err
	}

	if header.NumArrays == 0 {
		return nil, fmt.Errorf("container has no name table array: %w", errs.ErrInvalidArrayRange)
	}

	if header.DataEnd > uint64(len(data)) || header.DataStart > header.DataEnd || header.DataStart < HeaderSize {
		return nil, fmt.Errorf("data section [%d, %d) exceeds %d input bytes: %w",
			header.DataStart, header.DataEnd, len(data), errs.ErrInvalidArrayRange)
	}

	// Bound the count before converting to int: the range table must fit
	// between the header and the data section.
	if header.NumArrays > (header.DataStart-HeaderSize)/RangeSize {
		return nil, fmt.Errorf("range table for %d arrays overlaps data section: %w",
			header.NumArrays, errs.ErrInvalidArrayRange)
	}
	numArrays := int(header.NumArrays)

	ranges := make([]Range, numArrays)
	prevEnd := header.DataStart
	for i := 0; i < numArrays; i++ {
		offset := HeaderSize + i*RangeSize
		r := Range{
			Begin: engine.Uint64(data[offset : offset+8]),
			End:   engine.Uint64(data[offset+8 : offset+16]),
		}
		if r.Begin > r.End || r.Begin < prevEnd || r.End > header.DataEnd {
			return nil, fmt.Errorf("array %d range [%d, %d): %w", i, r.Begin, r.End, errs.ErrInvalidArrayRange)
		}

		ranges[i] = r
		prevEnd = r.End
	}

	names, err := parseNameTable(data[ranges[0].Begin:ranges[0].End], numArrays-1)
	if err != nil {
		return nil, err
	}

	buffers := make([]Buffer, numArrays-1)
	for i := range buffers {
		r := ranges[i+1]
		buffers[i] = Buffer{
			Name: names[i],
			Data: data[r.Begin:r.End],
		}
	}

	return buffers, nil
}

// parseNameTable splits a NUL-terminated name table and checks the entry
// count against the expected payload array count.
func parseNameTable(table []byte, want int) ([]string, error) {
	var names []string
	if len(table) > 0 {
		if table[len(table)-1] != 0 {
			return nil, fmt.Errorf("name table is not NUL terminated: %w", errs.ErrNameCountMismatch)
		}

		names = strings.Split(string(table[:len(table)-1]), "\x00")
	}

	if len(names) != want {
		return nil, fmt.Errorf("%d names for %d arrays: %w", len(names), want, errs.ErrNameCountMismatch)
	}

	return names, nil
}
