package mesh

import (
	"fmt"
	"unsafe"

	"github.com/g3dformat/g3d/errs"
	"github.com/g3dformat/g3d/section"
)

// Attribute binds a validated descriptor to a contiguous byte range it does
// not own. The byte length must be an exact multiple of the descriptor's
// element size; the element count is derived, never stored.
type Attribute struct {
	// Descriptor identifies the channel this byte range carries.
	Descriptor section.AttributeDescriptor

	data        []byte
	elementSize int
}

// NewAttribute creates an attribute view over data.
//
// The descriptor must already be valid (store constructors validate it);
// NewAttribute only checks the byte range itself.
//
// Returns:
//   - Attribute: View over data
//   - error: errs.ErrNilBuffer for a nil range, or errs.ErrBufferAlignment
//     if len(data) is not a multiple of the descriptor's element size
func NewAttribute(desc section.AttributeDescriptor, data []byte) (Attribute, error) {
	if data == nil {
		return Attribute{}, errs.ErrNilBuffer
	}

	elementSize, err := desc.DataElementSize()
	if err != nil {
		return Attribute{}, err
	}

	if len(data)%elementSize != 0 {
		return Attribute{}, fmt.Errorf("%d bytes with %d-byte elements: %w",
			len(data), elementSize, errs.ErrBufferAlignment)
	}

	return Attribute{
		Descriptor:  desc,
		data:        data,
		elementSize: elementSize,
	}, nil
}

// Bytes returns the underlying byte range. The returned slice aliases the
// attribute's storage; writes show through.
func (a *Attribute) Bytes() []byte {
	return a.data
}

// ByteSize returns the length of the byte range.
func (a *Attribute) ByteSize() int {
	return len(a.data)
}

// ElementSize returns the byte size of one logical element
// (data type size × arity).
func (a *Attribute) ElementSize() int {
	return a.elementSize
}

// NumElements returns the number of logical elements in the byte range.
func (a *Attribute) NumElements() int {
	return len(a.data) / a.elementSize
}

// Primitive is the set of Go types that can view an attribute's values
// directly. The 128-bit and float16 data types have no native Go
// representation; access those through Bytes.
type Primitive interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// Data reinterprets the attribute's byte range as a slice of primitives.
//
// The size of T must equal the descriptor's data type size. The returned
// slice holds NumElements × arity primitives: callers index primitives and
// group by arity themselves to recover logical elements. The slice aliases
// the attribute's storage: no copy is made and writes show through.
func Data[T Primitive](a *Attribute) ([]T, error) {
	var zero T
	want, err := a.Descriptor.DataTypeSize()
	if err != nil {
		return nil, err
	}

	size := int(unsafe.Sizeof(zero))
	if size != want {
		return nil, fmt.Errorf("%d-byte view of %s values: %w",
			size, a.Descriptor.DataType, errs.ErrElementSizeMismatch)
	}

	if len(a.data) == 0 {
		return nil, nil
	}

	return unsafe.Slice((*T)(unsafe.Pointer(&a.data[0])), len(a.data)/size), nil
}
