package mesh

import (
	"fmt"
	"unsafe"

	"github.com/g3dformat/g3d/errs"
	"github.com/g3dformat/g3d/section"
)

// AttributeStore backs one attribute's byte range. There are exactly two
// implementations: RefStore, which aliases caller-owned memory, and
// OwnedStore, which holds its own buffer. Callers hold an AttributeStore and
// never depend on the allocation strategy behind it.
type AttributeStore interface {
	// Descriptor returns the attribute's descriptor.
	Descriptor() section.AttributeDescriptor

	// Attribute returns the attribute view over the store's byte range.
	Attribute() *Attribute

	// Bytes returns the store's byte range. The slice aliases the store's
	// backing memory; writes show through.
	Bytes() []byte

	// Owned reports whether the store owns its buffer. A reference store
	// returns false: its memory belongs to the caller, who must keep it
	// valid and unmutated for the store's lifetime.
	Owned() bool
}

// RefStore is an attribute store over externally owned memory. It never
// allocates; the attribute simply aliases the given range.
type RefStore struct {
	attr Attribute
}

var _ AttributeStore = (*RefStore)(nil)

// NewRefStore creates a reference store aliasing data.
//
// The caller retains ownership of data and must keep it valid for the
// store's lifetime.
//
// Returns:
//   - *RefStore: Store aliasing data
//   - error: Descriptor validation errors, or attribute range errors per
//     NewAttribute
func NewRefStore(desc section.AttributeDescriptor, data []byte) (*RefStore, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	attr, err := NewAttribute(desc, data)
	if err != nil {
		return nil, err
	}

	return &RefStore{attr: attr}, nil
}

func (s *RefStore) Descriptor() section.AttributeDescriptor { return s.attr.Descriptor }
func (s *RefStore) Attribute() *Attribute                   { return &s.attr }
func (s *RefStore) Bytes() []byte                           { return s.attr.Bytes() }
func (s *RefStore) Owned() bool                             { return false }

// OwnedStore is an attribute store holding its own buffer, sized to an
// element count at construction. The buffer lives exactly as long as the
// store.
type OwnedStore struct {
	buf  []byte
	attr Attribute
}

var _ AttributeStore = (*OwnedStore)(nil)

// NewOwnedStore creates an owning store with a zero-initialized buffer of
// elementCount elements. The caller fills the buffer before use, typically
// through Data.
//
// Returns:
//   - *OwnedStore: Store with a fresh buffer of elementCount × element size bytes
//   - error: Descriptor validation errors, or errs.ErrInvalidElementCount
func NewOwnedStore(desc section.AttributeDescriptor, elementCount int) (*OwnedStore, error) {
	return newOwnedStore(desc, elementCount, nil)
}

// NewOwnedStoreFrom creates an owning store initialized by copying from
// source. Exactly elementCount × element size bytes are copied; the copy is
// length-checked, never assumed.
//
// Returns:
//   - *OwnedStore: Store with its own copy of the data
//   - error: errs.ErrShortCopySource if source is shorter than the buffer,
//     plus the errors of NewOwnedStore
func NewOwnedStoreFrom(desc section.AttributeDescriptor, elementCount int, source []byte) (*OwnedStore, error) {
	if source == nil {
		return nil, errs.ErrNilBuffer
	}

	return newOwnedStore(desc, elementCount, source)
}

func newOwnedStore(desc section.AttributeDescriptor, elementCount int, source []byte) (*OwnedStore, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	if elementCount < 0 {
		return nil, errs.ErrInvalidElementCount
	}

	elementSize, err := desc.DataElementSize()
	if err != nil {
		return nil, err
	}

	byteSize := elementCount * elementSize
	if source != nil && len(source) < byteSize {
		return nil, fmt.Errorf("%d source bytes for a %d-byte buffer: %w",
			len(source), byteSize, errs.ErrShortCopySource)
	}

	buf := make([]byte, byteSize)
	copy(buf, source[:min(len(source), byteSize)])

	attr, err := NewAttribute(desc, buf)
	if err != nil {
		return nil, err
	}

	return &OwnedStore{buf: buf, attr: attr}, nil
}

func (s *OwnedStore) Descriptor() section.AttributeDescriptor { return s.attr.Descriptor }
func (s *OwnedStore) Attribute() *Attribute                   { return &s.attr }
func (s *OwnedStore) Bytes() []byte                           { return s.buf }
func (s *OwnedStore) Owned() bool                             { return true }

// bytesOf reinterprets a primitive slice as its raw bytes, native byte order,
// without copying.
func bytesOf[T Primitive](values []T) []byte {
	if len(values) == 0 {
		return []byte{}
	}

	var zero T
	size := int(unsafe.Sizeof(zero))

	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*size)
}
