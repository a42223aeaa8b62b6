// Package errs defines the sentinel errors returned by the g3d packages.
//
// All errors are plain sentinel values intended to be matched with errors.Is.
// Call sites may wrap them with fmt.Errorf("...: %w", err) to add context;
// callers should always match with errors.Is rather than equality.
package errs

import "errors"

// Descriptor validation and parsing errors.
var (
	// ErrFieldOutOfRange indicates an association, attribute type or data type
	// field outside its enum's valid span (or equal to the invalid marker).
	ErrFieldOutOfRange = errors.New("descriptor field out of range")

	// ErrInvalidArity indicates a data arity less than or equal to zero.
	ErrInvalidArity = errors.New("data arity must be greater than zero")

	// ErrMalformedDescriptor indicates a canonical descriptor string with a
	// missing g3d prefix, a wrong token count, or an unparsable field.
	ErrMalformedDescriptor = errors.New("malformed descriptor string")

	// ErrDescriptorRoundTrip indicates that re-encoding a parsed descriptor
	// did not reproduce the input string. It signals registry or grammar
	// drift between implementations and is never ignorable.
	ErrDescriptorRoundTrip = errors.New("parsed descriptor does not re-encode to its source string")

	// ErrInvalidDescriptorSize indicates a binary descriptor record or
	// descriptor table whose size is not a multiple of the 32-byte record.
	ErrInvalidDescriptorSize = errors.New("invalid descriptor record size")
)

// Registry lookup errors.
var (
	// ErrInvalidDataType indicates a size query on the invalid data type.
	ErrInvalidDataType = errors.New("invalid data type has no size")

	// ErrUnknownName indicates a registry lookup with an unknown enum name.
	ErrUnknownName = errors.New("unknown enum name")
)

// Attribute and store errors.
var (
	// ErrNilBuffer indicates an attribute constructed over an absent byte range.
	ErrNilBuffer = errors.New("attribute byte range is nil")

	// ErrBufferAlignment indicates a byte range whose length is not a
	// multiple of the descriptor's element size.
	ErrBufferAlignment = errors.New("byte length is not a multiple of the element size")

	// ErrShortCopySource indicates an owned store initialized from a source
	// shorter than the allocated buffer.
	ErrShortCopySource = errors.New("copy source is shorter than the store buffer")

	// ErrInvalidElementCount indicates a store sized with a negative element count.
	ErrInvalidElementCount = errors.New("element count must not be negative")

	// ErrElementSizeMismatch indicates a typed view whose element type does
	// not match the descriptor's data type size.
	ErrElementSizeMismatch = errors.New("typed element size does not match descriptor data type size")
)

// Mesh collection errors.
var (
	// ErrDuplicateAttribute indicates an insertion whose canonical descriptor
	// string is already present in the collection.
	ErrDuplicateAttribute = errors.New("attribute descriptor already exists")

	// ErrAttributeNotFound indicates a lookup miss on the collection.
	ErrAttributeNotFound = errors.New("attribute not found")
)

// Container framing errors.
var (
	// ErrInvalidHeaderSize indicates a container shorter than its fixed header.
	ErrInvalidHeaderSize = errors.New("invalid container header size")

	// ErrInvalidMagicNumber indicates a container header without the BFAST magic.
	ErrInvalidMagicNumber = errors.New("invalid container magic number")

	// ErrInvalidArrayRange indicates an array range outside the data section
	// or overlapping the preceding array.
	ErrInvalidArrayRange = errors.New("invalid container array range")

	// ErrNameCountMismatch indicates a name table whose entry count does not
	// match the container's array count.
	ErrNameCountMismatch = errors.New("name table entry count does not match array count")

	// ErrArrayCountMismatch indicates a container whose array count is
	// inconsistent with its descriptor table.
	ErrArrayCountMismatch = errors.New("container array count does not match descriptor table")
)
