package section

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/g3dformat/g3d/endian"
	"github.com/g3dformat/g3d/errs"
	"github.com/g3dformat/g3d/format"
)

// AttributeDescriptor identifies one attribute channel of a mesh: which
// geometric element its values attach to, what role they play, and how the
// raw bytes group into typed elements.
//
// On the wire it is a fixed 32-byte record of five int32 fields in the order
// association, attribute type, attribute type index, data arity, data type,
// followed by 12 reserved zero bytes. Its canonical string form is
//
//	g3d:<association>:<attribute-type>:<attribute-type-index>:<data-type>:<data-arity>
//
// Note the string form places the data type before the arity while the
// binary layout stores the arity first; both orders are part of the wire
// contract and must not be changed.
//
// Descriptors are value types: validated once, never mutated, freely copied.
type AttributeDescriptor struct {
	// Association indicates the part of the geometry this attribute is
	// associated with.
	Association format.Association // byte offset 0-3

	// AttributeType is the semantic role of the attribute.
	AttributeType format.AttributeType // byte offset 4-7

	// AttributeTypeIndex disambiguates multiple channels of the same role,
	// e.g. uv0 and uv1, or distinct map channel ids.
	AttributeTypeIndex int32 // byte offset 8-11

	// DataArity is the number of primitive values per logical element
	// (e.g. 2 for UVs, 3 for positions). Always at least 1.
	DataArity int32 // byte offset 12-15

	// DataType is the primitive type of individual values.
	DataType format.DataType // byte offset 16-19
}

// Validate checks the descriptor's constrained fields.
//
// Returns:
//   - error: errs.ErrFieldOutOfRange if the association, attribute type or
//     data type is outside its enum's valid span (the invalid marker
//     included), or errs.ErrInvalidArity if the arity is not positive.
func (d AttributeDescriptor) Validate() error {
	if !d.Association.Valid() {
		return fmt.Errorf("association %d: %w", int32(d.Association), errs.ErrFieldOutOfRange)
	}
	if !d.AttributeType.Valid() {
		return fmt.Errorf("attribute type %d: %w", int32(d.AttributeType), errs.ErrFieldOutOfRange)
	}
	if d.DataArity <= 0 {
		return errs.ErrInvalidArity
	}
	if !d.DataType.Valid() {
		return fmt.Errorf("data type %d: %w", int32(d.DataType), errs.ErrFieldOutOfRange)
	}

	return nil
}

// DataTypeSize returns the byte width of a single primitive value.
func (d AttributeDescriptor) DataTypeSize() (int, error) {
	return d.DataType.Size()
}

// DataElementSize returns the byte size of one logical element, which is the
// data type size multiplied by the arity.
func (d AttributeDescriptor) DataElementSize() (int, error) {
	size, err := d.DataType.Size()
	if err != nil {
		return 0, err
	}

	return size * int(d.DataArity), nil
}

// String returns the canonical string form of the descriptor. It is a pure
// function of the five semantic fields and is deterministic: equal
// descriptors always produce byte-identical strings.
func (d AttributeDescriptor) String() string {
	var sb strings.Builder
	sb.Grow(48)
	sb.WriteString(CanonicalPrefix)
	sb.WriteByte(':')
	sb.WriteString(d.Association.String())
	sb.WriteByte(':')
	sb.WriteString(d.AttributeType.String())
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(int(d.AttributeTypeIndex)))
	sb.WriteByte(':')
	sb.WriteString(d.DataType.String())
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(int(d.DataArity)))

	return sb.String()
}

// Bytes returns the descriptor as a 32-byte record using the specified
// endian engine. The reserved tail is written as zero.
func (d *AttributeDescriptor) Bytes(engine endian.EndianEngine) []byte {
	var b [DescriptorSize]byte // stack allocation, it's faster than heap allocation
	d.put(b[:], engine)

	return b[:]
}

// WriteToSlice writes the descriptor record to a pre-allocated slice and
// returns the next write position.
//
// Parameters:
//   - data: Pre-allocated byte slice (must have space for 32 bytes at offset)
//   - offset: Starting position in data slice
//   - engine: Endian engine for byte order
//
// Returns:
//   - int: Next write position (offset + 32)
func (d *AttributeDescriptor) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	d.put(data[offset:offset+DescriptorSize], engine)
	return offset + DescriptorSize
}

func (d *AttributeDescriptor) put(b []byte, engine endian.EndianEngine) {
	engine.PutUint32(b[0:4], uint32(d.Association))         //nolint: gosec
	engine.PutUint32(b[4:8], uint32(d.AttributeType))       //nolint: gosec
	engine.PutUint32(b[8:12], uint32(d.AttributeTypeIndex)) //nolint: gosec
	engine.PutUint32(b[12:16], uint32(d.DataArity))         //nolint: gosec
	engine.PutUint32(b[16:20], uint32(d.DataType))          //nolint: gosec
	for i := DescriptorSize - DescriptorReservedBytes; i < DescriptorSize; i++ {
		b[i] = 0
	}
}

// ParseDescriptor parses an AttributeDescriptor from a 32-byte binary record
// and validates it. The reserved tail bytes are ignored.
//
// Parameters:
//   - data: Byte slice containing the record (must be at least 32 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - AttributeDescriptor: Parsed descriptor
//   - error: errs.ErrInvalidDescriptorSize if data is too short, or a
//     validation error per Validate
func ParseDescriptor(data []byte, engine endian.EndianEngine) (AttributeDescriptor, error) {
	if len(data) < DescriptorSize {
		return AttributeDescriptor{}, errs.ErrInvalidDescriptorSize
	}

	d := AttributeDescriptor{
		Association:        format.Association(engine.Uint32(data[0:4])),     //nolint: gosec
		AttributeType:      format.AttributeType(engine.Uint32(data[4:8])),   //nolint: gosec
		AttributeTypeIndex: int32(engine.Uint32(data[8:12])),                 //nolint: gosec
		DataArity:          int32(engine.Uint32(data[12:16])),                //nolint: gosec
		DataType:           format.DataType(engine.Uint32(data[16:20])),      //nolint: gosec
	}

	if err := d.Validate(); err != nil {
		return AttributeDescriptor{}, err
	}

	return d, nil
}

// ParseDescriptorString parses a canonical descriptor string.
//
// The parser requires the literal g3d prefix, exactly six colon-separated
// tokens, registry-known enum names, and non-negative base-10 integers for
// the index and arity fields. After validation it re-encodes the parsed
// descriptor and compares the result byte-for-byte against the input; a
// mismatch reports errs.ErrDescriptorRoundTrip. The self-check is part of
// the contract, guarding against grammar or registry drift between
// implementations, and is never skipped.
//
// Returns:
//   - AttributeDescriptor: Parsed, validated descriptor
//   - error: errs.ErrMalformedDescriptor on grammar violations,
//     errs.ErrUnknownName on unknown enum names, validation errors per
//     Validate, or errs.ErrDescriptorRoundTrip on re-encode mismatch
func ParseDescriptorString(s string) (AttributeDescriptor, error) {
	tokens := strings.Split(s, ":")
	if len(tokens) != CanonicalTokenCount {
		return AttributeDescriptor{}, fmt.Errorf("expected %d tokens, got %d: %w",
			CanonicalTokenCount, len(tokens), errs.ErrMalformedDescriptor)
	}
	if tokens[0] != CanonicalPrefix {
		return AttributeDescriptor{}, fmt.Errorf("expected %q prefix: %w", CanonicalPrefix, errs.ErrMalformedDescriptor)
	}

	assoc, err := format.ParseAssociation(tokens[1])
	if err != nil {
		return AttributeDescriptor{}, err
	}

	attrType, err := format.ParseAttributeType(tokens[2])
	if err != nil {
		return AttributeDescriptor{}, err
	}

	index, err := parseCanonicalInt(tokens[3])
	if err != nil {
		return AttributeDescriptor{}, fmt.Errorf("attribute type index %q: %w", tokens[3], err)
	}

	dataType, err := format.ParseDataType(tokens[4])
	if err != nil {
		return AttributeDescriptor{}, err
	}

	arity, err := parseCanonicalInt(tokens[5])
	if err != nil {
		return AttributeDescriptor{}, fmt.Errorf("data arity %q: %w", tokens[5], err)
	}

	d := AttributeDescriptor{
		Association:        assoc,
		AttributeType:      attrType,
		AttributeTypeIndex: index,
		DataArity:          arity,
		DataType:           dataType,
	}

	if err := d.Validate(); err != nil {
		return AttributeDescriptor{}, err
	}

	if encoded := d.String(); encoded != s {
		return AttributeDescriptor{}, fmt.Errorf("%q re-encodes as %q: %w", s, encoded, errs.ErrDescriptorRoundTrip)
	}

	return d, nil
}

// parseCanonicalInt parses a non-negative base-10 integer field of the
// canonical grammar. Signs are rejected; leading zeros are caught by the
// re-encode self-check in ParseDescriptorString.
func parseCanonicalInt(token string) (int32, error) {
	if token == "" || token[0] == '+' || token[0] == '-' {
		return 0, errs.ErrMalformedDescriptor
	}

	v, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return 0, errs.ErrMalformedDescriptor
	}

	return int32(v), nil
}
