// Package section defines the low-level binary structures and constants of
// the g3d format.
//
// Its central type is the AttributeDescriptor, a fixed 32-byte record that
// makes every attribute channel self-describing. The descriptor has two wire
// encodings, both part of the cross-implementation contract:
//
// Binary layout (little-endian int32 fields):
//
//	┌────────────────────────────────────────────────────┐
//	│ Association           (4 bytes)   offset 0         │
//	│ AttributeType         (4 bytes)   offset 4         │
//	│ AttributeTypeIndex    (4 bytes)   offset 8         │
//	│ DataArity             (4 bytes)   offset 12        │
//	│ DataType              (4 bytes)   offset 16        │
//	│ Reserved              (12 bytes)  offset 20        │
//	└────────────────────────────────────────────────────┘
//
// Canonical string form:
//
//	g3d:<association>:<attribute-type>:<attribute-type-index>:<data-type>:<data-arity>
//
// Parsing a canonical string always re-encodes the result and compares it to
// the input, so any drift between a producer's and a consumer's registries is
// detected at parse time rather than surfacing as silently misinterpreted
// geometry.
package section
