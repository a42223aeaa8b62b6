// Package bfast implements the BFAST container framing: a flat sequence of
// named byte arrays with an up-front index of offsets and lengths.
//
// A container is laid out as:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes)                                       │
//	│  - Magic (8 bytes): 0xBFA5                              │
//	│  - DataStart (8 bytes): offset of the first array       │
//	│  - DataEnd (8 bytes): offset past the last array        │
//	│  - NumArrays (8 bytes): array count incl. name table    │
//	├─────────────────────────────────────────────────────────┤
//	│ Ranges (NumArrays × 16 bytes)                           │
//	│  - Begin/End absolute offsets per array                 │
//	├─────────────────────────────────────────────────────────┤
//	│ Array 0: name table (NUL-terminated names)              │
//	├─────────────────────────────────────────────────────────┤
//	│ Arrays 1..N: payload bytes, 64-byte aligned begins      │
//	└─────────────────────────────────────────────────────────┘
//
// All header and range fields are little-endian. Zero-length arrays are
// permitted and meaningful to the layers above.
//
// Read is zero-copy: returned buffers alias the input stream. The package
// knows nothing about mesh semantics; the mesh package decides what each
// array means.
package bfast
