// Package g3d provides a simple, efficient, generic binary format for
// storing and transmitting 3D mesh geometry and per-element attribute data.
//
// A g3d container is a collection of attribute channels. Each channel is
// self-describing through a fixed 32-byte descriptor that names the
// geometric element it attaches to (vertex, face, corner, edge, whole
// object, or none), its semantic role (positions, indices, UVs, normals,
// material ids, ...), a role index for repeated channels, the primitive
// data type, and the arity (the number of primitives per logical element).
// Every descriptor also has a canonical, round-trippable string form:
//
//	g3d:<association>:<attribute-type>:<attribute-type-index>:<data-type>:<data-arity>
//
// Channels are collected in a mesh.Mesh and framed for storage or transport
// as a BFAST container: a metadata array, the descriptor table, then one
// data/index array pair per channel. Deserialization reconstructs the
// collection without copying payload bytes.
//
// # Basic Usage
//
// Building and serializing a mesh:
//
//	import "github.com/g3dformat/g3d"
//
//	m, _ := g3d.New(g3d.WithVertexCount(4), g3d.WithCornerCount(6))
//
//	positions, _ := m.AddVertices(4, nil)
//	pos, _ := mesh.Data[float32](positions.Attribute())
//	copy(pos, []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0})
//
//	indices, _ := m.AddIndices(6, []int32{0, 1, 2, 2, 3, 0})
//	_ = indices
//
//	blob, _ := m.Blob()
//
// Reading it back:
//
//	decoded, _ := g3d.Read(blob)
//	for _, key := range decoded.Keys() {
//	    store, _ := decoded.Get(key)
//	    fmt.Printf("%s: %d elements\n", key, store.Attribute().NumElements())
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the mesh
// package, simplifying the most common use cases. For fine-grained control
// over descriptors, stores and framing, use the mesh, section and bfast
// packages directly.
package g3d

import (
	"github.com/g3dformat/g3d/internal/hash"
	"github.com/g3dformat/g3d/mesh"
	"github.com/g3dformat/g3d/section"
)

// Version is the g3d format version implemented by this module.
const Version = "0.9.0"

// Option configures a mesh at construction time.
type Option = mesh.Option

// Re-exported mesh options, so simple callers only import this package.
var (
	WithVertexCount   = mesh.WithVertexCount
	WithFaceCount     = mesh.WithFaceCount
	WithCornerCount   = mesh.WithCornerCount
	WithPolygonSize   = mesh.WithPolygonSize
	WithMetadataBytes = mesh.WithMetadataBytes
)

// New creates an empty mesh attribute collection.
func New(opts ...Option) (*mesh.Mesh, error) {
	return mesh.New(opts...)
}

// Read reconstructs a mesh from a serialized g3d container.
//
// The returned mesh aliases data; keep the slice alive and unmodified for
// the mesh's lifetime.
func Read(data []byte) (*mesh.Mesh, error) {
	return mesh.Read(data)
}

// ParseDescriptor parses a canonical descriptor string such as
// "g3d:vertex:coordinate:0:float32:3", including the mandatory re-encode
// self-check.
func ParseDescriptor(s string) (section.AttributeDescriptor, error) {
	return section.ParseDescriptorString(s)
}

// AttributeID converts a canonical descriptor string to its 64-bit xxHash64
// identifier, the hash the mesh collection keys its lookup index by.
// Deterministic: the same string always produces the same ID.
func AttributeID(key string) uint64 {
	return hash.ID(key)
}
