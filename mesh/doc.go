// Package mesh provides the in-memory model of a g3d geometry container:
// typed attribute views over flat byte ranges, the two store ownership
// variants backing them, and the insertion-ordered collection that maps
// canonical descriptor strings to stores.
//
// # Attributes and stores
//
// An Attribute pairs a validated descriptor with a byte range whose length
// must divide evenly into elements of data type size × arity. Stores back
// that range in one of two ways: a RefStore aliases caller-owned memory
// without allocating, an OwnedStore allocates and owns its buffer
// (optionally copy-initialized with a checked length). Both expose the same
// typed access through the generic Data function, which reinterprets the
// bytes as primitives without copying.
//
// # Serialization
//
// A Mesh flattens into the container's fixed logical array sequence (meta,
// descriptor table, then a data/index array pair per attribute in key
// order), and Read reconstructs a collection from such a stream without
// copying payload bytes. Insertion order is significant: it is what keeps
// writer and reader descriptor tables aligned.
//
// # Concurrency
//
// Nothing here is internally synchronized. Concurrent readers of one Mesh
// are safe; any writer needs exclusive access. Reference stores additionally
// require the aliased memory to outlive them unmodified.
package mesh
