package mesh

import (
	"fmt"

	"github.com/g3dformat/g3d/errs"
	"github.com/g3dformat/g3d/format"
	"github.com/g3dformat/g3d/internal/hash"
	"github.com/g3dformat/g3d/internal/options"
	"github.com/g3dformat/g3d/section"
)

// Mesh is a collection of attribute stores uniquely keyed by canonical
// descriptor string. Insertion order is preserved and drives the descriptor
// table and array ordering on serialization, so writer and reader stay in
// sync without any out-of-band agreement.
//
// The vertex, face and corner counts and the polygon size are advisory
// metadata only: each attribute is self-describing through its own
// descriptor and byte range, and the collection never cross-checks element
// counts against them.
//
// A Mesh is not internally synchronized. Concurrent readers are safe;
// writers need exclusive access.
type Mesh struct {
	entries []entry
	index   map[uint64]int // hash.ID(key) → entries position

	meta []byte // raw metadata bytes for the container's meta array

	vertexCount int
	faceCount   int
	cornerCount int
	polygonSize int
}

// entry pairs one attribute store with its optional index buffer. A nil or
// empty index buffer means the attribute's data is associated directly with
// elements and needs no indirection layer.
type entry struct {
	key       string
	store     AttributeStore
	indexData []byte
}

// Option configures a Mesh at construction time.
type Option = options.Option[*Mesh]

// New creates an empty mesh collection.
//
// The polygon size defaults to 3 (triangles).
func New(opts ...Option) (*Mesh, error) {
	m := &Mesh{
		index:       make(map[uint64]int),
		polygonSize: 3,
	}

	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	return m, nil
}

// WithVertexCount sets the advisory vertex count.
func WithVertexCount(count int) Option {
	return options.NoError(func(m *Mesh) { m.vertexCount = count })
}

// WithFaceCount sets the advisory face count.
func WithFaceCount(count int) Option {
	return options.NoError(func(m *Mesh) { m.faceCount = count })
}

// WithCornerCount sets the advisory corner count.
func WithCornerCount(count int) Option {
	return options.NoError(func(m *Mesh) { m.cornerCount = count })
}

// WithPolygonSize sets the advisory polygon size.
func WithPolygonSize(size int) Option {
	return options.NoError(func(m *Mesh) { m.polygonSize = size })
}

// WithMetadataBytes sets the raw metadata bytes written as the container's
// meta array. The content is opaque to the format; JSON text by convention.
func WithMetadataBytes(meta []byte) Option {
	return options.NoError(func(m *Mesh) { m.meta = meta })
}

// VertexCount returns the advisory vertex count.
func (m *Mesh) VertexCount() int { return m.vertexCount }

// FaceCount returns the advisory face count.
func (m *Mesh) FaceCount() int { return m.faceCount }

// CornerCount returns the advisory corner count.
func (m *Mesh) CornerCount() int { return m.cornerCount }

// PolygonSize returns the advisory polygon size.
func (m *Mesh) PolygonSize() int { return m.polygonSize }

// Len returns the number of attributes in the collection.
func (m *Mesh) Len() int {
	return len(m.entries)
}

// Keys returns the canonical descriptor strings in insertion order.
func (m *Mesh) Keys() []string {
	keys := make([]string, len(m.entries))
	for i := range m.entries {
		keys[i] = m.entries[i].key
	}

	return keys
}

// lookup resolves a key to its entry position. The hash index gives O(1)
// hits; a differing key under the same hash falls back to a linear scan so
// a hash collision can never alias two channels.
func (m *Mesh) lookup(key string) (int, bool) {
	if i, ok := m.index[hash.ID(key)]; ok && m.entries[i].key == key {
		return i, true
	}

	for i := range m.entries {
		if m.entries[i].key == key {
			return i, true
		}
	}

	return 0, false
}

// insert appends a store under its canonical key, rejecting duplicates.
// Nothing is mutated on failure.
func (m *Mesh) insert(store AttributeStore, indexData []byte) error {
	key := store.Descriptor().String()
	if _, ok := m.lookup(key); ok {
		return fmt.Errorf("%q: %w", key, errs.ErrDuplicateAttribute)
	}

	m.entries = append(m.entries, entry{key: key, store: store, indexData: indexData})
	m.index[hash.ID(key)] = len(m.entries) - 1

	return nil
}

// Add creates an owning store with a zero-initialized buffer of elementCount
// elements and inserts it under the descriptor's canonical key.
//
// Returns:
//   - AttributeStore: The inserted store, for filling via Data
//   - error: errs.ErrDuplicateAttribute on a key collision, plus the errors
//     of NewOwnedStore
func (m *Mesh) Add(desc section.AttributeDescriptor, elementCount int) (AttributeStore, error) {
	store, err := NewOwnedStore(desc, elementCount)
	if err != nil {
		return nil, err
	}

	if err := m.insert(store, nil); err != nil {
		return nil, err
	}

	return store, nil
}

// AddFrom creates an owning store initialized by a length-checked copy from
// source and inserts it.
func (m *Mesh) AddFrom(desc section.AttributeDescriptor, elementCount int, source []byte) (AttributeStore, error) {
	store, err := NewOwnedStoreFrom(desc, elementCount, source)
	if err != nil {
		return nil, err
	}

	if err := m.insert(store, nil); err != nil {
		return nil, err
	}

	return store, nil
}

// AddRef creates a reference store aliasing data and inserts it. The caller
// keeps ownership of data and must keep it valid for the mesh's lifetime.
func (m *Mesh) AddRef(desc section.AttributeDescriptor, data []byte) (AttributeStore, error) {
	store, err := NewRefStore(desc, data)
	if err != nil {
		return nil, err
	}

	if err := m.insert(store, nil); err != nil {
		return nil, err
	}

	return store, nil
}

// AddKey parses a canonical descriptor string and adds an attribute under it.
// A nil source yields an owning store with a zeroed buffer; a non-nil source
// yields a reference store aliasing its first elementCount elements, matching
// the typed convenience constructors. Use AddFrom for an owning copy.
func (m *Mesh) AddKey(key string, elementCount int, source []byte) (AttributeStore, error) {
	desc, err := section.ParseDescriptorString(key)
	if err != nil {
		return nil, err
	}

	if source == nil {
		return m.Add(desc, elementCount)
	}

	return m.addRefSized(desc, elementCount, source)
}

// Get returns the store under key.
//
// Returns:
//   - AttributeStore: The store
//   - error: errs.ErrAttributeNotFound on a lookup miss
func (m *Mesh) Get(key string) (AttributeStore, error) {
	i, ok := m.lookup(key)
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, errs.ErrAttributeNotFound)
	}

	return m.entries[i].store, nil
}

// Remove deletes the attribute under key, preserving the order of the rest.
func (m *Mesh) Remove(key string) error {
	i, ok := m.lookup(key)
	if !ok {
		return fmt.Errorf("%q: %w", key, errs.ErrAttributeNotFound)
	}

	m.entries = append(m.entries[:i], m.entries[i+1:]...)

	// Rebuild the hash index: positions after i shifted down.
	m.index = make(map[uint64]int, len(m.entries))
	for j := range m.entries {
		m.index[hash.ID(m.entries[j].key)] = j
	}

	return nil
}

// IndexBuffer returns the index buffer paired with the attribute under key.
// A nil result means the attribute needs no indirection layer.
func (m *Mesh) IndexBuffer(key string) ([]byte, error) {
	i, ok := m.lookup(key)
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, errs.ErrAttributeNotFound)
	}

	return m.entries[i].indexData, nil
}

// SetIndexBuffer pairs an index buffer with the attribute under key. The
// buffer is carried verbatim next to the attribute's data in the container.
func (m *Mesh) SetIndexBuffer(key string, data []byte) error {
	i, ok := m.lookup(key)
	if !ok {
		return fmt.Errorf("%q: %w", key, errs.ErrAttributeNotFound)
	}

	m.entries[i].indexData = data

	return nil
}

// descriptor builds a descriptor for the convenience constructors.
func descriptor(assoc format.Association, attrType format.AttributeType, index int32, dataType format.DataType, arity int32) section.AttributeDescriptor {
	return section.AttributeDescriptor{
		Association:        assoc,
		AttributeType:      attrType,
		AttributeTypeIndex: index,
		DataArity:          arity,
		DataType:           dataType,
	}
}

// addRefSized inserts a reference store aliasing the first elementCount
// elements of raw.
func (m *Mesh) addRefSized(desc section.AttributeDescriptor, elementCount int, raw []byte) (AttributeStore, error) {
	if elementCount < 0 {
		return nil, errs.ErrInvalidElementCount
	}

	elementSize, err := desc.DataElementSize()
	if err != nil {
		return nil, err
	}

	byteSize := elementCount * elementSize
	if len(raw) < byteSize {
		return nil, fmt.Errorf("%d source bytes for %d elements of %d bytes: %w",
			len(raw), elementCount, elementSize, errs.ErrShortCopySource)
	}

	return m.AddRef(desc, raw[:byteSize])
}

// addTyped adds an attribute of elementCount elements. A nil values slice
// yields an owning store with a zeroed buffer for the caller to fill; a
// non-nil slice yields a reference store aliasing the slice's memory (no
// copy), so the caller must keep the slice alive and stable for the mesh's
// lifetime.
func addTyped[T Primitive](m *Mesh, desc section.AttributeDescriptor, elementCount int, values []T) (AttributeStore, error) {
	if values == nil {
		return m.Add(desc, elementCount)
	}

	return m.addRefSized(desc, elementCount, bytesOf(values))
}

// AddVertices adds the vertex position channel g3d:vertex:coordinate:0:float32:3.
// When values is non-nil it must hold at least count×3 floats; the channel
// aliases the slice rather than copying it.
func (m *Mesh) AddVertices(count int, values []float32) (AttributeStore, error) {
	return addTyped(m, descriptor(format.AssociationVertex, format.AttrCoordinate, 0, format.DataFloat32, 3), count, values)
}

// AddVerticesFloat4 adds vertex positions with a padding component,
// g3d:vertex:coordinate:0:float32:4.
func (m *Mesh) AddVerticesFloat4(count int, values []float32) (AttributeStore, error) {
	return addTyped(m, descriptor(format.AssociationVertex, format.AttrCoordinate, 0, format.DataFloat32, 4), count, values)
}

// AddIndices adds the corner index channel g3d:corner:index:0:int32:1.
func (m *Mesh) AddIndices(count int, values []int32) (AttributeStore, error) {
	return addTyped(m, descriptor(format.AssociationCorner, format.AttrIndex, 0, format.DataInt32, 1), count, values)
}

// AddUVs adds a per-vertex UV set, g3d:vertex:uv:<set>:float32:2.
func (m *Mesh) AddUVs(set int32, count int, values []float32) (AttributeStore, error) {
	return addTyped(m, descriptor(format.AssociationVertex, format.AttrUV, set, format.DataFloat32, 2), count, values)
}

// AddVertexNormals adds the per-vertex normal channel g3d:vertex:normal:0:float32:3.
func (m *Mesh) AddVertexNormals(count int, values []float32) (AttributeStore, error) {
	return addTyped(m, descriptor(format.AssociationVertex, format.AttrNormal, 0, format.DataFloat32, 3), count, values)
}

// AddMaterialIDs adds the per-face material id channel g3d:face:materialid:0:int32:1.
func (m *Mesh) AddMaterialIDs(count int, values []int32) (AttributeStore, error) {
	return addTyped(m, descriptor(format.AssociationFace, format.AttrMaterialID, 0, format.DataInt32, 1), count, values)
}

// AddMapChannelData adds the data half of a map channel,
// g3d:none:mapchannel_data:<id>:float32:3. The none association marks the
// values as addressable only through the paired index attribute.
func (m *Mesh) AddMapChannelData(id int32, count int, values []float32) (AttributeStore, error) {
	return addTyped(m, descriptor(format.AssociationNone, format.AttrMapChannelData, id, format.DataFloat32, 3), count, values)
}

// AddMapChannelIndex adds the index half of a map channel,
// g3d:corner:mapchannel_index:<id>:int32:1. Its values index into the paired
// data attribute, one per corner.
func (m *Mesh) AddMapChannelIndex(id int32, count int, values []int32) (AttributeStore, error) {
	return addTyped(m, descriptor(format.AssociationCorner, format.AttrMapChannelIndex, id, format.DataInt32, 1), count, values)
}

// AddMapChannel adds a complete map channel: a mapchannel_data attribute
// holding textureVertices as float triples and a mapchannel_index attribute
// holding textureIndices as per-corner indices into it. This is the indirect
// referencing mechanism of 3ds Max map channels and FBX layer elements.
//
// len(textureVertices) must be a multiple of 3. If the index insertion
// fails, the data insertion is rolled back so the mesh is left unchanged.
func (m *Mesh) AddMapChannel(id int32, textureVertices []float32, textureIndices []int32) error {
	dataStore, err := m.AddMapChannelData(id, len(textureVertices)/3, textureVertices)
	if err != nil {
		return err
	}

	if _, err := m.AddMapChannelIndex(id, len(textureIndices), textureIndices); err != nil {
		_ = m.Remove(dataStore.Descriptor().String())
		return err
	}

	return nil
}
