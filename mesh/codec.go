package mesh

import (
	"fmt"
	"io"

	"github.com/g3dformat/g3d/bfast"
	"github.com/g3dformat/g3d/endian"
	"github.com/g3dformat/g3d/errs"
	"github.com/g3dformat/g3d/section"
)

// Container array layout: the meta array and the descriptor table come
// first, then one data/index array pair per attribute in key order. The
// total logical array count is always 2 + 2N for N attributes.
const (
	metaArrayIndex        = 0
	descriptorsArrayIndex = 1
	fixedArrayCount       = 2

	metaArrayName        = "meta"
	descriptorsArrayName = "descriptors"
	indexArraySuffix     = ":index"
)

// Buffers flattens the mesh into the container's logical array sequence.
//
// Data and index arrays alias the attribute stores; the caller must not
// mutate the mesh until the buffers have been serialized.
func (m *Mesh) Buffers() ([]bfast.Buffer, error) {
	engine := endian.GetLittleEndianEngine()

	meta := m.meta
	if meta == nil {
		var err error
		if meta, err = m.defaultMetadata(); err != nil {
			return nil, err
		}
	}

	descs := make([]section.AttributeDescriptor, len(m.entries))
	for i := range m.entries {
		descs[i] = m.entries[i].store.Descriptor()
	}

	buffers := make([]bfast.Buffer, 0, fixedArrayCount+2*len(m.entries))
	buffers = append(buffers,
		bfast.Buffer{Name: metaArrayName, Data: meta},
		bfast.Buffer{Name: descriptorsArrayName, Data: section.DescriptorTableBytes(descs, engine)},
	)

	for i := range m.entries {
		e := &m.entries[i]
		buffers = append(buffers,
			bfast.Buffer{Name: e.key, Data: e.store.Bytes()},
			bfast.Buffer{Name: e.key + indexArraySuffix, Data: e.indexData},
		)
	}

	return buffers, nil
}

// Blob serializes the mesh into a BFAST container byte slice.
func (m *Mesh) Blob() ([]byte, error) {
	buffers, err := m.Buffers()
	if err != nil {
		return nil, err
	}

	return bfast.Bytes(buffers), nil
}

// WriteTo serializes the mesh into w. It implements io.WriterTo.
func (m *Mesh) WriteTo(w io.Writer) (int64, error) {
	buffers, err := m.Buffers()
	if err != nil {
		return 0, err
	}

	return bfast.Write(w, buffers)
}

// Read reconstructs a mesh from a serialized container.
//
// The reconstruction is zero-copy: every attribute is a reference store
// aliasing data, so data must stay alive and unmodified for the lifetime of
// the returned mesh. Callers that need an independent mesh should copy data
// first.
//
// The meta array is kept as opaque bytes; when it happens to parse as the
// default Metadata schema, the advisory counts are populated from it.
//
// Returns:
//   - *Mesh: Reconstructed collection with the container's key order
//   - error: bfast framing errors, descriptor table errors,
//     errs.ErrArrayCountMismatch if the array count is not 2+2N, or
//     attribute alignment errors
func Read(data []byte) (*Mesh, error) {
	buffers, err := bfast.Read(data)
	if err != nil {
		return nil, err
	}

	if len(buffers) < fixedArrayCount {
		return nil, fmt.Errorf("%d arrays, need meta and descriptor table: %w",
			len(buffers), errs.ErrArrayCountMismatch)
	}

	engine := endian.GetLittleEndianEngine()
	descs, err := section.ParseDescriptorTable(buffers[descriptorsArrayIndex].Data, engine)
	if err != nil {
		return nil, err
	}

	if len(buffers) != fixedArrayCount+2*len(descs) {
		return nil, fmt.Errorf("%d arrays for %d descriptors: %w",
			len(buffers), len(descs), errs.ErrArrayCountMismatch)
	}

	m, err := New()
	if err != nil {
		return nil, err
	}

	m.meta = buffers[metaArrayIndex].Data

	var md Metadata
	if err := m.UnmarshalMetadata(&md); err == nil {
		m.vertexCount = md.VertexCount
		m.faceCount = md.FaceCount
		m.cornerCount = md.CornerCount
		if md.PolygonSize != 0 {
			m.polygonSize = md.PolygonSize
		}
	}

	for i, desc := range descs {
		dataBuf := buffers[fixedArrayCount+2*i]
		indexBuf := buffers[fixedArrayCount+2*i+1]

		store, err := NewRefStore(desc, dataBuf.Data)
		if err != nil {
			return nil, fmt.Errorf("attribute %d (%s): %w", i, desc, err)
		}

		indexData := indexBuf.Data
		if len(indexData) == 0 {
			indexData = nil
		}

		if err := m.insert(store, indexData); err != nil {
			return nil, err
		}
	}

	return m, nil
}
