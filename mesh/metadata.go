package mesh

import (
	"github.com/goccy/go-json"

	"github.com/g3dformat/g3d/endian"
)

// Metadata is the conventional JSON content of the container's meta array.
//
// The format itself treats the meta array as an opaque byte string; this
// type is a convenience for producers and consumers that agree on the
// default schema. All counts are advisory; array sizes always come from
// the attributes' own descriptors and byte ranges.
type Metadata struct {
	Generator   string `json:"generator,omitempty"`
	VertexCount int    `json:"vertexCount,omitempty"`
	FaceCount   int    `json:"faceCount,omitempty"`
	CornerCount int    `json:"cornerCount,omitempty"`
	PolygonSize int    `json:"polygonSize,omitempty"`

	// ByteOrder names the byte order attribute payloads were written in,
	// "little" or "big". Framing and descriptors are always little-endian;
	// payload bytes are the writer's native memory, so a consumer on a
	// host of the other order must swap multi-byte values itself.
	ByteOrder string `json:"byteOrder,omitempty"`
}

// SetMetadata marshals v as JSON into the mesh's meta array.
func (m *Mesh) SetMetadata(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.meta = data

	return nil
}

// MetadataBytes returns the raw meta array content. Nil when the mesh was
// built locally and no metadata has been set; in that case serialization
// synthesizes a default Metadata record from the advisory counts.
func (m *Mesh) MetadataBytes() []byte {
	return m.meta
}

// UnmarshalMetadata unmarshals the meta array into v. It fails when no
// metadata is present or the content is not valid JSON; the container
// itself never requires the meta array to parse.
func (m *Mesh) UnmarshalMetadata(v any) error {
	return json.Unmarshal(m.meta, v)
}

// defaultMetadata builds the meta array content used when none was set.
func (m *Mesh) defaultMetadata() ([]byte, error) {
	return json.Marshal(Metadata{
		VertexCount: m.vertexCount,
		FaceCount:   m.faceCount,
		CornerCount: m.cornerCount,
		PolygonSize: m.polygonSize,
		ByteOrder:   nativeByteOrderName(),
	})
}

// nativeByteOrderName returns the Metadata.ByteOrder value for this host.
func nativeByteOrderName() string {
	if endian.IsNativeLittleEndian() {
		return "little"
	}

	return "big"
}
