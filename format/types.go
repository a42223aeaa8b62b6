// Package format defines the closed enumerations of the g3d wire format.
//
// The three enums (DataType, Association, AttributeType) and their string
// names are part of the wire contract: every conforming implementation in
// any language must use the same numeric values and the same lower-case
// names. The tables are immutable package-level data with no runtime
// registration.
package format

import (
	"fmt"

	"github.com/g3dformat/g3d/errs"
)

type (
	// DataType identifies the primitive scalar type of an attribute's values.
	DataType int32

	// Association identifies the geometric element an attribute's values are
	// attached to. AssociationNone marks data addressed through a paired
	// index attribute; AssociationObject marks single whole-mesh values.
	Association int32

	// AttributeType identifies the semantic role of an attribute. It is
	// orthogonal to Association: a UV channel may be per-vertex or per-corner.
	AttributeType int32
)

const (
	DataUint8 DataType = iota
	DataUint16
	DataUint32
	DataUint64
	DataUint128
	DataInt8
	DataInt16
	DataInt32
	DataInt64
	DataInt128
	DataFloat16
	DataFloat32
	DataFloat64
	DataFloat128
	DataInvalid
)

const (
	AssociationVertex Association = iota
	AssociationFace
	AssociationCorner
	AssociationEdge
	AssociationObject
	AssociationNone
	AssociationInvalid
)

const (
	AttrCustom AttributeType = iota
	AttrCoordinate
	AttrIndex
	AttrFaceIndex
	AttrFaceSize
	AttrNormal
	AttrBinormal
	AttrTangent
	AttrMaterialID
	AttrPolygroup
	AttrUV
	AttrColor
	AttrSmoothing
	AttrCrease
	AttrHole
	AttrInvisibility
	AttrSelection
	AttrPerVertex
	AttrMapChannelData
	AttrMapChannelIndex
	AttrInvalid
)

var dataTypeNames = [...]string{
	DataUint8:    "uint8",
	DataUint16:   "uint16",
	DataUint32:   "uint32",
	DataUint64:   "uint64",
	DataUint128:  "uint128",
	DataInt8:     "int8",
	DataInt16:    "int16",
	DataInt32:    "int32",
	DataInt64:    "int64",
	DataInt128:   "int128",
	DataFloat16:  "float16",
	DataFloat32:  "float32",
	DataFloat64:  "float64",
	DataFloat128: "float128",
	DataInvalid:  "invalid",
}

// dataTypeSizes holds the fixed byte width of each non-invalid data type.
// float16 is 2 bytes; parsing its values needs external support but the
// format only tracks its width.
var dataTypeSizes = [...]int{
	DataUint8:    1,
	DataUint16:   2,
	DataUint32:   4,
	DataUint64:   8,
	DataUint128:  16,
	DataInt8:     1,
	DataInt16:    2,
	DataInt32:    4,
	DataInt64:    8,
	DataInt128:   16,
	DataFloat16:  2,
	DataFloat32:  4,
	DataFloat64:  8,
	DataFloat128: 16,
}

var associationNames = [...]string{
	AssociationVertex:  "vertex",
	AssociationFace:    "face",
	AssociationCorner:  "corner",
	AssociationEdge:    "edge",
	AssociationObject:  "object",
	AssociationNone:    "none",
	AssociationInvalid: "invalid",
}

var attributeTypeNames = [...]string{
	AttrCustom:          "custom",
	AttrCoordinate:      "coordinate",
	AttrIndex:           "index",
	AttrFaceIndex:       "faceindex",
	AttrFaceSize:        "facesize",
	AttrNormal:          "normal",
	AttrBinormal:        "binormal",
	AttrTangent:         "tangent",
	AttrMaterialID:      "materialid",
	AttrPolygroup:       "polygroup",
	AttrUV:              "uv",
	AttrColor:           "color",
	AttrSmoothing:       "smoothing",
	AttrCrease:          "crease",
	AttrHole:            "hole",
	AttrInvisibility:    "invisibility",
	AttrSelection:       "selection",
	AttrPerVertex:       "pervertex",
	AttrMapChannelData:  "mapchannel_data",
	AttrMapChannelIndex: "mapchannel_index",
	AttrInvalid:         "invalid",
}

var (
	dataTypesByName      = reverse(dataTypeNames[:])
	associationsByName   = reverse(associationNames[:])
	attributeTypesByName = reverse(attributeTypeNames[:])
)

func reverse(names []string) map[string]int32 {
	m := make(map[string]int32, len(names))
	for i, name := range names {
		m[name] = int32(i) //nolint: gosec
	}

	return m
}

// Valid reports whether d is a well-formed, non-invalid data type.
func (d DataType) Valid() bool {
	return d >= 0 && d < DataInvalid
}

// Size returns the byte width of one value of this data type.
//
// Returns:
//   - int: Width in bytes (1, 2, 4, 8 or 16)
//   - error: errs.ErrInvalidDataType for DataInvalid or out-of-range values
func (d DataType) Size() (int, error) {
	if !d.Valid() {
		return 0, errs.ErrInvalidDataType
	}

	return dataTypeSizes[d], nil
}

func (d DataType) String() string {
	if d < 0 || int(d) >= len(dataTypeNames) {
		return "invalid"
	}

	return dataTypeNames[d]
}

// ParseDataType resolves a wire-format name to its DataType value.
func ParseDataType(name string) (DataType, error) {
	v, ok := dataTypesByName[name]
	if !ok {
		return DataInvalid, fmt.Errorf("data type %q: %w", name, errs.ErrUnknownName)
	}

	return DataType(v), nil
}

// Valid reports whether a is a well-formed, non-invalid association.
func (a Association) Valid() bool {
	return a >= 0 && a < AssociationInvalid
}

func (a Association) String() string {
	if a < 0 || int(a) >= len(associationNames) {
		return "invalid"
	}

	return associationNames[a]
}

// ParseAssociation resolves a wire-format name to its Association value.
func ParseAssociation(name string) (Association, error) {
	v, ok := associationsByName[name]
	if !ok {
		return AssociationInvalid, fmt.Errorf("association %q: %w", name, errs.ErrUnknownName)
	}

	return Association(v), nil
}

// Valid reports whether t is a well-formed, non-invalid attribute type.
func (t AttributeType) Valid() bool {
	return t >= 0 && t < AttrInvalid
}

func (t AttributeType) String() string {
	if t < 0 || int(t) >= len(attributeTypeNames) {
		return "invalid"
	}

	return attributeTypeNames[t]
}

// ParseAttributeType resolves a wire-format name to its AttributeType value.
func ParseAttributeType(name string) (AttributeType, error) {
	v, ok := attributeTypesByName[name]
	if !ok {
		return AttrInvalid, fmt.Errorf("attribute type %q: %w", name, errs.ErrUnknownName)
	}

	return AttributeType(v), nil
}
