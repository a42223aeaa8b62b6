package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/g3dformat/g3d/endian"
	"github.com/g3dformat/g3d/errs"
	"github.com/g3dformat/g3d/format"
)

func validDescriptor() AttributeDescriptor {
	return AttributeDescriptor{
		Association:        format.AssociationVertex,
		AttributeType:      format.AttrCoordinate,
		AttributeTypeIndex: 0,
		DataArity:          3,
		DataType:           format.DataFloat32,
	}
}

func TestAttributeDescriptor_Validate(t *testing.T) {
	t.Run("Valid descriptor", func(t *testing.T) {
		require.NoError(t, validDescriptor().Validate())
	})

	t.Run("Association out of range", func(t *testing.T) {
		d := validDescriptor()
		d.Association = format.AssociationInvalid
		require.ErrorIs(t, d.Validate(), errs.ErrFieldOutOfRange)

		d.Association = -1
		require.ErrorIs(t, d.Validate(), errs.ErrFieldOutOfRange)
	})

	t.Run("Attribute type out of range", func(t *testing.T) {
		d := validDescriptor()
		d.AttributeType = format.AttrInvalid
		require.ErrorIs(t, d.Validate(), errs.ErrFieldOutOfRange)
	})

	t.Run("Data type out of range", func(t *testing.T) {
		d := validDescriptor()
		d.DataType = format.DataInvalid
		require.ErrorIs(t, d.Validate(), errs.ErrFieldOutOfRange)
	})

	t.Run("Non-positive arity", func(t *testing.T) {
		d := validDescriptor()
		d.DataArity = 0
		require.ErrorIs(t, d.Validate(), errs.ErrInvalidArity)

		d.DataArity = -2
		require.ErrorIs(t, d.Validate(), errs.ErrInvalidArity)
	})
}

func TestAttributeDescriptor_String(t *testing.T) {
	d := validDescriptor()
	require.Equal(t, "g3d:vertex:coordinate:0:float32:3", d.String())

	d = AttributeDescriptor{
		Association:        format.AssociationCorner,
		AttributeType:      format.AttrMapChannelIndex,
		AttributeTypeIndex: 7,
		DataArity:          1,
		DataType:           format.DataInt32,
	}
	require.Equal(t, "g3d:corner:mapchannel_index:7:int32:1", d.String())
}

func TestParseDescriptorString_RoundTrip(t *testing.T) {
	// At least one representative value per enum per field.
	cases := []string{
		"g3d:vertex:coordinate:0:float32:3",
		"g3d:face:materialid:0:int32:1",
		"g3d:corner:index:0:int32:1",
		"g3d:edge:crease:0:float32:1",
		"g3d:object:custom:0:float64:16",
		"g3d:none:mapchannel_data:3:float32:3",
		"g3d:vertex:uv:1:float32:2",
		"g3d:vertex:normal:0:float32:3",
		"g3d:vertex:binormal:0:float32:3",
		"g3d:vertex:tangent:0:float32:3",
		"g3d:face:facesize:0:uint32:1",
		"g3d:face:faceindex:0:uint32:1",
		"g3d:face:polygroup:0:uint64:1",
		"g3d:vertex:color:0:uint8:4",
		"g3d:face:smoothing:0:uint32:1",
		"g3d:face:hole:0:uint8:1",
		"g3d:face:invisibility:0:uint8:1",
		"g3d:vertex:selection:0:float16:1",
		"g3d:vertex:pervertex:0:float128:1",
		"g3d:corner:mapchannel_index:3:int32:1",
		"g3d:vertex:custom:0:uint16:1",
		"g3d:vertex:custom:0:uint128:1",
		"g3d:vertex:custom:0:int8:1",
		"g3d:vertex:custom:0:int16:1",
		"g3d:vertex:custom:0:int64:2",
		"g3d:vertex:custom:0:int128:1",
	}

	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			d, err := ParseDescriptorString(s)
			require.NoError(t, err)
			require.Equal(t, s, d.String())

			// Field-wise round trip through the string form.
			again, err := ParseDescriptorString(d.String())
			require.NoError(t, err)
			require.Equal(t, d, again)
		})
	}
}

func TestParseDescriptorString_Rejection(t *testing.T) {
	t.Run("Missing prefix", func(t *testing.T) {
		_, err := ParseDescriptorString("gd3:vertex:coordinate:0:float32:3")
		require.ErrorIs(t, err, errs.ErrMalformedDescriptor)
	})

	t.Run("Too few tokens", func(t *testing.T) {
		_, err := ParseDescriptorString("g3d:vertex:coordinate:0:float32")
		require.ErrorIs(t, err, errs.ErrMalformedDescriptor)
	})

	t.Run("Too many tokens", func(t *testing.T) {
		_, err := ParseDescriptorString("g3d:vertex:coordinate:0:float32:3:extra")
		require.ErrorIs(t, err, errs.ErrMalformedDescriptor)
	})

	t.Run("Non-numeric arity", func(t *testing.T) {
		_, err := ParseDescriptorString("g3d:vertex:coordinate:0:float32:three")
		require.ErrorIs(t, err, errs.ErrMalformedDescriptor)
	})

	t.Run("Non-numeric index", func(t *testing.T) {
		_, err := ParseDescriptorString("g3d:vertex:coordinate:x:float32:3")
		require.ErrorIs(t, err, errs.ErrMalformedDescriptor)
	})

	t.Run("Signed index", func(t *testing.T) {
		_, err := ParseDescriptorString("g3d:vertex:coordinate:-1:float32:3")
		require.ErrorIs(t, err, errs.ErrMalformedDescriptor)

		_, err = ParseDescriptorString("g3d:vertex:coordinate:+1:float32:3")
		require.ErrorIs(t, err, errs.ErrMalformedDescriptor)
	})

	t.Run("Leading zeros", func(t *testing.T) {
		// "01" parses as 1 but re-encodes as "1", so the self-check trips.
		_, err := ParseDescriptorString("g3d:vertex:coordinate:01:float32:3")
		require.ErrorIs(t, err, errs.ErrDescriptorRoundTrip)
	})

	t.Run("Unknown association", func(t *testing.T) {
		_, err := ParseDescriptorString("g3d:voxel:coordinate:0:float32:3")
		require.ErrorIs(t, err, errs.ErrUnknownName)
	})

	t.Run("Unknown data type", func(t *testing.T) {
		_, err := ParseDescriptorString("g3d:vertex:coordinate:0:float24:3")
		require.ErrorIs(t, err, errs.ErrUnknownName)
	})

	t.Run("Invalid enum name", func(t *testing.T) {
		// "invalid" is a registry name but fails range validation.
		_, err := ParseDescriptorString("g3d:invalid:coordinate:0:float32:3")
		require.ErrorIs(t, err, errs.ErrFieldOutOfRange)
	})

	t.Run("Zero arity", func(t *testing.T) {
		_, err := ParseDescriptorString("g3d:vertex:coordinate:0:float32:0")
		require.ErrorIs(t, err, errs.ErrInvalidArity)
	})
}

func TestAttributeDescriptor_Bytes(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	d := AttributeDescriptor{
		Association:        format.AssociationCorner,
		AttributeType:      format.AttrUV,
		AttributeTypeIndex: 2,
		DataArity:          2,
		DataType:           format.DataFloat32,
	}

	data := d.Bytes(engine)
	require.Len(t, data, DescriptorSize)

	require.Equal(t, uint32(format.AssociationCorner), engine.Uint32(data[0:4]))
	require.Equal(t, uint32(format.AttrUV), engine.Uint32(data[4:8]))
	require.Equal(t, uint32(2), engine.Uint32(data[8:12]))
	require.Equal(t, uint32(2), engine.Uint32(data[12:16]))
	require.Equal(t, uint32(format.DataFloat32), engine.Uint32(data[16:20]))

	// Reserved tail must be zero.
	for i := DescriptorSize - DescriptorReservedBytes; i < DescriptorSize; i++ {
		require.Zero(t, data[i])
	}

	parsed, err := ParseDescriptor(data, engine)
	require.NoError(t, err)
	require.Equal(t, d, parsed)
}

func TestParseDescriptor(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	t.Run("Too short", func(t *testing.T) {
		_, err := ParseDescriptor(make([]byte, DescriptorSize-1), engine)
		require.ErrorIs(t, err, errs.ErrInvalidDescriptorSize)
	})

	t.Run("Reserved bytes ignored", func(t *testing.T) {
		d := validDescriptor()
		data := d.Bytes(engine)
		for i := DescriptorSize - DescriptorReservedBytes; i < DescriptorSize; i++ {
			data[i] = 0xAB
		}

		parsed, err := ParseDescriptor(data, engine)
		require.NoError(t, err)
		require.Equal(t, d, parsed)
	})

	t.Run("Invalid fields rejected", func(t *testing.T) {
		data := make([]byte, DescriptorSize)
		engine.PutUint32(data[0:4], 99) // association far out of range
		engine.PutUint32(data[12:16], 1)

		_, err := ParseDescriptor(data, engine)
		require.ErrorIs(t, err, errs.ErrFieldOutOfRange)
	})
}

func TestDescriptorTable(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	descs := []AttributeDescriptor{
		validDescriptor(),
		{
			Association:        format.AssociationCorner,
			AttributeType:      format.AttrIndex,
			AttributeTypeIndex: 0,
			DataArity:          1,
			DataType:           format.DataInt32,
		},
	}

	data := DescriptorTableBytes(descs, engine)
	require.Len(t, data, 2*DescriptorSize)

	parsed, err := ParseDescriptorTable(data, engine)
	require.NoError(t, err)
	require.Equal(t, descs, parsed)

	t.Run("Misaligned table", func(t *testing.T) {
		_, err := ParseDescriptorTable(data[:DescriptorSize+5], engine)
		require.ErrorIs(t, err, errs.ErrInvalidDescriptorSize)
	})

	t.Run("Empty table", func(t *testing.T) {
		parsed, err := ParseDescriptorTable(nil, engine)
		require.NoError(t, err)
		require.Empty(t, parsed)
	})
}
