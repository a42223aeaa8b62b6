package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/g3dformat/g3d/errs"
	"github.com/g3dformat/g3d/format"
	"github.com/g3dformat/g3d/section"
)

func uint32Descriptor() section.AttributeDescriptor {
	return section.AttributeDescriptor{
		Association:        format.AssociationFace,
		AttributeType:      format.AttrMaterialID,
		AttributeTypeIndex: 0,
		DataArity:          1,
		DataType:           format.DataUint32,
	}
}

func TestNewRefStore(t *testing.T) {
	t.Run("Aliases caller memory", func(t *testing.T) {
		backing := make([]byte, 16)
		store, err := NewRefStore(uint32Descriptor(), backing)

		require.NoError(t, err)
		require.False(t, store.Owned())
		require.Equal(t, 4, store.Attribute().NumElements())

		backing[0] = 0xFF
		require.Equal(t, byte(0xFF), store.Bytes()[0], "ref store must alias, not copy")
	})

	t.Run("Invalid descriptor", func(t *testing.T) {
		desc := uint32Descriptor()
		desc.DataArity = 0

		_, err := NewRefStore(desc, make([]byte, 16))
		require.ErrorIs(t, err, errs.ErrInvalidArity)
	})

	t.Run("Misaligned range", func(t *testing.T) {
		_, err := NewRefStore(uint32Descriptor(), make([]byte, 7))
		require.ErrorIs(t, err, errs.ErrBufferAlignment)
	})
}

func TestNewOwnedStore(t *testing.T) {
	t.Run("Zero initialized", func(t *testing.T) {
		store, err := NewOwnedStore(uint32Descriptor(), 4)

		require.NoError(t, err)
		require.True(t, store.Owned())
		require.Len(t, store.Bytes(), 16)
		for _, b := range store.Bytes() {
			require.Zero(t, b)
		}
	})

	t.Run("Negative element count", func(t *testing.T) {
		_, err := NewOwnedStore(uint32Descriptor(), -1)
		require.ErrorIs(t, err, errs.ErrInvalidElementCount)
	})

	t.Run("Zero elements", func(t *testing.T) {
		store, err := NewOwnedStore(uint32Descriptor(), 0)
		require.NoError(t, err)
		require.Empty(t, store.Bytes())
		require.Zero(t, store.Attribute().NumElements())
	})
}

func TestNewOwnedStoreFrom(t *testing.T) {
	t.Run("Copies exactly the buffer size", func(t *testing.T) {
		source := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
		store, err := NewOwnedStoreFrom(uint32Descriptor(), 4, source)

		require.NoError(t, err)
		require.Equal(t, source, store.Bytes())

		// The store owns an independent copy.
		source[0] = 0xEE
		require.Equal(t, byte(1), store.Bytes()[0])
	})

	t.Run("Short source", func(t *testing.T) {
		_, err := NewOwnedStoreFrom(uint32Descriptor(), 4, make([]byte, 12))
		require.ErrorIs(t, err, errs.ErrShortCopySource)
	})

	t.Run("Long source copies prefix", func(t *testing.T) {
		source := make([]byte, 24)
		source[15] = 0x7E
		source[16] = 0x11 // past the buffer, must not be copied

		store, err := NewOwnedStoreFrom(uint32Descriptor(), 4, source)
		require.NoError(t, err)
		require.Len(t, store.Bytes(), 16)
		require.Equal(t, byte(0x7E), store.Bytes()[15])
	})

	t.Run("Nil source", func(t *testing.T) {
		_, err := NewOwnedStoreFrom(uint32Descriptor(), 4, nil)
		require.ErrorIs(t, err, errs.ErrNilBuffer)
	})
}

func TestStoreTypedAccess(t *testing.T) {
	store, err := NewOwnedStore(uint32Descriptor(), 4)
	require.NoError(t, err)

	values, err := Data[uint32](store.Attribute())
	require.NoError(t, err)
	require.Len(t, values, 4)

	values[2] = 0xDEADBEEF

	raw := store.Bytes()
	require.NotEqual(t, make([]byte, 16), raw, "typed writes must reach the store buffer")
}
