package section

import (
	"fmt"

	"github.com/g3dformat/g3d/endian"
	"github.com/g3dformat/g3d/errs"
)

// DescriptorTableBytes serializes descriptors into a concatenated table of
// 32-byte records, in slice order.
func DescriptorTableBytes(descs []AttributeDescriptor, engine endian.EndianEngine) []byte {
	data := make([]byte, len(descs)*DescriptorSize)

	offset := 0
	for i := range descs {
		offset = descs[i].WriteToSlice(data, offset, engine)
	}

	return data
}

// ParseDescriptorTable slices a descriptor table into 32-byte records and
// parses each one.
//
// Returns:
//   - []AttributeDescriptor: Parsed descriptors in table order
//   - error: errs.ErrInvalidDescriptorSize if the table length is not a
//     multiple of 32 bytes, or the first per-record parse error
func ParseDescriptorTable(data []byte, engine endian.EndianEngine) ([]AttributeDescriptor, error) {
	if len(data)%DescriptorSize != 0 {
		return nil, fmt.Errorf("table length %d: %w", len(data), errs.ErrInvalidDescriptorSize)
	}

	count := len(data) / DescriptorSize
	descs := make([]AttributeDescriptor, 0, count)
	for i := 0; i < count; i++ {
		d, err := ParseDescriptor(data[i*DescriptorSize:(i+1)*DescriptorSize], engine)
		if err != nil {
			return nil, fmt.Errorf("descriptor %d: %w", i, err)
		}

		descs = append(descs, d)
	}

	return descs, nil
}
