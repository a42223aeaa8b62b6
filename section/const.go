package section

const (
	// DescriptorSize is the fixed size of one binary attribute descriptor.
	// Five int32 semantic fields plus three reserved int32 fields bring the
	// record up to a power-of-two size.
	DescriptorSize = 32

	// DescriptorReservedBytes is the size of the reserved tail of a
	// descriptor record. Written as zero, never interpreted on read.
	DescriptorReservedBytes = 12

	// CanonicalPrefix is the literal first token of every canonical
	// descriptor string.
	CanonicalPrefix = "g3d"

	// CanonicalTokenCount is the exact number of colon-separated tokens in a
	// canonical descriptor string, including the prefix.
	CanonicalTokenCount = 6
)
