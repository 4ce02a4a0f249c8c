package colorspace

const (
	// BucketSegment is the channel distance between neighbouring grid values.
	BucketSegment = 32
	maxChannel    = 255
)

// RoundToBucket rounds a channel to the nearest multiple of BucketSegment.
// Ties round up (16 -> 32, 48 -> 64) and 256 clamps to 255.
func RoundToBucket(v uint8) uint8 {
	n := int(v)
	q := n / BucketSegment
	if n%BucketSegment >= BucketSegment/2 {
		q++
	}
	n = q * BucketSegment
	if n > maxChannel {
		n = maxChannel
	}
	return uint8(n)
}

// RoundRGB rounds each channel of c onto the bucket grid.
func RoundRGB(c RGB) RGB {
	return RGB{R: RoundToBucket(c.R), G: RoundToBucket(c.G), B: RoundToBucket(c.B)}
}

// BucketValues returns the nine representable channel values in ascending order.
func BucketValues() []uint8 {
	values := make([]uint8, 0, 9)
	for n := 0; n < 256; n += BucketSegment {
		values = append(values, uint8(n))
	}
	return append(values, maxChannel)
}

// BucketGrid returns the 729 bucket colors as hex strings in ascending order.
func BucketGrid() []string {
	values := BucketValues()
	grid := make([]string, 0, len(values)*len(values)*len(values))
	for _, r := range values {
		for _, g := range values {
			for _, b := range values {
				grid = append(grid, RGB{R: r, G: g, B: b}.Hex())
			}
		}
	}
	return grid
}
