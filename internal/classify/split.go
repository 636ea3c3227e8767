package classify

import "math"

// splitTolerance is how close (in currency units) a candidate fraction of
// the total must land to the observed share.
const splitTolerance = 1.0

// InferSplitRatio infers the simplest fraction numerator/denominator such
// that total*numerator/denominator is within one currency unit of share.
// Denominators 2..10 are searched in increasing order, numerators likewise,
// so the smallest matching pair wins (a half before two quarters). If no
// preset fraction fits, the share is approximated in tenths. Nonsensical
// inputs fall back to an even split.
func InferSplitRatio(share, total float64) (numerator, denominator int) {
	if total <= 0 || share <= 0 || share > total {
		return 1, 2
	}

	for d := 2; d <= 10; d++ {
		for n := 1; n < d; n++ {
			if math.Abs(total*float64(n)/float64(d)-share) < splitTolerance {
				return n, d
			}
		}
	}

	tenths := int(math.Round(share / total * 10))
	if tenths < 1 {
		tenths = 1
	}
	if tenths > 9 {
		tenths = 9
	}
	return tenths, 10
}
