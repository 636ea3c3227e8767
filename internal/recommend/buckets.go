package recommend

import "math"

// timeBucket is a coarse time-of-day band. Boundaries are fixed; the scorer
// only ever compares bucket identity.
type timeBucket int

const (
	bucketMorning timeBucket = iota
	bucketLunch
	bucketAfternoon
	bucketEvening
	bucketNight
)

func timeOfDayBucket(hour int) timeBucket {
	switch {
	case hour >= 6 && hour < 11:
		return bucketMorning
	case hour >= 11 && hour < 15:
		return bucketLunch
	case hour >= 15 && hour < 18:
		return bucketAfternoon
	case hour >= 18 && hour < 22:
		return bucketEvening
	default:
		return bucketNight
	}
}

// amountBucketBounds are the upper bounds of the first seven amount
// buckets; everything at or above the last bound lands in the eighth.
var amountBucketBounds = []float64{50, 100, 250, 500, 1000, 2500, 10000}

func amountBucket(amount float64) int {
	a := math.Abs(amount)
	for i, bound := range amountBucketBounds {
		if a < bound {
			return i
		}
	}
	return len(amountBucketBounds)
}
