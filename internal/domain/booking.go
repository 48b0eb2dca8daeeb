package domain

import "math"

const (
	MinRating = 0
	MaxRating = 5
)

// Overlaps reports whether an existing reservation blocks a requested range.
// It is the same three-way test the availability query runs in SQL.
func Overlaps(existing, query DateRange) bool {
	switch {
	case query.Contains(existing.From):
		return true
	case query.Contains(existing.To):
		return true
	case !query.From.Before(existing.From) && !query.To.After(existing.To):
		return true
	default:
		return false
	}
}

// FirstOverlap returns the index of the first range in existing that overlaps query, or -1.
func FirstOverlap(existing []DateRange, query DateRange) int {
	for i, r := range existing {
		if Overlaps(r, query) {
			return i
		}
	}
	return -1
}

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ValidationError{Field: "rating", Msg: "rating must be between 0 and 5", Err: ErrInvalidRating}
	}
	return nil
}

// AggregateRating is the mean of the positive ratings, rounded to two decimals.
// Zero means "not rated" and is left out; with nothing rated the result is 0.
func AggregateRating(ratings []int) float64 {
	sum, n := 0, 0
	for _, r := range ratings {
		if r > 0 {
			sum += r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*100) / 100
}
