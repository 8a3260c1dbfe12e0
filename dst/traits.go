package dst

import "cmp"

// Traits is supplied by the caller to describe how items of type T carry an
// interval: its bounds, their openness, and the value it contributes while
// active. It plays the role the original library's IntervalTraits contract
// does for its dynamic segment tree.
type Traits[T any, V Numeric, P cmp.Ordered] interface {
	GetLower(item *T) P
	GetUpper(item *T) P
	GetValue(item *T) V

	// IsLowerClosed reports whether the lower bound itself is part of the
	// interval (the interval is active at a point exactly equal to the
	// lower bound).
	IsLowerClosed(item *T) bool
	// IsUpperClosed reports whether the upper bound itself is part of the
	// interval.
	IsUpperClosed(item *T) bool
}
