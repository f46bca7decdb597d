package dice

import "fmt"

// Pick returns a uniformly chosen index in [0, n).
func Pick(r Roller, n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("cannot pick from %d options", n)
	}
	result, err := r.Roll(1, n, -1)
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

// Between returns a uniformly chosen integer in [lo, hi].
func Between(r Roller, lo, hi int) (int, error) {
	if hi < lo {
		return 0, fmt.Errorf("invalid range [%d, %d]", lo, hi)
	}
	result, err := r.Roll(1, hi-lo+1, lo-1)
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}
