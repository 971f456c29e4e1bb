package slices

// map each element in sli.
//
// args:
//   - sli : slice of `T`s
//   - mapper : mapping function from T to R
//
// return:
//
//	slice of `R`s.
//	each element indexed `N` is given with `mapper(sli[N])` .
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// Map over sli with mapper.
//
// If mapper causes error, return (nil, error).
//
// Otherwise, return (mapping result, nil).
func MapUntilError[T any, R any](sli []T, mapper func(v T) (R, error)) ([]R, error) {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		r, err := mapper(v)
		if err != nil {
			return nil, err
		}
		ret[nth] = r
	}
	return ret, nil
}

// First finds the first element satisfying pred.
//
// return:
//
//   - T: the found element (zero value if none)
//   - bool: true when found
func First[T any](sli []T, pred func(v T) bool) (T, bool) {
	for _, v := range sli {
		if pred(v) {
			return v, true
		}
	}
	return *new(T), false
}

// Filter elements satisfying pred, keeping order.
func Filter[T any](sli []T, pred func(v T) bool) []T {
	ret := make([]T, 0, len(sli))
	for _, v := range sli {
		if pred(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// ToMap converts slice to map, indexed by getKey.
//
// When two elements share a key, the latter wins.
func ToMap[T any, K comparable](sli []T, getKey func(v T) K) map[K]T {
	ret := make(map[K]T, len(sli))
	for _, v := range sli {
		ret[getKey(v)] = v
	}
	return ret
}
