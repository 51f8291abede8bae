package impl

// assignValue copies *src into dst when src is set and differs. It reports whether dst changed.
func assignValue[T comparable](dst *T, src *T) bool {
	if src == nil || *dst == *src {
		return false
	}
	*dst = *src

	return true
}

// assign is assignValue for nullable columns.
func assign[T comparable](dst **T, src *T) bool {
	if src == nil {
		return false
	}
	if *dst != nil && **dst == *src {
		return false
	}

	value := *src
	*dst = &value

	return true
}
