package models

import "math"

// PageOffset возвращает смещение страницы page размером size.
// ok == false, если смещение не помещается в int.
func PageOffset(page, size int) (offset int, ok bool) {
	if page <= 1 || size <= 0 {
		return 0, true
	}
	if page-1 > math.MaxInt/size {
		return 0, false
	}
	return (page - 1) * size, true
}
