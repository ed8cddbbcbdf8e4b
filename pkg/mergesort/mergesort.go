// Package mergesort provides a stable top-down merge sort.
package mergesort

import "cmp"

// Sort sorts data in ascending order. Equal elements keep their relative order.
func Sort[T cmp.Ordered](data []T) {
	if len(data) < 2 {
		return
	}
	buf := make([]T, len(data))
	sortRange(data, buf, 0, len(data)-1)
}

func sortRange[T cmp.Ordered](data, buf []T, left, right int) {
	if left >= right {
		return
	}
	mid := left + (right-left)/2
	sortRange(data, buf, left, mid)
	sortRange(data, buf, mid+1, right)
	merge(data, buf, left, mid, right)
}

// merge combines the sorted runs data[left:mid+1] and data[mid+1:right+1].
func merge[T cmp.Ordered](data, buf []T, left, mid, right int) {
	copy(buf[left:right+1], data[left:right+1])

	i, j, k := left, mid+1, left
	for i <= mid && j <= right {
		if buf[i] <= buf[j] {
			data[k] = buf[i]
			i++
		} else {
			data[k] = buf[j]
			j++
		}
		k++
	}
	for ; i <= mid; i++ {
		data[k] = buf[i]
		k++
	}
	for ; j <= right; j++ {
		data[k] = buf[j]
		k++
	}
}
