// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import (
	"gopkg.in/typ.v4/sync2"

	"github.com/AccelByte/arena-client-core/pkg/sortviz"
)

// mergeScratch reuses run scratch buffers across merge calls to reduce
// garbage collection during long runs.
var mergeScratch = sync2.Pool[[]int]{
	New: func() []int {
		return make([]int, 0, 64)
	},
}

// mergeSort performs the classic split/merge. Merge comparisons use <= on
// the left element so ties prefer the left run (stable merge); every write
// into the output range emits a merging step with that index resolved.
func mergeSort(arr []int, emit sortviz.EmitFunc) error {
	if err := mergeSortRange(arr, 0, len(arr)-1, emit); err != nil {
		return err
	}
	return emitComplete(arr, emit)
}

func mergeSortRange(arr []int, lo, hi int, emit sortviz.EmitFunc) error {
	if lo >= hi {
		return nil
	}
	mid := lo + (hi-lo)/2
	if err := mergeSortRange(arr, lo, mid, emit); err != nil {
		return err
	}
	if err := mergeSortRange(arr, mid+1, hi, emit); err != nil {
		return err
	}
	return mergeRuns(arr, lo, mid, hi, emit)
}

func mergeRuns(arr []int, lo, mid, hi int, emit sortviz.EmitFunc) error {
	left := append(mergeScratch.Get()[:0], arr[lo:mid+1]...)
	right := append(mergeScratch.Get()[:0], arr[mid+1:hi+1]...)
	defer func() {
		mergeScratch.Put(left)
		mergeScratch.Put(right)
	}()

	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		if err := emit(arr, []int{lo + i, mid + 1 + j}, nil, sortviz.TagComparing); err != nil {
			return err
		}
		if left[i] <= right[j] {
			arr[k] = left[i]
			i++
		} else {
			arr[k] = right[j]
			j++
		}
		if err := emit(arr, []int{k}, []int{k}, sortviz.TagMerging); err != nil {
			return err
		}
		k++
	}
	for i < len(left) {
		arr[k] = left[i]
		i++
		if err := emit(arr, []int{k}, []int{k}, sortviz.TagMerging); err != nil {
			return err
		}
		k++
	}
	for j < len(right) {
		arr[k] = right[j]
		j++
		if err := emit(arr, []int{k}, []int{k}, sortviz.TagMerging); err != nil {
			return err
		}
		k++
	}
	return nil
}
