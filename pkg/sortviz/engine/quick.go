// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import "github.com/AccelByte/arena-client-core/pkg/sortviz"

// quickSort uses Lomuto partitioning with the last element as pivot. The
// pivot is highlighted before partitioning; a strict < against the pivot
// advances the store index with a swap step; the final pivot swap emits
// pivot_placed.
func quickSort(arr []int, emit sortviz.EmitFunc) error {
	if err := quickSortRange(arr, 0, len(arr)-1, emit); err != nil {
		return err
	}
	return emitComplete(arr, emit)
}

func quickSortRange(arr []int, lo, hi int, emit sortviz.EmitFunc) error {
	if lo >= hi {
		return nil
	}
	p, err := partition(arr, lo, hi, emit)
	if err != nil {
		return err
	}
	if err := quickSortRange(arr, lo, p-1, emit); err != nil {
		return err
	}
	return quickSortRange(arr, p+1, hi, emit)
}

func partition(arr []int, lo, hi int, emit sortviz.EmitFunc) (int, error) {
	if err := emit(arr, []int{hi}, nil, sortviz.TagPivot); err != nil {
		return 0, err
	}
	pivot := arr[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if err := emit(arr, []int{j, hi}, nil, sortviz.TagComparing); err != nil {
			return 0, err
		}
		if arr[j] < pivot {
			arr[i], arr[j] = arr[j], arr[i]
			if err := emit(arr, []int{i, j}, nil, sortviz.TagSwapping); err != nil {
				return 0, err
			}
			i++
		}
	}
	arr[i], arr[hi] = arr[hi], arr[i]
	if err := emit(arr, []int{i, hi}, []int{i}, sortviz.TagPivotPlaced); err != nil {
		return 0, err
	}
	return i, nil
}
