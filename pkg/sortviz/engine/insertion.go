// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import "github.com/AccelByte/arena-client-core/pkg/sortviz"

// insertionSort tags the element at the current boundary as selecting
// before any shift. Each leftward shift while the predecessor is strictly
// greater emits a comparing then a shifting step; final placement emits
// placed with the resolved set covering indices 0..boundary inclusive.
func insertionSort(arr []int, emit sortviz.EmitFunc) error {
	n := len(arr)
	for i := 1; i < n; i++ {
		if err := emit(arr, []int{i}, nil, sortviz.TagSelecting); err != nil {
			return err
		}
		j := i
		for j > 0 {
			if err := emit(arr, []int{j - 1, j}, nil, sortviz.TagComparing); err != nil {
				return err
			}
			if arr[j-1] <= arr[j] {
				break
			}
			arr[j-1], arr[j] = arr[j], arr[j-1]
			if err := emit(arr, []int{j - 1, j}, nil, sortviz.TagShifting); err != nil {
				return err
			}
			j--
		}
		placed := make([]int, i+1)
		for k := range placed {
			placed[k] = k
		}
		if err := emit(arr, []int{j}, placed, sortviz.TagPlaced); err != nil {
			return err
		}
	}
	return emitComplete(arr, emit)
}
