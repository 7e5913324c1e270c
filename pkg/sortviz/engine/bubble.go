// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import "github.com/AccelByte/arena-client-core/pkg/sortviz"

// bubbleSort compares adjacent pairs left to right each pass; a strict >
// triggers a swap. After each pass the last unsorted tail index is marked
// resolved.
func bubbleSort(arr []int, emit sortviz.EmitFunc) error {
	n := len(arr)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if err := emit(arr, []int{j, j + 1}, nil, sortviz.TagComparing); err != nil {
				return err
			}
			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				if err := emit(arr, []int{j, j + 1}, nil, sortviz.TagSwapping); err != nil {
					return err
				}
			}
		}
		if err := emit(arr, nil, []int{n - i - 1}, sortviz.TagSorted); err != nil {
			return err
		}
	}
	return emitComplete(arr, emit)
}
