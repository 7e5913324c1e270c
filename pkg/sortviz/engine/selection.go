// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import "github.com/AccelByte/arena-client-core/pkg/sortviz"

// selectionSort scans for the minimum from the current boundary; a strict <
// updates the running minimum. A swap step is emitted only when the minimum
// index differs from the boundary; the boundary index is marked resolved
// every pass regardless.
func selectionSort(arr []int, emit sortviz.EmitFunc) error {
	n := len(arr)
	for i := 0; i < n-1; i++ {
		minIdx := i
		if err := emit(arr, []int{i}, nil, sortviz.TagSelecting); err != nil {
			return err
		}
		for j := i + 1; j < n; j++ {
			if err := emit(arr, []int{j, minIdx}, nil, sortviz.TagComparing); err != nil {
				return err
			}
			if arr[j] < arr[minIdx] {
				minIdx = j
			}
		}
		if minIdx != i {
			arr[i], arr[minIdx] = arr[minIdx], arr[i]
			if err := emit(arr, []int{i, minIdx}, nil, sortviz.TagSwapping); err != nil {
				return err
			}
		}
		if err := emit(arr, nil, []int{i}, sortviz.TagSorted); err != nil {
			return err
		}
	}
	return emitComplete(arr, emit)
}
