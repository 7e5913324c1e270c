// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import (
	"sort"

	"github.com/AccelByte/arena-client-core/pkg/sortviz"
)

const (
	AlgorithmBubble    = "bubble"
	AlgorithmSelection = "selection"
	AlgorithmInsertion = "insertion"
	AlgorithmMerge     = "merge"
	AlgorithmQuick     = "quick"
)

var algorithms = map[string]sortviz.AlgorithmFunc{
	AlgorithmBubble:    bubbleSort,
	AlgorithmSelection: selectionSort,
	AlgorithmInsertion: insertionSort,
	AlgorithmMerge:     mergeSort,
	AlgorithmQuick:     quickSort,
}

// Algorithms returns the selectable algorithm keys in stable order.
func Algorithms() []string {
	keys := make([]string, 0, len(algorithms))
	for key := range algorithms {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
