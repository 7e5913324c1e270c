// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type ArenaMetrics interface {
	AddSearchStarted(difficulty string)
	AddSearchOutcome(difficulty string, outcome string)
	AddRoomCreated()
	AddRoomJoinFailure(reason string)
	AddRunStarted(algorithm string)
	AddRunOutcome(algorithm string, outcome string)
	AddStepEmitted(algorithm string, tag string)
	AddRunElapsedTimeMs(algorithm string, elapsedTime time.Duration)
}

func NewMetrics(registry *prometheus.Registry) ArenaMetrics {
	return setupPrometheusMetrics(registry)
}
