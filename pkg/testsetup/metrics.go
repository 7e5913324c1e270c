package testsetup

import (
	"time"

	"github.com/AccelByte/arena-client-core/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) AddSearchStarted(difficulty string) {}

func (s stubMetricsCollection) AddSearchOutcome(difficulty string, outcome string) {}

func (s stubMetricsCollection) AddRoomCreated() {}

func (s stubMetricsCollection) AddRoomJoinFailure(reason string) {}

func (s stubMetricsCollection) AddRunStarted(algorithm string) {}

func (s stubMetricsCollection) AddRunOutcome(algorithm string, outcome string) {}

func (s stubMetricsCollection) AddStepEmitted(algorithm string, tag string) {}

func (s stubMetricsCollection) AddRunElapsedTimeMs(algorithm string, elapsedTime time.Duration) {}

func NewMetrics() metrics.ArenaMetrics {
	return stubMetricsCollection{}
}
