// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	MatchServerURL      string        `env:"MATCH_SERVER_URL"       envDefault:"http://localhost:5000"          envDocs:"base URL of the matchmaking REST service"`
	MatchSocketURL      string        `env:"MATCH_SOCKET_URL"       envDefault:"ws://localhost:5000/socket.io"  envDocs:"URL of the matchmaking realtime socket endpoint"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"        envDefault:"10s"                            envDocs:"timeout for a single REST request to the match service"`
	SearchTimeout       time.Duration `env:"SEARCH_TIMEOUT"         envDefault:"20s"                            envDocs:"visible quick-match countdown before giving up on finding an opponent"`
	SearchTick          time.Duration `env:"SEARCH_TICK"            envDefault:"1s"                             envDocs:"interval between search countdown increments"`
	TransitionHold      time.Duration `env:"TRANSITION_HOLD"        envDefault:"5s"                             envDocs:"duration of the battle transition overlay before entering the play view"`
	MinStepDelay        time.Duration `env:"VIZ_MIN_STEP_DELAY"     envDefault:"5ms"                            envDocs:"inter-step delay of the visualizer at speed 100"`
	MaxStepDelay        time.Duration `env:"VIZ_MAX_STEP_DELAY"     envDefault:"400ms"                          envDocs:"inter-step delay of the visualizer at speed 1"`
	MaxSequenceLength   int           `env:"VIZ_MAX_SEQUENCE_LEN"   envDefault:"100"                            envDocs:"maximum number of elements in a visualized sequence"`
	MaxSequenceValue    int           `env:"VIZ_MAX_SEQUENCE_VALUE" envDefault:"500"                            envDocs:"maximum value of a single sequence element"`
	DefaultSequenceSize int           `env:"VIZ_DEFAULT_SIZE"       envDefault:"30"                             envDocs:"element count used when randomizing without an explicit size"`
}

// FromEnv builds a Config from environment variables, falling back to the
// envDefault values above.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config holding only the envDefault values. Tests that
// need compressed timers should start from this and override fields.
func Default() *Config {
	return &Config{
		MatchServerURL:      "http://localhost:5000",
		MatchSocketURL:      "ws://localhost:5000/socket.io",
		RequestTimeout:      10 * time.Second,
		SearchTimeout:       20 * time.Second,
		SearchTick:          time.Second,
		TransitionHold:      5 * time.Second,
		MinStepDelay:        5 * time.Millisecond,
		MaxStepDelay:        400 * time.Millisecond,
		MaxSequenceLength:   100,
		MaxSequenceValue:    500,
		DefaultSequenceSize: 30,
	}
}
