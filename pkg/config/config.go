// Package config defines environment configuration for the reward
// suite. The shaping constants are tunable hyperparameters, not
// load-bearing contracts; the env defaults mirror the final training
// configuration.
package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/rizome-dev/go-grpo-rewards/pkg/rewards"
)

// RewardEnvConfig holds the env-overridable reward hyperparameters
type RewardEnvConfig struct {
	LengthMaxReward    float64 `env:"LENGTH_MAX_REWARD" envDefault:"2.0"`
	LengthTargetCenter float64 `env:"LENGTH_TARGET_CENTER" envDefault:"750"`
	LengthSteepness    float64 `env:"LENGTH_STEEPNESS" envDefault:"0.008"`

	// GroupSize is the number of completions generated per prompt.
	GroupSize int `env:"GROUP_SIZE" envDefault:"8"`

	// FormatDebug switches the format reward to the breakdown-logging
	// variant.
	FormatDebug bool `env:"FORMAT_DEBUG" envDefault:"false"`

	// IncludeEfficiency registers the superseded joint
	// correctness/length scorer alongside the default four.
	IncludeEfficiency bool `env:"INCLUDE_EFFICIENCY" envDefault:"false"`
}

// Load parses the reward configuration from the environment
func Load() (*RewardEnvConfig, error) {
	cfg := &RewardEnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildSuite assembles the reward suite described by the configuration
func (c *RewardEnvConfig) BuildSuite() *rewards.Suite {
	lengthCfg := rewards.DefaultLengthConfig()
	lengthCfg.MaxReward = c.LengthMaxReward
	lengthCfg.Center = c.LengthTargetCenter
	lengthCfg.Steepness = c.LengthSteepness

	formatFn := rewards.FormatReward
	if c.FormatDebug {
		formatFn = rewards.FormatRewardDebug
	}

	suite := rewards.NewSuite().
		Add("correctness", rewards.CorrectnessReward, 1.0).
		Add("format", formatFn, 1.0).
		Add("length", rewards.NewLengthReward(lengthCfg), 1.0).
		Add("reasoning", rewards.ReasoningReward, 1.0)

	if c.IncludeEfficiency {
		suite.Add("efficiency", rewards.ReasoningEfficiencyReward, 1.0)
	}
	return suite
}
