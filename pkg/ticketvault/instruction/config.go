package instruction

import (
	"github.com/ticketvault/ticketvault-server/pkg/config"
	"github.com/ticketvault/ticketvault-server/pkg/config/env"
	"github.com/ticketvault/ticketvault-server/pkg/config/memory"
	"github.com/ticketvault/ticketvault-server/pkg/config/wrapper"
)

const (
	envConfigPrefix = "TICKETVAULT_INSTRUCTION_SERVICE_"

	DisableCapacityChecksConfigEnvName = envConfigPrefix + "DISABLE_CAPACITY_CHECKS"
	defaultDisableCapacityChecks       = false
)

type conf struct {
	disableCapacityChecks config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			disableCapacityChecks: env.NewBoolConfig(DisableCapacityChecksConfigEnvName, defaultDisableCapacityChecks),
		}
	}
}

type testOverrides struct {
	disableCapacityChecks bool
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			disableCapacityChecks: wrapper.NewBoolConfig(memory.NewConfig(overrides.disableCapacityChecks), defaultDisableCapacityChecks),
		}
	}
}
