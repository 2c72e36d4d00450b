package unifysync

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"bitbucket.org/platesync/unify_backend/matching"
	"bitbucket.org/platesync/unify_backend/utils"
)

var runConfigValidator = validator.New()

// LoadRunConfig reads a run configuration document. A config that omits the
// linguistic sections inherits the tuned defaults; the location table is
// always deployment data and has no default.
func LoadRunConfig(path string) (RunConfig, error) {
	var cfg RunConfig
	if err := utils.ReadJSONFile(path, &cfg); err != nil {
		return cfg, err
	}
	ApplyConfigDefaults(&cfg)
	if err := runConfigValidator.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", matching.ErrInvalidConfig, err)
	}
	return cfg, nil
}

func ApplyConfigDefaults(cfg *RunConfig) {
	def := matching.DefaultConfig()
	if len(cfg.Matching.VariationRules) == 0 {
		cfg.Matching.VariationRules = def.VariationRules
	}
	if cfg.Matching.Abbreviations == nil {
		cfg.Matching.Abbreviations = def.Abbreviations
	}
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = defaultTimezone
	}
}
