package app

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ArchitecturePath string `validate:"required"` // hcl file or directory

	LogFormat    string `validate:"oneof=text json"`
	LogLevel     string `validate:"oneof=debug info warn error"`
	OutputFormat string `validate:"oneof=text yaml"`
	// ThermoData selects the thermodynamic data handed to every module.
	ThermoData   string `validate:"omitempty,oneof=CEA TABULAR"`
	// MetricsFile, when set, receives the build metrics in the Prometheus
	// text format once a command finishes.
	MetricsFile  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fe := verrs[0]
			return nil, fmt.Errorf("invalid configuration: %s failed on %q (got %q)", fe.Field(), fe.Tag(), fe.Value())
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
