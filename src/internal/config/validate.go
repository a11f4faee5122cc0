package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/VectorBits/abi2sol/src/internal/solc"
)

var (
	once sync.Once
	v    *validator.Validate
)

func validatePragma(fl validator.FieldLevel) bool {
	version, ok := fl.Field().Interface().(string)
	return ok && solc.ValidPragma(version)
}

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New()

		if err := v.RegisterValidation("pragma", validatePragma); err != nil {
			panic("failed to register validation: " + err.Error())
		}
	})
	return v
}

func (c *AppConfig) Validate() error {
	if err := Validator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return ValidateTargets(c.Targets)
}

// ValidateTargets rejects targets that write into the same output directory.
func ValidateTargets(targets []TargetConfig) error {
	seen := make(map[string]string, len(targets))
	for i, t := range targets {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		out := filepath.Clean(t.Output)
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("targets %s and %s share output directory %s", prev, name, out)
		}
		seen[out] = name
	}
	return nil
}
