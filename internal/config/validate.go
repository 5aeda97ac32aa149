package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/abrezinsky/totebet/internal/tote"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}

	if _, err := c.RaceCommissions(); err != nil {
		return fmt.Errorf("race.commissions: %w", err)
	}
	return nil
}

// RaceCommissions converts the configured commissions for tote.NewRace.
func (c *Config) RaceCommissions() (map[tote.Product]decimal.Decimal, error) {
	return tote.ParseCommissions(c.Race.Commissions)
}

// fieldError renders a validator failure as "<yaml.path> <problem>".
func fieldError(fe validator.FieldError) error {
	// Namespace is "Config.race.commissions[W]"; drop the struct name
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "min", "max":
		return fmt.Errorf("%s must be %s %s, got %v", path, map[string]string{"min": ">=", "max": "<="}[fe.Tag()], fe.Param(), fe.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %v", path, fe.Param(), fe.Value())
	case "datetime":
		return fmt.Errorf("%s must be a date formatted %s", path, fe.Param())
	case "url":
		return fmt.Errorf("%s must be a URL", path)
	default:
		return fmt.Errorf("%s failed %s validation", path, fe.Tag())
	}
}
