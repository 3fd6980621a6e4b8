package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/graphedit/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validatorInstance returns the shared validator with graphedit rules
// registered. Field names in messages use the TOML key.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("keyfield", func(fl validator.FieldLevel) bool {
			return errors.ValidateKeyField(fl.Field().String()) == nil
		})
		_ = v.RegisterValidation("typetag", func(fl validator.FieldLevel) bool {
			return errors.ValidateTypeTag(fl.Field().String()) == nil
		})
		validate = v
	})
	return validate
}

// Validate checks the configuration and returns an INVALID_CONFIG error
// listing every violation.
func (c *Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return formatValidationError(err)
	}
	if _, err := c.LayoutEngine(); err != nil {
		return err
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := fieldPath(e.Namespace())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "keyfield":
		return fmt.Sprintf("%s %q is not a usable key field", field, e.Value())
	case "typetag":
		return fmt.Sprintf("%s %q is not a valid type tag", field, e.Value())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
