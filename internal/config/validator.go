package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/supermueller/accoutrement-color/internal/colour"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	colourFormats = map[string]struct{}{FormatHex: {}, FormatRGB: {}, FormatJSON: {}}
)

// validatorInstance configures and returns the shared validator.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("contrast_standard", func(fl validator.FieldLevel) bool {
			_, err := colour.ParseRequirement(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("colour_format", func(fl validator.FieldLevel) bool {
			_, ok := colourFormats[strings.ToLower(fl.Field().String())]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks field values.
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "contrast_standard":
		return fmt.Sprintf("%s %q is not AA-large, AA, AAA, none or a number", field, fe.Value())
	case "colour_format":
		return fmt.Sprintf("%s %q must be one of hex, rgb, json", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s %q must be one of %s", field, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "required":
		return fmt.Sprintf("%s entries must not be empty", strings.TrimRight(field, "[0123456789]"))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
