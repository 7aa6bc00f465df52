package validator

import (
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// New creates a new validator instance with custom validations registered.
// This ensures consistent validation across the application and tests.
func New() *validator.Validate {
	v := validator.New()

	// "truthy" rejects numeric zero and NaN. "required" on a *float64 only
	// checks presence, and a coupon worth 0 counts as missing data.
	_ = v.RegisterValidation("truthy", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		switch field.Kind() {
		case reflect.Float32, reflect.Float64:
			f := field.Float()
			return f != 0 && !math.IsNaN(f)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return field.Int() != 0
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return field.Uint() != 0
		case reflect.String:
			return field.String() != ""
		case reflect.Bool:
			return field.Bool()
		default:
			return true // Not a scalar, let other validators handle it
		}
	})

	return v
}
