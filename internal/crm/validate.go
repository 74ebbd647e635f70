package crm

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks a payload against its validate tags. This is the only
// client-side validation: the handful of required fields the forms mark.
// Everything beyond that is the server's job.
func Validate(v interface{}) error {
	return validate.Struct(v)
}
