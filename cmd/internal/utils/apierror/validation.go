package apierror

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var reasons = map[string]string{
	"email":      "must be a valid email address",
	"tzdatetime": "must be an RFC 3339 timestamp with a timezone offset",
	"apptstatus": "must be one of scheduled, canceled, done",
	"max":        "is too long",
	"gt":         "must be a positive integer",
}

// FromValidationError turns validator output into a response. All missing
// required fields are reported together; otherwise the first failing field
// is reported.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return MalformedBodyError
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return NewMissingFieldError(missing...)
	}

	fe := verrs[0]
	reason, ok := reasons[fe.Tag()]
	if !ok {
		reason = "is invalid"
	}
	return NewInvalidFieldError(fe.Field(), reason)
}
