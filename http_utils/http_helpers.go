package http_utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const rejectedMessage = "invalid request, validation failed"

// Reject renders err as a Rejection. Validator errors are listed one per
// failed field; anything else becomes a single entry.
func Reject(err error) Rejection {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Rejection{Status: Failed(rejectedMessage), Errors: []string{err.Error()}}
	}

	return Rejection{
		Status: Failed(rejectedMessage),
		Errors: lo.Map(verrs, func(item validator.FieldError, _ int) string {
			return item.Field() + " failed on " + item.Tag()
		}),
	}
}
