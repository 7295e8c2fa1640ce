// File: internal/authflow/validate.go
package authflow

import (
	"errors"

	"bluestock_client/internal/common"

	"github.com/go-playground/validator/v10"
)

// validate is shared by both controllers. Struct-tag validation runs before
// any gateway request; a failing form never reaches the network.
var validate = validator.New()

// fieldErrors converts a validator failure into the field-scoped error map
// surfaced to the presentation layer.
func fieldErrors(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return common.FieldErrors(common.FormatValidationErrors(verrs))
	}
	return err
}
