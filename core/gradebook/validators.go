package gradebook

import (
	"github.com/go-playground/validator/v10"

	"svexport/core"
)

// Validate applies the credentials policy before any portal call is made.
func (c Credentials) Validate() error {
	if err := core.Validate.Struct(c); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			flds := make([]core.FieldError, 0, len(vErrs))
			for _, fe := range vErrs {
				flds = append(flds, core.FieldError{Field: fe.Field(), Error: fe.Translate(core.Translator)})
			}
			return core.NewValidationError(err, flds...)
		}
		return err
	}
	return nil
}
