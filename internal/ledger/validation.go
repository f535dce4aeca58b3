package ledger

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the typed result of validating a sale request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "invalid sale request: " + strings.Join(parts, "; ")
}

// ValidateSaleRequest checks a sale request independent of the transport
// layer. It returns ValidationErrors listing every offending field.
func ValidateSaleRequest(req SaleRequest) error {
	var fields ValidationErrors
	if len(req.Items) == 0 {
		fields = append(fields, FieldError{Field: "items", Message: "at least one item is required"})
		return fields
	}
	if err := validate.Struct(req); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			switch fe.Tag() {
			case "required":
				fields = append(fields, FieldError{Field: fe.Field(), Message: "is required"})
			case "min":
				fields = append(fields, FieldError{Field: fe.Field(), Message: "must be at least " + fe.Param()})
			case "max":
				fields = append(fields, FieldError{Field: fe.Field(), Message: "must be at most " + fe.Param() + " characters"})
			default:
				fields = append(fields, FieldError{Field: fe.Field(), Message: "is invalid"})
			}
		}
	}
	if len(fields) > 0 {
		return fields
	}
	return nil
}
