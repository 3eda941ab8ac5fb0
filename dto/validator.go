package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var moduleCategories = map[string]bool{
	"phishing":           true,
	"malware":            true,
	"passwords":          true,
	"network":            true,
	"cryptography":       true,
	"social-engineering": true,
}

func init() {
	validate = validator.New()
	validate.RegisterValidation("module_category", validateModuleCategory)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateModuleCategory(fl validator.FieldLevel) bool {
	return moduleCategories[fl.Field().String()]
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "email":
				message = "Invalid email format"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param() + " characters"
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
			case "gte":
				message = fieldError.Field() + " must be at least " + fieldError.Param()
			case "lte":
				message = fieldError.Field() + " must be at most " + fieldError.Param()
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "eqfield":
				message = fieldError.Field() + " does not match " + fieldError.Param()
			case "module_category":
				message = fieldError.Field() + " is not a valid category"
			case "dive":
				message = fieldError.Field() + " contains invalid items"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}
