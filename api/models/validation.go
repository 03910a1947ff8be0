package models

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9@.+_-]+$`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names so error keys match the form field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
}

// validateStruct runs the struct tags of s and returns one message per
// failing field, keyed by the field's json name.
func validateStruct(s interface{}) map[string]string {
	errorMessages := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return errorMessages
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorMessages["__all__"] = err.Error()
		return errorMessages
	}
	for _, fe := range validationErrors {
		if _, seen := errorMessages[fe.Field()]; !seen {
			errorMessages[fe.Field()] = fieldErrorMessage(fe)
		}
	}
	return errorMessages
}

func fieldErrorMessage(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "Ce champ est obligatoire."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Assurez-vous que cette valeur comporte au plus %s caractères.", param)
		}
		return fmt.Sprintf("Assurez-vous que cette valeur est inférieure ou égale à %s.", param)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Assurez-vous que cette valeur comporte au moins %s caractères.", param)
		}
		return fmt.Sprintf("Assurez-vous que cette valeur est supérieure ou égale à %s.", param)
	case "username":
		return "Saisissez un nom d'utilisateur valide. Il ne peut contenir que des lettres, des nombres ou les caractères @ . + - _"
	default:
		return "Valeur invalide."
	}
}
