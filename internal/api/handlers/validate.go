package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkRequest runs struct-tag validation and folds failures into a 422
// with one message per offending field.
func checkRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = messageFor(fe)
	}
	return domain.NewFieldError(http.StatusUnprocessableEntity, "Validation failed", fields)
}

func fieldName(fe validator.FieldError) string {
	// struct fields mirror the JSON names except for the leading capital
	name := fe.Field()
	return string(name[0]|0x20) + name[1:]
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must be provided", fieldName(fe))
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("%s has to be at least %s characters long", fieldName(fe), fe.Param())
	case "max":
		return fmt.Sprintf("%s has to be at most %s characters long", fieldName(fe), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldName(fe), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s does not match", fieldName(fe))
	default:
		return fmt.Sprintf("%s is invalid", fieldName(fe))
	}
}
