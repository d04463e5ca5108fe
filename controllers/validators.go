package controllers

import (
	"errors"

	"hotel-paradiso/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// isodate: a YYYY-MM-DD calendar date
var isoDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := models.ParseDate(s)
	return err == nil
}

// afterdate=Field: strictly later than the named sibling date
var afterDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	if !field.IsValid() {
		return false
	}
	other, ok := field.Interface().(string)
	if !ok {
		return false
	}
	_, err := models.ParseDateRange(other, s)
	return err == nil
}

// RegisterValidators installs the custom binding tags on gin's validator.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("isodate", isoDateValidatorFunc)
		v.RegisterValidation("afterdate", afterDateValidatorFunc)
	}
}

// bindingMessage tells a missing field apart from a malformed one.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return msgMissingFields
			}
		}
		return msgInvalidFields
	}
	return msgMissingFields
}
