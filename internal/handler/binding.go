package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	bloodGroupRe = regexp.MustCompile(`^(A|B|AB|O)[+-]$`)
	mobileRe     = regexp.MustCompile(`^[0-9]{10}$`)
)

// RegisterValidators installs the custom binding rules used by the
// signup forms ("bloodgroup", "mobile") on gin's validator engine.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("bloodgroup", func(fl validator.FieldLevel) bool {
		return bloodGroupRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobileRe.MatchString(fl.Field().String())
	})
}
