package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err := v.RegisterValidation("username", usernameValidator)
		if err != nil {
			log.Fatal("register username validator failed")
		}
	}
}

var usernameValidator validator.Func = func(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	pattern := `^[a-zA-Z0-9_]{3,30}$`
	matched, err := regexp.MatchString(pattern, username)
	if err != nil {
		return false
	}
	return matched
}
