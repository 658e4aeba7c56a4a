package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// mobilePattern matches an 11-digit mainland mobile number.
var mobilePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// IsMobile reports whether s is a valid mobile number.
func IsMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

var fieldMessages = map[Field]map[string]string{
	FieldName: {
		"required": "请输入家长姓名或孩子姓名",
	},
	FieldPhone: {
		"required": "请输入您的联系电话",
		"mobile":   "请输入有效的手机号码",
	},
	FieldCoursePackage: {
		"required": "请选择课程包",
		"oneof":    "请选择课程包",
	},
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Report json names so field errors line up with Field constants.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
			return IsMobile(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate checks the request fields. It returns a *ValidationError naming
// every offending field with the message to show under it.
func (r RegistrationRequest) Validate() error {
	err := validatorInstance().Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating registration: %w", err)
	}

	fields := make(map[Field]string, len(verrs))
	for _, fe := range verrs {
		f := Field(fe.Field())
		if _, seen := fields[f]; seen {
			continue
		}
		msg := fieldMessages[f][fe.Tag()]
		if msg == "" {
			msg = MsgInvalidInput
		}
		fields[f] = msg
	}
	return &ValidationError{Fields: fields}
}
