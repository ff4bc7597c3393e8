// Package validate checks form input before it is sent to the API.
// Messages are user-facing and localized.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRe = regexp.MustCompile(`^\d{2,3}-\d{3,4}-\d{4}$`)

	// 8+ characters, letters and digits only, at least one of each.
	passwordCharsRe = regexp.MustCompile(`^[A-Za-z\d]{8,}$`)
	hasLetterRe     = regexp.MustCompile(`[A-Za-z]`)
	hasDigitRe      = regexp.MustCompile(`\d`)
)

// ErrPasswordMismatch is returned by ConfirmPassword.
var ErrPasswordMismatch = errors.New("비밀번호가 일치하지 않습니다.")

// FieldError is one failed rule, keyed by the JSON field name.
type FieldError struct {
	Field   string
	Message string
}

// Errors lists every failed field of a struct.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, " ")
}

// Field returns the message for field, or "" when it passed.
func (e Errors) Field(name string) string {
	for _, fe := range e {
		if fe.Field == name {
			return fe.Message
		}
	}
	return ""
}

func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}

func IsPassword(s string) bool {
	return passwordCharsRe.MatchString(s) && hasLetterRe.MatchString(s) && hasDigitRe.MatchString(s)
}

// New returns a validator with the "phone" and "password" tags registered
// and JSON names used for fields.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsPassword(fl.Field().String())
	})
	return v
}

var (
	defaultOnce sync.Once
	defaultV    *validator.Validate
)

func instance() *validator.Validate {
	defaultOnce.Do(func() { defaultV = New() })
	return defaultV
}

// Struct validates s against its `validate` tags. Rule failures come back
// as Errors; anything else (a non-struct argument) is returned as is.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// ConfirmPassword checks the repeated password of a signup form.
func ConfirmPassword(password, confirm string) error {
	err := instance().VarWithValue(confirm, password, "eqfield")
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return ErrPasswordMismatch
	}
	return err
}

var fieldLabels = map[string]string{
	"email":         "이메일",
	"password":      "비밀번호",
	"name":          "이름",
	"phone":         "전화번호",
	"type":          "차종",
	"price":         "가격",
	"brand":         "브랜드",
	"model":         "모델",
	"year":          "연식",
	"mileage":       "주행거리",
	"fuelType":      "연료",
	"carNumber":     "차량번호",
	"color":         "색상",
	"transmission":  "변속기",
	"region":        "지역",
	"contactNumber": "연락처",
}

func message(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + "은(는) 필수입니다."
	case "email":
		return "유효한 이메일 형식이 아닙니다."
	case "password":
		return "비밀번호는 8자 이상이며, 영문자와 숫자를 포함해야 합니다."
	case "phone":
		return "올바른 전화번호 형식이 아닙니다. (예: 010-1234-5678)"
	case "min":
		return fmt.Sprintf("%s은(는) %s자 이상이어야 합니다.", label, fe.Param())
	default:
		return label + " 값이 올바르지 않습니다."
	}
}
