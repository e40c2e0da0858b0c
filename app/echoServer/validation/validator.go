package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	itemIDRe  = regexp.MustCompile(`^[A-Za-z]{3}[0-9]{4}$`)
	actorIDRe = regexp.MustCompile(`^[A-Za-z]{3}[UM][0-9]{4}$`)
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("itemid", func(fl validator.FieldLevel) bool {
		return itemIDRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("actorid", func(fl validator.FieldLevel) bool {
		return actorIDRe.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// Rules exposes the underlying validator for controllers that validate
// request structs directly.
func (v *Validator) Rules() *validator.Validate { return v.v }
