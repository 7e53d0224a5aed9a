package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var yearMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// New returns a validator with the project's custom tags registered.
//
//	yearmonth: a "yyyy-MM" string naming a real month
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("yearmonth", validateYearMonth); err != nil {
		panic(err)
	}

	return v
}

func validateYearMonth(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if !yearMonthPattern.MatchString(raw) {
		return false
	}
	_, err := time.Parse("2006-01", raw)
	return err == nil
}
