package http

import (
	"math"
	"regexp"

	"cfc-deblocages/internal/domain/loan"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var rePhone = regexp.MustCompile(`^\+?[0-9 ]{6,20}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// loan type must be one of the closed product set
	_ = v.RegisterValidation("loantype", func(fl validator.FieldLevel) bool {
		return loan.Type(fl.Field().String()).Valid()
	})
	// max 2 decimal places for monetary amounts
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return rePhone.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "loantype":
			out = append(out, FieldError{Field: field, Message: "must be a known loan type"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "phone":
			out = append(out, FieldError{Field: field, Message: "must be a valid phone number"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
