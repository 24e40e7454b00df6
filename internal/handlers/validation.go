package handlers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jjenkins/civiq/internal/service"
)

var (
	bioguidePattern  = regexp.MustCompile(`^[A-Za-z][0-9]{6}$`)
	zipPattern       = regexp.MustCompile(`^[0-9]{5}$`)
	committeePattern = regexp.MustCompile(`^[HSJhsj][A-Za-z]{3}[0-9]{0,2}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("bioguide", func(fl validator.FieldLevel) bool {
		return bioguidePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("zip5", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("committee", func(fl validator.FieldLevel) bool {
		return committeePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("usstate", func(fl validator.FieldLevel) bool {
		_, ok := service.StateFIPS(fl.Field().String())
		return ok
	})
	v.RegisterValidation("districtid", func(fl validator.FieldLevel) bool {
		_, _, err := service.ParseDistrictID(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("billid", func(fl validator.FieldLevel) bool {
		_, _, _, err := service.ParseBillID(fl.Field().String())
		return err == nil
	})

	return v
}

// ValidationError is a rejected request parameter
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type memberRequest struct {
	BioguideID string `validate:"required,bioguide"`
	Limit      int    `validate:"min=1,max=250"`
}

type financeRequest struct {
	BioguideID string `validate:"required,bioguide"`
	Cycle      int    `validate:"omitempty,min=1980,max=2100"`
}

type districtRequest struct {
	DistrictID string `validate:"required,districtid"`
	FiscalYear int    `validate:"omitempty,min=2008,max=2100"`
}

type zipRequest struct {
	Zip string `validate:"required,zip5"`
}

type committeeRequest struct {
	Code string `validate:"required,committee"`
}

type legislatureRequest struct {
	State   string `validate:"required,usstate"`
	Chamber string `validate:"omitempty,oneof=upper lower"`
}

type billRequest struct {
	BillID string `validate:"required,billid"`
}

// validateRequest checks a request struct and reports the first bad field
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "request", Reason: err.Error()}
	}

	fe := fieldErrs[0]
	return &ValidationError{Field: paramName(fe.Field()), Reason: reasonFor(fe)}
}

var paramNames = map[string]string{
	"BioguideID": "bioguideId",
	"DistrictID": "districtId",
	"FiscalYear": "fy",
	"BillID":     "billId",
	"Code":       "committeeId",
}

func paramName(field string) string {
	if name, ok := paramNames[field]; ok {
		return name
	}
	return strings.ToLower(field)
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "bioguide":
		return "expected a bioguide ID such as P000197"
	case "zip5":
		return "expected a five-digit ZIP code"
	case "committee":
		return "expected a committee code such as HSAG or HSAG14"
	case "usstate":
		return "unknown state code"
	case "districtid":
		return "expected STATE-DISTRICT such as MI-12 or WY-AL"
	case "billid":
		return "expected CONGRESS-TYPE-NUMBER such as 118-hr-1234"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min", "max":
		return fmt.Sprintf("out of range (%s %s)", fe.Tag(), fe.Param())
	}
	return "failed " + fe.Tag()
}
