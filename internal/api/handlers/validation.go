package handlers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	countryCodeRegex = regexp.MustCompile(`^[A-Z]{2}$`)
	phoneNumberRegex = regexp.MustCompile(`^\+?[0-9\s\-()]{0,20}$`)
)

// fieldMessages holds the message reported for a failing field/tag pair.
var fieldMessages = map[string]string{
	"swiftCode.required":      "SWIFT code is required",
	"name.required":           "Bank name is required",
	"name.max":                "Bank name must not exceed 255 characters",
	"address.max":             "Address must not exceed 500 characters",
	"city.max":                "City must not exceed 100 characters",
	"country.max":             "Country must not exceed 100 characters",
	"countryCode.countrycode": "Country code must be 2 uppercase letters",
	"phoneNumber.phonenumber": "Invalid phone number format",
	"email.email":             "Invalid email format",
	"email.max":               "Email must not exceed 100 characters",
	"website.max":             "Website must not exceed 255 characters",
	"bankType.oneof":          "Bank type must be one of: COMMERCIAL, INVESTMENT, CENTRAL, COOPERATIVE, SAVINGS, CREDIT_UNION, ONLINE, PRIVATE, DEVELOPMENT, EXPORT_IMPORT",
}

// newValidator builds a validator reporting JSON field names, with the
// country code and phone number rules registered as tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("countrycode", func(fl validator.FieldLevel) bool {
		return countryCodeRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phonenumber", func(fl validator.FieldLevel) bool {
		return phoneNumberRegex.MatchString(fl.Field().String())
	})
	return v
}

// validationMessages runs every rule on req and returns one message per
// failing field, or nil when the request is valid.
func validationMessages(v *validator.Validate, req any) []string {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
			out = append(out, msg)
			continue
		}
		out = append(out, fe.Field()+" failed on the '"+fe.Tag()+"' rule")
	}
	return out
}
