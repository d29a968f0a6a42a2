package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Varun5711/carmate/internal/models"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule for one form field.
type FieldError struct {
	Field   string
	Message string
}

// Failures aggregates every failing rule of a form, in check order.
type Failures []FieldError

func (f Failures) Error() string {
	return strings.Join(f.Messages(), " | ")
}

func (f Failures) Messages() []string {
	msgs := make([]string, len(f))
	for i, fe := range f {
		msgs[i] = fe.Message
	}
	return msgs
}

func (f Failures) Has(field string) bool {
	for _, fe := range f {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil for an empty list so callers never hold a typed-nil error.
func (f Failures) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f *Failures) add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkStruct runs the tag rules declared on models, skipping fields that an
// explicit rule already rejected so each field reports once.
func checkStruct(f *Failures, s interface{}) {
	err := structValidator.Struct(s)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		f.add("form", fmt.Sprintf("Form could not be validated: %v", err))
		return
	}

	for _, fe := range verrs {
		field := fe.Field()
		if f.Has(field) {
			continue
		}
		f.add(field, tagMessage(fe))
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), "'", ""))
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD).", fe.Field())
	default:
		return fmt.Sprintf("%s is out of range.", fe.Field())
	}
}

func Login(c models.Credentials) Failures {
	var f Failures
	if !IsValidEmail(c.Email) {
		f.add("email", "Please enter a valid email address.")
	}
	if c.Password == "" {
		f.add("password", "Password is required.")
	}
	return f
}

func ForgotPassword(r models.ForgotPasswordRequest) Failures {
	var f Failures
	if !IsValidEmail(r.Email) {
		f.add("email", "Please enter a valid email address.")
	}
	return f
}

func Registration(r models.RegistrationRequest, confirmPassword string) Failures {
	var f Failures
	if !MinTrimmedLen(r.FullName, MinNameLen) {
		f.add("fullName", "Full name is required.")
	}
	if !IsValidEmail(r.Email) {
		f.add("email", "Invalid email address.")
	}
	if !IsValidPhone(r.Phone) {
		f.add("phone", "Invalid phone number.")
	}
	if err := PasswordPolicy(r.Password); err != nil {
		f.add("password", passwordMessages[err])
	}
	if r.Password != confirmPassword {
		f.add("confirmPassword", "Passwords do not match.")
	}
	checkStruct(&f, r)
	return f
}

// ProfileUpdate validates the password only when one was entered, and then
// reports every policy rule it breaks.
func ProfileUpdate(p models.ProfileUpdate, confirmPassword string) Failures {
	var f Failures
	if !MinTrimmedLen(p.FullName, MinNameLen) {
		f.add("fullName", "Full name is required (at least 2 characters).")
	}
	if !IsValidEmail(p.Email) {
		f.add("email", "Please enter a valid email address.")
	}
	if !IsValidPhone(p.Phone) {
		f.add("phone", "Please enter a valid phone number (7-15 digits).")
	}
	if p.Password != "" {
		for _, err := range PasswordViolations(p.Password) {
			f.add("password", passwordMessages[err])
		}
	}
	if p.Password != confirmPassword {
		f.add("confirmPassword", "Passwords do not match.")
	}
	checkStruct(&f, p)
	return f
}

// ServiceRequest takes today explicitly so year and date rules stay deterministic.
func ServiceRequest(r models.ServiceRequest, today time.Time) Failures {
	var f Failures
	if !MinTrimmedLen(r.Vehicle.Make, MinMakeLen) {
		f.add("make", "Make is required.")
	}
	if !MinTrimmedLen(r.Vehicle.Model, MinVehicleModLen) {
		f.add("model", "Model is required.")
	}
	if !IsValidYear(r.Vehicle.Year, today.Year()) {
		f.add("year", "Year looks invalid.")
	}
	if !MinTrimmedLen(r.Symptoms, MinSymptomsLen) {
		f.add("symptoms", "Please describe the issue (at least ~10 characters).")
	}
	if !MinTrimmedLen(r.Location, MinLocationLen) {
		f.add("location", "Location is required.")
	}
	if !IsValidVIN(r.Vehicle.VIN) {
		f.add("vin", "VIN format looks invalid (optional field, but if filled it must be valid).")
	}
	if d, err := time.Parse(time.DateOnly, r.PreferredDate); err == nil {
		y, m, day := today.Date()
		if d.Before(time.Date(y, m, day, 0, 0, 0, 0, time.UTC)) {
			f.add("preferredDate", "Preferred date cannot be in the past.")
		}
	}
	checkStruct(&f, r)
	return f
}

// ToggleUser rejects a user row that came back without an id.
func ToggleUser(userID string) Failures {
	var f Failures
	if strings.TrimSpace(userID) == "" {
		f.add("id", "User ID is missing.")
	}
	return f
}

func PhotoUpload(requestID string, paths []string) Failures {
	var f Failures
	if strings.TrimSpace(requestID) == "" {
		f.add("requestId", "Service Request ID is required.")
	}
	if len(paths) == 0 {
		f.add("photos", "Please select at least one photo.")
	}
	return f
}
