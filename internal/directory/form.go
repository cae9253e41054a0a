package directory

import (
	"fmt"

	"github.com/hongminglow/user-directory/internal/models"
	"github.com/hongminglow/user-directory/internal/models/dto"
)

// Form field names accepted by SetField.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
)

// FormStatus is the validity state of the form.
type FormStatus int

const (
	FormUntouched FormStatus = iota
	FormSubmittedInvalid
	FormSubmittedValid
)

func (s FormStatus) String() string {
	switch s {
	case FormUntouched:
		return "untouched"
	case FormSubmittedInvalid:
		return "submitted-invalid"
	case FormSubmittedValid:
		return "submitted-valid"
	default:
		return fmt.Sprintf("FormStatus(%d)", int(s))
	}
}

// Form holds the values being typed plus whether a submit was attempted.
type Form struct {
	Name      string
	Email     string
	Phone     string
	Submitted bool
}

func formFor(u models.User) Form {
	return Form{Name: u.Name, Email: u.Email, Phone: u.PhoneValue()}
}

// Status derives the validity state. Only a submit attempt leaves FormUntouched.
func (f Form) Status() FormStatus {
	switch {
	case !f.Submitted:
		return FormUntouched
	case f.Input().Valid():
		return FormSubmittedValid
	default:
		return FormSubmittedInvalid
	}
}

// FieldErrors returns the per-field messages to show. It is empty until a submit was attempted.
func (f Form) FieldErrors() map[string]string {
	errs := make(map[string]string)
	if !f.Submitted {
		return errs
	}
	if f.Name == "" {
		errs[FieldName] = "Name is required"
	}
	if f.Email == "" {
		errs[FieldEmail] = "Email is required"
	}
	return errs
}

// Input converts the form into the request body sent to the API.
func (f Form) Input() dto.UserInput {
	in := dto.UserInput{Name: f.Name, Email: f.Email}
	if f.Phone != "" {
		phone := f.Phone
		in.Phone = &phone
	}
	return in
}

func (f *Form) set(field, value string) error {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}
