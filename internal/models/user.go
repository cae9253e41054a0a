package models

// User is one row of the users directory.
type User struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// PhoneValue returns the phone number or an empty string when it is unset.
func (u User) PhoneValue() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}

// Clone returns a deep copy so callers can hold on to a record without sharing the phone pointer.
func (u User) Clone() User {
	out := u
	if u.Phone != nil {
		phone := *u.Phone
		out.Phone = &phone
	}
	return out
}

// NullablePhone maps an empty phone to nil, which is how the directory stores "no phone".
func NullablePhone(phone *string) *string {
	if phone == nil || *phone == "" {
		return nil
	}
	value := *phone
	return &value
}
