package dto

import "github.com/hongminglow/user-directory/internal/models"

// UserInput is the body accepted by create and update.
type UserInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// Valid reports whether the required fields are present.
func (in UserInput) Valid() bool {
	return in.Name != "" && in.Email != ""
}

// ToUser builds the record persisted for this input. Empty phones become null.
func (in UserInput) ToUser(id int64) models.User {
	return models.User{
		ID:    id,
		Name:  in.Name,
		Email: in.Email,
		Phone: models.NullablePhone(in.Phone),
	}
}

// MessageResponse carries validation, not-found and confirmation messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries store failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
