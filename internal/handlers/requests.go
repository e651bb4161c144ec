package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
)

// AuthRequest is the signup and signin payload.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *AuthRequest) Bind(r *http.Request) error {
	a.Email = strings.TrimSpace(a.Email)
	if a.Email == "" || a.Password == "" {
		return invalid("email and password are required")
	}
	return validateEmail(a.Email)
}

// EditUserRequest is the partial profile update payload.
type EditUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (u *EditUserRequest) Bind(r *http.Request) error {
	if u.Email == nil && u.FirstName == nil && u.LastName == nil {
		return invalid("no fields to update")
	}
	if err := trimNonEmpty(u.Email, "email"); err != nil {
		return err
	}
	if err := trimNonEmpty(u.FirstName, "firstName"); err != nil {
		return err
	}
	if err := trimNonEmpty(u.LastName, "lastName"); err != nil {
		return err
	}
	if u.Email != nil {
		return validateEmail(*u.Email)
	}
	return nil
}

// CreateArticleRequest is the article creation payload. Any owner or slug
// sent by the client is ignored.
type CreateArticleRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (a *CreateArticleRequest) Bind(r *http.Request) error {
	if strings.TrimSpace(a.Title) == "" {
		return invalid("title is required")
	}
	if strings.TrimSpace(a.Body) == "" {
		return invalid("body is required")
	}
	return nil
}

// EditArticleRequest is the partial article update payload.
type EditArticleRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

func (a *EditArticleRequest) Bind(r *http.Request) error {
	if a.Title == nil && a.Body == nil {
		return invalid("no fields to update")
	}
	if a.Title != nil && strings.TrimSpace(*a.Title) == "" {
		return invalid("title must not be empty")
	}
	if a.Body != nil && strings.TrimSpace(*a.Body) == "" {
		return invalid("body must not be empty")
	}
	return nil
}

func trimNonEmpty(field *string, name string) error {
	if field == nil {
		return nil
	}
	*field = strings.TrimSpace(*field)
	if *field == "" {
		return invalid(name + " must not be empty")
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("invalid email")
	}
	return nil
}

// validationError is a Bind failure whose message is safe to return to clients.
type validationError struct {
	message string
}

func (e validationError) Error() string {
	return e.message
}

func invalid(message string) error {
	return validationError{message: message}
}

// bindErrorMessage returns the client-facing message for a render.Bind error.
// Decoding errors are not echoed.
func bindErrorMessage(err error) string {
	var verr validationError
	if errors.As(err, &verr) {
		return verr.message
	}
	return "invalid request"
}
