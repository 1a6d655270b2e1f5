// Package validate checks request payloads against the API's schema rules
// and reports violations through the validation error contract: a per-field
// message map inside a 422 response.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adaa/backoffice-go/internal/apperr"
	"github.com/adaa/backoffice-go/internal/model"
)

// bcrypt rejects inputs over 72 bytes, so the password keeps a byte cap on
// top of the character bounds.
const maxPasswordBytes = 72

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Login validates a login request.
func Login(req model.LoginRequest) *apperr.Error {
	fields := map[string]string{}
	checkEmail(fields, req.Email)
	checkPassword(fields, req.Password)

	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

// Signup validates a registration request.
func Signup(req model.SignupRequest) *apperr.Error {
	fields := map[string]string{}

	name := strings.TrimSpace(req.Name)
	switch {
	case utf8.RuneCountInString(name) < 5:
		fields["name"] = "Name must be at least 5 characters."
	case utf8.RuneCountInString(name) > 40:
		fields["name"] = "Name must not exceed 40 characters."
	}

	checkEmail(fields, req.Email)
	checkPassword(fields, req.Password)

	if strings.TrimSpace(req.PasswordConfirmation) == "" {
		fields["password_confirmation"] = "Please confirm your password."
	} else if req.Password != req.PasswordConfirmation {
		fields["password_confirmation"] = "Passwords do not match."
	}

	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

// Product validates a product create request.
func Product(req model.ProductRequest) *apperr.Error {
	fields := map[string]string{}

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		fields["name"] = "Product name is required."
	case utf8.RuneCountInString(name) > 200:
		fields["name"] = "Product name must be under 200 characters."
	}

	if strings.TrimSpace(req.Category) == "" {
		fields["category"] = "Category is required."
	}

	if req.Price < 1 {
		fields["price"] = "Price must be at least 1."
	} else if req.Price > 99999999.99 {
		fields["price"] = "Price is too large."
	}

	if req.Stock < 0 {
		fields["stock"] = "Stock must be zero or greater."
	} else if req.Stock > 999999 {
		fields["stock"] = "Stock is too large."
	}

	if req.Sales < 0 {
		fields["sales"] = "Sales must be zero or greater."
	}

	description := strings.TrimSpace(req.Description)
	switch {
	case utf8.RuneCountInString(description) < 30:
		fields["description"] = "Description must be at least 30 characters."
	case utf8.RuneCountInString(description) > 500:
		fields["description"] = "Description must be under 500 characters."
	}

	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

func checkEmail(fields map[string]string, email string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		fields["email"] = "Email is required."
	case !emailPattern.MatchString(email):
		fields["email"] = "Email format is invalid."
	}
}

func checkPassword(fields map[string]string, password string) {
	switch {
	case password == "":
		fields["password"] = "Password is required."
	case utf8.RuneCountInString(password) < 8:
		fields["password"] = "Password must be at least 8 characters."
	case utf8.RuneCountInString(password) > 64, len(password) > maxPasswordBytes:
		fields["password"] = "Password must not exceed 64 characters."
	}
}
