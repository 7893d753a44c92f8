package auth

import (
	"errors"
	"strings"
)

var (
	ErrCredentialsRequired = errors.New("Email and password are required.")        //nolint:staticcheck // shown to users verbatim
	ErrNameAndTelRequired  = errors.New("Name and telephone number are required.") //nolint:staticcheck // shown to users verbatim
	ErrRoleRequired        = errors.New("Please choose a role for this account.")  //nolint:staticcheck // shown to users verbatim
)

// Credentials are the email/password pair exchanged for a bearer token.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return ErrCredentialsRequired
	}
	return nil
}

// Registration is the account creation form.
type Registration struct {
	Name     string `json:"name"`
	Tel      string `json:"tel"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Validate checks name and telephone first, then credentials, then role.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Tel) == "" {
		return ErrNameAndTelRequired
	}
	if err := r.Credentials().Validate(); err != nil {
		return err
	}
	if _, ok := ParseRole(string(r.Role)); !ok {
		return ErrRoleRequired
	}
	return nil
}

// Credentials returns the login pair for the registered account.
func (r Registration) Credentials() Credentials {
	return Credentials{Email: r.Email, Password: r.Password}
}
