// Package validators contains input validation shared by the account
// and content endpoints
package validators

import "net/mail"

func Email(e string) error {
	if e == "" {
		return &FieldError{Field: "email", Reason: "no email address provided"}
	}

	if _, err := mail.ParseAddress(e); err != nil {
		return &FieldError{Field: "email", Reason: "invalid email address provided"}
	}

	return nil
}
