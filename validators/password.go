package validators

func Password(p string) error {
	switch {
	case p == "":
		return &FieldError{Field: "password", Reason: "no password provided"}
	case len(p) < 8:
		return &FieldError{Field: "password", Reason: "password must be at least 8 characters long"}
	case len(p) > 255:
		return &FieldError{Field: "password", Reason: "password is too long"}
	}

	return nil
}
