package validator

import (
	"net/mail"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateRegister(fullName string, age int, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateFullName(fullName, errs)
	validateAge(age, errs)
	validateEmail(email, errs)
	validatePassword(password, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

// ValidateUserUpdate checks only the fields present in a partial update.
func ValidateUserUpdate(fullName *string, age *int, email, password *string) ValidationErrors {
	errs := make(ValidationErrors)

	if fullName != nil {
		validateFullName(*fullName, errs)
	}
	if age != nil {
		validateAge(*age, errs)
	}
	if email != nil {
		validateEmail(*email, errs)
	}
	if password != nil {
		validatePassword(*password, errs)
	}

	return errs
}

func ValidateTask(description string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(description) == "" {
		errs.Add("description", "Description is required")
	} else if len(description) > 255 {
		errs.Add("description", "Description is too long")
	}

	return errs
}

func validateFullName(fullName string, errs ValidationErrors) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		errs.Add("fullName", "Full name is required")
	} else if len(fullName) > 100 {
		errs.Add("fullName", "Full name is too long")
	}
}

func validateAge(age int, errs ValidationErrors) {
	if age < 18 {
		errs.Add("age", "Age must be at least 18")
	}
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}

func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
	} else if len(password) > 255 {
		errs.Add("password", "Password is too long")
	} else if strings.Contains(strings.ToLower(password), "password") {
		errs.Add("password", "Password cannot contain the word password")
	}
}
