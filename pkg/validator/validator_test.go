package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fullName string
		age      int
		email    string
		password string
		wantKey  string
	}{
		{"valid", "Ana Lovric", 20, "ana@x.com", "longenough1", ""},
		{"empty full name", "", 20, "ana@x.com", "longenough1", "fullName"},
		{"whitespace full name", "   ", 20, "ana@x.com", "longenough1", "fullName"},
		{"underage", "Ana Lovric", 17, "ana@x.com", "longenough1", "age"},
		{"missing email", "Ana Lovric", 20, "", "longenough1", "email"},
		{"bad email", "Ana Lovric", 20, "not-an-email", "longenough1", "email"},
		{"short password", "Ana Lovric", 20, "ana@x.com", "short12", "password"},
		{"password contains password", "Ana Lovric", 20, "ana@x.com", "myPassword123", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.fullName, tt.age, tt.email, tt.password)
			if tt.wantKey == "" {
				assert.False(t, errs.HasErrors(), "unexpected errors: %v", errs)
			} else {
				assert.Contains(t, errs, tt.wantKey)
			}
		})
	}
}

func TestValidateUserUpdate_NilFieldsSkipped(t *testing.T) {
	t.Parallel()

	errs := ValidateUserUpdate(nil, nil, nil, nil)
	assert.False(t, errs.HasErrors())

	bad := "not-an-email"
	errs = ValidateUserUpdate(nil, nil, &bad, nil)
	assert.Contains(t, errs, "email")

	young := 12
	errs = ValidateUserUpdate(nil, &young, nil, nil)
	assert.Contains(t, errs, "age")
}

func TestValidateTask(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidateTask("walk the dog").HasErrors())
	assert.Contains(t, ValidateTask(""), "description")
	assert.Contains(t, ValidateTask("   "), "description")
}
