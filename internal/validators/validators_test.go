package validators

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator(gofakeit.Email()))
	assert.NoError(t, EmailValidator("user@email.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator("User <user@email.com>"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "ok", password: "newpassword", wantErr: nil},
		{name: "empty", password: "", wantErr: ErrPasswordEmpty},
		{name: "short", password: "1234567", wantErr: ErrPasswordTooShort},
		{name: "long", password: strings.Repeat("a", 73), wantErr: ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PasswordValidator(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProductNameValidator(t *testing.T) {
	assert.NoError(t, ProductNameValidator("Milk"))
	assert.ErrorIs(t, ProductNameValidator("   "), ErrProductNameEmpty)
	assert.ErrorIs(t, ProductNameValidator(strings.Repeat("x", 256)), ErrProductNameTooLong)
}
