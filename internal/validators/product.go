package validators

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrProductNameEmpty   = errors.New("product name is required")
	ErrProductNameTooLong = errors.New("product name is too long")
)

func ProductNameValidator(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrProductNameEmpty
	}
	if utf8.RuneCountInString(name) > 255 {
		return ErrProductNameTooLong
	}
	return nil
}
