package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmailService_Suppressed(t *testing.T) {
	svc := NewEmailService("smtp.invalid", 587, "", "", "no-reply@example.com", true)

	assert.NoError(t, svc.SendPasswordResetCode("user@email.com", "012345", 15*time.Minute))
}

func TestEmailService_DialFailure(t *testing.T) {
	// nothing listens on port 1
	svc := NewEmailService("127.0.0.1", 1, "", "", "no-reply@example.com", false)

	err := svc.SendPasswordResetCode("user@email.com", "012345", 15*time.Minute)
	assert.Error(t, err)
}
