package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/internal/models"
	"stockroom/internal/services"
	"stockroom/internal/validators"
)

const (
	msgInvalidEmail = "Invalid Email"
	msgInvalidCode  = "Code is invalid or expired"
)

type PasswordResetHandler struct {
	Service services.PasswordResetService
}

func NewPasswordResetHandler(service services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{Service: service}
}

// @Summary      Request a password reset code
// @Description  Emails a one-time 6 digit code to the account owner
// @Tags         Password reset
// @Accept       json
// @Produce      json
// @Param        request  body      models.ResetRequest  true  "Account email"
// @Success      200      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /reset_request [post]
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req models.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.RequestReset(req.Email); err != nil {
		if errors.Is(err, services.ErrInvalidEmail) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgInvalidEmail})
			return
		}
		internalError(c, "Failed to issue reset code", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Code sent for password reset"})
}

// @Summary      Validate a password reset code
// @Description  Checks the code without consuming it
// @Tags         Password reset
// @Accept       json
// @Produce      json
// @Param        request  body      models.ValidateCodeRequest  true  "Email and code"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /validate_code [post]
func (h *PasswordResetHandler) ValidateCode(c *gin.Context) {
	var req models.ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.ValidateCode(req.Email, req.Code); err != nil {
		if errors.Is(err, services.ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidCode})
			return
		}
		internalError(c, "Failed to validate reset code", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Code Validation Successful"})
}

// @Summary      Reset the password
// @Description  Consumes a valid code and replaces the account password
// @Tags         Password reset
// @Accept       json
// @Produce      json
// @Param        request  body      models.PasswordResetRequest  true  "Email, code and new password"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /password_reset [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidCode})
		case errors.Is(err, validators.ErrPasswordEmpty),
			errors.Is(err, validators.ErrPasswordTooShort),
			errors.Is(err, validators.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			internalError(c, "Failed to reset password", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password Reset Successful"})
}
