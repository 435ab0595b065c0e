package api

import (
	"errors"
	"net/http"

	"skystore/storefront-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resendBody struct {
	Email string `json:"email"`
}

func (a *API) UserResendConfirmation(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resendBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	err := a.Accounts.ResendConfirmation(c.Request.Context(), data.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrAlreadyConfirmed):
			c.JSON(http.StatusConflict, gin.H{
				"error":     "This email is already confirmed",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrResendCooldown):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":     "A confirmation mail was sent recently, try again later",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to resend confirmation mail", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Confirmation mail sent",
		"requestID": requestID,
	})
}
