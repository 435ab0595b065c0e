package api

import (
	"errors"
	"net/http"

	"skystore/storefront-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetPasswordBody struct {
	Email string `json:"email"`
}

func (a *API) UserResetPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetPasswordBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if err := a.Accounts.ResetPassword(c.Request.Context(), data.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		// The password may already be overwritten at this point. The
		// user can simply request another reset
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to reset password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "A new password was sent to your email",
		"requestID": requestID,
	})
}
