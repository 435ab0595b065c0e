package api

import (
	"errors"
	"net/http"

	"skystore/storefront-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) UserConfirm(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	user, err := a.Accounts.ConfirmEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			// Also hit when the token was already used; the two cases
			// aren't distinguished on purpose
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Token expired or invalid",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to confirm email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userID":    user.ID,
		"message":   "Email confirmed, you can log in now",
		"requestID": requestID,
	})
}
