package api

import (
	"errors"
	"net/http"

	"skystore/storefront-api/service"
	"skystore/storefront-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Country  *string `json:"country"`
}

func (a *API) UserRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := a.Accounts.Register(c.Request.Context(), service.RegisterInput{
		Email:    data.Email,
		Password: data.Password,
		Phone:    data.Phone,
		Country:  data.Country,
	})
	if err != nil {
		var fieldErr *validators.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     fieldErr.Reason,
				"field":     fieldErr.Field,
				"requestID": requestID,
			})
			return
		}

		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "This email is already registered. Please login or use a different email",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to register user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"userID":  user.ID,
		"message": "Check your inbox for a confirmation link",
	})
}
