package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contactBody struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ContactSubmit accepts a contact-form message. There's no inbox behind
// this yet, the message just lands in the server log
func (a *API) ContactSubmit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data contactBody
	if err := c.ShouldBind(&data); err != nil || data.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Message field can't be empty",
			"requestID": requestID,
		})
		return
	}

	zap.L().Info("New contact message",
		zap.String("name", data.Name),
		zap.String("phone", data.Phone),
		zap.String("message", data.Message),
		zap.String("requestID", requestID))

	c.JSON(http.StatusOK, gin.H{
		"message":   "Thanks, we'll get back to you",
		"requestID": requestID,
	})
}
