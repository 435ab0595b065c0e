package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate returns 200 if the JWT middleware let the request through
func (a *API) Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
