package api

import (
	"net/http"

	"skystore/storefront-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) CategoryList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var categories []model.Category
	if err := a.DB.Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch categories", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, categories)
}
