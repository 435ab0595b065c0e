package api

import (
	"net/http"

	"skystore/storefront-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) ProductList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var products []model.Product

	err := a.DB.
		Preload("Category").
		Order("created_at desc").
		Find(&products).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch products", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, products)
}
