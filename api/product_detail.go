package api

import (
	"errors"
	"net/http"
	"strconv"

	"skystore/storefront-api/model"
	"skystore/storefront-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductDetail returns one product with its category and versions.
// Every hit counts as a view, including refreshes
func (a *API) ProductDetail(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid product ID",
			"requestID": requestID,
		})
		return
	}

	views, err := service.RecordView(c.Request.Context(), a.DB, &model.Product{}, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Product not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to record product view", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var product model.Product

	err = a.DB.
		Preload("Category").
		Preload("Versions").
		Where("id = ?", id).
		First(&product).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	product.ViewsCount = views

	c.JSON(http.StatusOK, product)
}
