package api

import (
	"errors"
	"net/http"
	"strconv"

	"skystore/storefront-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) ProductDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid product ID",
			"requestID": requestID,
		})
		return
	}

	var product model.Product
	if err := a.DB.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
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

		zap.L().Error("Failed to fetch product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.Version{}).Error; err != nil {
			return err
		}

		return tx.Delete(&product).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if product.PhotoRef != nil {
		if err := a.Storage.Delete(c.Request.Context(), *product.PhotoRef); err != nil {
			zap.L().Error("Failed to delete product photo", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	c.Status(http.StatusOK)
}
