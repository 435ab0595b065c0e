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

type versionBody struct {
	VersionNumber string `json:"version_number"`
	VersionName   string `json:"version_name"`
	IsActive      bool   `json:"is_active"`
}

func (a *API) VersionCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid product ID",
			"requestID": requestID,
		})
		return
	}

	var data versionBody
	if err := c.ShouldBind(&data); err != nil || data.VersionNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "version_number field can't be empty",
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

	version := model.Version{
		ProductID:     product.ID,
		VersionNumber: data.VersionNumber,
		VersionName:   data.VersionName,
		IsActive:      data.IsActive,
	}

	if err := a.DB.Create(&version).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create version", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, version)
}
