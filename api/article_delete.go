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

func (a *API) ArticleDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid article ID",
			"requestID": requestID,
		})
		return
	}

	var article model.Article
	if err := a.DB.Where("id = ?", id).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Article not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.DB.Delete(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if article.PhotoRef != nil {
		if err := a.Storage.Delete(c.Request.Context(), *article.PhotoRef); err != nil {
			zap.L().Error("Failed to delete article photo", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	c.Status(http.StatusOK)
}
