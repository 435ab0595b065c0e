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

func (a *API) ArticleDetail(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid article ID",
			"requestID": requestID,
		})
		return
	}

	views, err := service.RecordView(c.Request.Context(), a.DB, &model.Article{}, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
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

		zap.L().Error("Failed to record article view", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var article model.Article
	if err := a.DB.Where("id = ?", id).First(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	article.ViewsCount = views

	c.JSON(http.StatusOK, article)
}
