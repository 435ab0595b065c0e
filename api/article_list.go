package api

import (
	"net/http"

	"skystore/storefront-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ArticleList returns published articles only, newest first. Drafts are
// still reachable by ID on the detail endpoint
func (a *API) ArticleList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var articles []model.Article

	err := a.DB.
		Where("is_published = ?", true).
		Order("created_at desc").
		Find(&articles).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch articles", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, articles)
}
