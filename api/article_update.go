package api

import (
	"errors"
	"net/http"
	"path"
	"strconv"

	"skystore/storefront-api/model"
	"skystore/storefront-api/util"
	"skystore/storefront-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ArticleUpdate edits an existing article. As with products, the slug
// keeps the value derived at creation time
func (a *API) ArticleUpdate(c *gin.Context) {
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

	title := article.Title
	if v, ok := c.GetPostForm("title"); ok {
		title = v
	}

	content := article.Content
	if v, ok := c.GetPostForm("content"); ok {
		content = v
	}

	if err := a.Content.Validate(title, content); err != nil {
		fieldErr := err.(*validators.FieldError)

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     fieldErr.Reason,
			"field":     fieldErr.Field,
			"requestID": requestID,
		})
		return
	}

	updates := map[string]any{
		"title":   title,
		"content": content,
	}

	if v, ok := c.GetPostForm("is_published"); ok {
		published, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid is_published value",
				"requestID": requestID,
			})
			return
		}

		updates["is_published"] = published
	}

	if fh, err := c.FormFile("photo"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to open uploaded photo", zap.Error(err), zap.String("requestID", requestID))
			return
		}
		defer f.Close()

		key := "articles/" + util.RandStr(12) + path.Ext(fh.Filename)

		ref, err := a.Storage.Save(c.Request.Context(), key, f, fh.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to store photo", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		updates["photo_ref"] = ref
	}

	if err := a.DB.Model(&article).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, article)
}
