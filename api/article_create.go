package api

import (
	"net/http"
	"path"
	"strconv"

	"skystore/storefront-api/model"
	"skystore/storefront-api/util"
	"skystore/storefront-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

func (a *API) ArticleCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Title field can't be empty",
			"requestID": requestID,
		})
		return
	}

	content := c.PostForm("content")

	if err := a.Content.Validate(title, content); err != nil {
		fieldErr := err.(*validators.FieldError)

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     fieldErr.Reason,
			"field":     fieldErr.Field,
			"requestID": requestID,
		})
		return
	}

	article := model.Article{
		Title:       title,
		Slug:        slug.Make(title),
		Content:     content,
		IsPublished: true,
	}

	if v := c.PostForm("is_published"); v != "" {
		published, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid is_published value",
				"requestID": requestID,
			})
			return
		}

		article.IsPublished = published
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

		article.PhotoRef = &ref
	}

	if err := a.DB.Create(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, article)
}
