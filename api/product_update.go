package api

import (
	"errors"
	"net/http"
	"path"
	"strconv"
	"time"

	"skystore/storefront-api/model"
	"skystore/storefront-api/util"
	"skystore/storefront-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductUpdate edits an existing product. The slug is set once at
// creation and is deliberately not recomputed here, even when the name
// changes
func (a *API) ProductUpdate(c *gin.Context) {
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

	name := product.Name
	if v, ok := c.GetPostForm("name"); ok {
		name = v
	}

	description := product.Description
	if v, ok := c.GetPostForm("description"); ok {
		description = v
	}

	if err := a.Content.Validate(name, description); err != nil {
		fieldErr := err.(*validators.FieldError)

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     fieldErr.Reason,
			"field":     fieldErr.Field,
			"requestID": requestID,
		})
		return
	}

	updates := map[string]any{
		"name":        name,
		"description": description,
	}

	if v, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid price",
				"requestID": requestID,
			})
			return
		}

		updates["price"] = price
	}

	if v, ok := c.GetPostForm("category_id"); ok {
		categoryID, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid category ID",
				"requestID": requestID,
			})
			return
		}

		updates["category_id"] = uint(categoryID)
	}

	if v, ok := c.GetPostForm("manufactured_at"); ok {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid manufactured_at date, expected YYYY-MM-DD",
				"requestID": requestID,
			})
			return
		}

		updates["manufactured_at"] = t
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

		key := "products/" + util.RandStr(12) + path.Ext(fh.Filename)

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

	if err := a.DB.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, product)
}
