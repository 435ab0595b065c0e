package api

import (
	"net/http"
	"path"
	"strconv"
	"time"

	"skystore/storefront-api/model"
	"skystore/storefront-api/util"
	"skystore/storefront-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

func (a *API) ProductCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Name field can't be empty",
			"requestID": requestID,
		})
		return
	}

	description := c.PostForm("description")

	if err := a.Content.Validate(name, description); err != nil {
		fieldErr := err.(*validators.FieldError)

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     fieldErr.Reason,
			"field":     fieldErr.Field,
			"requestID": requestID,
		})
		return
	}

	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid price",
			"requestID": requestID,
		})
		return
	}

	product := model.Product{
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
		Price:       price,
	}

	if v := c.PostForm("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid category ID",
				"requestID": requestID,
			})
			return
		}

		categoryID := uint(id)
		product.CategoryID = &categoryID
	}

	if v := c.PostForm("manufactured_at"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid manufactured_at date, expected YYYY-MM-DD",
				"requestID": requestID,
			})
			return
		}

		product.ManufacturedAt = &t
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

		product.PhotoRef = &ref
	}

	if err := a.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, product)
}
