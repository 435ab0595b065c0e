package api

import (
	"errors"
	"net/http"
	"path"

	"skystore/storefront-api/model"
	"skystore/storefront-api/service"
	"skystore/storefront-api/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) UserProfileFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var user model.User
	if err := a.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}

// UserProfileUpdate writes the caller's own profile fields. The avatar
// arrives as a multipart file and lands in storage first; phone and
// country come as plain form values
func (a *API) UserProfileUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	in := service.ProfileInput{}

	if v, ok := c.GetPostForm("phone"); ok {
		in.Phone = &v
	}

	if v, ok := c.GetPostForm("country"); ok {
		in.Country = &v
	}

	if fh, err := c.FormFile("avatar"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to open uploaded avatar", zap.Error(err), zap.String("requestID", requestID))
			return
		}
		defer f.Close()

		key := "avatars/" + util.RandStr(12) + path.Ext(fh.Filename)

		ref, err := a.Storage.Save(c.Request.Context(), key, f, fh.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to store avatar", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		in.AvatarRef = &ref
	}

	user, err := a.Accounts.UpdateProfile(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}
